package pipeline

import (
	"github.com/iancoleman/orderedmap"

	"github.com/kubespec/preprocess/internal/document"
)

// removeDeprecatedModels rebuilds the definitions table without deprecated
// redirection stubs, keeping the remaining models in their original order.
// References to removed models are not rewritten; deprecated aliases are
// assumed unreferenced.
func (p *Pipeline) removeDeprecatedModels(doc *document.Document) {
	defs := doc.Definitions()

	kept := orderedmap.New()
	for _, name := range defs.Keys() {
		v, _ := defs.Get(name)
		if model, ok := v.(*orderedmap.OrderedMap); ok && isDeprecated(model) {
			p.logger.Info("removing deprecated model", "name", name)
			continue
		}
		kept.Set(name, v)
	}
	doc.Root().Set(document.DefinitionsKey, kept)
}
