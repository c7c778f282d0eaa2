package pipeline

import (
	"fmt"

	"github.com/iancoleman/orderedmap"

	"github.com/kubespec/preprocess/internal/document"
)

// inlinePrimitiveModels splices every primitive model (a definition without
// properties) into each site referencing it and drops the standalone entry.
// A primitive without a type is tagged "object" first so every inlined body
// carries an explicit type.
//
// Inlining is deliberately non-transitive: each primitive is spliced with its
// original body, so a primitive referencing another primitive keeps that ref.
// Downstream consumers depend on this.
func (p *Pipeline) inlinePrimitiveModels(doc *document.Document) error {
	defs := doc.Definitions()

	var inlined []string
	names := append([]string(nil), defs.Keys()...)
	for _, name := range names {
		model, ok := objectEntry(defs, name)
		if !ok || !isPrimitive(model) {
			continue
		}
		if _, ok := model.Get(typeKey); !ok {
			model.Set(typeKey, "object")
		}
		if p.cfg.Debug {
			typ, _ := model.Get(typeKey)
			p.logger.Debug("making model inline", "name", name, "type", typ)
		}
		if err := findReplaceRef(doc.Root(), refPrefix+name, model); err != nil {
			return err
		}
		inlined = append(inlined, name)
	}

	for _, name := range inlined {
		defs.Delete(name)
	}
	return nil
}

// findReplaceRef walks root depth-first and rewrites every object holding a
// $ref equal to refName: the $ref is dropped and the replacement's keys are
// copied in. A pre-existing description wins over the replacement's; any
// other colliding key fails with ErrConflict. The walk continues into
// rewritten nodes because the same ref can recur at any depth.
func findReplaceRef(root any, refName string, replacement *orderedmap.OrderedMap) error {
	switch node := root.(type) {
	case []any:
		for _, item := range node {
			if err := findReplaceRef(item, refName, replacement); err != nil {
				return err
			}
		}
	case *orderedmap.OrderedMap:
		if v, ok := node.Get(refKey); ok {
			if ref, ok := v.(string); ok && ref == refName {
				node.Delete(refKey)
				for _, key := range replacement.Keys() {
					if _, exists := node.Get(key); exists {
						if key != descriptionKey {
							return fmt.Errorf("cannot inline model %s because of key %q: %w", refName, key, ErrConflict)
						}
						continue
					}
					rv, _ := replacement.Get(key)
					node.Set(key, rv)
				}
			}
		}
		for _, key := range node.Keys() {
			v, _ := node.Get(key)
			if err := findReplaceRef(v, refName, replacement); err != nil {
				return err
			}
		}
	}
	return nil
}
