package pipeline

import (
	"github.com/iancoleman/orderedmap"
)

// addTypeExtension attaches the generator type extension to every surviving
// model, recording the import package, import alias and referenced type name
// derived from the fully-qualified model name.
func (p *Pipeline) addTypeExtension(defs *orderedmap.OrderedMap) {
	for _, name := range defs.Keys() {
		model, ok := objectEntry(defs, name)
		if !ok {
			continue
		}

		schema := schemaName(name)
		file := fileName(schema)

		imp := orderedmap.New()
		imp.Set("package", pkgName(name, file))
		imp.Set("alias", file)

		ext := orderedmap.New()
		ext.Set("import", imp)
		ext.Set("type", schema)

		model.Set(typeExtensionKey, ext)

		if p.cfg.Debug {
			p.logger.Debug("added type extension", "name", name)
		}
	}
}
