// Package pipeline rewrites a Kubernetes Swagger v2 document into the
// normalized form the downstream code generator consumes.
//
// Five passes run in fixed order over the definitions table: clearing the
// unused paths, inlining primitive models, dropping deprecated aliases,
// defaulting the apiVersion/kind discriminators and attaching the generator
// type extension. Each pass sees the output of its predecessor; nothing is
// written out until all of them succeed.
package pipeline

import (
	"log/slog"

	"github.com/iancoleman/orderedmap"

	"github.com/kubespec/preprocess/internal/config"
	"github.com/kubespec/preprocess/internal/document"
)

const (
	refKey         = "$ref"
	typeKey        = "type"
	descriptionKey = "description"
	propertiesKey  = "properties"

	// gvkExtensionKey lists the group/version/kind triples a model maps to.
	gvkExtensionKey = "x-kubernetes-group-version-kind"

	// typeExtensionKey carries the generator import path and type name.
	typeExtensionKey = "x-kcl-type"

	refPrefix = "#/" + document.DefinitionsKey + "/"
)

// Pipeline applies the rewrite passes to one document.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Pipeline. A nil logger falls back to slog.Default.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// Run executes the five passes in order, mutating doc in place.
// On error the document must be considered tainted and not written out.
func (p *Pipeline) Run(doc *document.Document) error {
	if doc.Definitions() == nil {
		return ErrNoDefinitions
	}

	p.logger.Info("1. set the unused paths field in the spec to empty")
	doc.Root().Set(document.PathsKey, orderedmap.New())

	p.logger.Info("2. inline the primitive models")
	if err := p.inlinePrimitiveModels(doc); err != nil {
		return err
	}

	p.logger.Info("3. remove the deprecated models")
	p.removeDeprecatedModels(doc)

	p.logger.Info("4. set the readonly value of the apiVersion and kind fields")
	if err := p.assignDefaultGroupVersionKind(doc.Definitions()); err != nil {
		return err
	}

	p.logger.Info("5. add the x-kcl-type extension to all models")
	p.addTypeExtension(doc.Definitions())

	return nil
}

// objectEntry fetches a named value and asserts it is a JSON object.
func objectEntry(m *orderedmap.OrderedMap, key string) (*orderedmap.OrderedMap, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	obj, ok := v.(*orderedmap.OrderedMap)
	return obj, ok
}
