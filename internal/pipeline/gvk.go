package pipeline

import (
	"fmt"

	"github.com/iancoleman/orderedmap"
)

// assignDefaultGroupVersionKind locks the discriminator fields of every model
// whose group-version-kind extension names exactly one triple: apiVersion and
// kind get a default derived from the triple and become read-only. Models
// with zero or several triples are ambiguous and left untouched.
//
// A qualifying model missing properties, properties.apiVersion or
// properties.kind is malformed input and aborts the run.
func (p *Pipeline) assignDefaultGroupVersionKind(defs *orderedmap.OrderedMap) error {
	for _, name := range defs.Keys() {
		model, ok := objectEntry(defs, name)
		if !ok {
			continue
		}
		v, ok := model.Get(gvkExtensionKey)
		if !ok {
			continue
		}
		gvkList, ok := v.([]any)
		if !ok || len(gvkList) != 1 {
			continue
		}
		gvk, ok := gvkList[0].(*orderedmap.OrderedMap)
		if !ok {
			return fmt.Errorf("model %s: group-version-kind entry is not an object: %w", name, ErrMalformedModel)
		}

		group, err := stringEntry(gvk, "group")
		if err != nil {
			return fmt.Errorf("model %s: %w", name, err)
		}
		version, err := stringEntry(gvk, "version")
		if err != nil {
			return fmt.Errorf("model %s: %w", name, err)
		}
		kind, err := stringEntry(gvk, "kind")
		if err != nil {
			return fmt.Errorf("model %s: %w", name, err)
		}

		props, ok := objectEntry(model, propertiesKey)
		if !ok {
			return fmt.Errorf("model %s has a single group-version-kind but no properties: %w", name, ErrMalformedModel)
		}
		apiVersionProp, ok := objectEntry(props, "apiVersion")
		if !ok {
			return fmt.Errorf("model %s has no apiVersion property: %w", name, ErrMalformedModel)
		}
		kindProp, ok := objectEntry(props, "kind")
		if !ok {
			return fmt.Errorf("model %s has no kind property: %w", name, ErrMalformedModel)
		}

		apiVersionProp.Set("default", apiVersion(group, version))
		apiVersionProp.Set("readOnly", true)
		kindProp.Set("default", kind)
		kindProp.Set("readOnly", true)

		if p.cfg.Debug {
			p.logger.Debug("assigned default apiVersion and kind", "name", name)
		}
	}
	return nil
}

// apiVersion renders a group/version pair the way clients send it:
// "apps/v1" for grouped resources, bare "v1" for the core group.
func apiVersion(group, version string) string {
	if group != "" {
		return group + "/" + version
	}
	return version
}

func stringEntry(m *orderedmap.OrderedMap, key string) (string, error) {
	v, ok := m.Get(key)
	if !ok {
		return "", fmt.Errorf("missing %q: %w", key, ErrMalformedModel)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%q is not a string: %w", key, ErrMalformedModel)
	}
	return s, nil
}
