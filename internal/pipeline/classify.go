package pipeline

import (
	"strings"

	"github.com/iancoleman/orderedmap"
)

// deprecatedPrefix marks the description of a deprecated model redirection.
const deprecatedPrefix = "Deprecated."

// isPrimitive reports whether a model declares no properties.
// Such models are type aliases rather than structured objects.
func isPrimitive(model *orderedmap.OrderedMap) bool {
	_, ok := model.Get(propertiesKey)
	return !ok
}

// isDeprecated reports whether a model is a deprecated redirection stub:
// exactly two members, one of them a description starting with "Deprecated.".
// The two-member check keeps models that merely mention the word in a longer
// description next to real structure.
func isDeprecated(model *orderedmap.OrderedMap) bool {
	if len(model.Keys()) != 2 {
		return false
	}
	v, ok := model.Get(descriptionKey)
	if !ok {
		return false
	}
	desc, ok := v.(string)
	return ok && strings.HasPrefix(desc, deprecatedPrefix)
}
