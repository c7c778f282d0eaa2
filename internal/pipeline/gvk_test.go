package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignDefaultGroupVersionKind(t *testing.T) {
	doc := parse(t, `{
		"definitions": {
			"io.k8s.api.apps.v1.Deployment": {
				"properties": {
					"apiVersion": {"type": "string"},
					"kind": {"type": "string"}
				},
				"x-kubernetes-group-version-kind": [
					{"group": "apps", "kind": "Deployment", "version": "v1"}
				]
			},
			"io.k8s.api.core.v1.Pod": {
				"properties": {
					"apiVersion": {"type": "string"},
					"kind": {"type": "string"}
				},
				"x-kubernetes-group-version-kind": [
					{"group": "", "kind": "Pod", "version": "v1"}
				]
			}
		}
	}`)

	require.NoError(t, newPipeline().assignDefaultGroupVersionKind(doc.Definitions()))

	props := object(t, object(t, doc.Definitions(), "io.k8s.api.apps.v1.Deployment"), propertiesKey)
	apiVersionProp := object(t, props, "apiVersion")
	def, _ := apiVersionProp.Get("default")
	assert.Equal(t, "apps/v1", def)
	ro, _ := apiVersionProp.Get("readOnly")
	assert.Equal(t, true, ro)
	kindProp := object(t, props, "kind")
	def, _ = kindProp.Get("default")
	assert.Equal(t, "Deployment", def)

	// the core group has no group segment
	props = object(t, object(t, doc.Definitions(), "io.k8s.api.core.v1.Pod"), propertiesKey)
	apiVersionProp = object(t, props, "apiVersion")
	def, _ = apiVersionProp.Get("default")
	assert.Equal(t, "v1", def)
}

func TestAssignDefaultGroupVersionKind_AmbiguousLeftAlone(t *testing.T) {
	doc := parse(t, `{
		"definitions": {
			"pkg.NoGVK": {
				"properties": {"apiVersion": {"type": "string"}, "kind": {"type": "string"}}
			},
			"pkg.EmptyGVK": {
				"properties": {"apiVersion": {"type": "string"}, "kind": {"type": "string"}},
				"x-kubernetes-group-version-kind": []
			},
			"pkg.MultiGVK": {
				"properties": {"apiVersion": {"type": "string"}, "kind": {"type": "string"}},
				"x-kubernetes-group-version-kind": [
					{"group": "a", "kind": "K", "version": "v1"},
					{"group": "b", "kind": "K", "version": "v2"}
				]
			}
		}
	}`)

	require.NoError(t, newPipeline().assignDefaultGroupVersionKind(doc.Definitions()))

	for _, name := range doc.Definitions().Keys() {
		props := object(t, object(t, doc.Definitions(), name), propertiesKey)
		apiVersionProp := object(t, props, "apiVersion")
		_, hasDefault := apiVersionProp.Get("default")
		assert.False(t, hasDefault, "model %s must stay untouched", name)
		_, hasReadOnly := apiVersionProp.Get("readOnly")
		assert.False(t, hasReadOnly, "model %s must stay untouched", name)
	}
}

func TestAssignDefaultGroupVersionKind_MalformedModels(t *testing.T) {
	testCases := []struct {
		name  string
		model string
	}{
		{
			"missing properties",
			`{"x-kubernetes-group-version-kind": [{"group": "apps", "kind": "K", "version": "v1"}]}`,
		},
		{
			"missing apiVersion property",
			`{"properties": {"kind": {"type": "string"}},
			  "x-kubernetes-group-version-kind": [{"group": "apps", "kind": "K", "version": "v1"}]}`,
		},
		{
			"missing kind property",
			`{"properties": {"apiVersion": {"type": "string"}},
			  "x-kubernetes-group-version-kind": [{"group": "apps", "kind": "K", "version": "v1"}]}`,
		},
		{
			"missing group in the triple",
			`{"properties": {"apiVersion": {"type": "string"}, "kind": {"type": "string"}},
			  "x-kubernetes-group-version-kind": [{"kind": "K", "version": "v1"}]}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := parse(t, `{"definitions": {"pkg.Broken": `+tc.model+`}}`)

			err := newPipeline().assignDefaultGroupVersionKind(doc.Definitions())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedModel)
			assert.Contains(t, err.Error(), "pkg.Broken")
		})
	}
}

func TestAPIVersion(t *testing.T) {
	assert.Equal(t, "apps/v1", apiVersion("apps", "v1"))
	assert.Equal(t, "v1", apiVersion("", "v1"))
}
