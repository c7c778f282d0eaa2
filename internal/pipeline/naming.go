package pipeline

import (
	"strings"

	"github.com/kubespec/preprocess/internal/types"
)

// schemaName returns the last dot-separated segment of a fully-qualified
// model name, e.g. io.k8s.api.apps.v1.Deployment -> Deployment.
func schemaName(modelName string) string {
	idx := strings.LastIndex(modelName, ".")
	if idx < 0 {
		return modelName
	}
	return modelName[idx+1:]
}

// fileName is the snake_case form of a schema name, used as the import alias.
func fileName(schemaName string) string {
	return types.ToSnakeCase(schemaName)
}

// pkgName appends the generated file name to the model's package path,
// e.g. io.k8s.api.apps.v1.Deployment + deployment -> io.k8s.api.apps.v1.deployment.
func pkgName(modelName, fileName string) string {
	idx := strings.LastIndex(modelName, ".")
	if idx < 0 {
		return modelName + "." + fileName
	}
	return modelName[:idx] + "." + fileName
}
