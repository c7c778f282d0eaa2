package pipeline

import "errors"

var (
	// ErrConflict means inlining a model body would overwrite an existing key
	// at a reference site. Silent data loss is worse than a hard stop.
	ErrConflict = errors.New("conflicting key at reference site")

	// ErrMalformedModel means a model qualified for apiVersion/kind defaulting
	// but lacks the fields the defaulting has to write to.
	ErrMalformedModel = errors.New("malformed model")

	// ErrNoDefinitions means the document has no definitions table to process.
	ErrNoDefinitions = errors.New("document has no definitions table")
)
