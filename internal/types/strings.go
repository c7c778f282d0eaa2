package types

import (
	"regexp"
	"strings"
)

var (
	matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCap   = regexp.MustCompile("([a-z0-9])([A-Z])")
)

// ToSnakeCase converts a camel-case identifier to snake_case.
// A run of uppercase letters is kept together: only the letter adjacent
// to a following lowercase run starts a new word, so IOStream becomes
// io_stream and HTTPStatusCode becomes http_status_code.
func ToSnakeCase(input string) string {
	snake := matchFirstCap.ReplaceAllString(input, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}
