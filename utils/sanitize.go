package utils

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// HasMarkup reports whether input holds anything the strict policy would
// drop or rewrite, i.e. whether it differs from its plain escaped form.
func HasMarkup(input string) bool {
	return strictPolicy.Sanitize(input) != html.EscapeString(input)
}
