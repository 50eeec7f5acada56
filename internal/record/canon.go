package record

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CanonicalName normalizes a display name for lookup and comparison.
//
// The ingestion batch normalizes source CSV cells with NFKC before writing
// the store, but request parameters arrive from the outside world and may use
// fullwidth/halfwidth or composed/decomposed variants of the same name.
// Applying NFKC plus whitespace collapsing on both sides makes the by-name
// lookups insensitive to those variants.
func CanonicalName(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}
