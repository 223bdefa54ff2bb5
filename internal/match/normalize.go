package match

import "strings"

// Normalize canonicalizes document text for matching: lower-cases and
// trims leading/trailing whitespace. Interior whitespace is left alone
// so regex extraction still sees the original token layout. Idempotent.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
