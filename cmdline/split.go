package cmdline

import "strings"

// Split cuts s around each sep into at most n substrings (n < 0: no limit).
// Empty substrings are kept, so "1,,3" yields three fields.
func Split(s string, sep rune, n int) []string {
	return strings.SplitN(s, string(sep), n)
}
