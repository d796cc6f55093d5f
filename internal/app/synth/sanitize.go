package synth

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	breakTagPattern = regexp.MustCompile(`(?i)<break[^>]*>|<pause[^>]*>`)
	anyTagPattern   = regexp.MustCompile(`<[^>]*>`)
	longWhitespace  = regexp.MustCompile(`\s{3,}`)
)

// Sanitize normalizes raw text for the synthesis worker:
// break markup becomes a comma pause, all remaining markup is stripped,
// control characters are dropped (newline, tab, and carriage return are
// kept), runs of three or more whitespace characters collapse to one space,
// and the result is trimmed. Sanitize is idempotent.
func Sanitize(text string) string {
	text = breakTagPattern.ReplaceAllString(text, ", ")
	text = anyTagPattern.ReplaceAllString(text, " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r' {
			continue
		}
		b.WriteRune(r)
	}
	text = b.String()

	text = longWhitespace.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	// A break at the start of the text has nothing to pause after.
	text = strings.TrimLeft(text, ", ")
	return text
}
