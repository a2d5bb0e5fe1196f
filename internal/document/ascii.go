package document

import "strings"

// typographicReplacements maps common Unicode typography the model likes to
// emit onto plain-text equivalents the Latin-1 page encoding can carry.
var typographicReplacements = map[rune]string{
	'•':      "-",
	'‣':      "-",
	'◦':      "-",
	'–':      "-",
	'—':      "-",
	'‑':      "-",
	' ': " ",
	'‘':      "'",
	'’':      "'",
	'′':      "'",
	'“':      `"`,
	'”':      `"`,
	'″':      `"`,
	'…':      "...",
	'°':      " degrees",
	'×':      "x",
	'÷':      "/",
	'→':      "->",
	'←':      "<-",
	'↔':      "<->",
	'⇒':      "=>",
	'≤':      "<=",
	'≥':      ">=",
	'≠':      "!=",
	'═':      "=",
	'─':      "-",
	'━':      "-",
}

// Sanitize substitutes typographic Unicode with plain equivalents and drops
// any character still outside Latin-1. Dropping is deliberate: an exotic
// glyph must never fail a whole document.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := typographicReplacements[r]; ok {
			b.WriteString(repl)
			continue
		}
		if r <= 0xFF {
			b.WriteRune(r)
		}
	}
	return b.String()
}
