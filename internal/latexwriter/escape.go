package latexwriter

import (
	"fmt"
	"strings"
)

// Escape escapes the LaTeX special characters of a text string.
func Escape(s string) string {
	var b strings.Builder

	for _, r := range s {
		switch r {
		case '$', '%', '&', '#', '_', '{', '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '[':
			b.WriteString("{[}")
		case ']':
			b.WriteString("{]}")
		case '"':
			b.WriteString("{''}")
		case '\\':
			b.WriteString(`\textbackslash{}`)
		case '~':
			b.WriteString(`\textasciitilde{}`)
		case '<':
			b.WriteString(`\textless{}`)
		case '>':
			b.WriteString(`\textgreater{}`)
		case '^':
			b.WriteString(`\textasciicircum{}`)
		case '`':
			// Keeps ?` and !` from becoming inverted punctuation.
			b.WriteString("{}`")
		case '\n':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// EscapeMath escapes a string placed in math mode, such as a unit ("kg",
// "m^2"). Braces, underscores and carets keep their math meaning.
func EscapeMath(s string) string {
	var b strings.Builder

	for _, r := range s {
		switch r {
		case '$', '%', '&', '#':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '"':
			b.WriteString("{''}")
		case '`':
			b.WriteString("{}`")
		case '\n':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// money formats an amount as "\$ 12.50".
func money(amount float64) string {
	return fmt.Sprintf(`\$ %4.2f`, amount)
}

// size formats a material dimension; small values use scientific notation.
func size(value float64) string {
	if value < 0.01 {
		return fmt.Sprintf("%.2e", value)
	}
	return fmt.Sprintf("%4.2f", value)
}
