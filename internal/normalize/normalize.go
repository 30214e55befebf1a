// =============================================================================
// FSAE Cost Report - Text Normalization
// =============================================================================
//
// This module normalizes the free text typed into the cost spreadsheets
// before it reaches the model and the reports.
//
// OPERATIONS:
//   - ASCII folding: accents dropped ("é" -> "e"), ligatures and symbols
//     spelled out ("ß" -> "ss", "°" -> "deg")
//   - Cell cleaning: surrounding whitespace removed, then ASCII folding
//   - Capitalize: first letter uppercased, rest untouched
//   - HumanJoin: "a, b and c"
//
// =============================================================================

package normalize

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// ASCII FOLDING
// =============================================================================

// folds spells out the characters that have no ASCII decomposition.
var folds = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "AE", "œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O", "đ", "d", "Đ", "D", "ł", "l", "Ł", "L",
	"þ", "th", "Þ", "TH", "ð", "d", "Ð", "D",
	"µ", "u", "μ", "u", "°", "deg", "±", "+/-", "×", "x", "÷", "/",
	"‘", "'", "’", "'", "“", `"`, "”", `"`, "–", "-", "—", "-",
)

// ASCII folds the string to ASCII: known letters and symbols are spelled
// out, compatibility characters decomposed ("²" -> "2"), accents dropped
// ("é" -> "e"). Anything left outside ASCII becomes "?".
func ASCII(s string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if r == '⁄' { // fraction slash, from "½"
				return '/'
			}
			if r > unicode.MaxASCII {
				return '?'
			}
			return r
		}),
	)

	result, _, err := transform.String(t, folds.Replace(s))
	if err != nil {
		return s
	}
	return result
}

// Cell trims and folds the value of a spreadsheet cell.
func Cell(s string) string {
	return ASCII(strings.TrimSpace(s))
}

// =============================================================================
// DISPLAY HELPERS
// =============================================================================

// Capitalize uppercases the first letter of the string.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// HumanJoin joins values as "a, b and c".
//
// PARAMETERS:
//   - values: The values to join. The slice is not modified.
//   - sorted: Whether to sort the values first.
//   - and: The word placed before the last value (e.g. "and", "\&").
func HumanJoin(values []string, sorted bool, and string) string {
	if len(values) == 0 {
		return ""
	}

	list := append([]string(nil), values...)
	if sorted {
		sort.Strings(list)
	}

	if len(list) == 1 {
		return list[0]
	}
	return strings.Join(list[:len(list)-1], ", ") + " " + and + " " + list[len(list)-1]
}
