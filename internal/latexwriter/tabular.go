package latexwriter

import (
	"fmt"
	"strings"
)

// =============================================================================
// TABULAR OPTIONS
// =============================================================================

// TabularOptions controls how a table is laid out.
type TabularOptions struct {
	// Environment is the LaTeX environment, e.g. "tabular" or "longtable".
	Environment string

	// Parameters is the optional positional argument, e.g. "l".
	Parameters string

	// Spec is the column specification. Default: one "c" per column.
	Spec string

	// BeforeRows is written on its own line after \begin.
	BeforeRows string

	// AfterRows is written on its own line before \end.
	AfterRows string

	// BetweenRows is appended to every row after \tabularnewline.
	BetweenRows string

	// AfterHeader is appended to the last header row.
	AfterHeader string

	// HeaderRows is the number of header rows. Default: 0
	HeaderRows int
}

// DefaultTabularOptions returns the options of a plain tabular.
func DefaultTabularOptions() TabularOptions {
	return TabularOptions{
		Environment: "tabular",
		BeforeRows:  `\hline\hline`,
		AfterRows:   `\hline`,
		AfterHeader: `\hline`,
	}
}

// longtable returns the options shared by every table of the report: a
// longtable with a black header row repeated on each page.
func longtable(spec string) TabularOptions {
	return TabularOptions{
		Environment: "longtable",
		Parameters:  "l",
		Spec:        spec,
		BeforeRows:  `\rowcolor[gray]{0}`,
		AfterRows:   `\hline`,
		BetweenRows: `\hline`,
		AfterHeader: `\hline\endhead`,
		HeaderRows:  1,
	}
}

// =============================================================================
// TABULAR GENERATION
// =============================================================================

// Tabular returns the lines of a table environment. Cells are written as
// given; escape them first.
func Tabular(rows [][]string, options TabularOptions) []string {
	begin := fmt.Sprintf(`\begin{%s}`, options.Environment)
	if options.Parameters != "" {
		begin += "[" + options.Parameters + "]"
	}

	spec := options.Spec
	if spec == "" {
		width := 0
		for _, row := range rows {
			width = max(width, len(row))
		}
		spec = strings.Repeat("c", width)
	}
	begin += "{" + spec + "}"

	lines := []string{begin, options.BeforeRows}

	for i, row := range rows {
		line := strings.Join(row, " & ") + `\tabularnewline` + options.BetweenRows
		if i+1 == options.HeaderRows {
			line += options.AfterHeader
		}
		lines = append(lines, line)
	}

	return append(lines, options.AfterRows, fmt.Sprintf(`\end{%s}`, options.Environment))
}
