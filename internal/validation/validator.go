// =============================================================================
// FSAE Cost Report - Validation
// =============================================================================
//
// This module holds the numeric cross-checks and the structured errors raised
// when hand-maintained spreadsheets drift from the values they declare.
//
// CHECKS:
//   1. Row-level: the declared subtotal of a cost table row must equal the
//      recomputed subtotal.
//   2. Table-level: a declared table total must equal the sum of its rows.
//   3. Parts-level: the unit cost and subtotal quoted for a child component
//      in an assembly must equal the recursively computed unit cost.
//   4. Directory-level: every file on disk must be attributed to a component.
//
// ERROR HANDLING:
//   - Numeric checks fail immediately with a SubtotalMismatchError carrying
//     the file, row, quantity, expected and actual values.
//   - Directory checks collect every unattributed file into one
//     OrphanedFilesError so the operator sees the whole list in one pass.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/fsae-cost-report/internal/bom"
)

// Places is the number of decimal places two amounts must agree to.
const Places = 4

// =============================================================================
// SUBTOTAL MISMATCH
// =============================================================================

// SubtotalMismatchError reports a declared amount that disagrees with the
// computed one.
type SubtotalMismatchError struct {
	// File is the path of the file holding the declared value.
	File string

	// Row is the 1-indexed row of the declared value (0 when unknown).
	Row int

	// Quantity names the amount being checked (e.g. "material subtotal").
	Quantity string

	// Expected is the computed value.
	Expected float64

	// Actual is the value declared in the file.
	Actual float64

	// Places is the tolerance in decimal places.
	Places int
}

// Error implements the error interface.
func (e *SubtotalMismatchError) Error() string {
	return fmt.Sprintf("%s, row %d: %s: computed %s != declared %s (tolerance %d places)",
		e.File,
		e.Row,
		e.Quantity,
		formatAmount(e.Expected),
		formatAmount(e.Actual),
		e.Places,
	)
}

// Unwrap lets errors.Is match bom.ErrSubtotalMismatch.
func (e *SubtotalMismatchError) Unwrap() error {
	return bom.ErrSubtotalMismatch
}

// Location identifies where a declared value was read.
type Location struct {
	File string
	Row  int
}

// Equal reports whether two amounts agree to the given decimal places.
func Equal(a, b float64, places int32) bool {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	diff := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs()
	return diff.Round(places).IsZero()
}

// CheckAmount compares a computed amount with the declared one.
//
// PARAMETERS:
//   - loc: Where the declared value was read.
//   - quantity: What is being checked, for the error message.
//   - computed: The value recomputed from the data.
//   - declared: The value written in the file.
//
// RETURNS:
//   - nil when both agree to Places decimal places.
//   - A *SubtotalMismatchError otherwise.
func CheckAmount(loc Location, quantity string, computed, declared float64) error {
	if Equal(computed, declared, Places) {
		return nil
	}

	return &SubtotalMismatchError{
		File:     loc.File,
		Row:      loc.Row,
		Quantity: quantity,
		Expected: computed,
		Actual:   declared,
		Places:   Places,
	}
}

// =============================================================================
// ORPHANED FILES
// =============================================================================

// OrphanedFilesError lists files on disk that no component accounts for.
type OrphanedFilesError struct {
	// Kind describes the files (e.g. "components", "drawings").
	Kind string

	// Files holds every unattributed path, sorted.
	Files []string
}

// Error implements the error interface.
func (e *OrphanedFilesError) Error() string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("the following %s were not read:", e.Kind))
	for _, file := range e.Files {
		builder.WriteString("\n  - ")
		builder.WriteString(file)
	}

	return builder.String()
}

// Unwrap lets errors.Is match bom.ErrOrphanedFiles.
func (e *OrphanedFilesError) Unwrap() error {
	return bom.ErrOrphanedFiles
}

// CheckAttributed compares the files found on disk with the files attributed
// to components.
//
// RETURNS:
//   - nil when every file on disk was attributed.
//   - An *OrphanedFilesError listing every unattributed file otherwise.
func CheckAttributed(kind string, onDisk, attributed []string) error {
	known := make(map[string]bool, len(attributed))
	for _, path := range attributed {
		known[path] = true
	}

	var orphans []string
	for _, path := range onDisk {
		if !known[path] {
			orphans = append(orphans, path)
		}
	}

	if len(orphans) == 0 {
		return nil
	}

	sort.Strings(orphans)
	return &OrphanedFilesError{Kind: kind, Files: orphans}
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats an error for display, one line per joined error.
//
// PARAMETERS:
//   - err: The error to format; errors joined with errors.Join are listed
//     separately.
//
// RETURNS:
//   - A formatted string containing all errors.
func FormatErrors(err error) string {
	if err == nil {
		return "No validation errors."
	}

	list := flatten(err)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n\n", len(list)))
	for i, e := range list {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, e.Error()))
	}

	return builder.String()
}

// flatten expands errors created by errors.Join.
func flatten(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var list []error
		for _, e := range joined.Unwrap() {
			list = append(list, flatten(e)...)
		}
		return list
	}
	return []error{err}
}

func formatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(Places + 2)
}
