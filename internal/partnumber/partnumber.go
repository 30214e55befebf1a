// =============================================================================
// FSAE Cost Report - Part Number Classifier
// =============================================================================
//
// This package classifies part number strings. A part number has the fixed
// 11-character shape:
//
//   LL-CCCCC-RR
//
//   LL    : two uppercase letters, the system label (e.g. "BR")
//   CCCCC : the base code, which encodes the component category
//   RR    : two uppercase letters, the revision (e.g. "AA")
//
// CATEGORIES (by base code):
//   | Category          | Base template | Example      |
//   |-------------------|---------------|--------------|
//   | System assembly   | A[1-9]000     | BR-A1000-AA  |
//   | Sub-assembly      | A0###         | BR-A0001-AA  |
//   | Part              | 00###         | BR-00001-AA  |
//
// The three patterns are disjoint: no string matches more than one of them.
//
// =============================================================================

package partnumber

import (
	"fmt"
	"regexp"
)

// =============================================================================
// KIND
// =============================================================================

// Kind is the category of a part number.
type Kind int

const (
	// KindInvalid is returned for strings matching none of the patterns.
	KindInvalid Kind = iota

	// KindSystemAssembly is the top-level assembly of a system.
	KindSystemAssembly

	// KindSubAssembly is an assembly included in another assembly.
	KindSubAssembly

	// KindPart is a leaf part.
	KindPart
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindSystemAssembly:
		return "system assembly"
	case KindSubAssembly:
		return "sub-assembly"
	case KindPart:
		return "part"
	default:
		return "invalid"
	}
}

// IsAssembly reports whether components of this kind may own children.
func (k Kind) IsAssembly() bool {
	return k == KindSystemAssembly || k == KindSubAssembly
}

// =============================================================================
// PATTERNS
// =============================================================================

var (
	systemAssemblyPattern = regexp.MustCompile(`^([A-Z]{2})-(A[1-9]000)-([A-Z]{2})$`)
	subAssemblyPattern    = regexp.MustCompile(`^([A-Z]{2})-(A0\d{3})-([A-Z]{2})$`)
	partPattern           = regexp.MustCompile(`^([A-Z]{2})-(00\d{3})-([A-Z]{2})$`)
)

// Length is the length of every valid part number.
const Length = 11

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Classify reports which category the string belongs to.
func Classify(pn string) Kind {
	if len(pn) != Length {
		return KindInvalid
	}

	switch {
	case systemAssemblyPattern.MatchString(pn):
		return KindSystemAssembly
	case subAssemblyPattern.MatchString(pn):
		return KindSubAssembly
	case partPattern.MatchString(pn):
		return KindPart
	default:
		return KindInvalid
	}
}

// IsValid reports whether the string is a part number of any category.
func IsValid(pn string) bool {
	return Classify(pn) != KindInvalid
}

// Matches reports whether the string is a part number of the given kind.
func Matches(pn string, kind Kind) bool {
	return kind != KindInvalid && Classify(pn) == kind
}

// =============================================================================
// PARSED PART NUMBER
// =============================================================================

// PartNumber is a validated, decomposed part number.
type PartNumber struct {
	// SystemLabel is the two-letter system label.
	SystemLabel string

	// Base is the five-character base code.
	Base string

	// Revision is the two-letter revision.
	Revision string

	// Kind is the category derived from the base code.
	Kind Kind
}

// Parse decomposes a part number string.
//
// RETURNS:
//   - The parsed part number.
//   - An error if the string matches none of the three patterns.
func Parse(pn string) (PartNumber, error) {
	kind := Classify(pn)
	if kind == KindInvalid {
		return PartNumber{}, fmt.Errorf("invalid part number %q", pn)
	}

	return PartNumber{
		SystemLabel: pn[0:2],
		Base:        pn[3:8],
		Revision:    pn[9:11],
		Kind:        kind,
	}, nil
}

// Format assembles a part number string from its pieces.
func Format(systemLabel, base, revision string) string {
	return systemLabel + "-" + base + "-" + revision
}

// String returns the part number string.
func (p PartNumber) String() string {
	return Format(p.SystemLabel, p.Base, p.Revision)
}
