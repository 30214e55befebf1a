package bom

import (
	"fmt"

	"github.com/samber/lo"
)

// CatalogueEntry is one row of the fixed external parts checklist.
type CatalogueEntry struct {
	// Name is the display name of the catalogue item.
	Name string

	// PartNumber is the bound part number, empty when the item has none.
	PartNumber string
}

// Metadata describes the cost report: team, competition and the systems.
// It is created once per run and not modified afterwards.
type Metadata struct {
	Year              int
	CarNumber         int
	University        string
	TeamName          string
	CompetitionName   string
	CompetitionAbbrev string

	// Introduction holds the introduction paragraphs.
	Introduction []string

	// Catalogue maps a system label to its checklist rows.
	Catalogue map[string][]CatalogueEntry

	// Systems is the ordered list of active systems.
	Systems []*System
}

// Filename returns the stem used for every output file,
// e.g. "049_McGill University_FSAEM_CR".
func (m *Metadata) Filename() string {
	return fmt.Sprintf("%03d_%s_%s_CR", m.CarNumber, m.University, m.CompetitionAbbrev)
}

// System returns the system with the label.
func (m *Metadata) System(label string) (*System, bool) {
	return lo.Find(m.Systems, func(s *System) bool {
		return s.Label == label
	})
}

// Labels returns the labels of the systems in order.
func (m *Metadata) Labels() []string {
	return lo.Map(m.Systems, func(s *System, _ int) string {
		return s.Label
	})
}

// Cost returns the total cost of the vehicle.
func (m *Metadata) Cost() float64 {
	return lo.SumBy(m.Systems, func(s *System) float64 {
		return s.Cost()
	})
}
