// =============================================================================
// FSAE Cost Report - System Container
// =============================================================================
//
// A System is one subsystem of the vehicle (brakes, suspension...). It owns
// the components read from the system directory, keyed by part number.
// Systems are created from the configuration and filled by the reader; a
// read always starts with ClearComponents so no stale data leaks between runs.
//
// =============================================================================

package bom

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// RGB is a display colour.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as "RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// System is a named collection of components.
type System struct {
	// Order is the display position of the system in reports.
	Order int

	// Label is the two-letter label (e.g. "BR").
	Label string

	// Name is the display name (e.g. "Brake System").
	Name string

	// Colour is the display colour.
	Colour RGB

	components map[string]*Component
	readOrder  []string
}

// NewSystem creates an empty system.
//
// RETURNS:
//   - ErrInvalidIdentifier if the label is not two letters.
func NewSystem(order int, label, name string, colour RGB) (*System, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) != 2 || strings.Trim(label, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") != "" {
		return nil, fmt.Errorf("%w: the label %q must be two letters", ErrInvalidIdentifier, label)
	}

	return &System{
		Order:      order,
		Label:      label,
		Name:       name,
		Colour:     colour,
		components: make(map[string]*Component),
	}, nil
}

func (s *System) String() string {
	return s.Name
}

// AddComponent adds a component to the system.
//
// RETURNS:
//   - ErrDuplicateComponent if a component with the same part number exists.
func (s *System) AddComponent(component *Component) error {
	pn := component.PartNumber()
	if _, exists := s.components[pn]; exists {
		return fmt.Errorf("%w: %s is already in system %s", ErrDuplicateComponent, pn, s.Label)
	}

	s.components[pn] = component
	s.readOrder = append(s.readOrder, pn)
	return nil
}

// HasComponent reports whether the system has a component with the part number.
func (s *System) HasComponent(pn string) bool {
	_, ok := s.components[pn]
	return ok
}

// Component returns the component with the part number.
//
// RETURNS:
//   - ErrNotFound if the system has no such component.
func (s *System) Component(pn string) (*Component, error) {
	component, ok := s.components[pn]
	if !ok {
		return nil, fmt.Errorf("%w: %s in system %s", ErrNotFound, pn, s.Label)
	}
	return component, nil
}

// Components returns the components in read order.
func (s *System) Components() []*Component {
	return lo.Map(s.readOrder, func(pn string, _ int) *Component {
		return s.components[pn]
	})
}

// Len returns the number of components.
func (s *System) Len() int {
	return len(s.components)
}

// ClearComponents removes every component.
func (s *System) ClearComponents() {
	s.components = make(map[string]*Component)
	s.readOrder = nil
}

// Hierarchy returns every component of the system exactly once. Components
// without parents are visited in descending sort order, each followed by its
// own hierarchy; a component reachable from several assemblies is listed at
// its first encounter.
func (s *System) Hierarchy() []*Component {
	roots := lo.Filter(s.Components(), func(c *Component, _ int) bool {
		return !c.HasParents()
	})
	SortDescending(roots)

	seen := make(map[string]bool, len(s.components))
	hierarchy := make([]*Component, 0, len(s.components))

	for _, root := range roots {
		for _, component := range root.Hierarchy() {
			pn := component.PartNumber()
			if seen[pn] {
				continue
			}
			seen[pn] = true
			hierarchy = append(hierarchy, component)
		}
	}

	return hierarchy
}

// Breakdown returns the system cost split by cost table kind. Each component
// contributes its table cost times its quantity so that child costs are not
// counted twice.
func (s *System) Breakdown() Breakdown {
	total := Breakdown{}
	for _, component := range s.Components() {
		total = total.Add(component.Breakdown().Scale(float64(component.Quantity())))
	}
	return total
}

// Cost returns the total cost of the system.
func (s *System) Cost() float64 {
	return s.Breakdown().Total()
}

// SortSystems sorts systems by display order, then label.
func SortSystems(systems []*System) {
	slices.SortFunc(systems, func(a, b *System) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
}
