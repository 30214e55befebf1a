// =============================================================================
// FSAE Cost Report - Component Model
// =============================================================================
//
// A Component is either a Part or an Assembly. Both share one type; only
// assemblies own children. Components are built by the reader while it parses
// one file and are never mutated afterwards.
//
// RELATIONSHIPS:
//   - parents  : assemblies that include this component (many-to-many, a
//                part may be reused by several assemblies). Non-owning,
//                keyed by part number.
//   - children : ordered child links, each with a quantity per parent.
//
// DERIVED VALUES (recomputed on every call, no cache):
//   - TableCost : sum of the own cost table subtotals
//   - UnitCost  : TableCost + Σ child.UnitCost × quantity in this assembly
//   - Quantity  : stored quantity for roots, otherwise
//                 Σ parent.Quantity × quantity of this component in parent
//
// =============================================================================

package bom

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/ginjaninja78/fsae-cost-report/internal/costtable"
	"github.com/ginjaninja78/fsae-cost-report/internal/partnumber"
)

// =============================================================================
// COMPONENT STRUCTURE
// =============================================================================

// Component is a part or an assembly of a system.
type Component struct {
	// FilePath is the path of the file the component was read from.
	FilePath string

	// Name is the full name of the component.
	Name string

	// Details is a free-text description.
	Details string

	// Cost tables.
	Materials []costtable.Material
	Processes []costtable.Process
	Fasteners []costtable.Fastener
	Toolings  []costtable.Tooling

	// Drawings and Pictures are paths of the files attributed to the component.
	Drawings []string
	Pictures []string

	systemLabel string
	base        string
	revision    string
	kind        partnumber.Kind

	storedQuantity int

	parents    map[string]*Component
	children   []ChildLink
	childIndex map[string]int
}

// ChildLink is one entry of an assembly's parts list.
type ChildLink struct {
	// Component is the child component.
	Component *Component

	// Quantity is the number of the child in one instance of the parent.
	Quantity int
}

// NewComponent creates a component.
//
// PARAMETERS:
//   - filePath: The file the component is read from.
//   - systemLabel: Two-letter system label (e.g. "BR").
//   - name: Full name.
//   - base: Five-character part number base (e.g. "00001").
//   - revision: Two-letter revision (e.g. "AA").
//   - details: Free-text description.
//
// RETURNS:
//   - The component.
//   - ErrInvalidIdentifier if the label or revision is not two characters or
//     the assembled part number matches none of the part number patterns.
func NewComponent(filePath, systemLabel, name, base, revision, details string) (*Component, error) {
	systemLabel = strings.ToUpper(strings.TrimSpace(systemLabel))
	base = strings.ToUpper(strings.TrimSpace(base))
	revision = strings.ToUpper(strings.TrimSpace(revision))

	if len(systemLabel) != 2 {
		return nil, fmt.Errorf("%w: system label %q must be two characters", ErrInvalidIdentifier, systemLabel)
	}
	if len(revision) != 2 {
		return nil, fmt.Errorf("%w: revision %q must be two characters", ErrInvalidIdentifier, revision)
	}

	pn := partnumber.Format(systemLabel, base, revision)
	kind := partnumber.Classify(pn)
	if kind == partnumber.KindInvalid {
		return nil, fmt.Errorf("%w: incorrect part number %q", ErrInvalidIdentifier, pn)
	}

	return &Component{
		FilePath:    filePath,
		Name:        name,
		Details:     details,
		systemLabel: systemLabel,
		base:        base,
		revision:    revision,
		kind:        kind,
		parents:     make(map[string]*Component),
		childIndex:  make(map[string]int),
	}, nil
}

// =============================================================================
// IDENTITY
// =============================================================================

// PartNumber returns the full part number (e.g. "BR-00001-AA").
func (c *Component) PartNumber() string {
	return partnumber.Format(c.systemLabel, c.base, c.revision)
}

// SystemLabel returns the two-letter system label.
func (c *Component) SystemLabel() string { return c.systemLabel }

// Base returns the five-character part number base.
func (c *Component) Base() string { return c.base }

// Revision returns the two-letter revision.
func (c *Component) Revision() string { return c.revision }

// Kind returns the part number category.
func (c *Component) Kind() partnumber.Kind { return c.kind }

// IsAssembly reports whether the component is an assembly.
func (c *Component) IsAssembly() bool { return c.kind.IsAssembly() }

// Equal reports whether both components have the same part number.
func (c *Component) Equal(other *Component) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.PartNumber() == other.PartNumber()
}

func (c *Component) String() string {
	return c.Name
}

// =============================================================================
// RELATIONSHIPS
// =============================================================================

// SetStoredQuantity sets the quantity used when the component has no parent.
func (c *Component) SetStoredQuantity(quantity int) {
	c.storedQuantity = quantity
}

// StoredQuantity returns the quantity used when the component has no parent.
func (c *Component) StoredQuantity() int {
	return c.storedQuantity
}

// AddChild registers a child component with its quantity per parent, and
// registers this component as a parent of the child.
//
// RETURNS:
//   - ErrNotAssembly if this component is a part.
//   - ErrInvalidQuantity if quantity is not positive.
//   - ErrDuplicateComponent if the child is already registered.
//   - ErrCyclicAssembly if the child is this component or one of its ancestors.
func (c *Component) AddChild(child *Component, quantity int) error {
	if !c.IsAssembly() {
		return fmt.Errorf("%w: %s cannot contain %s", ErrNotAssembly, c.PartNumber(), child.PartNumber())
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: %s in %s has quantity %d", ErrInvalidQuantity, child.PartNumber(), c.PartNumber(), quantity)
	}

	pn := child.PartNumber()
	if _, exists := c.childIndex[pn]; exists {
		return fmt.Errorf("%w: %s is listed twice in %s", ErrDuplicateComponent, pn, c.PartNumber())
	}
	if c.Equal(child) || c.hasAncestor(pn) {
		return fmt.Errorf("%w: %s contains itself through %s", ErrCyclicAssembly, pn, c.PartNumber())
	}

	c.childIndex[pn] = len(c.children)
	c.children = append(c.children, ChildLink{Component: child, Quantity: quantity})
	child.parents[c.PartNumber()] = c

	return nil
}

// hasAncestor reports whether a component with the part number is above c.
func (c *Component) hasAncestor(pn string) bool {
	for parentPN, parent := range c.parents {
		if parentPN == pn || parent.hasAncestor(pn) {
			return true
		}
	}
	return false
}

// Children returns the child links in the order they were added.
func (c *Component) Children() []ChildLink {
	return slices.Clone(c.children)
}

// ChildQuantity returns the quantity of the child with the part number.
func (c *Component) ChildQuantity(pn string) (int, bool) {
	i, ok := c.childIndex[pn]
	if !ok {
		return 0, false
	}
	return c.children[i].Quantity, true
}

// HasParents reports whether the component is included in any assembly.
func (c *Component) HasParents() bool {
	return len(c.parents) > 0
}

// Parents returns the parent assemblies in descending sort order.
func (c *Component) Parents() []*Component {
	parents := lo.Values(c.parents)
	SortDescending(parents)
	return parents
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// TableCost returns the cost of the own materials, processes, fasteners and
// toolings. The cost of child components is not included.
func (c *Component) TableCost() float64 {
	return c.Breakdown().Total()
}

// Breakdown returns the own cost table subtotals, per kind.
func (c *Component) Breakdown() Breakdown {
	return Breakdown{
		Materials: costtable.Sum(c.Materials),
		Processes: costtable.Sum(c.Processes),
		Fasteners: costtable.Sum(c.Fasteners),
		Toolings:  costtable.Sum(c.Toolings),
	}
}

// UnitCost returns the full cost of one instance of the component, children
// included.
func (c *Component) UnitCost() float64 {
	cost := c.TableCost()
	for _, link := range c.children {
		cost += link.Component.UnitCost() * float64(link.Quantity)
	}
	return cost
}

// Quantity returns the number of instances of the component in the system.
func (c *Component) Quantity() int {
	if len(c.parents) == 0 {
		return c.storedQuantity
	}

	quantity := 0
	for _, parent := range c.parents {
		perParent, _ := parent.ChildQuantity(c.PartNumber())
		quantity += parent.Quantity() * perParent
	}
	return quantity
}

// Hierarchy returns the component followed by the hierarchy of each child,
// children visited in descending sort order.
func (c *Component) Hierarchy() []*Component {
	hierarchy := []*Component{c}

	children := lo.Map(c.children, func(link ChildLink, _ int) *Component {
		return link.Component
	})
	SortDescending(children)

	for _, child := range children {
		hierarchy = append(hierarchy, child.Hierarchy()...)
	}
	return hierarchy
}

// =============================================================================
// COST BREAKDOWN
// =============================================================================

// Breakdown splits a cost by cost table kind.
type Breakdown struct {
	Materials float64
	Processes float64
	Fasteners float64
	Toolings  float64
}

// Total returns the sum of the four kinds.
func (b Breakdown) Total() float64 {
	return b.Materials + b.Processes + b.Fasteners + b.Toolings
}

// Scale returns the breakdown multiplied by a factor.
func (b Breakdown) Scale(factor float64) Breakdown {
	return Breakdown{
		Materials: b.Materials * factor,
		Processes: b.Processes * factor,
		Fasteners: b.Fasteners * factor,
		Toolings:  b.Toolings * factor,
	}
}

// Add returns the sum of two breakdowns.
func (b Breakdown) Add(other Breakdown) Breakdown {
	return Breakdown{
		Materials: b.Materials + other.Materials,
		Processes: b.Processes + other.Processes,
		Fasteners: b.Fasteners + other.Fasteners,
		Toolings:  b.Toolings + other.Toolings,
	}
}
