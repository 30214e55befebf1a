// =============================================================================
// FSAE Cost Report - Cost Table Items
// =============================================================================
//
// This package defines the four kinds of line items found in the cost tables
// of a component: materials, processes, fasteners and toolings.
//
// SUBTOTAL RULES:
//   | Kind     | Subtotal                                              |
//   |----------|-------------------------------------------------------|
//   | Material | unit cost × quantity                                  |
//   | Fastener | unit cost × quantity                                  |
//   | Process  | unit cost × quantity × multiplier (if multiplier id)  |
//   | Tooling  | unit cost × quantity ÷ planned volume factor (PVF)    |
//
// Items are value objects: they are never mutated after construction.
//
// =============================================================================

package costtable

// =============================================================================
// COMMON CONTRACT
// =============================================================================

// Item is the contract shared by every cost table line item.
type Item interface {
	// ItemID returns the cost table identifier of the item.
	ItemID() int

	// ItemName returns the catalogue name of the item.
	ItemName() string

	// ItemUse returns the free-text use/description of the item.
	ItemUse() string

	// ItemUnitCost returns the unit cost.
	ItemUnitCost() float64

	// ItemQuantity returns the quantity.
	ItemQuantity() float64

	// Subtotal returns the computed cost of the line.
	Subtotal() float64
}

// Line holds the fields common to every cost table item.
type Line struct {
	// ID is the identifier of the item in the official cost tables.
	ID int

	// Name is the catalogue name (e.g. "Steel, Mild (per kg)").
	Name string

	// Use describes what the item is used for in the component.
	Use string

	// UnitCost is the cost of one unit.
	UnitCost float64

	// Quantity is the number of units.
	Quantity float64
}

func (l Line) ItemID() int { return l.ID }
func (l Line) ItemName() string { return l.Name }
func (l Line) ItemUse() string { return l.Use }
func (l Line) ItemUnitCost() float64 { return l.UnitCost }
func (l Line) ItemQuantity() float64 { return l.Quantity }
func (l Line) String() string { return l.Name }
func (l Line) baseSubtotal() float64 { return l.UnitCost * l.Quantity }

// Size is an optional physical dimension with its unit.
// A nil *Size means the dimension is not given.
type Size struct {
	Value float64
	Unit  string
}

// =============================================================================
// MATERIAL
// =============================================================================

// Material is a raw material line.
type Material struct {
	Line

	// Size1 and Size2 are optional dimensions (e.g. 0.4 kg).
	Size1 *Size
	Size2 *Size
}

// Subtotal returns unit cost × quantity.
func (m Material) Subtotal() float64 {
	return m.baseSubtotal()
}

// =============================================================================
// FASTENER
// =============================================================================

// Fastener is a fastener line (bolt, nut, rivet...).
type Fastener struct {
	Line

	// Size1 and Size2 are optional dimensions (e.g. 25.4 mm).
	Size1 *Size
	Size2 *Size
}

// Subtotal returns unit cost × quantity.
func (f Fastener) Subtotal() float64 {
	return f.baseSubtotal()
}

// =============================================================================
// PROCESS
// =============================================================================

// Process is a manufacturing process line.
type Process struct {
	Line

	// Unit is the unit of work (e.g. "hole", "cm").
	Unit string

	// MultiplierID identifies the process multiplier; nil when none applies.
	MultiplierID *int

	// Multiplier is the multiplier factor, only meaningful with MultiplierID.
	Multiplier float64
}

// Subtotal returns unit cost × quantity, multiplied by the multiplier when a
// multiplier id is present.
func (p Process) Subtotal() float64 {
	return p.baseSubtotal() * p.EffectiveMultiplier()
}

// EffectiveMultiplier returns the factor applied to the subtotal.
func (p Process) EffectiveMultiplier() float64 {
	if p.MultiplierID == nil {
		return 1
	}
	return p.Multiplier
}

// =============================================================================
// TOOLING
// =============================================================================

// Tooling is a tooling line, amortized over the planned production volume.
type Tooling struct {
	Line

	// Unit is the unit of the tooling quantity (e.g. "point").
	Unit string

	// PVF is the planned volume factor, the amortization denominator.
	PVF float64
}

// Subtotal returns unit cost × quantity ÷ PVF.
func (t Tooling) Subtotal() float64 {
	return t.baseSubtotal() / t.PVF
}

// =============================================================================
// AGGREGATES
// =============================================================================

// Sum returns the sum of the subtotals of the items.
func Sum[T Item](items []T) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}
