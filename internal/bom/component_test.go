package bom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/fsae-cost-report/internal/costtable"
)

// newTestComponent builds a component from a part number, failing the test on error.
func newTestComponent(t *testing.T, pn string) *Component {
	t.Helper()
	c, err := NewComponent(pn+".csv", pn[0:2], "Component "+pn, pn[3:8], pn[9:11], "")
	require.NoError(t, err)
	return c
}

// withMaterial gives the component one material line of the given cost.
func withMaterial(c *Component, cost float64) *Component {
	c.Materials = append(c.Materials, costtable.Material{
		Line: costtable.Line{ID: 1, Name: "Steel", UnitCost: cost, Quantity: 1},
	})
	return c
}

func TestNewComponent(t *testing.T) {
	t.Parallel()

	c, err := NewComponent("x.csv", "br", "Rotor", "00001", "aa", "front")
	require.NoError(t, err)
	assert.Equal(t, "BR-00001-AA", c.PartNumber())
	assert.Equal(t, "BR", c.SystemLabel())
	assert.False(t, c.IsAssembly())
	assert.Zero(t, c.Quantity())
	assert.Equal(t, "Rotor", c.String())

	tests := []struct {
		name     string
		label    string
		base     string
		revision string
	}{
		{name: "short label", label: "B", base: "00001", revision: "AA"},
		{name: "long revision", label: "BR", base: "00001", revision: "AAA"},
		{name: "bad base", label: "BR", base: "X0001", revision: "AA"},
		{name: "system base with counter", label: "BR", base: "A1001", revision: "AA"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewComponent("x.csv", tt.label, "name", tt.base, tt.revision, "")
			require.ErrorIs(t, err, ErrInvalidIdentifier)
		})
	}
}

func TestAddChildErrors(t *testing.T) {
	t.Parallel()

	assy := newTestComponent(t, "TM-A0001-AA")
	part := newTestComponent(t, "TM-00001-AA")

	require.NoError(t, assy.AddChild(part, 2))
	assert.ErrorIs(t, assy.AddChild(part, 1), ErrDuplicateComponent)
	assert.ErrorIs(t, part.AddChild(assy, 1), ErrNotAssembly)
	assert.ErrorIs(t, assy.AddChild(newTestComponent(t, "TM-00002-AA"), 0), ErrInvalidQuantity)
	assert.ErrorIs(t, assy.AddChild(assy, 1), ErrCyclicAssembly)

	top := newTestComponent(t, "TM-A1000-AA")
	require.NoError(t, top.AddChild(assy, 1))
	assert.ErrorIs(t, assy.AddChild(top, 1), ErrCyclicAssembly)

	qty, ok := assy.ChildQuantity("TM-00001-AA")
	assert.True(t, ok)
	assert.Equal(t, 2, qty)
	assert.Equal(t, []*Component{assy}, part.Parents())
}

func TestCosts(t *testing.T) {
	t.Parallel()

	// root (10) -> 2 × sub (5) -> 3 × leaf (1)
	//           -> 4 × other (0.5)
	root := withMaterial(newTestComponent(t, "TM-A1000-AA"), 10)
	sub := withMaterial(newTestComponent(t, "TM-A0001-AA"), 5)
	leaf := withMaterial(newTestComponent(t, "TM-00001-AA"), 1)
	other := withMaterial(newTestComponent(t, "TM-00002-AA"), 0.5)

	require.NoError(t, sub.AddChild(leaf, 3))
	require.NoError(t, root.AddChild(sub, 2))
	require.NoError(t, root.AddChild(other, 4))

	assert.InDelta(t, 1.0, leaf.UnitCost(), 1e-9)
	assert.InDelta(t, leaf.TableCost(), leaf.UnitCost(), 1e-9)
	assert.InDelta(t, 8.0, sub.UnitCost(), 1e-9)
	assert.InDelta(t, 10+2*8+4*0.5, root.UnitCost(), 1e-9)
	assert.InDelta(t, 10.0, root.TableCost(), 1e-9)
	assert.Less(t, root.TableCost(), root.UnitCost())
}

func TestQuantity(t *testing.T) {
	t.Parallel()

	p1 := newTestComponent(t, "TM-A0001-AA")
	p2 := newTestComponent(t, "TM-A0002-AA")
	shared := newTestComponent(t, "TM-00001-AA")

	p1.SetStoredQuantity(3)
	p2.SetStoredQuantity(5)
	require.NoError(t, p1.AddChild(shared, 2))
	require.NoError(t, p2.AddChild(shared, 7))

	assert.Equal(t, 3, p1.Quantity())
	assert.Equal(t, 5, p2.Quantity())
	assert.Equal(t, 3*2+5*7, shared.Quantity())

	// stored quantity is ignored once a parent exists
	shared.SetStoredQuantity(100)
	assert.Equal(t, 41, shared.Quantity())
}

func TestBreakdown(t *testing.T) {
	t.Parallel()

	c := withMaterial(newTestComponent(t, "TM-00001-AA"), 2)
	c.Fasteners = []costtable.Fastener{{Line: costtable.Line{UnitCost: 0.1, Quantity: 4}}}
	c.Toolings = []costtable.Tooling{{Line: costtable.Line{UnitCost: 500, Quantity: 6}, PVF: 3000}}

	b := c.Breakdown()
	assert.InDelta(t, 2.0, b.Materials, 1e-9)
	assert.InDelta(t, 0.4, b.Fasteners, 1e-9)
	assert.InDelta(t, 1.0, b.Toolings, 1e-9)
	assert.InDelta(t, 3.4, b.Total(), 1e-9)
	assert.InDelta(t, 6.8, b.Scale(2).Total(), 1e-9)
}

func TestComponentHierarchy(t *testing.T) {
	t.Parallel()

	root := newTestComponent(t, "TM-A1000-AA")
	sub := newTestComponent(t, "TM-A0001-AA")
	p1 := newTestComponent(t, "TM-00001-AA")
	p2 := newTestComponent(t, "TM-00002-AA")

	require.NoError(t, root.AddChild(p2, 1))
	require.NoError(t, root.AddChild(sub, 1))
	require.NoError(t, sub.AddChild(p1, 1))

	got := partNumbers(root.Hierarchy())
	assert.Equal(t, []string{"TM-A1000-AA", "TM-A0001-AA", "TM-00001-AA", "TM-00002-AA"}, got)
}

func partNumbers(components []*Component) []string {
	pns := make([]string, len(components))
	for i, c := range components {
		pns[i] = c.PartNumber()
	}
	return pns
}
