package bom

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomPartNumber generates a legal part number of any category.
func randomPartNumber(f *gofakeit.Faker) string {
	letters := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	label := string([]byte{letters[f.Number(0, 3)], letters[f.Number(0, 3)]})
	revision := string([]byte{'A', letters[f.Number(0, 3)]})

	var base string
	switch f.Number(0, 2) {
	case 0:
		base = fmt.Sprintf("A%d000", f.Number(1, 9))
	case 1:
		base = fmt.Sprintf("A0%03d", f.Number(0, 999))
	default:
		base = fmt.Sprintf("00%03d", f.Number(0, 999))
	}

	return label + "-" + base + "-" + revision
}

func TestCompareIsStrictTotalOrder(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(2011)
	components := make([]*Component, 0, 300)
	for i := 0; i < 300; i++ {
		components = append(components, newTestComponent(t, randomPartNumber(faker)))
	}

	for _, a := range components {
		for _, b := range components {
			ab, ba := Compare(a, b), Compare(b, a)

			// antisymmetry and identity
			require.Equal(t, sign(ab), -sign(ba), "%s vs %s", a.PartNumber(), b.PartNumber())
			require.Equal(t, ab == 0, a.PartNumber() == b.PartNumber(), "%s vs %s", a.PartNumber(), b.PartNumber())
		}
	}

	for i := 0; i < 20000; i++ {
		a := components[faker.Number(0, len(components)-1)]
		b := components[faker.Number(0, len(components)-1)]
		c := components[faker.Number(0, len(components)-1)]

		if Compare(a, b) < 0 && Compare(b, c) < 0 {
			require.Negative(t, Compare(a, c), "%s < %s < %s", a.PartNumber(), b.PartNumber(), c.PartNumber())
		}
	}
}

func TestSortDescending(t *testing.T) {
	t.Parallel()

	pns := []string{
		"BR-00001-AA", // hardware category
		"BR-00101-AA",
		"BR-00102-AA",
		"BR-00201-AA",
		"BR-A0001-AA",
		"BR-A1000-AA",
		"BR-00101-AB",
		"AB-00001-AA",
	}

	components := make([]*Component, len(pns))
	for i, pn := range pns {
		components[i] = newTestComponent(t, pn)
	}
	SortDescending(components)

	assert.Equal(t, []string{
		"AB-00001-AA",
		"BR-A1000-AA",
		"BR-A0001-AA",
		"BR-00101-AB",
		"BR-00101-AA",
		"BR-00102-AA",
		"BR-00201-AA",
		"BR-00001-AA",
	}, partNumbers(components))
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
