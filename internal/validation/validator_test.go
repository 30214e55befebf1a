package validation

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/fsae-cost-report/internal/bom"
)

func TestEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, Equal(0.8333333, 0.83333, Places))
	assert.True(t, Equal(5.11, 5.11000001, Places))
	assert.False(t, Equal(5.11, 5.12, Places))
	assert.False(t, Equal(1, 1.0002, Places))
	assert.False(t, Equal(math.NaN(), 1, Places))
	assert.False(t, Equal(math.Inf(1), 1, Places))
}

func TestCheckAmount(t *testing.T) {
	t.Parallel()

	loc := Location{File: "TM-00001-AA.csv", Row: 12}

	require.NoError(t, CheckAmount(loc, "material subtotal", 8.8, 8.80001))

	err := CheckAmount(loc, "material subtotal", 8.8, 9.8)
	require.Error(t, err)
	assert.ErrorIs(t, err, bom.ErrSubtotalMismatch)

	var mismatch *SubtotalMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 12, mismatch.Row)
	assert.Equal(t, "material subtotal", mismatch.Quantity)
	assert.InDelta(t, 8.8, mismatch.Expected, 1e-9)
	assert.InDelta(t, 9.8, mismatch.Actual, 1e-9)
	assert.Contains(t, err.Error(), "TM-00001-AA.csv, row 12")
}

func TestCheckAttributed(t *testing.T) {
	t.Parallel()

	require.NoError(t, CheckAttributed("drawings", []string{"a.pdf"}, []string{"a.pdf", "b.pdf"}))

	err := CheckAttributed("drawings", []string{"c.pdf", "a.pdf", "b.pdf"}, []string{"a.pdf"})
	require.Error(t, err)
	assert.ErrorIs(t, err, bom.ErrOrphanedFiles)

	var orphaned *OrphanedFilesError
	require.ErrorAs(t, err, &orphaned)
	assert.Equal(t, []string{"b.pdf", "c.pdf"}, orphaned.Files)
	assert.Contains(t, err.Error(), "drawings were not read")
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No validation errors.", FormatErrors(nil))

	err := fmt.Errorf("system TM: %w", errors.Join(errors.New("first"), errors.New("second")))
	out := FormatErrors(err)
	assert.Contains(t, out, "2 error(s)")
	assert.Contains(t, out, "1. first")
	assert.Contains(t, out, "2. second")
}
