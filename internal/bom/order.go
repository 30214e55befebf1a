package bom

import (
	"cmp"
	"slices"
	"strconv"
)

// Compare orders two components. It returns a negative number when a sorts
// before b, zero when they have the same part number, and a positive number
// otherwise.
//
// KEYS (in priority order):
//  1. System label, descending.
//  2. Parts before assemblies.
//  3. Designation digit (base[1]): "0" first, then higher digits first.
//  4. Category digit (base[2]): same rule as the designation.
//  5. Counter (base[3:5]), descending.
//  6. Revision, ascending.
//
// Reports list components in descending order, so assemblies come before
// parts, counters and designations read upwards, and category "0" (hardware)
// is listed last.
func Compare(a, b *Component) int {
	if c := cmp.Compare(b.systemLabel, a.systemLabel); c != 0 {
		return c
	}
	if c := cmp.Compare(kindRank(a), kindRank(b)); c != 0 {
		return c
	}
	if c := cmp.Compare(digitRank(a.base[1]), digitRank(b.base[1])); c != 0 {
		return c
	}
	if c := cmp.Compare(digitRank(a.base[2]), digitRank(b.base[2])); c != 0 {
		return c
	}
	if c := cmp.Compare(counter(b), counter(a)); c != 0 {
		return c
	}
	return cmp.Compare(a.revision, b.revision)
}

// SortDescending sorts components in report order.
func SortDescending(components []*Component) {
	slices.SortFunc(components, func(a, b *Component) int {
		return Compare(b, a)
	})
}

func kindRank(c *Component) int {
	if c.IsAssembly() {
		return 1
	}
	return 0
}

// digitRank maps "0" to the lowest rank and higher digits to lower ranks.
func digitRank(d byte) int {
	if d == '0' {
		return 0
	}
	return 10 - int(d-'0')
}

func counter(c *Component) int {
	n, _ := strconv.Atoi(c.base[3:5])
	return n
}
