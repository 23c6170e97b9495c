// Package ui builds the aligned text table for per-VM tiering stats.
package ui

import (
	"fmt"
	"strings"

	"tiermem/pkg/types"
)

// ruleExtra extends the dash rule past the name column to cover the numeric
// columns and their separators.
const ruleExtra = 90

// Column titles, in render order.
const (
	nameTitle    = "VM Name"
	memSizeTitle = "MemSize (MB)"
	activeTitle  = "Active (MB)"
	tier0Title   = "Tier0 Consumed (MB)"
	tier1Title   = "Tier1 Consumed (MB)"
)

// rowFormat lays out one table line: the name column stretches to the widest
// display name, the counter columns are left-justified at fixed widths.
const rowFormat = "%-*s  %-15s  %-15s  %-20s  %-20s\n"

// Table renders the header row, a dash rule, and one line per stat in input
// order. The name column is sized from the whole mapping, so a VM that
// produced no stats row still cannot shrink it. Callers must report the
// empty-mapping case themselves instead of rendering; the width of an empty
// mapping is meaningless.
func Table(mapping types.VMMapping, rows []types.TierStat) string {
	nameWidth := mapping.MaxNameWidth()

	var b strings.Builder
	fmt.Fprintf(&b, rowFormat, nameWidth, nameTitle, memSizeTitle, activeTitle, tier0Title, tier1Title)
	b.WriteString(strings.Repeat("-", nameWidth+ruleExtra))
	b.WriteByte('\n')
	for _, row := range rows {
		fmt.Fprintf(&b, rowFormat, nameWidth, row.Name, row.MemSizeMB, row.ActiveMB, row.Tier0ConsumedMB, row.Tier1ConsumedMB)
	}
	return b.String()
}
