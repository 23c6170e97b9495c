// Package report turns raw memstats output into typed table rows: cartel ID
// tokens become display names, non-data lines fall away, and the survivors
// parse into TierStat records.
package report

import (
	"regexp"
	"sort"
	"strings"

	"tiermem/pkg/types"
)

// idTokenPrefix is how the vmtier report spells a VM's scheduling group.
const idTokenPrefix = "vm."

// dataRow is the shape of a stats line once IDs are substituted: one name
// token followed by exactly four integers.
var dataRow = regexp.MustCompile(`^\S+\s+\d+\s+\d+\s+\d+\s+\d+$`)

// Substitute rewrites every "vm.<id>" occurrence to the VM's display name.
// Longer IDs substitute first (ties broken lexicographically) so an ID that
// prefixes another can never clip it. Lines without matching tokens pass
// through byte for byte.
func Substitute(lines []string, mapping types.VMMapping) []string {
	ids := make([]string, 0, len(mapping))
	for id := range mapping {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) > len(ids[j])
		}
		return ids[i] < ids[j]
	})

	out := make([]string, len(lines))
	for i, line := range lines {
		for _, id := range ids {
			line = strings.ReplaceAll(line, idTokenPrefix+id, mapping[id])
		}
		out[i] = line
	}
	return out
}

// FilterDataRows keeps the lines shaped like a data row, trimmed of
// surrounding whitespace. Report banners, column headers, rules, blanks, and
// partially substituted lines drop out silently.
func FilterDataRows(lines []string) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if dataRow.MatchString(trimmed) {
			kept = append(kept, trimmed)
		}
	}
	return kept
}

// ParseRows converts filtered data rows into TierStat records, preserving
// input order. The counter tokens are kept as the digit strings the report
// emitted. Lines without exactly five whitespace-separated fields are
// skipped; every line FilterDataRows returns has them.
func ParseRows(lines []string) []types.TierStat {
	rows := make([]types.TierStat, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 5 {
			continue
		}
		rows = append(rows, types.TierStat{
			Name:            fields[0],
			MemSizeMB:       fields[1],
			ActiveMB:        fields[2],
			Tier0ConsumedMB: fields[3],
			Tier1ConsumedMB: fields[4],
		})
	}
	return rows
}
