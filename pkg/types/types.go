package types

import "unicode/utf8"

// VMMapping relates a VMX cartel ID to the VM's operator-assigned display name.
// It is built once per run from the host's process listing and read-only afterwards.
type VMMapping map[string]string

// MaxNameWidth returns the rune count of the longest display name in the mapping.
// Width covers every known VM, not just those that produced a stats row, so the
// name column stays stable across runs.
func (m VMMapping) MaxNameWidth() int {
	width := 0
	for _, name := range m {
		if n := utf8.RuneCountInString(name); n > width {
			width = n
		}
	}
	return width
}

// TierStat holds one VM's memory-tiering figures in megabytes, as reported by
// the host's memstats command. The counters carry the report's digit tokens
// verbatim; the data-row filter upstream guarantees they are integers.
type TierStat struct {
	Name            string
	MemSizeMB       string
	ActiveMB        string
	Tier0ConsumedMB string
	Tier1ConsumedMB string
}
