// Package inventory retrieves the host's VM process listing and builds the
// cartel-ID-to-display-name mapping used to label stats output.
package inventory

import (
	"fmt"
	"log"
	"strings"

	"tiermem/pkg/types"
)

// listCommand asks esxcli for the per-VM process table in CSV form.
const listCommand = "esxcli --formatter csv vm process list"

// CSV layout of the listing: zero-based positions of the display name and the
// VMX cartel ID, and the minimum field count a row must carry to be trusted.
const (
	nameField = 1
	idField   = 4
	minFields = 5
)

// Runner executes a command on the connected host.
type Runner interface {
	Run(command string) (stdout, stderr []string, err error)
}

// Collect runs the process listing on the host and parses it into a VMMapping.
// Remote stderr output is logged as a warning and does not abort the run.
func Collect(r Runner) (types.VMMapping, error) {
	stdout, stderr, err := r.Run(listCommand)
	if err != nil {
		return nil, fmt.Errorf("listing vm processes: %w", err)
	}
	if len(stderr) > 0 {
		log.Printf("vm process list reported errors: %s", strings.Join(stderr, "\n"))
	}
	return BuildMapping(stdout), nil
}

// BuildMapping parses the CSV listing into cartel ID -> display name. The first
// line is the header and is always dropped, so listings of one line or fewer
// yield an empty mapping. Rows with fewer than minFields comma-separated
// fields are skipped. A cartel ID appearing on several rows keeps the name
// from the last one.
func BuildMapping(lines []string) types.VMMapping {
	mapping := make(types.VMMapping)
	if len(lines) <= 1 {
		return mapping
	}
	for _, line := range lines[1:] {
		parts := strings.Split(strings.TrimSpace(line), ",")
		if len(parts) < minFields {
			continue
		}
		name := strings.TrimSpace(parts[nameField])
		id := strings.TrimSpace(parts[idField])
		mapping[id] = name
	}
	return mapping
}
