// Package tierstats retrieves the raw per-VM memory-tiering report from the
// host. Rows are keyed by "vm.<cartelID>" tokens; decoding them into display
// names and table rows happens downstream.
package tierstats

import (
	"fmt"
	"log"
	"strings"
)

// statsCommand pulls the vmtier report in megabytes with exactly the columns
// the table renders: name, memSize, active, and per-tier consumption.
const statsCommand = "memstats -r vmtier-stats -u mb -s name:memSize:active:tier0Consumed:tier1Consumed"

// Runner executes a command on the connected host.
type Runner interface {
	Run(command string) (stdout, stderr []string, err error)
}

// Collect runs the memstats report and returns its raw stdout lines. Remote
// stderr output is logged as a warning and does not abort the run.
func Collect(r Runner) ([]string, error) {
	stdout, stderr, err := r.Run(statsCommand)
	if err != nil {
		return nil, fmt.Errorf("reading vmtier stats: %w", err)
	}
	if len(stderr) > 0 {
		log.Printf("memstats reported errors: %s", strings.Join(stderr, "\n"))
	}
	return stdout, nil
}
