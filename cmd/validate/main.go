// Command validate checks a data snapshot before it is served: every file
// must exist with the columns its adapter reads, and normalization must keep
// enough rows to be useful. It prints per-file row, rejection and event
// counts and exits non-zero when any check fails.
//
// Usage:
//
//	go run ./cmd/validate -data-dir data/mock
//	go run ./cmd/validate -data-dir /srv/snapshot -signed -max-reject 0.2
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/couchcryptid/disaster-map/internal/adapter/csvfile"
	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/source"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", "data/mock", "snapshot directory")
	signed := flag.Bool("signed", false, "negate W/S storm coordinates")
	maxReject := flag.Float64("max-reject", 0.5, "highest tolerated fraction of rejected rows per file")
	flag.Parse()

	if *maxReject < 0 || *maxReject > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dataDir, source.Options{SignedHemispheres: *signed}, *maxReject); code != 0 {
		os.Exit(code)
	}
}

func run(dataDir string, opts source.Options, maxReject float64) int {
	fmt.Println("=== Disaster Snapshot Validation ===")
	fmt.Printf("Snapshot: %s\n\n", dataDir)

	reader := csvfile.New(dataDir)

	columns := &phase{name: "Required columns"}
	readable := make(map[string][]source.Row)
	for _, spec := range source.Specs() {
		header, err := reader.Header(spec.File)
		if err != nil {
			columns.errorf("%s: %v", spec.File, err)
			continue
		}
		if missing := spec.Missing(header); len(missing) > 0 {
			columns.errorf("%s: missing %s", spec.File, strings.Join(missing, ", "))
			continue
		}
		rows, err := reader.Fetch(context.Background(), spec.File)
		if err != nil {
			columns.errorf("%s: %v", spec.File, err)
			continue
		}
		readable[spec.File] = rows
	}

	rejection := &phase{name: fmt.Sprintf("Rejected rows <= %.0f%%", maxReject*100)}
	coverage := &phase{name: "Dated events per category"}
	var results []source.Result

	for _, c := range domain.Categories() {
		specs := source.SpecsFor(c)
		tables := make([][]source.Row, 0, len(specs))
		for _, spec := range specs {
			rows, ok := readable[spec.File]
			if !ok {
				break
			}
			tables = append(tables, rows)
		}
		if len(tables) < len(specs) {
			coverage.errorf("%s: not normalized, a file failed to read", c)
			continue
		}

		res := source.Normalize(c, tables, opts)
		results = append(results, res)

		for _, s := range res.Stats {
			if s.Rows == 0 {
				rejection.errorf("%s: no data rows", s.File)
				continue
			}
			if rate := float64(s.Rejected) / float64(s.Rows); rate > maxReject {
				rejection.errorf("%s: %d of %d rows rejected (%.0f%%)", s.File, s.Rejected, s.Rows, rate*100)
			}
		}

		dated := 0
		for _, ev := range res.Events {
			if _, ok := ev.Year(); ok {
				dated++
			}
		}
		if dated == 0 {
			coverage.errorf("%s: no event has a valid date", c)
		}
	}

	fmt.Printf("  %-30s %6s %9s %7s\n", "FILE", "ROWS", "REJECTED", "EVENTS")
	for _, res := range results {
		for _, s := range res.Stats {
			fmt.Printf("  %-30s %6d %9d %7d\n", s.File, s.Rows, s.Rejected, s.Events)
		}
	}
	fmt.Println()
	for _, res := range results {
		fmt.Printf("  %-18s fit %s\n", res.Category, res.Fit)
	}
	fmt.Println()

	phases := []*phase{columns, rejection, coverage}
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}
