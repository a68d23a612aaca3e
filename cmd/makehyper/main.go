// Command makehyper solves hypergammon exhaustively and writes the
// resulting equity table to disk, ready for pkg/evaluator.HyperEvaluator
// to load.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-bkgm/bkgm/internal/equitydb"
	"github.com/go-bkgm/bkgm/pkg/hypergammon"
)

func main() {
	outfile := flag.String("file", "data/hyper3.bin", "output equity table path")
	iterations := flag.Int("iterations", 200, "number of value-iteration passes")
	verbose := flag.Bool("verbose", false, "print progress as phases complete")
	flag.Parse()

	if *verbose {
		fmt.Println("enumerating reachable positions...")
	}
	ongoing, terminal := hypergammon.Reachable()
	if *verbose {
		fmt.Printf("ongoing: %d, terminal: %d\n", len(ongoing), len(terminal))
		fmt.Println("building transitions...")
	}
	transitions := hypergammon.BuildTransitions(ongoing)
	table := hypergammon.SeedTerminals(terminal)

	if *verbose {
		fmt.Printf("running %d value-iteration passes...\n", *iterations)
	}
	table = hypergammon.Iterate(ongoing, transitions, table, *iterations)

	if err := equitydb.WriteProbabilities(*outfile, table); err != nil {
		fmt.Fprintf(os.Stderr, "makehyper: writing %s: %v\n", *outfile, err)
		os.Exit(1)
	}
	if *verbose {
		fmt.Printf("wrote %s\n", *outfile)
	}
}
