// Command perft benchmarks position and move generation by counting
// the positions reachable from a starting position at a fixed depth.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-bkgm/bkgm/pkg/position"
)

func main() {
	depth := flag.Int("depth", 2, "search depth in half-move pairs")
	start := flag.String("position", "", "starting position id (defaults to the standard starting position)")
	verbose := flag.Bool("verbose", false, "print a per-roll breakdown")
	flag.Parse()

	pos := position.New()
	if *start != "" {
		p, err := position.FromID(*start, 15)
		if err != nil {
			fmt.Fprintf(os.Stderr, "perft: invalid position id %q: %v\n", *start, err)
			os.Exit(1)
		}
		pos = p
	}

	begin := time.Now()
	total := perft(*depth, pos, *verbose)
	elapsed := time.Since(begin)

	fmt.Printf("Total: %d\n", total)
	if total > 0 {
		speed := float64(total) / elapsed.Seconds()
		avg := elapsed / time.Duration(total)
		fmt.Printf("Elapsed: %v Speed: %.2f/s, Avg: %v\n", elapsed, speed, avg)
	}
}

func perft(depth int, pos position.Position, verbose bool) uint64 {
	var total uint64
	for _, wd := range position.AllUnorderedPairs {
		var count uint64
		for _, child := range pos.PossiblePositions(wd.Dice) {
			if child.GameState().Over {
				count++
				continue
			}
			count += perftRec(depth-1, child)
		}
		if verbose {
			fmt.Printf("- %v: %d\n", wd.Dice, count)
		}
		total += count
	}
	return total
}

func perftRec(depth int, pos position.Position) uint64 {
	if depth <= 0 {
		return 1
	}
	var count uint64
	for _, wd := range position.AllUnorderedPairs {
		for _, child := range pos.PossiblePositions(wd.Dice) {
			if child.GameState().Over {
				count++
				continue
			}
			count += perftRec(depth-1, child)
		}
	}
	return count
}
