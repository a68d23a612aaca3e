// Command bm benchmarks how fast an Evaluator can score positions.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-bkgm/bkgm/pkg/evaluator"
	"github.com/go-bkgm/bkgm/pkg/position"
)

func main() {
	weights := flag.String("weights", "data/gnubg.weights", "neural net weights file")
	numPositions := flag.Int("num-positions", 1_000_000, "number of evaluations to run")
	flag.Parse()

	eval, err := evaluator.NewNeuralEvaluatorFromWeights(*weights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bm: loading weights: %v\n", err)
		os.Exit(1)
	}

	pos := position.New()
	begin := time.Now()
	for i := 0; i < *numPositions; i++ {
		eval.Eval(pos)
	}
	elapsed := time.Since(begin)

	speed := float64(*numPositions) / elapsed.Seconds()
	avg := elapsed / time.Duration(*numPositions)
	fmt.Printf("Elapsed: %v, Positions: %d Speed: %.2f/s, Avg: %v\n", elapsed, *numPositions, speed, avg)
}
