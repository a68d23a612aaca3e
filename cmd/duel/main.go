// Command duel plays two neural net weight files against each other
// and reports the running win/loss distribution.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-bkgm/bkgm/pkg/duel"
	"github.com/go-bkgm/bkgm/pkg/evaluator"
)

func main() {
	weights1 := flag.String("weights1", "data/gnubg.weights", "first evaluator's neural net weights file")
	weights2 := flag.String("weights2", "data/gnubg.weights", "second evaluator's neural net weights file")
	games := flag.Int("games", 100_000, "number of paired games to play")
	batch := flag.Int("batch", 1000, "paired games played in parallel between progress updates")
	flag.Parse()

	eval1, err := evaluator.NewNeuralEvaluatorFromWeights(*weights1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "duel: loading %s: %v\n", *weights1, err)
		os.Exit(1)
	}
	eval2, err := evaluator.NewNeuralEvaluatorFromWeights(*weights2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "duel: loading %s: %v\n", *weights2, err)
		os.Exit(1)
	}

	d := duel.New(eval1, eval2)
	fmt.Println("Let two Evaluators duel each other:")
	for played := 0; played < *games; played += *batch {
		n := *batch
		if remaining := *games - played; n > remaining {
			n = remaining
		}
		d.PlayMany(n)
		p := d.Probabilities()
		fmt.Printf("\rAfter %d games is the equity %.3f. %v", d.NumberOfGames(), p.Equity(), p)
	}
	fmt.Println("\nDone")
}
