// Command rollout samples random ongoing positions and labels each
// with its rolled-out win/loss distribution, writing the results to a
// CSV file for later use as neural net training data.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"

	"github.com/go-bkgm/bkgm/pkg/evaluator"
	"github.com/go-bkgm/bkgm/pkg/rollout"
)

func main() {
	weights := flag.String("weights", "data/gnubg.weights", "neural net weights file used both to sample and to play out positions")
	numPositions := flag.Int("num-positions", 1000, "number of positions to label")
	sep := flag.String("sep", ",", "CSV field separator")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rollout [flags] <outfile>")
		os.Exit(1)
	}
	outPath := flag.Arg(0)

	inner, err := evaluator.NewNeuralEvaluatorFromWeights(*weights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rollout: loading weights: %v\n", err)
		os.Exit(1)
	}

	roller := rollout.NewRolloutEvaluator(inner)
	finder := rollout.NewPositionFinder(inner)

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rollout: creating %s: %v\n", outPath, err)
		os.Exit(1)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if r := []rune(*sep); len(r) == 1 {
		w.Comma = r[0]
	}

	header := []string{"positionid", "winnormal", "wingammon", "winbackgammon", "losenormal", "losegammon", "losebackgammon"}
	if err := w.Write(header); err != nil {
		fmt.Fprintf(os.Stderr, "rollout: writing header: %v\n", err)
		os.Exit(1)
	}

	positions := finder.FindPositions(*numPositions)
	for _, pos := range positions {
		p := roller.Eval(pos)
		record := []string{
			pos.PositionID(),
			fmt.Sprintf("%.5f", p.WinNormal),
			fmt.Sprintf("%.5f", p.WinGammon),
			fmt.Sprintf("%.5f", p.WinBackgammon),
			fmt.Sprintf("%.5f", p.LoseNormal),
			fmt.Sprintf("%.5f", p.LoseGammon),
			fmt.Sprintf("%.5f", p.LoseBackgammon),
		}
		if err := w.Write(record); err != nil {
			fmt.Fprintf(os.Stderr, "rollout: writing record: %v\n", err)
			os.Exit(1)
		}
	}
	w.Flush()
	fmt.Printf("Positions: %d\n", len(positions))
}
