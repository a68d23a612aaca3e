// Command bgserver runs the bkgm analysis API server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-bkgm/bkgm/pkg/api"
	"github.com/go-bkgm/bkgm/pkg/evaluator"
)

const version = "0.1.0"

func main() {
	host := flag.String("host", "localhost", "Host to bind to (use 0.0.0.0 for all interfaces)")
	port := flag.Int("port", 8080, "Port to listen on")
	weightsFile := flag.String("weights", "", "Path to neural network weights (falls back to PubEval if empty or unavailable)")
	readTimeout := flag.Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("bkgm API server v%s\n", version)
		os.Exit(0)
	}

	log.Printf("bkgm API server v%s", version)

	var eval evaluator.Evaluator = evaluator.NewPubEval()
	if *weightsFile != "" {
		neural, err := evaluator.NewNeuralEvaluatorFromWeights(*weightsFile)
		if err != nil {
			log.Printf("could not load %s, falling back to PubEval: %v", *weightsFile, err)
		} else {
			eval = neural
			log.Printf("loaded neural net weights from %s", *weightsFile)
		}
	}

	config := api.ServerConfig{
		Host:         *host,
		Port:         *port,
		ReadTimeout:  *readTimeout,
		WriteTimeout: *writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	server := api.NewServer(api.NewEngine(eval), config, version)
	if err := server.ListenAndServeWithGracefulShutdown(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
