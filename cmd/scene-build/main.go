// Command scene-build assembles a scene.json from a directory of per-object
// position CSVs plus the diameter and color support tables.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chasenunez/orbital-trajectories/internal/logging"
	"github.com/chasenunez/orbital-trajectories/internal/scene"
)

func main() {
	dataDir := flag.String("data", "data", "Dataset directory with class subdirectories of CSVs")
	outPath := flag.String("out", "scene.json", "Output scene file")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel))

	scn, err := scene.Build(*dataDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: create %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := scn.Write(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: write scene: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Scene written to %s (%d objects, %d time samples)",
		*outPath, len(scn.Objects), len(scn.TimesJD))
}
