// Command orbital-trajectories is a terminal viewer for solar-system
// small-body trajectories with orbital-element cross-validation.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/chasenunez/orbital-trajectories/internal/astro"
	"github.com/chasenunez/orbital-trajectories/internal/kepler"
	"github.com/chasenunez/orbital-trajectories/internal/logging"
	"github.com/chasenunez/orbital-trajectories/internal/report"
	"github.com/chasenunez/orbital-trajectories/internal/scene"
	"github.com/chasenunez/orbital-trajectories/internal/state"
	"github.com/chasenunez/orbital-trajectories/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode  bool
	validateMode bool
	snapshotPath string
	objectID     string
	targetJD     float64
)

func main() {
	scenePath := flag.String("scene", "scene.json", "Path to scene.json")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	maxObjects := flag.Int("max-objects", 0, "Cap objects per validation run (0 = default)")
	sampleCount := flag.Int("samples", 0, "Recorded samples per object validation (0 = default)")
	flag.BoolVar(&summaryMode, "summary", false, "Print object summary table instead of TUI")
	flag.BoolVar(&validateMode, "validate", false, "Cross-validate fitted orbits and print a report")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	flag.StringVar(&objectID, "object", "", "Propagate a single object's elements (headless)")
	flag.Float64Var(&targetJD, "jd", 0, "Target Julian date for -object (0 = element epoch)")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel))

	cfg := kepler.DefaultConfig()
	if *maxObjects > 0 {
		cfg.MaxObjects = *maxObjects
	}
	if *sampleCount > 0 {
		cfg.SampleCount = *sampleCount
	}
	prop := kepler.New(cfg)

	scn, err := scene.Load(*scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Loaded scene: %d objects, %d time samples", len(scn.Objects), len(scn.TimesJD))

	headless := summaryMode || validateMode || snapshotPath != "" || objectID != ""
	if !headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Warn("stdout is not a terminal; falling back to -summary")
		summaryMode = true
		headless = true
	}

	if headless {
		if err := runHeadless(scn, prop, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	stateMgr := state.NewManager(state.DefaultConfig())
	stateMgr.SetScene(scn)

	// Quit cleanly on signals even before the TUI takes over the terminal.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	model := ui.New(stateMgr, prop)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		<-sigCh
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless handles all non-TUI output modes.
func runHeadless(scn *scene.Scene, prop *kepler.Propagator, logger *logging.Logger) error {
	// Single-object propagation mode.
	if objectID != "" {
		return propagateOne(scn, prop)
	}

	var sum *kepler.Summary
	if validateMode {
		s := prop.CrossValidateAll(scn.Targets())
		sum = &s
		report.WriteValidationReport(os.Stdout, s)
	}

	if summaryMode {
		if validateMode {
			fmt.Println()
		}
		report.WriteSummaryTable(os.Stdout, scn)
	}

	if snapshotPath != "" {
		export := report.ExportSnapshot(scn, sum)
		if snapshotPath == "-" {
			if err := export.WriteJSON(os.Stdout); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else {
			f, err := os.Create(snapshotPath)
			if err != nil {
				return fmt.Errorf("create snapshot file: %w", err)
			}
			defer f.Close()
			if err := export.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
			logger.Info("Snapshot written to %s", snapshotPath)
		}
	}
	return nil
}

// propagateOne prints the propagated position of a single object, at the
// element epoch or at -jd when given.
func propagateOne(scn *scene.Scene, prop *kepler.Propagator) error {
	obj := scn.Object(objectID)
	if obj == nil {
		return fmt.Errorf("unknown object: %s", objectID)
	}
	if obj.Elements == nil {
		return fmt.Errorf("object %s carries no orbital elements", objectID)
	}

	el := *obj.Elements
	jd := targetJD
	if jd == 0 {
		jd = el.EpochJD
	}
	pos := prop.PositionAt(el, jd)
	fmt.Printf("%s @ JD %.4f\n", obj.ID, jd)
	fmt.Printf("  x = %16.1f km\n", pos.X)
	fmt.Printf("  y = %16.1f km\n", pos.Y)
	fmt.Printf("  z = %16.1f km\n", pos.Z)
	fmt.Printf("  r = %16.1f km (%.4f AU)\n", pos.Norm(), astro.KmToAU(pos.Norm()))
	return nil
}
