package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chasenunez/orbital-trajectories/internal/logging"
)

// Conventional locations inside a dataset directory.
const (
	diameterTablePath = "diameters/tno-centaur_diam-albedo-density/data/tno_centaur_diam_alb_dens.tab"
	colorTablePath    = "plotting_functions/cat colors.csv"
)

// sourceFile is one discovered position CSV.
type sourceFile struct {
	Class    string
	Path     string
	ID       string
	Filename string
}

// discoverSources walks the dataset directory for class subdirectories
// containing position CSVs. Support directories holding diameters and
// plotting metadata are not position sets and are skipped.
func discoverSources(dataDir string) ([]sourceFile, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var sources []sourceFile
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		switch strings.ToLower(e.Name()) {
		case "diameters", "plotting_functions", "d3":
			continue
		}

		sub := filepath.Join(dataDir, e.Name())
		files, err := os.ReadDir(sub)
		if err != nil {
			return nil, fmt.Errorf("read class dir %s: %w", e.Name(), err)
		}
		names := make([]string, 0, len(files))
		for _, f := range files {
			if !f.IsDir() && strings.HasSuffix(strings.ToLower(f.Name()), ".csv") {
				names = append(names, f.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			sources = append(sources, sourceFile{
				Class:    e.Name(),
				Path:     filepath.Join(sub, name),
				ID:       strings.TrimSuffix(name, filepath.Ext(name)),
				Filename: name,
			})
		}
	}
	return sources, nil
}

// Build assembles a scene from a dataset directory: parse every position CSV,
// unify the time grids, resample each object onto the shared grid, and attach
// diameters and class colors where the support tables yield them.
func Build(dataDir string, log *logging.Logger) (*Scene, error) {
	sources, err := discoverSources(dataDir)
	if err != nil {
		return nil, err
	}
	log.Info("Discovered %d position files in %s", len(sources), dataDir)

	type parsed struct {
		src  sourceFile
		traj *Trajectory
	}
	var objects []parsed
	var trajs []*Trajectory
	for _, src := range sources {
		f, err := os.Open(src.Path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", src.Path, err)
		}
		traj, err := ParseTrajectoryCSV(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", src.Path, err)
		}
		if traj == nil {
			log.Warn("No data parsed for %s", src.Path)
			continue
		}
		objects = append(objects, parsed{src: src, traj: traj})
		trajs = append(trajs, traj)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("no objects parsed under %s", dataDir)
	}

	diams := loadDiameters(dataDir, log)
	colors := loadColors(dataDir, log)

	grid := UnifyTimeGrid(trajs)
	log.Info("Unified time grid: %d samples", len(grid))

	s := &Scene{
		Metadata: Metadata{
			Units:     "km",
			Notes:     "Positions parsed from JPL-style CSV exports; times are JDTDB. Diameters parsed heuristically and absent for many bodies.",
			TimeCount: len(grid),
		},
		TimesJD: grid,
		Objects: make([]Object, 0, len(objects)),
	}

	for _, p := range objects {
		xs, ys, zs := Resample(grid, p.traj)
		obj := Object{
			ID:       p.src.ID,
			Class:    p.src.Class,
			Filename: p.src.Filename,
			Color:    ColorForClass(colors, p.src.Class),
			X:        xs,
			Y:        ys,
			Z:        zs,
		}
		if d, ok := LookupDiameter(diams, p.src.ID); ok {
			obj.DiameterKm = d
		}
		s.Objects = append(s.Objects, obj)
	}
	return s, nil
}

func loadDiameters(dataDir string, log *logging.Logger) map[string]float64 {
	f, err := os.Open(filepath.Join(dataDir, filepath.FromSlash(diameterTablePath)))
	if err != nil {
		log.Warn("Diameter table unavailable: %v", err)
		return map[string]float64{}
	}
	defer f.Close()
	diams := ParseDiameterTable(f)
	log.Info("Parsed %d diameter entries", len(diams))
	return diams
}

func loadColors(dataDir string, log *logging.Logger) map[string]string {
	f, err := os.Open(filepath.Join(dataDir, filepath.FromSlash(colorTablePath)))
	if err != nil {
		log.Warn("Color table unavailable: %v", err)
		return map[string]string{}
	}
	defer f.Close()
	colors := ParseCategoryColors(f)
	log.Info("Parsed %d class colors", len(colors))
	return colors
}
