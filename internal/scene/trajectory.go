package scene

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// Trajectory is one object's raw position series before resampling onto the
// shared grid.
type Trajectory struct {
	Times   []float64
	X, Y, Z []float64
}

// Len returns the number of parsed samples.
func (t *Trajectory) Len() int { return len(t.Times) }

var floatRe = regexp.MustCompile(`[+-]?\d+\.\d+(?:[Ee][+-]?\d+)?|[+-]?\d+(?:[Ee][+-]?\d+)?`)

// ParseTrajectoryCSV parses a JPL-style ascii position table. Header layouts
// vary between exports, so instead of fixed columns each line is scanned for
// floating-point tokens: the first is taken as the JDTDB timestamp and the
// last three as X, Y, Z in kilometers. Lines with fewer than four numbers are
// treated as headers and skipped.
func ParseTrajectoryCSV(r io.Reader) (*Trajectory, error) {
	traj := &Trajectory{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		matches := floatRe.FindAllString(line, -1)
		if len(matches) < 4 {
			continue
		}

		jd, err := strconv.ParseFloat(matches[0], 64)
		if err != nil {
			continue
		}
		x, errX := strconv.ParseFloat(matches[len(matches)-3], 64)
		y, errY := strconv.ParseFloat(matches[len(matches)-2], 64)
		z, errZ := strconv.ParseFloat(matches[len(matches)-1], 64)
		if errX != nil || errY != nil || errZ != nil {
			continue
		}

		traj.Times = append(traj.Times, jd)
		traj.X = append(traj.X, x)
		traj.Y = append(traj.Y, y)
		traj.Z = append(traj.Z, z)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan trajectory: %w", err)
	}

	if traj.Len() == 0 {
		return nil, nil
	}
	return traj, nil
}
