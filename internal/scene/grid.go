package scene

import (
	"math"
	"sort"
)

// UnifyTimeGrid builds the sorted union of every trajectory's sample times.
// Objects are sampled at disparate rates, so the shared grid is the union
// rather than any single object's timeline.
func UnifyTimeGrid(trajs []*Trajectory) []float64 {
	seen := make(map[float64]bool)
	var grid []float64
	for _, t := range trajs {
		if t == nil {
			continue
		}
		for _, jd := range t.Times {
			if !seen[jd] {
				seen[jd] = true
				grid = append(grid, jd)
			}
		}
	}
	sort.Float64s(grid)
	return grid
}

// Resample linearly interpolates a trajectory onto the shared grid. Grid
// times outside the trajectory's span get NaN; exact matches are passed
// through without interpolation. The trajectory's own times must be sorted
// ascending, which JPL exports already are.
func Resample(grid []float64, traj *Trajectory) (xs, ys, zs []float64) {
	xs = interpSeries(grid, traj.Times, traj.X)
	ys = interpSeries(grid, traj.Times, traj.Y)
	zs = interpSeries(grid, traj.Times, traj.Z)
	return xs, ys, zs
}

func interpSeries(grid, times, vals []float64) []float64 {
	out := make([]float64, len(grid))
	for i, t := range grid {
		out[i] = interpAt(t, times, vals)
	}
	return out
}

func interpAt(t float64, times, vals []float64) float64 {
	if len(times) == 0 || t < times[0] || t > times[len(times)-1] {
		return math.NaN()
	}

	i := sort.SearchFloat64s(times, t)
	if i < len(times) && math.Abs(times[i]-t) < 1e-9 {
		return vals[i]
	}
	if i == 0 {
		return math.NaN()
	}

	t0, t1 := times[i-1], times[i]
	v0, v1 := vals[i-1], vals[i]
	frac := (t - t0) / (t1 - t0)
	return v0 + frac*(v1-v0)
}
