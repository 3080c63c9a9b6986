package scene

import (
	"math"
	"sort"
	"testing"
)

func TestUnifyTimeGrid(t *testing.T) {
	a := &Trajectory{Times: []float64{2459002.5, 2459000.5, 2459001.5}}
	b := &Trajectory{Times: []float64{2459001.5, 2459003.5}}

	grid := UnifyTimeGrid([]*Trajectory{a, nil, b})

	want := []float64{2459000.5, 2459001.5, 2459002.5, 2459003.5}
	if len(grid) != len(want) {
		t.Fatalf("len(grid) = %d, want %d", len(grid), len(want))
	}
	for i := range want {
		if grid[i] != want[i] {
			t.Errorf("grid[%d] = %v, want %v", i, grid[i], want[i])
		}
	}
	if !sort.Float64sAreSorted(grid) {
		t.Error("grid is not sorted")
	}
}

func TestUnifyTimeGridEmpty(t *testing.T) {
	if grid := UnifyTimeGrid(nil); len(grid) != 0 {
		t.Errorf("UnifyTimeGrid(nil) = %v, want empty", grid)
	}
	if grid := UnifyTimeGrid([]*Trajectory{{}}); len(grid) != 0 {
		t.Errorf("empty trajectory gave grid %v, want empty", grid)
	}
}

func TestResampleExactAndInterpolated(t *testing.T) {
	traj := &Trajectory{
		Times: []float64{10, 20},
		X:     []float64{100, 200},
		Y:     []float64{-50, 50},
		Z:     []float64{0, 10},
	}
	grid := []float64{5, 10, 15, 20, 25}

	xs, ys, zs := Resample(grid, traj)

	// Outside the span: absent.
	if !math.IsNaN(xs[0]) || !math.IsNaN(xs[4]) {
		t.Errorf("out-of-span values = %v, %v, want NaN", xs[0], xs[4])
	}
	// Exact matches pass through.
	if xs[1] != 100 || xs[3] != 200 {
		t.Errorf("exact matches = %v, %v, want 100, 200", xs[1], xs[3])
	}
	// Midpoint interpolates.
	if xs[2] != 150 {
		t.Errorf("xs[2] = %v, want 150", xs[2])
	}
	if ys[2] != 0 {
		t.Errorf("ys[2] = %v, want 0", ys[2])
	}
	if zs[2] != 5 {
		t.Errorf("zs[2] = %v, want 5", zs[2])
	}
}

func TestInterpAtSingleSample(t *testing.T) {
	times := []float64{100}
	vals := []float64{7}

	if got := interpAt(100, times, vals); got != 7 {
		t.Errorf("interpAt(exact single) = %v, want 7", got)
	}
	if got := interpAt(99, times, vals); !math.IsNaN(got) {
		t.Errorf("interpAt(before single) = %v, want NaN", got)
	}
	if got := interpAt(101, times, vals); !math.IsNaN(got) {
		t.Errorf("interpAt(after single) = %v, want NaN", got)
	}
}

func TestInterpAtUnevenSpacing(t *testing.T) {
	times := []float64{0, 1, 10}
	vals := []float64{0, 100, 1000}

	if got := interpAt(0.5, times, vals); math.Abs(got-50) > 1e-9 {
		t.Errorf("interpAt(0.5) = %v, want 50", got)
	}
	if got := interpAt(5.5, times, vals); math.Abs(got-550) > 1e-9 {
		t.Errorf("interpAt(5.5) = %v, want 550", got)
	}
}
