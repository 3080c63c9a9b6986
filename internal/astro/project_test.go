package astro

import (
	"math"
	"testing"
)

func TestProjectEclipticTopDownPreservesAngle(t *testing.T) {
	cfg := DefaultProjectionConfig()

	for deg := 0; deg < 360; deg += 30 {
		angle := DegToRad(float64(deg))
		v := Vec3{X: 3 * math.Cos(angle), Y: 3 * math.Sin(angle)}
		p := ProjectEclipticTopDown(v, cfg)

		got := math.Atan2(p.Y, p.X)
		diff := math.Abs(math.Mod(got-angle+3*math.Pi, 2*math.Pi) - math.Pi)
		if diff > 1e-9 {
			t.Errorf("angle %d°: projected angle off by %v rad", deg, diff)
		}
	}
}

func TestProjectEclipticTopDownCarriesRAndZ(t *testing.T) {
	v := Vec3{X: 3, Y: 4, Z: 1.5}
	p := ProjectEclipticTopDown(v, DefaultProjectionConfig())

	if math.Abs(p.R-v.Norm()) > 1e-12 {
		t.Errorf("R = %v, want %v", p.R, v.Norm())
	}
	if p.Z != 1.5 {
		t.Errorf("Z = %v, want 1.5", p.Z)
	}
}

func TestProjectEclipticTopDownScaleFactor(t *testing.T) {
	v := Vec3{X: 2, Y: 1}
	base := ProjectEclipticTopDown(v, ProjectionConfig{Scale: 1, Mode: ScaleLogR})
	doubled := ProjectEclipticTopDown(v, ProjectionConfig{Scale: 2, Mode: ScaleLogR})

	if math.Abs(doubled.X-2*base.X) > 1e-12 || math.Abs(doubled.Y-2*base.Y) > 1e-12 {
		t.Errorf("doubling Scale gave (%v, %v), want (%v, %v)",
			doubled.X, doubled.Y, 2*base.X, 2*base.Y)
	}
}

func TestScaleRadiusLog(t *testing.T) {
	cfg := ProjectionConfig{Mode: ScaleLogR}

	tests := []struct {
		rAU  float64
		want float64
	}{
		{0, 0},
		{9, 1},
		{99, 2},
	}
	for _, tt := range tests {
		if got := scaleRadius(tt.rAU, cfg); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("scaleRadius(%v, log) = %v, want %v", tt.rAU, got, tt.want)
		}
	}

	// Monotonic over the span we render.
	prev := -1.0
	for r := 0.0; r < 75; r += 0.5 {
		got := scaleRadius(r, cfg)
		if got <= prev {
			t.Fatalf("log scaling not monotonic at r=%v", r)
		}
		prev = got
	}
}

func TestScaleRadiusInnerClamps(t *testing.T) {
	cfg := ProjectionConfig{Mode: ScaleInner}

	if got := scaleRadius(2.5, cfg); got != 2.5 {
		t.Errorf("scaleRadius(2.5, inner) = %v, want 2.5", got)
	}
	if got := scaleRadius(40, cfg); got != 5 {
		t.Errorf("scaleRadius(40, inner) = %v, want clamp to 5", got)
	}
}

func TestScaleRadiusOuterContinuity(t *testing.T) {
	cfg := ProjectionConfig{Mode: ScaleOuter}

	// The two pieces must meet at 5 AU.
	below := scaleRadius(5, cfg)
	above := scaleRadius(5.000001, cfg)
	if math.Abs(below-0.5) > 1e-12 {
		t.Errorf("scaleRadius(5, outer) = %v, want 0.5", below)
	}
	if math.Abs(above-below) > 1e-5 {
		t.Errorf("outer scaling discontinuous at 5 AU: %v vs %v", below, above)
	}
}

func TestScaleModeString(t *testing.T) {
	tests := []struct {
		mode ScaleMode
		want string
	}{
		{ScaleLogR, "log"},
		{ScaleInner, "inner"},
		{ScaleOuter, "outer"},
		{ScaleMode(99), "log"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("ScaleMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
