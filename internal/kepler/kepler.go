// Package kepler converts classical orbital elements into heliocentric
// Cartesian positions and cross-validates them against recorded trajectory
// samples. The propagator models a single osculating two-body orbit around
// the Sun; perturbations and body mass are ignored.
package kepler

import (
	"math"

	"github.com/chasenunez/orbital-trajectories/internal/astro"
)

const (
	// MuSun is the solar gravitational parameter in km^3/s^2.
	MuSun = 1.32712440018e11

	// J2000 is the Julian date of the J2000.0 epoch.
	J2000 = 2451545.0

	// SecondsPerDay converts Julian-date deltas to seconds.
	SecondsPerDay = 86400.0
)

// Elements holds the six classical orbital elements for one object.
// Values are immutable once loaded; missing angles default to zero and a
// missing epoch defaults to J2000 at load time.
type Elements struct {
	SemiMajorAxisAU       float64
	Eccentricity          float64
	InclinationDeg        float64
	AscendingNodeDeg      float64
	ArgPeriapsisDeg       float64
	MeanAnomalyAtEpochDeg float64
	EpochJD               float64
}

// Config bundles the propagator's numeric tuning. It is passed explicitly at
// construction so the solver carries no process-wide state.
type Config struct {
	// Tolerance is the Newton-Raphson convergence threshold in radians.
	Tolerance float64

	// MaxIterations caps the Kepler solver. On hitting the cap the best
	// estimate so far is returned; no error is signaled.
	MaxIterations int

	// SampleCount is how many recorded samples a cross-validation draws,
	// evenly spaced across the valid index range.
	SampleCount int

	// MaxObjects bounds a single CrossValidateAll invocation.
	MaxObjects int
}

// DefaultConfig returns the standard propagator tuning.
func DefaultConfig() Config {
	return Config{
		Tolerance:     1e-9,
		MaxIterations: 80,
		SampleCount:   10,
		MaxObjects:    200,
	}
}

// Propagator converts orbital elements to positions. It holds only its
// configuration, performs no I/O, and is safe for concurrent use across
// independent objects.
type Propagator struct {
	cfg Config
}

// New creates a propagator with the given configuration. Zero-valued config
// fields are replaced with defaults.
func New(cfg Config) *Propagator {
	def := DefaultConfig()
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = def.Tolerance
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	if cfg.SampleCount <= 0 {
		cfg.SampleCount = def.SampleCount
	}
	if cfg.MaxObjects <= 0 {
		cfg.MaxObjects = def.MaxObjects
	}
	return &Propagator{cfg: cfg}
}

// Config returns the propagator's configuration.
func (p *Propagator) Config() Config {
	return p.cfg
}

// SolveEccentricAnomaly solves Kepler's equation M = E - e*sin(E) for E via
// Newton-Raphson. M is normalized into [0, 2*pi) before solving. The initial
// guess is M for e < 0.8 and pi otherwise; the naive guess diverges as e
// approaches 1. Non-convergence within the iteration cap returns the best
// estimate so far.
func (p *Propagator) SolveEccentricAnomaly(meanAnomaly, eccentricity float64) float64 {
	m := math.Mod(meanAnomaly, 2*math.Pi)
	if m < 0 {
		m += 2 * math.Pi
	}

	e := m
	if eccentricity >= 0.8 {
		e = math.Pi
	}

	for i := 0; i < p.cfg.MaxIterations; i++ {
		f := e - eccentricity*math.Sin(e) - m
		fp := 1 - eccentricity*math.Cos(e)
		delta := f / fp
		e -= delta
		if math.Abs(delta) < p.cfg.Tolerance {
			break
		}
	}
	return e
}

// Position returns the heliocentric ecliptic position in kilometers at the
// element epoch (mean anomaly is used as-is).
func (p *Propagator) Position(el Elements) astro.Vec3 {
	return p.PositionAt(el, el.EpochJD)
}

// PositionAt returns the heliocentric ecliptic position in kilometers at the
// given Julian date. The mean anomaly is advanced linearly from the epoch at
// the two-body mean motion.
//
// Inputs are not validated: a non-positive semi-major axis or an eccentricity
// outside [0, 1) yields a non-finite result rather than an error. Callers
// that need to reject such orbits should check the elements up front.
func (p *Propagator) PositionAt(el Elements, jd float64) astro.Vec3 {
	a := astro.AUToKm(el.SemiMajorAxisAU)
	ecc := el.Eccentricity

	// Mean motion in rad/s.
	n := math.Sqrt(MuSun / (a * a * a))

	m := astro.DegToRad(el.MeanAnomalyAtEpochDeg)
	if jd != el.EpochJD {
		dt := (jd - el.EpochJD) * SecondsPerDay
		m += n * dt
	}

	ea := p.SolveEccentricAnomaly(m, ecc)

	// True anomaly and orbital radius.
	nu := math.Atan2(math.Sqrt(1-ecc*ecc)*math.Sin(ea), math.Cos(ea)-ecc)
	r := a * (1 - ecc*math.Cos(ea))

	// Perifocal-frame position (x toward periapsis, z out of the orbit plane).
	xPF := r * math.Cos(nu)
	yPF := r * math.Sin(nu)

	return rotatePerifocalToEcliptic(xPF, yPF, el)
}

// rotatePerifocalToEcliptic applies the 3-1-3 rotation
// Rz(-node) * Rx(-incl) * Rz(-argp) in closed form, avoiding an intermediate
// matrix product.
func rotatePerifocalToEcliptic(xPF, yPF float64, el Elements) astro.Vec3 {
	incl := astro.DegToRad(el.InclinationDeg)
	node := astro.DegToRad(el.AscendingNodeDeg)
	argp := astro.DegToRad(el.ArgPeriapsisDeg)

	cosO, sinO := math.Cos(node), math.Sin(node)
	cosI, sinI := math.Cos(incl), math.Sin(incl)
	cosW, sinW := math.Cos(argp), math.Sin(argp)

	return astro.Vec3{
		X: (cosO*cosW-sinO*sinW*cosI)*xPF + (-cosO*sinW-sinO*cosW*cosI)*yPF,
		Y: (sinO*cosW+cosO*sinW*cosI)*xPF + (-sinO*sinW+cosO*cosW*cosI)*yPF,
		Z: (sinW*sinI)*xPF + (cosW*sinI)*yPF,
	}
}

// Period returns the orbital period in days for the given elements.
func Period(el Elements) float64 {
	a := astro.AUToKm(el.SemiMajorAxisAU)
	n := math.Sqrt(MuSun / (a * a * a))
	return 2 * math.Pi / n / SecondsPerDay
}
