package scene

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Diameter plausibility bounds in kilometers. Tokens outside this range are
// assumed to be some other column (albedo, density, uncertainty).
const (
	minPlausibleDiameterKm = 0.05
	maxPlausibleDiameterKm = 50000
)

var (
	leadingIDRe   = regexp.MustCompile(`^\d+`)
	provisionalRe = regexp.MustCompile(`^\d{4}$`)
	decimalRe     = regexp.MustCompile(`^[+-]?\d+\.\d+(?:[Ee][+-]?\d+)?$`)
	integerRe     = regexp.MustCompile(`^[+-]?\d+$`)
)

// ParseDiameterTable parses a loosely-delimited TNO/Centaur physical
// properties table into a lowercased name -> diameter (km) map.
//
// The table has no machine-readable schema, so parsing is heuristic: a data
// line starts with an integer id, the name is the tokens up to the 4-digit
// provisional-designation year (falling back to the second token when that
// marker is missing), and the diameter is the first numeric token after the
// designation that falls in a plausible kilometer range. Lines that defeat
// the heuristics are skipped; an object absent from the result map is
// explicitly "unparseable" rather than defaulted.
func ParseDiameterTable(r io.Reader) map[string]float64 {
	diams := make(map[string]float64)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !leadingIDRe.MatchString(line) {
			continue
		}
		toks := strings.Fields(line)
		if len(toks) < 2 {
			continue
		}

		// The marker search starts at index 2: index 0 is the numbered id,
		// which for many bodies is itself four digits, and index 1 must stay
		// available as the name.
		provIdx := -1
		for i := 2; i < len(toks); i++ {
			if provisionalRe.MatchString(toks[i]) {
				provIdx = i
				break
			}
		}

		var name string
		searchStart := 2
		if provIdx >= 2 {
			name = strings.Join(toks[1:provIdx], " ")
			searchStart = provIdx + 1
		} else {
			name = toks[1]
		}
		name = strings.TrimSpace(name)
		if name == "" || searchStart >= len(toks) {
			continue
		}

		if d, ok := findDiameterToken(toks[searchStart:]); ok {
			diams[strings.ToLower(name)] = d
		}
	}
	return diams
}

// findDiameterToken returns the first plausible diameter among the tokens,
// scanning in column order. Decimal and bare-integer tokens both qualify; a
// few table rows record whole-kilometer diameters.
func findDiameterToken(toks []string) (float64, bool) {
	for _, t := range toks {
		if !decimalRe.MatchString(t) && !integerRe.MatchString(t) {
			continue
		}
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			continue
		}
		if v >= minPlausibleDiameterKm && v <= maxPlausibleDiameterKm {
			return v, true
		}
	}
	return 0, false
}

// LookupDiameter resolves an object ID against the diameter map, trying the
// raw lowercased ID first and then the first word with separators normalized
// (file-derived IDs often look like "1977_UB" for "chiron 1977 UB").
func LookupDiameter(diams map[string]float64, id string) (float64, bool) {
	key := strings.ToLower(id)
	if d, ok := diams[key]; ok {
		return d, true
	}
	simple := strings.NewReplacer("_", " ", "-", " ").Replace(key)
	fields := strings.Fields(simple)
	if len(fields) > 0 {
		if d, ok := diams[fields[0]]; ok {
			return d, true
		}
	}
	return 0, false
}
