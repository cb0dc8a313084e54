// Package ingest turns bulk input into point candidates: pasted text blocks
// and ESRI shapefiles.
package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Candidate is one parsed input location. Name is non-empty only when the
// line carried text before a bare coordinate pair.
type Candidate struct {
	Name string
	Lat  float64
	Lng  float64
}

var (
	// Shared-map URLs embed the coordinates after an @, as in
	// ".../@13.1,100.2,15z". These lines never yield a name.
	mapLinkPattern = regexp.MustCompile(`@(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)`)

	// A bare "lat, lng" pair anywhere in the line. Text before the match
	// becomes the explicit name.
	barePairPattern = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)`)
)

// ParseText extracts at most one candidate per input line. Blank lines and
// lines matching neither pattern are dropped silently; surviving candidates
// keep their input order. The second return value counts the dropped
// non-blank lines.
func ParseText(input string) ([]Candidate, int) {
	var out []Candidate
	skipped := 0

	for _, raw := range strings.Split(input, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		cand, ok := parseLine(line)
		if !ok {
			skipped++
			continue
		}
		out = append(out, cand)
	}

	return out, skipped
}

// parseLine matches the map-link pattern first, then the bare pair.
func parseLine(line string) (Candidate, bool) {
	if m := mapLinkPattern.FindStringSubmatch(line); m != nil {
		lat, lng, ok := parsePair(m[1], m[2])
		if !ok {
			return Candidate{}, false
		}
		return Candidate{Lat: lat, Lng: lng}, true
	}

	idx := barePairPattern.FindStringSubmatchIndex(line)
	if idx == nil {
		return Candidate{}, false
	}
	lat, lng, ok := parsePair(line[idx[2]:idx[3]], line[idx[4]:idx[5]])
	if !ok {
		return Candidate{}, false
	}

	name := strings.TrimRight(line[:idx[0]], ", \t-")
	return Candidate{Name: name, Lat: lat, Lng: lng}, true
}

func parsePair(latStr, lngStr string) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || math.IsNaN(lat) {
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil || math.IsNaN(lng) {
		return 0, 0, false
	}
	return lat, lng, true
}
