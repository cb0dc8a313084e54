// Package label assigns display labels to imported points: explicit names
// verbatim, province names with per-batch numbering, or a coordinate
// fallback.
package label

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Input describes one point awaiting a label.
type Input struct {
	ExplicitName string
	Province     string
	Lat          float64
	Lng          float64
}

// Allocator numbers province labels within a single import batch. Counters
// start fresh per allocator; once assigned, labels are frozen data on the
// point and never recomputed.
type Allocator struct {
	counts map[string]int
}

// NewAllocator returns an allocator with empty counters.
func NewAllocator() *Allocator {
	return &Allocator{counts: make(map[string]int)}
}

// Next returns the final label for one input. Inputs must arrive in batch
// order. An explicit name is used verbatim and touches no counter. The first
// occurrence of a province gets the bare name, later ones a numeric suffix
// starting at 2. Counter keys are NFC-normalized so spelling variants of the
// same province share one sequence.
func (a *Allocator) Next(in Input) string {
	if in.ExplicitName != "" {
		return in.ExplicitName
	}
	if in.Province == "" {
		return Fallback(in.Lat, in.Lng)
	}

	key := norm.NFC.String(in.Province)
	count := a.counts[key]
	a.counts[key]++
	if count == 0 {
		return in.Province
	}
	return fmt.Sprintf("%s %d", in.Province, count+1)
}

// Allocate labels a whole batch in input order with fresh counters.
func Allocate(inputs []Input) []string {
	a := NewAllocator()
	out := make([]string, len(inputs))
	for i, in := range inputs {
		out[i] = a.Next(in)
	}
	return out
}

// Fallback is the label for a point with no explicit name and no resolved
// province: the raw coordinates at fixed precision.
func Fallback(lat, lng float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lng)
}
