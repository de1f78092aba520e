// Package synth generates synthetic faculty workload records.
//
// Distributions approximate a mid-sized department: weighted categorical
// draws for small counts and clamped normal draws for hour totals. Only the
// value ranges are contractual; the shapes are illustrative.
package synth

import (
	"fmt"
	"math/rand"

	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

// Defaults used when the caller does not override them.
const (
	DefaultRecords = 250
	DefaultSeed    = 42
)

// weighted is a discrete distribution over consecutive integers starting at
// first. Weights must sum to 1.
type weighted struct {
	first   int
	weights []float64
}

var (
	subjectsDist  = weighted{first: 1, weights: []float64{0.10, 0.25, 0.30, 0.20, 0.10, 0.05}}
	committeeDist = weighted{first: 0, weights: []float64{0.15, 0.30, 0.25, 0.15, 0.10, 0.05}}
	adminDist     = weighted{first: 0, weights: []float64{0.10, 0.20, 0.25, 0.20, 0.15, 0.07, 0.03}}
	sleepDist     = weighted{first: 4, weights: []float64{0.05, 0.15, 0.30, 0.30, 0.15, 0.05}}
	weekendDist   = weighted{first: 0, weights: []float64{0.15, 0.25, 0.25, 0.20, 0.10, 0.05}}
)

// Generator produces a deterministic stream of records for a given seed.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng  *rand.Rand
	next int // sequence number of the next record, 1-based
}

// New returns a Generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed)), next: 1}
}

// Generate returns the next n records. IDs continue across calls.
func (g *Generator) Generate(n int) []types.WorkloadRecord {
	if n < 0 {
		n = 0
	}
	out := make([]types.WorkloadRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.record())
	}
	return out
}

func (g *Generator) record() types.WorkloadRecord {
	id := fmt.Sprintf("F%03d", g.next)
	g.next++

	subjects := g.choose(subjectsDist)
	return types.WorkloadRecord{
		FacultyID:         id,
		SubjectsHandled:   subjects,
		StudentsTotal:     g.normal(float64(subjects)*25, 15, 20, 200),
		PrepHours:         g.normal(float64(subjects)*2.5, 2, 3, 15),
		ResearchLoadHours: g.normal(5, 2.5, 0, 12),
		CommitteeDuties:   g.choose(committeeDist),
		AdminTasks:        g.choose(adminDist),
		MeetingHours:      g.normal(5, 2, 1, 10),
		SleepHours:        g.choose(sleepDist),
		WeekendWork:       g.choose(weekendDist),
	}
}

// choose draws one value from d.
func (g *Generator) choose(d weighted) int {
	u := g.rng.Float64()
	var cum float64
	for i, w := range d.weights {
		cum += w
		if u < cum {
			return d.first + i
		}
	}
	// Rounding can leave cum just under 1.
	return d.first + len(d.weights) - 1
}

// normal draws from N(mean, sd), truncates toward zero and clamps to [lo, hi].
func (g *Generator) normal(mean, sd float64, lo, hi int) int {
	v := int(g.rng.NormFloat64()*sd + mean)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
