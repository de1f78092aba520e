package stress

import (
	"math"
	"sort"

	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

// Summary describes the distribution of workload stress scores in a set of
// scored records.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"` // sample standard deviation; 0 for fewer than 2 records
	Min    int     `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    int     `json:"max"`

	// ByLevel counts records per stress level. Every level is present.
	ByLevel map[types.Level]int `json:"by_level"`
}

// Summarize computes descriptive statistics over scored.
// Quartiles use linear interpolation between closest ranks.
func Summarize(scored []types.ScoredRecord) Summary {
	s := Summary{
		Count:   len(scored),
		ByLevel: make(map[types.Level]int, len(types.Levels)),
	}
	for _, l := range types.Levels {
		s.ByLevel[l] = 0
	}
	if len(scored) == 0 {
		return s
	}

	scores := make([]int, len(scored))
	var sum float64
	for i, r := range scored {
		scores[i] = r.Score
		sum += float64(r.Score)
		s.ByLevel[r.Level]++
	}
	sort.Ints(scores)

	s.Mean = sum / float64(len(scores))
	if len(scores) > 1 {
		var sq float64
		for _, v := range scores {
			d := float64(v) - s.Mean
			sq += d * d
		}
		s.Std = math.Sqrt(sq / float64(len(scores)-1))
	}
	s.Min = scores[0]
	s.Max = scores[len(scores)-1]
	s.Q1 = quantile(scores, 0.25)
	s.Median = quantile(scores, 0.5)
	s.Q3 = quantile(scores, 0.75)
	return s
}

// quantile returns the q-th quantile of the sorted slice.
func quantile(sorted []int, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return float64(sorted[lo]) + (float64(sorted[hi])-float64(sorted[lo]))*frac
}
