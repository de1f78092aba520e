package stress

import "github.com/kinitsZ/HybridAI-System/pkg/types"

// Level cut-offs. Scores up to LowMax are Low, up to MediumMax are Medium,
// anything above is High.
const (
	LowMax    = 14
	MediumMax = 20
)

// Bounds of the workload stress score.
const (
	MinScore = 9
	MaxScore = 27
)

// Result is the output of the workload stress score calculation.
type Result struct {
	// Score is the sum of Contributions, in the range MinScore–MaxScore.
	Score int

	// Level is the stress level derived from Score.
	Level types.Level

	// Contributions holds the 1–3 points awarded per attribute, ordered as
	// types.AllAttributes. Useful for per-attribute breakdowns.
	Contributions []int
}

// Score validates rec and calculates its workload stress score.
func Score(rec types.WorkloadRecord) (Result, error) {
	if err := Validate(rec); err != nil {
		return Result{}, err
	}

	contributions := make([]int, len(Rules))
	total := 0
	for i, r := range Rules {
		p := r.Points(rec.Value(r.Attribute))
		contributions[i] = p
		total += p
	}

	return Result{
		Score:         total,
		Level:         LevelFor(total),
		Contributions: contributions,
	}, nil
}

// Classify scores rec and returns it with the derived fields attached.
func Classify(rec types.WorkloadRecord) (types.ScoredRecord, error) {
	res, err := Score(rec)
	if err != nil {
		return types.ScoredRecord{}, err
	}
	return types.ScoredRecord{WorkloadRecord: rec, Score: res.Score, Level: res.Level}, nil
}

// LevelFor maps a workload stress score to its stress level.
func LevelFor(score int) types.Level {
	switch {
	case score <= LowMax:
		return types.LevelLow
	case score <= MediumMax:
		return types.LevelMedium
	default:
		return types.LevelHigh
	}
}
