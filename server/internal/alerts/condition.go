package alerts

import (
	"strconv"
	"strings"

	"github.com/kinitsZ/HybridAI-System/pkg/stress"
	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

// evalCondition evaluates a rule condition string against a dataset summary.
//
// Supported expressions (field operator value):
//
//	high_pct > 30
//	medium_pct >= 50
//	low_pct < 10
//	mean_wss > 19
//	median_wss >= 18
//	max_wss == 27
//	count < 100
//
// Returns (fires bool, triggering value float64).
// Returns (false, 0) if the expression cannot be parsed or the field is unknown.
func evalCondition(cond string, s stress.Summary) (bool, float64) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return false, 0
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	v, ok := summaryField(field, s)
	if !ok {
		return false, 0
	}
	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return false, 0
	}
	return compareFloat(v, op, threshold), v
}

// summaryField maps a field name to its value in the summary.
func summaryField(field string, s stress.Summary) (float64, bool) {
	switch field {
	case "high_pct":
		return levelPct(s, types.LevelHigh), true
	case "medium_pct":
		return levelPct(s, types.LevelMedium), true
	case "low_pct":
		return levelPct(s, types.LevelLow), true
	case "mean_wss":
		return s.Mean, true
	case "median_wss":
		return s.Median, true
	case "max_wss":
		return float64(s.Max), true
	case "count":
		return float64(s.Count), true
	default:
		return 0, false
	}
}

// levelPct is the share of records at level l, 0-100. Empty summaries give 0.
func levelPct(s stress.Summary, l types.Level) float64 {
	if s.Count == 0 {
		return 0
	}
	return 100 * float64(s.ByLevel[l]) / float64(s.Count)
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	default:
		return false
	}
}
