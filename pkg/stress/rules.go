package stress

import "github.com/kinitsZ/HybridAI-System/pkg/types"

// Rule maps one attribute value to a 1/2/3 point contribution using two
// inclusive cut points.
//
// Ascending rules award 1 point for v ≤ One, 2 points for v ≤ Two and 3
// points otherwise. Inverted rules (more is better) award 1 point for
// v ≥ One, 2 points for v ≥ Two and 3 points otherwise.
type Rule struct {
	Attribute types.Attribute `json:"attribute"`
	One       int             `json:"one_point"`
	Two       int             `json:"two_points"`
	Inverted  bool            `json:"inverted"`

	// Min and Max bound the values accepted as sane input.
	Min int `json:"min"`
	Max int `json:"max"`
}

// Points returns the contribution of v under the rule.
func (r Rule) Points(v int) int {
	if r.Inverted {
		switch {
		case v >= r.One:
			return 1
		case v >= r.Two:
			return 2
		default:
			return 3
		}
	}
	switch {
	case v <= r.One:
		return 1
	case v <= r.Two:
		return 2
	default:
		return 3
	}
}

// Rules is the contribution table, ordered as types.AllAttributes.
var Rules = []Rule{
	// ≤2 | 3–4 | ≥5
	{Attribute: types.SubjectsHandled, One: 2, Two: 4, Max: 50},
	// <60 | 60–100 | >100
	{Attribute: types.StudentsTotal, One: 59, Two: 100, Max: 10000},
	// <6 | 6–10 | >10
	{Attribute: types.PrepHours, One: 5, Two: 10, Max: 168},
	// <4 | 4–6 | >6
	{Attribute: types.ResearchLoadHours, One: 3, Two: 6, Max: 168},
	// ≤1 | 2 | ≥3
	{Attribute: types.CommitteeDuties, One: 1, Two: 2, Max: 100},
	// ≤1 | 2–3 | ≥4
	{Attribute: types.AdminTasks, One: 1, Two: 3, Max: 100},
	// <3 | 3–6 | >6
	{Attribute: types.MeetingHours, One: 2, Two: 6, Max: 168},
	// ≥7 | 6 | <6
	{Attribute: types.SleepHours, One: 7, Two: 6, Inverted: true, Max: 24},
	// 0 | 1–2 | ≥3
	{Attribute: types.WeekendWork, One: 0, Two: 2, Max: 31},
}

// RuleFor returns the rule for attribute a.
func RuleFor(a types.Attribute) (Rule, bool) {
	for _, r := range Rules {
		if r.Attribute == a {
			return r, true
		}
	}
	return Rule{}, false
}

// Contribution returns the points awarded to value v of attribute a.
// It does not validate v; unknown attributes contribute 0.
func Contribution(a types.Attribute, v int) int {
	r, ok := RuleFor(a)
	if !ok {
		return 0
	}
	return r.Points(v)
}
