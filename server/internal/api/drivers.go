package api

import (
	"fmt"

	"github.com/kinitsZ/HybridAI-System/pkg/stress"
	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

// Driver is one human-readable note about an attribute that pushed a score up.
type Driver struct {
	// Key is a stable machine-readable identifier (used for dedup/ordering).
	Key string `json:"key"`
	// Level is "high" (3 points) or "elevated" (2 points).
	Level string `json:"level"`
	// Title is a short label (≤ 5 words).
	Title string `json:"title"`
	// Detail is the full explanation.
	Detail string `json:"detail"`

	Attribute types.Attribute `json:"attribute"`
	Value     int             `json:"value"`
	Points    int             `json:"points"`
}

var driverTitles = map[types.Attribute]string{
	types.SubjectsHandled:   "Many subjects handled",
	types.StudentsTotal:     "Large student load",
	types.PrepHours:         "Long preparation hours",
	types.ResearchLoadHours: "Heavy research load",
	types.CommitteeDuties:   "Many committee duties",
	types.AdminTasks:        "Many administrative tasks",
	types.MeetingHours:      "Long meeting hours",
	types.SleepHours:        "Short sleep",
	types.WeekendWork:       "Frequent weekend work",
}

// computeDrivers lists attributes that scored above the minimum.
// High drivers come first, then elevated; ties keep attribute order.
func computeDrivers(rec types.WorkloadRecord, contributions []int) []Driver {
	var high, elevated []Driver
	for i, r := range stress.Rules {
		if i >= len(contributions) {
			break
		}
		p := contributions[i]
		if p < 2 {
			continue
		}
		v := rec.Value(r.Attribute)
		d := Driver{
			Key:       r.Attribute.JSONKey(),
			Title:     driverTitles[r.Attribute],
			Detail:    driverDetail(r, v, p),
			Attribute: r.Attribute,
			Value:     v,
			Points:    p,
		}
		if p == 3 {
			d.Level = "high"
			high = append(high, d)
		} else {
			d.Level = "elevated"
			elevated = append(elevated, d)
		}
	}
	return append(high, elevated...)
}

// driverDetail explains which band v falls into and where the lower band ends.
func driverDetail(r stress.Rule, v, points int) string {
	if r.Inverted {
		if points == 3 {
			return fmt.Sprintf("%s is %d, below %d, which adds the maximum 3 points. At %d or more it adds 1 point.",
				r.Attribute, v, r.Two, r.One)
		}
		return fmt.Sprintf("%s is %d, which adds 2 points. At %d or more it adds 1 point.",
			r.Attribute, v, r.One)
	}
	if points == 3 {
		return fmt.Sprintf("%s is %d, above %d, which adds the maximum 3 points. At %d or less it adds 2 points.",
			r.Attribute, v, r.Two, r.Two)
	}
	return fmt.Sprintf("%s is %d, which adds 2 points. At %d or less it adds 1 point.",
		r.Attribute, v, r.One)
}
