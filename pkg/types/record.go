package types

import "strings"

// Attribute names one of the nine workload attributes. The string value is
// the CSV column header used by generated datasets.
type Attribute string

const (
	SubjectsHandled   Attribute = "Subjects_Handled"
	StudentsTotal     Attribute = "Students_Total"
	PrepHours         Attribute = "Prep_Hours"
	ResearchLoadHours Attribute = "Research_Load_Hours"
	CommitteeDuties   Attribute = "Committee_Duties"
	AdminTasks        Attribute = "Admin_Tasks"
	MeetingHours      Attribute = "Meeting_Hours"
	SleepHours        Attribute = "Sleep_Hours"
	WeekendWork       Attribute = "Weekend_Work"
)

// AllAttributes lists the attributes in dataset column order.
var AllAttributes = []Attribute{
	SubjectsHandled,
	StudentsTotal,
	PrepHours,
	ResearchLoadHours,
	CommitteeDuties,
	AdminTasks,
	MeetingHours,
	SleepHours,
	WeekendWork,
}

// JSONKey returns the lower-cased key used for the attribute in JSON bodies.
func (a Attribute) JSONKey() string {
	return strings.ToLower(string(a))
}

// Level is the three-way stress category derived from a workload stress score.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Levels lists every level from least to most stressed.
var Levels = []Level{LevelLow, LevelMedium, LevelHigh}

// WorkloadRecord is one faculty member's raw workload attributes.
// FacultyID is informational and plays no part in scoring.
type WorkloadRecord struct {
	FacultyID         string `json:"faculty_id,omitempty"`
	SubjectsHandled   int    `json:"subjects_handled"`
	StudentsTotal     int    `json:"students_total"`
	PrepHours         int    `json:"prep_hours"`
	ResearchLoadHours int    `json:"research_load_hours"`
	CommitteeDuties   int    `json:"committee_duties"`
	AdminTasks        int    `json:"admin_tasks"`
	MeetingHours      int    `json:"meeting_hours"`
	SleepHours        int    `json:"sleep_hours"`
	WeekendWork       int    `json:"weekend_work"`
}

// Value returns the value of attribute a. Unknown attributes return 0.
func (r WorkloadRecord) Value(a Attribute) int {
	switch a {
	case SubjectsHandled:
		return r.SubjectsHandled
	case StudentsTotal:
		return r.StudentsTotal
	case PrepHours:
		return r.PrepHours
	case ResearchLoadHours:
		return r.ResearchLoadHours
	case CommitteeDuties:
		return r.CommitteeDuties
	case AdminTasks:
		return r.AdminTasks
	case MeetingHours:
		return r.MeetingHours
	case SleepHours:
		return r.SleepHours
	case WeekendWork:
		return r.WeekendWork
	default:
		return 0
	}
}

// With returns a copy of r with attribute a set to v.
// Unknown attributes leave the copy unchanged.
func (r WorkloadRecord) With(a Attribute, v int) WorkloadRecord {
	switch a {
	case SubjectsHandled:
		r.SubjectsHandled = v
	case StudentsTotal:
		r.StudentsTotal = v
	case PrepHours:
		r.PrepHours = v
	case ResearchLoadHours:
		r.ResearchLoadHours = v
	case CommitteeDuties:
		r.CommitteeDuties = v
	case AdminTasks:
		r.AdminTasks = v
	case MeetingHours:
		r.MeetingHours = v
	case SleepHours:
		r.SleepHours = v
	case WeekendWork:
		r.WeekendWork = v
	}
	return r
}

// ScoredRecord is a WorkloadRecord together with its derived workload
// stress score and level. Both derived fields are a pure function of the
// embedded attributes.
type ScoredRecord struct {
	WorkloadRecord
	Score int   `json:"wss"`
	Level Level `json:"stress_level"`
}
