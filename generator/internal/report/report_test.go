package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

func sample() []types.ScoredRecord {
	return []types.ScoredRecord{
		{WorkloadRecord: types.WorkloadRecord{FacultyID: "F001", SubjectsHandled: 1, StudentsTotal: 20, PrepHours: 3, MeetingHours: 1, SleepHours: 9}, Score: 9, Level: types.LevelLow},
		{WorkloadRecord: types.WorkloadRecord{FacultyID: "F002", SubjectsHandled: 3, StudentsTotal: 70, PrepHours: 7}, Score: 18, Level: types.LevelMedium},
		{WorkloadRecord: types.WorkloadRecord{FacultyID: "F003", SubjectsHandled: 6, StudentsTotal: 200, PrepHours: 15}, Score: 27, Level: types.LevelHigh},
		{WorkloadRecord: types.WorkloadRecord{FacultyID: "F004", SubjectsHandled: 4, StudentsTotal: 90, PrepHours: 9}, Score: 18, Level: types.LevelMedium},
	}
}

func TestWrite_Sections(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(), 2); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Total Records: 4",
		"Stress Level Distribution:",
		"Medium  2  50.0%",
		"WSS Score Statistics:",
		"mean",
		"18.00",
		"Sample Data (first 2 rows):",
		"F001",
		"F002",
		"Stress_Level",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "F003") {
		t.Errorf("preview shows more than 2 rows:\n%s", out)
	}
}

func TestWrite_NoPreview(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(), 0); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.Contains(buf.String(), "Sample Data") {
		t.Errorf("preview printed with previewRows=0")
	}
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, 10); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Total Records: 0") || !strings.Contains(out, "0.0%") {
		t.Errorf("empty report:\n%s", out)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_PropagatesWriteError(t *testing.T) {
	if err := Write(failWriter{}, sample(), 1); err == nil {
		t.Fatal("expected write error, got nil")
	}
}
