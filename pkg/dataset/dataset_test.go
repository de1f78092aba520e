package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kinitsZ/HybridAI-System/pkg/stress"
	"github.com/kinitsZ/HybridAI-System/pkg/synth"
	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

const unlabeledHeader = "Faculty_ID,Subjects_Handled,Students_Total,Prep_Hours,Research_Load_Hours,Committee_Duties,Admin_Tasks,Meeting_Hours,Sleep_Hours,Weekend_Work"

func TestWriteLabeled(t *testing.T) {
	rec := types.WorkloadRecord{
		FacultyID: "F001", SubjectsHandled: 3, StudentsTotal: 70, PrepHours: 7,
		ResearchLoadHours: 5, CommitteeDuties: 2, AdminTasks: 2, MeetingHours: 4,
		SleepHours: 6, WeekendWork: 1,
	}
	sr, err := stress.Classify(rec)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteLabeled(&buf, []types.ScoredRecord{sr}); err != nil {
		t.Fatalf("WriteLabeled: %v", err)
	}

	want := unlabeledHeader + ",WSS,Stress_Level\n" + "F001,3,70,7,5,2,2,4,6,1,18,Medium\n"
	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteUnlabeled_HeaderOnlyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteUnlabeled(&buf, nil); err != nil {
		t.Fatalf("WriteUnlabeled: %v", err)
	}
	if buf.String() != unlabeledHeader+"\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestReadRecords_RoundTripsGeneratedData(t *testing.T) {
	in := synth.New(synth.DefaultSeed).Generate(40)

	var buf bytes.Buffer
	if err := WriteUnlabeled(&buf, in); err != nil {
		t.Fatalf("WriteUnlabeled: %v", err)
	}
	got, err := ReadRecords(&buf)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("read %d records, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], in[i])
		}
	}
}

func TestReadRecords_LabeledInputIgnoresDerivedColumns(t *testing.T) {
	csv := unlabeledHeader + ",WSS,Stress_Level\nF009,1,20,3,0,0,0,1,9,0,27,High\n"
	got, err := ReadRecords(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	sr, err := stress.Classify(got[0])
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	// The stale label in the file has no influence on the recomputed score.
	if sr.Score != 9 || sr.Level != types.LevelLow {
		t.Errorf("rescored = (%d, %s), want (9, Low)", sr.Score, sr.Level)
	}
}

func TestReadRecords_ReorderedColumnsWithoutID(t *testing.T) {
	csv := "Weekend_Work,Sleep_Hours,Meeting_Hours,Admin_Tasks,Committee_Duties,Research_Load_Hours,Prep_Hours,Students_Total,Subjects_Handled\n" +
		"5,4,10,6,5,12,15,200,6\n"
	got, err := ReadRecords(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	want := types.WorkloadRecord{
		SubjectsHandled: 6, StudentsTotal: 200, PrepHours: 15, ResearchLoadHours: 12,
		CommitteeDuties: 5, AdminTasks: 6, MeetingHours: 10, SleepHours: 4, WeekendWork: 5,
	}
	if len(got) != 1 || got[0] != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestReadRecords_Empty(t *testing.T) {
	got, err := ReadRecords(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadRecords(empty): %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty slice", got)
	}
}

func TestReadRecords_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		csv        string
		wantAttr   types.Attribute
		wantReason string
		wantIndex  int
	}{
		{
			name:       "missing column",
			csv:        "Faculty_ID,Subjects_Handled\nF001,3\n",
			wantAttr:   types.StudentsTotal,
			wantReason: stress.ReasonMissing,
			wantIndex:  -1,
		},
		{
			name:       "decimal value",
			csv:        unlabeledHeader + "\nF001,3,70,7,5,2,2,4,6,1\nF002,3,70,7.5,5,2,2,4,6,1\n",
			wantAttr:   types.PrepHours,
			wantReason: stress.ReasonNotInteger,
			wantIndex:  1,
		},
		{
			name:       "empty cell",
			csv:        unlabeledHeader + "\nF001,3,70,7,5,2,2,4,,1\n",
			wantAttr:   types.SleepHours,
			wantReason: stress.ReasonMissing,
			wantIndex:  0,
		},
		{
			name:       "short row",
			csv:        unlabeledHeader + "\nF001,3,70,7,5,2,2,4,6\n",
			wantAttr:   types.WeekendWork,
			wantReason: stress.ReasonMissing,
			wantIndex:  0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadRecords(strings.NewReader(tc.csv))
			var ie *stress.InvalidAttributeError
			if !errors.As(err, &ie) {
				t.Fatalf("err = %v, want *stress.InvalidAttributeError", err)
			}
			if ie.Attribute != tc.wantAttr || ie.Reason != tc.wantReason || ie.Index != tc.wantIndex {
				t.Errorf("got (%s, %q, %d), want (%s, %q, %d)",
					ie.Attribute, ie.Reason, ie.Index, tc.wantAttr, tc.wantReason, tc.wantIndex)
			}
		})
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	scored, err := stress.ScoreBatch(synth.New(3).Generate(5))
	if err != nil {
		t.Fatalf("ScoreBatch: %v", err)
	}

	lp, up, err := WriteFiles(dir, DefaultLabeledFile, DefaultUnlabeledFile, scored)
	if err != nil {
		t.Fatalf("WriteFiles: %v", err)
	}

	labeled, err := os.ReadFile(lp)
	if err != nil {
		t.Fatalf("read labeled: %v", err)
	}
	if !strings.HasPrefix(string(labeled), unlabeledHeader+",WSS,Stress_Level\n") {
		t.Errorf("labeled header wrong: %q", strings.SplitN(string(labeled), "\n", 2)[0])
	}

	back, err := ReadFile(up)
	if err != nil {
		t.Fatalf("ReadFile(unlabeled): %v", err)
	}
	if len(back) != len(scored) {
		t.Fatalf("unlabeled rows = %d, want %d", len(back), len(scored))
	}
	for i := range back {
		if back[i] != scored[i].WorkloadRecord {
			t.Errorf("row %d: got %+v, want %+v", i, back[i], scored[i].WorkloadRecord)
		}
	}
}
