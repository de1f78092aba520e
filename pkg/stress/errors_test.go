package stress

import (
	"errors"
	"strings"
	"testing"

	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		want       int
		wantReason string // empty = success
	}{
		{"plain integer", "42", 42, ""},
		{"surrounding space", " 7 ", 7, ""},
		{"negative parses; bounds checked later", "-3", -3, ""},
		{"empty", "", 0, ReasonMissing},
		{"blank", "   ", 0, ReasonMissing},
		{"decimal", "3.5", 0, ReasonNotInteger},
		{"word", "many", 0, ReasonNotInteger},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAttribute(types.PrepHours, tc.raw)
			if tc.wantReason == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tc.want {
					t.Errorf("got %d, want %d", got, tc.want)
				}
				return
			}
			var ie *InvalidAttributeError
			if !errors.As(err, &ie) {
				t.Fatalf("err = %v, want *InvalidAttributeError", err)
			}
			if ie.Reason != tc.wantReason {
				t.Errorf("Reason = %q, want %q", ie.Reason, tc.wantReason)
			}
			if ie.Attribute != types.PrepHours {
				t.Errorf("Attribute = %s, want Prep_Hours", ie.Attribute)
			}
		})
	}
}

func TestInvalidAttributeError_Message(t *testing.T) {
	err := &InvalidAttributeError{Attribute: types.SleepHours, Value: "-1", Reason: ReasonOutOfRange, Index: 4}
	msg := err.Error()
	for _, want := range []string{"invalid attribute", "record 4", "Sleep_Hours", "out of range", `"-1"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	noIndex := invalid(types.SleepHours, "", ReasonMissing)
	if strings.Contains(noIndex.Error(), "record") {
		t.Errorf("Error() without index mentions a record: %q", noIndex.Error())
	}
}

func TestWithIndex_DoesNotOverwrite(t *testing.T) {
	err := withIndex(&InvalidAttributeError{Attribute: types.AdminTasks, Index: 2}, 9)
	var ie *InvalidAttributeError
	if !errors.As(err, &ie) || ie.Index != 2 {
		t.Errorf("index overwritten: %v", err)
	}

	other := errors.New("boom")
	if got := withIndex(other, 1); got != other {
		t.Errorf("foreign error rewrapped: %v", got)
	}
}
