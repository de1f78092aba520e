package stress

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

// ErrInvalidAttribute is the kind wrapped by every InvalidAttributeError.
var ErrInvalidAttribute = errors.New("invalid attribute")

// Reasons reported by InvalidAttributeError.
const (
	ReasonMissing    = "missing"
	ReasonNotInteger = "not an integer"
	ReasonOutOfRange = "out of range"
)

// InvalidAttributeError reports an attribute that is missing, non-integer or
// outside its sane bounds.
type InvalidAttributeError struct {
	Attribute types.Attribute
	// Value is the offending raw input, or the integer value for range errors.
	Value  string
	Reason string
	// Index is the record position within a batch or file, -1 if not known.
	Index int
}

func (e *InvalidAttributeError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(ErrInvalidAttribute.Error())
	if e.Index >= 0 {
		fmt.Fprintf(&b, ": record %d", e.Index)
	}
	fmt.Fprintf(&b, ": %s %s", e.Attribute, e.Reason)
	if e.Value != "" {
		fmt.Fprintf(&b, " (%q)", e.Value)
	}
	return b.String()
}

func (e *InvalidAttributeError) Unwrap() error { return ErrInvalidAttribute }

func invalid(a types.Attribute, value, reason string) *InvalidAttributeError {
	return &InvalidAttributeError{Attribute: a, Value: value, Reason: reason, Index: -1}
}

// withIndex attaches a record position to err when it is an
// InvalidAttributeError without one.
func withIndex(err error, index int) error {
	var ie *InvalidAttributeError
	if errors.As(err, &ie) && ie.Index < 0 {
		cp := *ie
		cp.Index = index
		return &cp
	}
	return err
}

// ParseAttribute converts raw text for attribute a into an integer.
// Empty input is reported as missing; anything strconv.Atoi rejects,
// including decimals like "3.5", is reported as not an integer. Bounds are
// checked by Validate, not here.
func ParseAttribute(a types.Attribute, raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, invalid(a, "", ReasonMissing)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalid(a, raw, ReasonNotInteger)
	}
	return v, nil
}

// Validate checks every attribute of rec against its rule's sane bounds.
func Validate(rec types.WorkloadRecord) error {
	for _, r := range Rules {
		v := rec.Value(r.Attribute)
		if v < r.Min || v > r.Max {
			return invalid(r.Attribute, strconv.Itoa(v), ReasonOutOfRange)
		}
	}
	return nil
}
