// Package dataset reads and writes workload records as CSV.
//
// The labeled layout is Faculty_ID, the nine attribute columns, WSS and
// Stress_Level. The unlabeled layout drops the last two columns and is the
// input format accepted by ReadRecords.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kinitsZ/HybridAI-System/pkg/stress"
	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

// Column headers outside the attribute set.
const (
	ColFacultyID   = "Faculty_ID"
	ColScore       = "WSS"
	ColStressLevel = "Stress_Level"
)

// Default file names written by WriteFiles.
const (
	DefaultLabeledFile   = "dataset_with_labels.csv"
	DefaultUnlabeledFile = "dataset.csv"
)

// Header returns the CSV header row, with the derived columns when labeled.
func Header(labeled bool) []string {
	h := make([]string, 0, len(types.AllAttributes)+3)
	h = append(h, ColFacultyID)
	for _, a := range types.AllAttributes {
		h = append(h, string(a))
	}
	if labeled {
		h = append(h, ColScore, ColStressLevel)
	}
	return h
}

func row(r types.WorkloadRecord) []string {
	out := make([]string, 0, len(types.AllAttributes)+3)
	out = append(out, r.FacultyID)
	for _, a := range types.AllAttributes {
		out = append(out, strconv.Itoa(r.Value(a)))
	}
	return out
}

// WriteLabeled writes scored records including the WSS and Stress_Level columns.
func WriteLabeled(w io.Writer, records []types.ScoredRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(true)); err != nil {
		return fmt.Errorf("dataset: write header: %w", err)
	}
	for i, r := range records {
		rec := append(row(r.WorkloadRecord), strconv.Itoa(r.Score), string(r.Level))
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("dataset: write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("dataset: flush: %w", err)
	}
	return nil
}

// WriteUnlabeled writes records in the input format, without derived columns.
func WriteUnlabeled(w io.Writer, records []types.WorkloadRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(false)); err != nil {
		return fmt.Errorf("dataset: write header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("dataset: write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("dataset: flush: %w", err)
	}
	return nil
}

// WriteFiles writes the labeled and unlabeled datasets into dir and returns
// the paths written. dir is created if needed.
func WriteFiles(dir, labeledName, unlabeledName string, scored []types.ScoredRecord) (labeledPath, unlabeledPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("dataset: create output dir: %w", err)
	}

	labeledPath = filepath.Join(dir, labeledName)
	if err := writeFile(labeledPath, func(w io.Writer) error { return WriteLabeled(w, scored) }); err != nil {
		return "", "", err
	}

	plain := make([]types.WorkloadRecord, len(scored))
	for i, r := range scored {
		plain[i] = r.WorkloadRecord
	}
	unlabeledPath = filepath.Join(dir, unlabeledName)
	if err := writeFile(unlabeledPath, func(w io.Writer) error { return WriteUnlabeled(w, plain) }); err != nil {
		return "", "", err
	}
	return labeledPath, unlabeledPath, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: create %q: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("dataset: close %q: %w", path, err)
	}
	return nil
}

// ReadRecords parses CSV with a header row into workload records.
//
// Columns are located by header name, so order does not matter. Faculty_ID
// is optional and unknown columns (including WSS and Stress_Level) are
// ignored. A missing attribute column, an empty cell or a non-integer cell
// yields a *stress.InvalidAttributeError whose Index is the zero-based data
// row. Bounds are not checked here; scoring validates them.
func ReadRecords(r io.Reader) ([]types.WorkloadRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []types.WorkloadRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, a := range types.AllAttributes {
		if _, ok := cols[string(a)]; !ok {
			return nil, &stress.InvalidAttributeError{Attribute: a, Reason: stress.ReasonMissing, Index: -1}
		}
	}
	idCol, hasID := cols[ColFacultyID]

	out := []types.WorkloadRecord{}
	for idx := 0; ; idx++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read row %d: %w", idx, err)
		}

		var rec types.WorkloadRecord
		if hasID && idCol < len(fields) {
			rec.FacultyID = strings.TrimSpace(fields[idCol])
		}
		for _, a := range types.AllAttributes {
			var raw string
			if c := cols[string(a)]; c < len(fields) {
				raw = fields[c]
			}
			v, err := stress.ParseAttribute(a, raw)
			if err != nil {
				var ie *stress.InvalidAttributeError
				if errors.As(err, &ie) {
					ie.Index = idx
				}
				return nil, err
			}
			rec = rec.With(a, v)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReadFile opens path and parses it with ReadRecords.
func ReadFile(path string) ([]types.WorkloadRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()
	return ReadRecords(f)
}
