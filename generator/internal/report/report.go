// Package report renders the console summary printed after a generation run:
// record count, stress level distribution, WSS statistics and a preview of
// the first rows.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kinitsZ/HybridAI-System/pkg/dataset"
	"github.com/kinitsZ/HybridAI-System/pkg/stress"
	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

// Write prints the report for scored to w. At most previewRows leading rows
// are shown; 0 omits the preview section.
func Write(w io.Writer, scored []types.ScoredRecord, previewRows int) error {
	sum := stress.Summarize(scored)
	ew := &errWriter{w: w}

	ew.printf("Dataset Generated Successfully!\n")
	ew.printf("Total Records: %d\n", sum.Count)

	ew.printf("\nStress Level Distribution:\n")
	tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
	for _, l := range types.Levels {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", l, sum.ByLevel[l], pct(sum.ByLevel[l], sum.Count))
	}
	tw.Flush()

	ew.printf("\nWSS Score Statistics:\n")
	tw = tabwriter.NewWriter(ew, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "count\t%d\t\n", sum.Count)
	fmt.Fprintf(tw, "mean\t%.2f\t\n", sum.Mean)
	fmt.Fprintf(tw, "std\t%.2f\t\n", sum.Std)
	fmt.Fprintf(tw, "min\t%d\t\n", sum.Min)
	fmt.Fprintf(tw, "25%%\t%.2f\t\n", sum.Q1)
	fmt.Fprintf(tw, "50%%\t%.2f\t\n", sum.Median)
	fmt.Fprintf(tw, "75%%\t%.2f\t\n", sum.Q3)
	fmt.Fprintf(tw, "max\t%d\t\n", sum.Max)
	tw.Flush()

	if previewRows > 0 && len(scored) > 0 {
		n := min(previewRows, len(scored))
		ew.printf("\nSample Data (first %d rows):\n", n)
		tw = tabwriter.NewWriter(ew, 0, 0, 1, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, strings.Join(dataset.Header(true), "\t")+"\t")
		for _, r := range scored[:n] {
			cells := []string{r.FacultyID}
			for _, a := range types.AllAttributes {
				cells = append(cells, strconv.Itoa(r.Value(a)))
			}
			cells = append(cells, strconv.Itoa(r.Score), string(r.Level))
			fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
		}
		tw.Flush()
	}
	return ew.err
}

func pct(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}

// errWriter remembers the first write error so the report body can ignore
// individual results.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(e, format, args...)
}
