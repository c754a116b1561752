package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"
)

// writeJSONResultsForSummary marshals the metric changes to JSON and writes them.
func writeJSONResultsForSummary(w io.Writer, changes []schema.MetricChange) error {
	return writeJSON(w, changes)
}

// writeCSVResultsForSummary writes the metric change data to a CSV writer.
func writeCSVResultsForSummary(w *csv.Writer, changes []schema.MetricChange, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"metric",
		"baseline",
		"current",
		"delta",
		"percent_delta",
		"trend",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, c := range changes {
		row := []string{
			string(c.Metric),
			strconv.Itoa(c.Baseline),
			strconv.Itoa(c.Current),
			strconv.Itoa(c.Delta),
			fmtFloat(c.PercentDelta),
			contract.GetPlainTrendLabel(c.Direction),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
