package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/averykuo/ghpulse/schema"
)

// writeJSONResultsForSeries marshals the schema.ChartSeries to JSON and writes it.
func writeJSONResultsForSeries(w io.Writer, series schema.ChartSeries) error {
	return writeJSON(w, series)
}

// writeCSVResultsForSeries writes the schema.ChartSeries data to a CSV writer.
// Each row carries the label plus one column per value sequence.
func writeCSVResultsForSeries(w *csv.Writer, series schema.ChartSeries, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{"date"}
	for _, sv := range series.Values {
		header = append(header, sv.Name)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for i, label := range series.Labels {
		row := []string{label}
		for _, sv := range series.Values {
			row = append(row, fmtFloat(sv.Values[i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
