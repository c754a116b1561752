package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSeriesResults outputs a chart series, dispatching based on the output format configured.
// The chart kind only affects the human-readable table; CSV and JSON carry raw values.
func PrintSeriesResults(series schema.ChartSeries, cfg *contract.Config, kind schema.ChartKind) error {
	// Create formatters using helper
	fmtFloat := floatFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForSeries(series, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForSeries(series, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSeriesTable(series, cfg, fmtFloat, kind, w)
		}, "Wrote series table")
	}
	return nil
}

// printJSONResultsForSeries handles opening the file and calling the JSON writer.
func printJSONResultsForSeries(series schema.ChartSeries, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForSeries(w, series)
	}, "Wrote JSON series results")
}

// printCSVResultsForSeries handles opening the file and calling the CSV writer.
func printCSVResultsForSeries(series schema.ChartSeries, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForSeries(csvWriter, series, fmtFloat)
	}, "Wrote CSV series results")
}

// writeSeriesTable generates and writes the human-readable series table.
// Every value sequence gets its own column, aligned by label index.
func writeSeriesTable(series schema.ChartSeries, cfg *contract.Config, fmtFloat func(float64) string, kind schema.ChartKind, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Date"}
	for _, sv := range series.Values {
		headers = append(headers, sv.Name)
	}
	if kind == schema.BarChart && len(series.Values) == 1 {
		headers = append(headers, "Chart")
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxValue := seriesMax(series)
	var data [][]string
	for i, label := range series.Labels {
		row := []string{contract.TruncateLabel(label, getMaxLabelWidth(cfg))}
		for _, sv := range series.Values {
			row = append(row, fmtFloat(sv.Values[i]))
		}
		if kind == schema.BarChart && len(series.Values) == 1 {
			row = append(row, renderBar(series.Values[0].Values[i], maxValue, getBarWidth(cfg)))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(writer, "%s series with %d points (%s chart)\n",
		series.Metric.DisplayName(), len(series.Labels), kind)
	return nil
}

// seriesMax returns the largest value across all value sequences.
func seriesMax(series schema.ChartSeries) float64 {
	var maxValue float64
	for _, sv := range series.Values {
		for _, v := range sv.Values {
			if v > maxValue {
				maxValue = v
			}
		}
	}
	return maxValue
}

// renderBar scales a value into an ASCII bar of at most width characters.
func renderBar(value, maxValue float64, width int) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := int(value / maxValue * float64(width))
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}
