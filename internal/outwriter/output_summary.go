package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSummaryResults outputs the metric change summaries, dispatching based on the output format configured.
func PrintSummaryResults(changes []schema.MetricChange, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat := floatFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForSummary(changes, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForSummary(changes, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(changes, cfg, fmtFloat, duration, w)
		}, "Wrote summary table")
	}
	return nil
}

// printJSONResultsForSummary handles opening the file and calling the JSON writer.
func printJSONResultsForSummary(changes []schema.MetricChange, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForSummary(w, changes)
	}, "Wrote JSON summary results")
}

// printCSVResultsForSummary handles opening the file and calling the CSV writer.
func printCSVResultsForSummary(changes []schema.MetricChange, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForSummary(csvWriter, changes, fmtFloat)
	}, "Wrote CSV summary results")
}

// writeSummaryTable generates and writes the human-readable summary table.
func writeSummaryTable(changes []schema.MetricChange, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Metric", "Baseline", "Current", "Delta", "Change %", "Trend"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for _, c := range changes {
		trend := contract.GetPlainTrendLabel(c.Direction)
		if cfg.UseColors {
			trend = contract.GetColorTrendLabel(c.Direction)
		}
		row := []string{
			c.Metric.DisplayName(),
			schema.GroupInt(c.Baseline),
			schema.GroupInt(c.Current),
			formatDelta(c.Delta),
			fmtFloat(c.PercentDelta) + "%",
			trend,
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

	fmt.Fprintf(writer, "Range %s to %s loaded in %v. Cache backend: %s\n",
		cfg.StartDate, cfg.EndDate, duration, cfg.CacheBackend)
	return nil
}

// formatDelta renders a delta with an explicit sign for non-negative values.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + schema.GroupInt(delta)
	}
	return schema.GroupInt(delta)
}
