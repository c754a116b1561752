package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintLanguageResults outputs the language composition, dispatching based on the output format configured.
// A language series is categorical: labels are language names and the single
// value sequence holds byte weights from the latest snapshot.
func PrintLanguageResults(series schema.ChartSeries, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat := floatFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForLanguages(series, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForLanguages(series, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLanguageTable(series, cfg, fmtFloat, w)
		}, "Wrote language table")
	}
	return nil
}

// printJSONResultsForLanguages handles opening the file and calling the JSON writer.
func printJSONResultsForLanguages(series schema.ChartSeries, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, series)
	}, "Wrote JSON language results")
}

// printCSVResultsForLanguages handles opening the file and calling the CSV writer.
func printCSVResultsForLanguages(series schema.ChartSeries, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, []string{"language", "bytes", "share_pct"}, func(csvWriter *csv.Writer) error {
			weights, total := languageWeights(series)
			for i, label := range series.Labels {
				row := []string{
					label,
					fmt.Sprintf("%.0f", weights[i]),
					fmtFloat(sharePct(weights[i], total)),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV language results")
}

// writeLanguageTable generates and writes the human-readable language table.
func writeLanguageTable(series schema.ChartSeries, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Language", "Bytes", "Share %", "Chart"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	weights, total := languageWeights(series)
	maxWeight := seriesMax(series)

	var data [][]string
	for i, label := range series.Labels {
		row := []string{
			contract.TruncateLabel(label, getMaxLabelWidth(cfg)),
			schema.GroupInt(int(weights[i])),
			fmtFloat(sharePct(weights[i], total)),
			renderBar(weights[i], maxWeight, getBarWidth(cfg)),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(writer, "%d languages from the latest snapshot in range\n", len(series.Labels))
	return nil
}

// languageWeights returns the weight sequence and its total.
func languageWeights(series schema.ChartSeries) ([]float64, float64) {
	if len(series.Values) == 0 {
		return nil, 0
	}
	weights := series.Values[0].Values
	var total float64
	for _, w := range weights {
		total += w
	}
	return weights, total
}

// sharePct converts a weight into a percentage of the total.
func sharePct(weight, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return weight / total * 100
}
