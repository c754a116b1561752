package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/averykuo/ghpulse/internal/contract"
)

// writeWithFile routes output to cfg's output file when one is set, or to
// stdout otherwise. The writer callback receives the destination.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	dest, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if dest != os.Stdout {
		defer func() { _ = dest.Close() }()
	}

	if err := writer(dest); err != nil {
		return err
	}

	// Confirmation goes to stderr so it never pollutes piped output.
	if dest != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON encodes data as indented JSON.
func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader writes the header row, hands the writer to writeRows,
// and flushes.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	return writeRows(csvWriter)
}

// floatFormatter returns a closure that renders floats at the configured
// precision, shared by every numeric column.
func floatFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}
