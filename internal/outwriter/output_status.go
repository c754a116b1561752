package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintProfile prints the authenticated account identity.
func PrintProfile(profile schema.Profile, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, profile)
		}, "Wrote JSON profile")
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		fmt.Fprintf(w, "Login: %s\n", profile.Login)
		if profile.Name != "" {
			fmt.Fprintf(w, "Name: %s\n", profile.Name)
		}
		if profile.Plan != "" {
			fmt.Fprintf(w, "Plan: %s\n", profile.Plan)
		}
		return nil
	}, "Wrote profile")
}

// PrintLoadRuns outputs recorded load runs, dispatching based on the output format configured.
func PrintLoadRuns(runs []schema.LoadRun, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON load history")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"id", "issued_at", "completed_at", "start", "end", "snapshots", "outcome"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, run := range runs {
					row := []string{
						strconv.FormatInt(run.ID, 10),
						run.IssuedAt.Format("2006-01-02 15:04:05"),
						run.CompletedAt.Format("2006-01-02 15:04:05"),
						run.StartDate,
						run.EndDate,
						strconv.Itoa(run.SnapshotCount),
						string(run.Outcome),
					}
					if err := csvWriter.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV load history")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLoadRunsTable(runs, w)
		}, "Wrote load history table")
	}
}

// writeLoadRunsTable generates and writes the human-readable load history table.
func writeLoadRunsTable(runs []schema.LoadRun, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"ID", "Completed", "Range", "Snapshots", "Outcome"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, run := range runs {
		row := []string{
			strconv.FormatInt(run.ID, 10),
			run.CompletedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%s to %s", run.StartDate, run.EndDate),
			strconv.Itoa(run.SnapshotCount),
			string(run.Outcome),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(writer, "%d load runs recorded\n", len(runs))
	return nil
}

// PrintEmptyState prints the canonical empty-result notice. An empty range is
// a valid outcome, not an error.
func PrintEmptyState(cfg *contract.Config) {
	fmt.Printf("No snapshots found between %s and %s.\n", cfg.StartDate, cfg.EndDate)
	fmt.Println("The account may have no recorded activity in this range.")
}
