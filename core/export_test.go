package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExportFilename(t *testing.T) {
	at := time.Date(2024, time.January, 31, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "ghpulse-export-20240131-150405.csv", ExportFilename(schema.CSVExport, at))
	assert.Equal(t, "ghpulse-export-20240131-150405.json", ExportFilename(schema.JSONExport, at))
	assert.Equal(t, "ghpulse-export-20240131-150405.parquet", ExportFilename(schema.ParquetExport, at))
}

func TestRunExportWritesFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "export.csv")
	cfg := &contract.Config{
		ExportFormat: schema.CSVExport,
		OutputFile:   outputFile,
		StartDate:    schema.NewCalDate(2024, time.January, 1),
		EndDate:      schema.NewCalDate(2024, time.January, 31),
	}

	client := &contract.MockAnalyticsClient{}
	client.On("ExportRange", mock.Anything, schema.CSVExport, cfg.StartDate, cfg.EndDate).
		Return([]byte("date,stars\n2024-01-01,100\n"), nil)

	filename, err := RunExport(context.Background(), client, cfg)
	require.NoError(t, err)
	assert.Equal(t, outputFile, filename)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-01-01,100")
}

func TestRunExportClientError(t *testing.T) {
	cfg := &contract.Config{
		ExportFormat: schema.JSONExport,
		StartDate:    schema.NewCalDate(2024, time.January, 1),
		EndDate:      schema.NewCalDate(2024, time.January, 31),
	}

	client := &contract.MockAnalyticsClient{}
	client.On("ExportRange", mock.Anything, schema.JSONExport, cfg.StartDate, cfg.EndDate).
		Return([]byte(nil), contract.ErrExportFailed)

	_, err := RunExport(context.Background(), client, cfg)
	assert.ErrorIs(t, err, contract.ErrExportFailed)
}

func TestRunExportDefaultFilename(t *testing.T) {
	// Run from a temp working directory so the generated file lands there.
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWD) }()

	cfg := &contract.Config{
		ExportFormat: schema.CSVExport,
		StartDate:    schema.NewCalDate(2024, time.January, 1),
		EndDate:      schema.NewCalDate(2024, time.January, 31),
	}

	client := &contract.MockAnalyticsClient{}
	client.On("ExportRange", mock.Anything, schema.CSVExport, cfg.StartDate, cfg.EndDate).
		Return([]byte("payload"), nil)

	filename, err := RunExport(context.Background(), client, cfg)
	require.NoError(t, err)
	assert.Contains(t, filename, "ghpulse-export-")
	assert.Contains(t, filename, ".csv")

	_, err = os.Stat(filename)
	assert.NoError(t, err)
}

func TestRunExportParquetBuildsLocally(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "export.parquet")
	cfg := &contract.Config{
		ExportFormat: schema.ParquetExport,
		OutputFile:   outputFile,
		StartDate:    schema.NewCalDate(2024, time.January, 1),
		EndDate:      schema.NewCalDate(2024, time.January, 31),
	}

	snapshots := []schema.Snapshot{
		{Date: schema.NewCalDate(2024, time.January, 1), Stars: 100},
		{Date: schema.NewCalDate(2024, time.January, 31), Stars: 120},
	}

	client := &contract.MockAnalyticsClient{}
	client.On("FetchSnapshots", mock.Anything, cfg.StartDate, cfg.EndDate).
		Return(snapshots, nil)

	filename, err := RunExport(context.Background(), client, cfg)
	require.NoError(t, err)
	assert.Equal(t, outputFile, filename)

	// The parquet branch never calls the server-rendered export endpoint.
	client.AssertNotCalled(t, "ExportRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
