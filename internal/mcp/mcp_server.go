// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the ghpulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"GitHub Pulse Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_metric_summary ---
	s.AddTool(mcp.NewTool("get_metric_summary",
		mcp.WithDescription("Load daily account snapshots for a date range and summarize the change of each tracked metric."),
		mcp.WithString("start", mcp.Description("Range start date (YYYY-MM-DD or relative like '30 days ago'). Defaults to the configured range.")),
		mcp.WithString("end", mcp.Description("Range end date (YYYY-MM-DD). Defaults to today.")),
	), h.handleGetMetricSummary)

	// --- 2. Tool: get_series ---
	s.AddTool(mcp.NewTool("get_series",
		mcp.WithDescription("Build the chart series for one metric view over a date range."),
		mcp.WithString("metric", mcp.Description("Metric view (stars, repos, commits, contributions, followers). Defaults to 'stars'."), mcp.Enum("stars", "repos", "commits", "contributions", "followers")),
		mcp.WithString("start", mcp.Description("Range start date (YYYY-MM-DD or relative).")),
		mcp.WithString("end", mcp.Description("Range end date (YYYY-MM-DD).")),
	), h.handleGetSeries)

	// --- 3. Tool: get_languages ---
	s.AddTool(mcp.NewTool("get_languages",
		mcp.WithDescription("Return the language composition of the latest snapshot in a date range."),
		mcp.WithString("start", mcp.Description("Range start date (YYYY-MM-DD or relative).")),
		mcp.WithString("end", mcp.Description("Range end date (YYYY-MM-DD).")),
	), h.handleGetLanguages)

	// --- 4. Tool: export_range ---
	s.AddTool(mcp.NewTool("export_range",
		mcp.WithDescription("Export the raw snapshots in a date range to a file. CSV and JSON are rendered by the server; parquet is built locally."),
		mcp.WithString("format", mcp.Description("Export format (csv, json, parquet). Defaults to 'csv'."), mcp.Enum("csv", "json", "parquet")),
		mcp.WithString("start", mcp.Description("Range start date (YYYY-MM-DD or relative).")),
		mcp.WithString("end", mcp.Description("Range end date (YYYY-MM-DD).")),
		mcp.WithString("output_file", mcp.Description("Destination path. Defaults to a timestamped filename.")),
	), h.handleExportRange)

	return s
}

// StartMCPServer starts the ghpulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
