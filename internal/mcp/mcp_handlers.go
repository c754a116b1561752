package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/averykuo/ghpulse/core"
	"github.com/averykuo/ghpulse/internal/apiclient"
	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// newExportClient builds a plain client for export calls, which always pass
// through to the backend.
func newExportClient(cfg *contract.Config) contract.AnalyticsClient {
	return apiclient.New(cfg.APIURL, cfg.Token)
}

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// cloneWithRange clones the base config and applies optional start/end
// parameters from the request.
func (h *toolHandler) cloneWithRange(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	now := time.Now()

	if s := request.GetString("start", ""); s != "" {
		start, err := contract.ParseDateInput(s, now)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %w", err)
		}
		cfg.StartDate = start
	}
	if e := request.GetString("end", ""); e != "" {
		end, err := contract.ParseDateInput(e, now)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %w", err)
		}
		cfg.EndDate = end
	}
	if cfg.EndDate.Before(cfg.StartDate) {
		return nil, fmt.Errorf("end date %s is before start date %s", cfg.EndDate, cfg.StartDate)
	}
	return cfg, nil
}

func (h *toolHandler) handleGetMetricSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.cloneWithRange(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid range parameters: %v", err)), nil
	}

	changes, err := core.GetMetricSummary(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(changes, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.cloneWithRange(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid range parameters: %v", err)), nil
	}

	metric := schema.MetricKey(request.GetString("metric", string(schema.MetricStars)))
	if _, ok := schema.ValidSeriesMetrics[metric]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid metric view: %s", metric)), nil
	}

	series, err := core.GetSeriesResult(ctx, cfg, h.mgr, metric)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(series, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetLanguages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.cloneWithRange(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid range parameters: %v", err)), nil
	}

	series, err := core.GetSeriesResult(ctx, cfg, h.mgr, schema.MetricLanguages)
	if err != nil {
		return mcp.NewToolResultError(contract.UserMessage(err)), nil
	}

	jsonData, _ := json.MarshalIndent(series, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleExportRange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.cloneWithRange(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid range parameters: %v", err)), nil
	}

	format := schema.ExportFormat(request.GetString("format", string(schema.CSVExport)))
	if _, ok := schema.ValidExportFormats[format]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid export format: %s", format)), nil
	}
	cfg.ExportFormat = format
	cfg.OutputFile = request.GetString("output_file", "")

	client := newExportClient(cfg)
	filename, err := core.RunExport(ctx, client, cfg)
	if err != nil {
		return mcp.NewToolResultError(contract.UserMessage(err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Exported %s to %s", format, filename)), nil
}
