package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sbcounts/aadv/core"
	"github.com/sbcounts/aadv/internal/contract"
	"github.com/sbcounts/aadv/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

func (h *toolHandler) handleComputeAADV(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("input", "")
	if cfg.InputPath == "" {
		return mcp.NewToolResultError("input is required"), nil
	}
	if m := request.GetString("mode", ""); m != "" {
		cfg.Mode = schema.TravelMode(m)
	}

	validated, err := core.GetComputeResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("computation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(validated, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRankSites(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("input", "")
	if cfg.InputPath == "" {
		return mcp.NewToolResultError("input is required"), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	ranked, err := core.GetRankResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(ranked, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCompareYears(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("input", "")
	if cfg.InputPath == "" {
		return mcp.NewToolResultError("input is required"), nil
	}
	cfg.BaseYear = request.GetInt("base_year", 0)
	cfg.TargetYear = request.GetInt("target_year", 0)
	if m := request.GetString("mode", ""); m != "" {
		cfg.Mode = schema.TravelMode(m)
	}

	if err := contract.ValidateCompareYears(cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid comparison parameters: %v", err)), nil
	}

	comparison, err := core.GetCompareResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(comparison, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
