// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sbcounts/aadv/internal/contract"
)

// NewMCPServer initializes and configures the AADV MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"AADV Estimation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: compute_aadv ---
	s.AddTool(mcp.NewTool("compute_aadv",
		mcp.WithDescription("Compute annual average daily volume (AADV) estimates from raw hourly bicycle and pedestrian counts."),
		mcp.WithString("input", mcp.Description("Path to the raw count JSON file."), mcp.Required()),
		mcp.WithString("mode", mcp.Description("Travel mode filter (bike, ped, all). Defaults to 'all'."), mcp.Enum("bike", "ped", "all")),
	), h.handleComputeAADV)

	// --- 2. Tool: rank_sites ---
	s.AddTool(mcp.NewTool("rank_sites",
		mcp.WithDescription("Rank count sites by combined bicycle and pedestrian volume."),
		mcp.WithString("input", mcp.Description("Path to the raw count JSON file."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of sites returned.")),
	), h.handleRankSites)

	// --- 3. Tool: compare_years ---
	s.AddTool(mcp.NewTool("compare_years",
		mcp.WithDescription("Compare mean AADV between two calendar years over their shared sites."),
		mcp.WithString("input", mcp.Description("Path to the raw count JSON file."), mcp.Required()),
		mcp.WithNumber("base_year", mcp.Description("The baseline year."), mcp.Required()),
		mcp.WithNumber("target_year", mcp.Description("The year to compare against the baseline."), mcp.Required()),
		mcp.WithString("mode", mcp.Description("Travel mode filter (bike, ped, all)."), mcp.Enum("bike", "ped", "all")),
	), h.handleCompareYears)

	return s
}

// StartMCPServer starts the AADV MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
