// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/fragmede/fundcli/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the fundcli MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.HistoryStore, registry contract.Registry, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Fundcli Donation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:  baseCfg,
		store:    store,
		registry: registry,
		mgr:      mgr,
	}

	// --- 1. Tool: analyze_usage ---
	s.AddTool(mcp.NewTool("analyze_usage",
		mcp.WithDescription("Analyze shell history to find which executables and open source projects the user relies on."),
		mcp.WithString("period", mcp.Description("Time window to analyze (day, week, month, year, all). Defaults to 'month'."), mcp.Enum("day", "week", "month", "year", "all")),
		mcp.WithString("hostname", mcp.Description("Only consider history recorded on this hostname.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of executables returned.")),
	), h.handleAnalyzeUsage)

	// --- 2. Tool: recommend_donations ---
	s.AddTool(mcp.NewTool("recommend_donations",
		mcp.WithDescription("Allocate a donation budget across the open source projects behind the user's shell usage."),
		mcp.WithString("amount", mcp.Description("Total budget to distribute, e.g. '25.00'."), mcp.Required()),
		mcp.WithString("weight", mcp.Description("Weighting strategy (count, duration, success, combined). Defaults to 'count'."), mcp.Enum("count", "duration", "success", "combined")),
		mcp.WithString("min_amount", mcp.Description("Minimum per-project donation, e.g. '1.00'.")),
		mcp.WithNumber("max_projects", mcp.Description("Maximum number of projects to fund.")),
		mcp.WithString("period", mcp.Description("Time window to analyze."), mcp.Enum("day", "week", "month", "year", "all")),
	), h.handleRecommendDonations)

	// --- 3. Tool: investigate_executable ---
	s.AddTool(mcp.NewTool("investigate_executable",
		mcp.WithDescription("Probe an unrecognized executable on the local system (path, file type, copyright, help text) and record the findings."),
		mcp.WithString("executable", mcp.Description("The executable name to investigate."), mcp.Required()),
	), h.handleInvestigateExecutable)

	return s
}

// StartMCPServer starts the fundcli MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.HistoryStore, registry contract.Registry, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, store, registry, mgr)
	return server.ServeStdio(s)
}
