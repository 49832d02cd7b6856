package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fragmede/fundcli/core"
	"github.com/fragmede/fundcli/core/allocate"
	"github.com/fragmede/fundcli/internal/classify"
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg  *contract.Config
	store    contract.HistoryStore
	registry contract.Registry
	mgr      contract.StoreManager
}

type executableSummary struct {
	Name          string  `json:"name"`
	Count         int     `json:"count"`
	SuccessRate   float64 `json:"success_rate"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
	ProjectID     string  `json:"project_id,omitempty"`
}

type projectSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type usageSummary struct {
	Period           schema.TimePeriod   `json:"period"`
	TotalCommands    int                 `json:"total_commands"`
	TotalExecutables int                 `json:"total_executables"`
	KnownCommands    int                 `json:"known_commands"`
	UnknownCommands  int                 `json:"unknown_commands"`
	TopExecutables   []executableSummary `json:"top_executables"`
	TopProjects      []projectSummary    `json:"top_projects"`
	TopUnknowns      []schema.ExecCount  `json:"top_unknowns,omitempty"`
}

func (h *toolHandler) handleAnalyzeUsage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("period", ""); p != "" {
		cfg.Period = schema.TimePeriod(p)
		if _, ok := schema.ValidTimePeriods[cfg.Period]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid period '%s'. must be day, week, month, year, all", p)), nil
		}
	}
	if hn := request.GetString("hostname", ""); hn != "" {
		cfg.Hostname = hn
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = l
	}

	analysis, err := core.AnalyzeUsage(ctx, h.store, h.registry, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	owners := make(map[string]string)
	for id, ps := range analysis.ProjectStats {
		for exe := range ps.Executables {
			owners[exe] = id
		}
	}

	summary := usageSummary{
		Period:           analysis.Period,
		TotalCommands:    analysis.TotalCommands,
		TotalExecutables: analysis.TotalExecutables,
		KnownCommands:    analysis.KnownCount(),
		UnknownCommands:  analysis.UnknownCount(),
	}
	for _, stats := range analysis.TopExecutables(cfg.Limit) {
		summary.TopExecutables = append(summary.TopExecutables, executableSummary{
			Name:          stats.Name,
			Count:         stats.Count,
			SuccessRate:   stats.SuccessRate(),
			AvgDurationMS: stats.AvgDurationMS(),
			ProjectID:     owners[stats.Name],
		})
	}
	for _, ps := range analysis.TopProjects(cfg.Limit) {
		summary.TopProjects = append(summary.TopProjects, projectSummary{
			ID:    ps.Project.ID,
			Name:  ps.Project.Name,
			Count: ps.TotalCount(),
		})
	}
	summary.TopUnknowns = analysis.TopUnknowns(cfg.Limit)

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

type recommendationSummary struct {
	ProjectID       string  `json:"project_id"`
	ProjectName     string  `json:"project_name"`
	Amount          string  `json:"amount"`
	Percentage      float64 `json:"percentage"`
	UsageCount      int     `json:"usage_count"`
	CappedAtMinimum bool    `json:"capped_at_minimum"`
	DonateURL       string  `json:"donate_url,omitempty"`
}

type exclusionSummary struct {
	ProjectID string `json:"project_id"`
	Reason    string `json:"reason"`
}

type distributionSummary struct {
	TotalAmount     string                  `json:"total_amount"`
	AllocatedAmount string                  `json:"allocated_amount"`
	Strategy        schema.WeightStrategy   `json:"strategy"`
	Recommendations []recommendationSummary `json:"recommendations"`
	Excluded        []exclusionSummary      `json:"excluded,omitempty"`
}

func (h *toolHandler) handleRecommendDonations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	amount, err := decimal.NewFromString(request.GetString("amount", ""))
	if err != nil || !amount.IsPositive() {
		return mcp.NewToolResultError("amount must be a positive decimal, e.g. '25.00'"), nil
	}
	cfg.Amount = amount

	if w := request.GetString("weight", ""); w != "" {
		cfg.Strategy = schema.WeightStrategy(w)
		if _, ok := schema.ValidWeightStrategies[cfg.Strategy]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid weighting strategy '%s'. must be count, duration, success, combined", w)), nil
		}
	}
	if m := request.GetString("min_amount", ""); m != "" {
		minAmount, err := decimal.NewFromString(m)
		if err != nil || minAmount.IsNegative() {
			return mcp.NewToolResultError("min_amount must be a non-negative decimal"), nil
		}
		cfg.MinAmount = minAmount
	}
	if mp := request.GetInt("max_projects", 0); mp > 0 {
		cfg.MaxProjects = mp
	}
	if p := request.GetString("period", ""); p != "" {
		cfg.Period = schema.TimePeriod(p)
		if _, ok := schema.ValidTimePeriods[cfg.Period]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid period '%s'. must be day, week, month, year, all", p)), nil
		}
	}

	analysis, err := core.AnalyzeUsage(ctx, h.store, h.registry, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if len(analysis.ProjectStats) == 0 {
		return mcp.NewToolResultError(core.ErrNoKnownProjects.Error()), nil
	}

	result := allocate.Distribute(analysis, cfg.Amount, cfg.Strategy, cfg.MinAmount, cfg.MaxProjects)

	summary := distributionSummary{
		TotalAmount:     result.TotalAmount.StringFixed(2),
		AllocatedAmount: result.AllocatedAmount().StringFixed(2),
		Strategy:        cfg.Strategy,
	}
	for _, rec := range result.Recommendations {
		summary.Recommendations = append(summary.Recommendations, recommendationSummary{
			ProjectID:       rec.Project.ID,
			ProjectName:     rec.Project.Name,
			Amount:          rec.Amount.StringFixed(2),
			Percentage:      rec.Percentage,
			UsageCount:      rec.UsageCount,
			CappedAtMinimum: rec.CappedAtMinimum,
			DonateURL:       rec.Project.PrimaryDonationURL(),
		})
	}
	for _, excl := range result.Excluded {
		summary.Excluded = append(summary.Excluded, exclusionSummary{
			ProjectID: excl.Project.ID,
			Reason:    excl.Reason,
		})
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

type investigationSummary struct {
	Executable       string                `json:"executable"`
	Path             string                `json:"path,omitempty"`
	FileType         string                `json:"file_type"`
	Classification   schema.Classification `json:"classification"`
	CopyrightFound   string                `json:"copyright_found,omitempty"`
	HelpText         string                `json:"help_text,omitempty"`
	SuggestedProject string                `json:"suggested_project,omitempty"`
}

func (h *toolHandler) handleInvestigateExecutable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("executable", "")
	if name == "" {
		return mcp.NewToolResultError("executable is required"), nil
	}

	record := classify.Investigate(ctx, name)
	if err := h.mgr.GetClassifyStore().Upsert(record); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recording findings failed: %v", err)), nil
	}

	summary := investigationSummary{
		Executable:       record.Executable,
		Path:             record.Path,
		FileType:         record.FileType,
		Classification:   record.Classification,
		CopyrightFound:   record.CopyrightFound,
		HelpText:         record.HelpText,
		SuggestedProject: record.SuggestedProject,
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
