package core

import (
	"context"
	"strings"
	"time"

	"github.com/fragmede/fundcli/core/parse"
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/schema"
)

// AnalyzeUsage folds the period's history records into per-executable
// and per-project statistics. The accumulator maps are owned by this
// pass and returned read-only.
func AnalyzeUsage(ctx context.Context, store contract.HistoryStore, registry contract.Registry, cfg *contract.Config) (*schema.UsageAnalysis, error) {
	entries, err := store.Query(ctx, cfg.Period, cfg.Hostname)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]struct{}, len(cfg.ExcludeExecutables))
	for _, exe := range cfg.ExcludeExecutables {
		excluded[exe] = struct{}{}
	}

	analysis := &schema.UsageAnalysis{
		Period:       cfg.Period,
		PeriodEnd:    time.Now(),
		ExecStats:    make(map[string]*schema.ExecStats),
		ProjectStats: make(map[string]*schema.ProjectStats),
		Unknowns:     make(map[string]int),
	}

	for _, entry := range entries {
		if hostnameExcluded(entry.Hostname, cfg.ExcludeHostnames) {
			continue
		}
		analysis.TotalCommands++
		if analysis.PeriodStart.IsZero() || entry.Timestamp.Before(analysis.PeriodStart) {
			analysis.PeriodStart = entry.Timestamp
		}

		for _, exe := range parse.ExtractExecutables(entry.Command, cfg.IncludeBuiltins) {
			if _, skip := excluded[exe]; skip {
				continue
			}

			stats, ok := analysis.ExecStats[exe]
			if !ok {
				stats = &schema.ExecStats{Name: exe}
				analysis.ExecStats[exe] = stats
			}
			stats.Count++
			stats.DurationNS += entry.Duration
			if entry.Success() {
				stats.Successes++
			} else {
				stats.Failures++
			}
			if stats.FirstUsed.IsZero() || entry.Timestamp.Before(stats.FirstUsed) {
				stats.FirstUsed = entry.Timestamp
			}
			if entry.Timestamp.After(stats.LastUsed) {
				stats.LastUsed = entry.Timestamp
			}
		}
	}
	analysis.TotalExecutables = len(analysis.ExecStats)

	// Attribute executables to projects; the rest stay unknown.
	for exe, stats := range analysis.ExecStats {
		project, ok := registry.ProjectFor(exe)
		if !ok {
			analysis.Unknowns[exe] = stats.Count
			continue
		}
		ps, ok := analysis.ProjectStats[project.ID]
		if !ok {
			ps = &schema.ProjectStats{
				Project:     project,
				Executables: make(map[string]*schema.ExecStats),
			}
			analysis.ProjectStats[project.ID] = ps
		}
		ps.Executables[exe] = stats
	}

	return analysis, nil
}

// hostnameExcluded matches the way the hostname filter does: by
// substring, since Atuin hostnames carry a "host:user" suffix.
func hostnameExcluded(hostname string, excludes []string) bool {
	for _, ex := range excludes {
		if ex != "" && strings.Contains(hostname, ex) {
			return true
		}
	}
	return false
}
