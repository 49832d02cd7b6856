// Package core has core logic for analysis, allocation and reporting.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fragmede/fundcli/core/allocate"
	"github.com/fragmede/fundcli/internal/aliases"
	"github.com/fragmede/fundcli/internal/classify"
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/internal/linkgen"
	"github.com/fragmede/fundcli/internal/outwriter"
	"github.com/fragmede/fundcli/internal/parquet"
	"github.com/fragmede/fundcli/schema"
)

// ErrNoKnownProjects is returned when the analyzed history contains no
// executables the registry recognizes.
var ErrNoKnownProjects = errors.New("no known projects found in command history")

// ErrNoDonationLinks is returned when none of the recommended projects
// carry a donation endpoint.
var ErrNoDonationLinks = errors.New("no donation links available for recommended projects")

// ExecuteAnalyze runs the usage analysis and prints results.
// It serves as the main entry point for the 'analyze' command.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, store contract.HistoryStore, registry contract.Registry) error {
	start := time.Now()
	analysis, err := AnalyzeUsage(ctx, store, registry, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintAnalysis(analysis, registry, cfg, time.Since(start))
}

// ExecuteRecommend analyzes usage, allocates the configured amount and
// prints the recommendations.
func ExecuteRecommend(ctx context.Context, cfg *contract.Config, store contract.HistoryStore, registry contract.Registry) error {
	start := time.Now()
	analysis, err := AnalyzeUsage(ctx, store, registry, cfg)
	if err != nil {
		return err
	}
	if len(analysis.ProjectStats) == 0 {
		return ErrNoKnownProjects
	}
	result := allocate.Distribute(analysis, cfg.Amount, cfg.Strategy, cfg.MinAmount, cfg.MaxProjects)
	return outwriter.PrintDistribution(analysis, result, cfg, time.Since(start))
}

// ExecuteDonate allocates the configured amount, generates donation
// links, optionally writes a report file, and opens the links when
// requested.
func ExecuteDonate(ctx context.Context, cfg *contract.Config, store contract.HistoryStore, registry contract.Registry) error {
	analysis, err := AnalyzeUsage(ctx, store, registry, cfg)
	if err != nil {
		return err
	}
	if len(analysis.ProjectStats) == 0 {
		return ErrNoKnownProjects
	}
	result := allocate.Distribute(analysis, cfg.Amount, cfg.Strategy, cfg.MinAmount, cfg.MaxProjects)

	links := linkgen.GenerateLinks(result)
	if len(links) == 0 {
		return ErrNoDonationLinks
	}

	// The output file holds the report here, so the link table goes to
	// stdout regardless.
	linksCfg := cfg
	if cfg.OutputFile != "" {
		if err := linkgen.WriteReport(cfg.OutputFile, result); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote report to %s\n", cfg.OutputFile)
		linksCfg = cfg.Clone()
		linksCfg.OutputFile = ""
	}

	if err := outwriter.PrintLinks(links, result.TotalAmount, linksCfg); err != nil {
		return err
	}

	if cfg.OpenLinks {
		for _, link := range links {
			if err := linkgen.OpenBrowser(link.URL); err != nil {
				contract.LogWarn("opening link", err)
			}
		}
	}
	return nil
}

// ExecuteStats prints history store statistics.
func ExecuteStats(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error {
	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	return outwriter.PrintHistoryStats(stats, cfg.HistoryDBPath, cfg)
}

// ExecuteProjects searches or lists the known projects.
func ExecuteProjects(cfg *contract.Config, registry contract.Registry, query string, listAll bool) error {
	if query != "" {
		results := registry.Search(query)
		if len(results) == 0 {
			return fmt.Errorf("no projects found matching '%s'", query)
		}
		return outwriter.PrintProjectDetails(results, cfg)
	}
	if listAll {
		return outwriter.PrintProjects(registry.AllProjects(), cfg)
	}
	return errors.New("provide a search query or --all")
}

// ExecuteAliases probes the user's shell for aliases, resolves them to
// registry projects and prints the mapping.
func ExecuteAliases(ctx context.Context, cfg *contract.Config, registry contract.Registry) error {
	mappings, err := aliases.BuildMappings(ctx, registry)
	if err != nil {
		return err
	}
	return outwriter.PrintAliases(mappings, cfg)
}

// ExecuteExport analyzes usage and writes a parquet snapshot. kind
// selects between per-executable usage rows and recommendation rows.
func ExecuteExport(ctx context.Context, cfg *contract.Config, store contract.HistoryStore, registry contract.Registry, kind, path string) error {
	analysis, err := AnalyzeUsage(ctx, store, registry, cfg)
	if err != nil {
		return err
	}
	switch kind {
	case "usage":
		return parquet.ExportUsage(path, analysis)
	case "recommendations":
		if len(analysis.ProjectStats) == 0 {
			return ErrNoKnownProjects
		}
		result := allocate.Distribute(analysis, cfg.Amount, cfg.Strategy, cfg.MinAmount, cfg.MaxProjects)
		return parquet.ExportRecommendations(path, result)
	default:
		return fmt.Errorf("invalid export kind '%s'. must be usage, recommendations", kind)
	}
}

// ExecuteUnknownsList prints the classify store contents, optionally
// filtered by classification.
func ExecuteUnknownsList(cfg *contract.Config, mgr contract.StoreManager, class schema.Classification) error {
	store := mgr.GetClassifyStore()
	records, err := store.List(class)
	if err != nil {
		return err
	}
	return outwriter.PrintUnknowns(records, cfg)
}

// ExecuteUnknownsInvestigate probes unknown executables on the local
// system and records the findings. With no explicit names it analyzes
// history and investigates every unknown found there.
func ExecuteUnknownsInvestigate(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, store contract.HistoryStore, registry contract.Registry, names []string) error {
	if len(names) == 0 {
		analysis, err := AnalyzeUsage(ctx, store, registry, cfg)
		if err != nil {
			return err
		}
		for _, unknown := range analysis.TopUnknowns(-1) {
			names = append(names, unknown.Name)
		}
	}
	if len(names) == 0 {
		return errors.New("nothing to investigate")
	}

	classifyStore := mgr.GetClassifyStore()
	records := make([]schema.UnknownRecord, 0, len(names))
	for _, name := range names {
		record := classify.Investigate(ctx, name)
		if err := classifyStore.Upsert(record); err != nil {
			return fmt.Errorf("record %s: %w", name, err)
		}
		records = append(records, *record)
	}
	return outwriter.PrintUnknowns(records, cfg)
}

// ExecuteUnknownsClassify records a user judgment for one executable.
func ExecuteUnknownsClassify(cfg *contract.Config, mgr contract.StoreManager, name string, class schema.Classification, notes string) error {
	if _, ok := schema.ValidClassifications[class]; !ok {
		return fmt.Errorf("invalid classification '%s'. must be system, third_party, user, ignored", class)
	}
	return mgr.GetClassifyStore().SetClassification(name, class, notes)
}
