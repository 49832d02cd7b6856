package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintAnalysis outputs the usage analysis, dispatching based on the
// output format configured.
func PrintAnalysis(analysis *schema.UsageAnalysis, registry contract.Registry, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisJSON(w, analysis, registry, cfg)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisCSV(w, analysis, registry, cfg)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisTable(w, analysis, registry, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// projectNameFor resolves the display name of the project owning an
// executable, or "" when unknown.
func projectNameFor(registry contract.Registry, exe string) string {
	if project, ok := registry.ProjectFor(exe); ok {
		return project.Name
	}
	return ""
}

// writeAnalysisTable generates and writes the human-readable tables.
func writeAnalysisTable(w io.Writer, analysis *schema.UsageAnalysis, registry contract.Registry, cfg *contract.Config, duration time.Duration) error {
	periodStart := "(no data)"
	if !analysis.PeriodStart.IsZero() {
		periodStart = analysis.PeriodStart.Format(contract.DateFormat)
	}
	fmt.Fprintf(w, "Usage Analysis (%s)\n", analysis.Period)
	fmt.Fprintf(w, "From %s to %s\n", periodStart, analysis.PeriodEnd.Format(contract.DateFormat))
	fmt.Fprintf(w, "Commands: %d  Executables: %d  Known: %d  Unknown: %d\n\n",
		analysis.TotalCommands, analysis.TotalExecutables, analysis.KnownCount(), analysis.UnknownCount())

	fmt.Fprintln(w, "Top Executables")
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Executable", "Count", "%", "Project"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getTerminalWidth(cfg) / 3
	var data [][]string
	for i, stats := range analysis.TopExecutables(cfg.Limit) {
		name := stats.Name
		projectName := projectNameFor(registry, name)
		if cfg.UseColors {
			name = contract.NameColor.Sprint(name)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateText(name, nameWidth),
			strconv.Itoa(stats.Count),
			percentOf(stats.Count, analysis.TotalCommands),
			projectName,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if cfg.ShowUnknown && len(analysis.Unknowns) > 0 {
		header := fmt.Sprintf("\nUnknown Executables (%d total)", len(analysis.Unknowns))
		if cfg.UseColors {
			header = contract.UnknownColor.Sprint(header)
		}
		fmt.Fprintln(w, header)

		unknownTable := tablewriter.NewWriter(w)
		unknownTable.Header([]string{"Executable", "Count"})
		var rows [][]string
		for _, unknown := range analysis.TopUnknowns(cfg.Limit) {
			rows = append(rows, []string{unknown.Name, strconv.Itoa(unknown.Count)})
		}
		if err := unknownTable.Bulk(rows); err != nil {
			return err
		}
		if err := unknownTable.Render(); err != nil {
			return err
		}
		fmt.Fprintln(w, "Consider contributing mappings for these executables!")
	}

	fmt.Fprintf(w, "\nAnalysis completed in %v\n", duration)
	return nil
}

// writeAnalysisCSV writes one row per ranked executable.
func writeAnalysisCSV(w io.Writer, analysis *schema.UsageAnalysis, registry contract.Registry, cfg *contract.Config) error {
	header := []string{"rank", "executable", "count", "percentage", "success_rate", "avg_duration_ms", "project"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, stats := range analysis.TopExecutables(cfg.Limit) {
			row := []string{
				strconv.Itoa(i + 1),
				stats.Name,
				strconv.Itoa(stats.Count),
				percentOf(stats.Count, analysis.TotalCommands),
				fmt.Sprintf("%.1f", stats.SuccessRate()),
				fmt.Sprintf("%.1f", stats.AvgDurationMS()),
				projectNameFor(registry, stats.Name),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// analysisJSONExecutable is one executable entry in JSON output.
type analysisJSONExecutable struct {
	Name          string  `json:"name"`
	Count         int     `json:"count"`
	SuccessRate   float64 `json:"success_rate"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
	Project       string  `json:"project,omitempty"`
}

// analysisJSON is the JSON output envelope for analyze.
type analysisJSON struct {
	Period           schema.TimePeriod        `json:"period"`
	PeriodStart      string                   `json:"period_start,omitempty"`
	PeriodEnd        string                   `json:"period_end"`
	TotalCommands    int                      `json:"total_commands"`
	TotalExecutables int                      `json:"total_executables"`
	KnownCount       int                      `json:"known_count"`
	UnknownCount     int                      `json:"unknown_count"`
	Executables      []analysisJSONExecutable `json:"executables"`
	Unknowns         []schema.ExecCount       `json:"unknowns,omitempty"`
}

// writeAnalysisJSON writes the machine-readable analysis.
func writeAnalysisJSON(w io.Writer, analysis *schema.UsageAnalysis, registry contract.Registry, cfg *contract.Config) error {
	out := analysisJSON{
		Period:           analysis.Period,
		PeriodEnd:        analysis.PeriodEnd.Format(contract.DateTimeFormat),
		TotalCommands:    analysis.TotalCommands,
		TotalExecutables: analysis.TotalExecutables,
		KnownCount:       analysis.KnownCount(),
		UnknownCount:     analysis.UnknownCount(),
	}
	if !analysis.PeriodStart.IsZero() {
		out.PeriodStart = analysis.PeriodStart.Format(contract.DateTimeFormat)
	}
	for _, stats := range analysis.TopExecutables(cfg.Limit) {
		out.Executables = append(out.Executables, analysisJSONExecutable{
			Name:          stats.Name,
			Count:         stats.Count,
			SuccessRate:   stats.SuccessRate(),
			AvgDurationMS: stats.AvgDurationMS(),
			Project:       projectNameFor(registry, stats.Name),
		})
	}
	if cfg.ShowUnknown {
		out.Unknowns = analysis.TopUnknowns(cfg.Limit)
	}
	return writeJSON(w, out)
}
