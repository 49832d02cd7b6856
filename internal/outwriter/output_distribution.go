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

// PrintDistribution outputs donation recommendations, dispatching
// based on the output format configured.
func PrintDistribution(analysis *schema.UsageAnalysis, result *schema.DistributionResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDistributionJSON(w, analysis, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDistributionCSV(w, result)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDistributionMarkdown(w, analysis, result, cfg)
		}, "Wrote markdown")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDistributionTable(w, analysis, result, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// donateAt picks the URL shown next to a recommendation.
func donateAt(rec *schema.Recommendation) string {
	if url := rec.Project.PrimaryDonationURL(); url != "" {
		return url
	}
	return "(no donation URL)"
}

// writeDistributionTable generates and writes the human-readable table.
func writeDistributionTable(w io.Writer, analysis *schema.UsageAnalysis, result *schema.DistributionResult, cfg *contract.Config, duration time.Duration) error {
	fmt.Fprintf(w, "Donation Recommendations ($%s, %s weighting)\n", result.TotalAmount.StringFixed(2), cfg.Strategy)
	periodStart := "(no data)"
	if !analysis.PeriodStart.IsZero() {
		periodStart = analysis.PeriodStart.Format(contract.DateFormat)
	}
	fmt.Fprintf(w, "Based on usage from %s to %s (%d commands analyzed)\n\n",
		periodStart, analysis.PeriodEnd.Format(contract.DateFormat), analysis.TotalCommands)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Project", "Amount", "Usage", "Donate At"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	urlWidth := getTerminalWidth(cfg) / 2
	var data [][]string
	anyCapped := false
	for i := range result.Recommendations {
		rec := &result.Recommendations[i]
		if rec.CappedAtMinimum {
			anyCapped = true
		}
		name := rec.Project.Name
		url := donateAt(rec)
		if cfg.UseColors {
			name = contract.NameColor.Sprint(name)
			url = contract.LinkColor.Sprint(truncateText(url, urlWidth))
		} else {
			url = truncateText(url, urlWidth)
		}
		data = append(data, []string{
			name,
			contract.FormatAmount(rec.Amount, rec.CappedAtMinimum, cfg.UseColors),
			fmt.Sprintf("%.1f%%", rec.Percentage),
			url,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if anyCapped {
		fmt.Fprintf(w, "\n* Minimum threshold ($%s) applied\n", cfg.MinAmount.StringFixed(2))
	}
	fmt.Fprintf(w, "\nTotal: $%s\n", result.AllocatedAmount().StringFixed(2))
	if unallocated := result.UnallocatedAmount(); unallocated.IsPositive() {
		fmt.Fprintf(w, "Unallocated: $%s\n", unallocated.StringFixed(2))
	}
	if len(analysis.Unknowns) > 0 {
		fmt.Fprintf(w, "\n%d unknown executables not included.\n", len(analysis.Unknowns))
		fmt.Fprintln(w, "Run 'fundcli analyze' to see them.")
	}
	fmt.Fprintf(w, "\nCompleted in %v\n", duration)
	return nil
}

// writeDistributionMarkdown writes a paste-ready markdown table.
func writeDistributionMarkdown(w io.Writer, analysis *schema.UsageAnalysis, result *schema.DistributionResult, cfg *contract.Config) error {
	fmt.Fprintf(w, "# Donation Recommendations ($%s)\n", result.TotalAmount.StringFixed(2))
	periodStart := "(no data)"
	if !analysis.PeriodStart.IsZero() {
		periodStart = analysis.PeriodStart.Format(contract.DateFormat)
	}
	fmt.Fprintf(w, "\nBased on usage from %s to %s\n", periodStart, analysis.PeriodEnd.Format(contract.DateFormat))
	fmt.Fprintf(w, "(%d commands analyzed)\n\n", analysis.TotalCommands)
	fmt.Fprintln(w, "| Project | Amount | Usage | Donate At |")
	fmt.Fprintln(w, "|---------|--------|-------|-----------|")

	anyCapped := false
	for i := range result.Recommendations {
		rec := &result.Recommendations[i]
		capped := ""
		if rec.CappedAtMinimum {
			capped = "*"
			anyCapped = true
		}
		fmt.Fprintf(w, "| %s | $%s%s | %.1f%% | %s |\n",
			rec.Project.Name, rec.Amount.StringFixed(2), capped, rec.Percentage, donateAt(rec))
	}
	if anyCapped {
		fmt.Fprintf(w, "\n*Minimum threshold ($%s) applied\n", cfg.MinAmount.StringFixed(2))
	}
	return nil
}

// writeDistributionCSV writes one row per recommendation.
func writeDistributionCSV(w io.Writer, result *schema.DistributionResult) error {
	header := []string{"project", "project_id", "amount", "percentage", "usage_count", "capped", "donate_url"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i := range result.Recommendations {
			rec := &result.Recommendations[i]
			row := []string{
				rec.Project.Name,
				rec.Project.ID,
				rec.Amount.StringFixed(2),
				fmt.Sprintf("%.1f", rec.Percentage),
				strconv.Itoa(rec.UsageCount),
				strconv.FormatBool(rec.CappedAtMinimum),
				rec.Project.PrimaryDonationURL(),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// distributionJSONRecommendation is one advised donation in JSON output.
type distributionJSONRecommendation struct {
	Project    string  `json:"project"`
	ProjectID  string  `json:"project_id"`
	Amount     string  `json:"amount"`
	Percentage float64 `json:"percentage"`
	UsageCount int     `json:"usage_count"`
	Capped     bool    `json:"capped"`
	DonateURL  string  `json:"donate_url,omitempty"`
}

// distributionJSONExclusion is one skipped project in JSON output.
type distributionJSONExclusion struct {
	Project string `json:"project"`
	Reason  string `json:"reason"`
}

// distributionJSON is the JSON output envelope for recommend.
type distributionJSON struct {
	TotalAmount     string                           `json:"total_amount"`
	AllocatedAmount string                           `json:"allocated_amount"`
	TotalCommands   int                              `json:"total_commands"`
	Recommendations []distributionJSONRecommendation `json:"recommendations"`
	Excluded        []distributionJSONExclusion      `json:"excluded,omitempty"`
}

// writeDistributionJSON writes the machine-readable distribution.
func writeDistributionJSON(w io.Writer, analysis *schema.UsageAnalysis, result *schema.DistributionResult) error {
	out := distributionJSON{
		TotalAmount:     result.TotalAmount.StringFixed(2),
		AllocatedAmount: result.AllocatedAmount().StringFixed(2),
		TotalCommands:   analysis.TotalCommands,
	}
	for i := range result.Recommendations {
		rec := &result.Recommendations[i]
		out.Recommendations = append(out.Recommendations, distributionJSONRecommendation{
			Project:    rec.Project.Name,
			ProjectID:  rec.Project.ID,
			Amount:     rec.Amount.StringFixed(2),
			Percentage: rec.Percentage,
			UsageCount: rec.UsageCount,
			Capped:     rec.CappedAtMinimum,
			DonateURL:  rec.Project.PrimaryDonationURL(),
		})
	}
	for _, excl := range result.Excluded {
		out.Excluded = append(out.Excluded, distributionJSONExclusion{
			Project: excl.Project.Name,
			Reason:  excl.Reason,
		})
	}
	return writeJSON(w, out)
}
