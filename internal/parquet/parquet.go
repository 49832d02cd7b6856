// Package parquet exports usage analysis and donation recommendation
// snapshots to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/fragmede/fundcli/schema"
	"github.com/parquet-go/parquet-go"
)

// UsageRow is one executable's aggregated usage in an analysis window.
type UsageRow struct {
	// Period is the analysis window (day, week, month, year, all)
	Period string `parquet:"period,snappy"`

	// PeriodStart is the earliest invocation in the window (nullable)
	PeriodStart *time.Time `parquet:"period_start,optional,snappy"`

	// PeriodEnd is when the analysis ran
	PeriodEnd time.Time `parquet:"period_end,snappy"`

	// Executable is the normalized executable name
	Executable string `parquet:"executable,snappy"`

	// InvocationCount is the number of invocations in the window
	InvocationCount int64 `parquet:"invocation_count,snappy"`

	// TotalDurationNs is the accumulated wall-clock duration
	TotalDurationNs int64 `parquet:"total_duration_ns,snappy"`

	// SuccessRate is the percentage of invocations exiting zero
	SuccessRate float64 `parquet:"success_rate,snappy"`

	// ProjectID identifies the owning project (nullable for unknowns)
	ProjectID *string `parquet:"project_id,optional,snappy"`
}

// RecommendationRow is one advised donation from a distribution run.
type RecommendationRow struct {
	// GeneratedAt is when the distribution was computed
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	// ProjectID identifies the receiving project
	ProjectID string `parquet:"project_id,snappy"`

	// ProjectName is the project display name
	ProjectName string `parquet:"project_name,snappy"`

	// Amount is the advised donation with two fixed decimals
	Amount string `parquet:"amount,snappy"`

	// Percentage is the project's share of total weight
	Percentage float64 `parquet:"percentage,snappy"`

	// UsageCount is the invocation count backing the recommendation
	UsageCount int64 `parquet:"usage_count,snappy"`

	// CappedAtMinimum marks amounts raised to the configured floor
	CappedAtMinimum bool `parquet:"capped_at_minimum,snappy"`

	// DonateURL is the project's primary donation URL (nullable)
	DonateURL *string `parquet:"donate_url,optional,snappy"`
}

// ExportUsage writes one row per executable, known and unknown alike,
// ordered by invocation count.
func ExportUsage(outputPath string, analysis *schema.UsageAnalysis) error {
	// Invert project stats so each executable knows its owner
	owners := make(map[string]string)
	for id, ps := range analysis.ProjectStats {
		for exe := range ps.Executables {
			owners[exe] = id
		}
	}

	var periodStart *time.Time
	if !analysis.PeriodStart.IsZero() {
		periodStart = &analysis.PeriodStart
	}

	rows := make([]UsageRow, 0, len(analysis.ExecStats))
	for _, stats := range analysis.TopExecutables(-1) {
		row := UsageRow{
			Period:          string(analysis.Period),
			PeriodStart:     periodStart,
			PeriodEnd:       analysis.PeriodEnd,
			Executable:      stats.Name,
			InvocationCount: int64(stats.Count),
			TotalDurationNs: stats.DurationNS,
			SuccessRate:     stats.SuccessRate(),
		}
		if id, ok := owners[stats.Name]; ok {
			row.ProjectID = &id
		}
		rows = append(rows, row)
	}

	return writeParquet(rows, outputPath)
}

// ExportRecommendations writes one row per advised donation.
func ExportRecommendations(outputPath string, result *schema.DistributionResult) error {
	now := time.Now()

	rows := make([]RecommendationRow, 0, len(result.Recommendations))
	for i := range result.Recommendations {
		rec := &result.Recommendations[i]
		row := RecommendationRow{
			GeneratedAt:     now,
			ProjectID:       rec.Project.ID,
			ProjectName:     rec.Project.Name,
			Amount:          rec.Amount.StringFixed(2),
			Percentage:      rec.Percentage,
			UsageCount:      int64(rec.UsageCount),
			CappedAtMinimum: rec.CappedAtMinimum,
		}
		if url := rec.Project.PrimaryDonationURL(); url != "" {
			row.DonateURL = &url
		}
		rows = append(rows, row)
	}

	return writeParquet(rows, outputPath)
}

// writeParquet writes records to a Parquet file using struct schema
// inference from the row type's tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close flushes the footer; its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}
