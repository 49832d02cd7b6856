package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fragmede/fundcli/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(UsageRow))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"period",
		"period_start",
		"period_end",
		"executable",
		"invocation_count",
		"total_duration_ns",
		"success_rate",
		"project_id",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestRecommendationRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(RecommendationRow))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"generated_at",
		"project_id",
		"project_name",
		"amount",
		"percentage",
		"usage_count",
		"capped_at_minimum",
		"donate_url",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func exportTestAnalysis() *schema.UsageAnalysis {
	git := &schema.ExecStats{Name: "git", Count: 7, DurationNS: 7e9, Successes: 7}
	jq := &schema.ExecStats{Name: "jq", Count: 3, DurationNS: 3e8, Successes: 2, Failures: 1}

	return &schema.UsageAnalysis{
		Period:           schema.MonthPeriod,
		PeriodStart:      time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC),
		PeriodEnd:        time.Date(2026, 1, 31, 18, 0, 0, 0, time.UTC),
		TotalCommands:    10,
		TotalExecutables: 2,
		ExecStats:        map[string]*schema.ExecStats{"git": git, "jq": jq},
		ProjectStats: map[string]*schema.ProjectStats{
			"git": {
				Project:     &schema.Project{ID: "git", Name: "Git"},
				Executables: map[string]*schema.ExecStats{"git": git},
			},
		},
		Unknowns: map[string]int{"jq": 3},
	}
}

func TestExportUsage(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "usage.parquet")

	analysis := exportTestAnalysis()
	err := ExportUsage(outputPath, analysis)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[UsageRow](file)
	defer reader.Close()

	readData := make([]UsageRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, 2, n, "Should read all records")

	// TopExecutables orders by count, so git comes first
	assert.Equal(t, "git", readData[0].Executable)
	assert.Equal(t, int64(7), readData[0].InvocationCount)
	assert.Equal(t, int64(7e9), readData[0].TotalDurationNs)
	assert.InDelta(t, 100.0, readData[0].SuccessRate, 0.01)
	require.NotNil(t, readData[0].ProjectID, "Known executable should carry a project id")
	assert.Equal(t, "git", *readData[0].ProjectID)

	assert.Equal(t, "jq", readData[1].Executable)
	assert.Equal(t, int64(3), readData[1].InvocationCount)
	assert.Nil(t, readData[1].ProjectID, "Unknown executable should not carry a project id")

	for i := range readData {
		assert.Equal(t, "month", readData[i].Period)
		require.NotNil(t, readData[i].PeriodStart, "PeriodStart should be set")
		assert.WithinDuration(t, analysis.PeriodStart, *readData[i].PeriodStart, time.Millisecond)
		assert.WithinDuration(t, analysis.PeriodEnd, readData[i].PeriodEnd, time.Millisecond)
	}
}

func TestExportUsageNilPeriodStart(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "usage_empty_window.parquet")

	analysis := exportTestAnalysis()
	analysis.PeriodStart = time.Time{}

	require.NoError(t, ExportUsage(outputPath, analysis))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[UsageRow](file)
	defer reader.Close()

	readData := make([]UsageRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n)
	assert.Nil(t, readData[0].PeriodStart, "Empty window should yield null period_start")
}

func TestExportRecommendations(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "recommendations.parquet")

	result := &schema.DistributionResult{
		TotalAmount: decimal.RequireFromString("10.00"),
		Recommendations: []schema.Recommendation{
			{
				Project: &schema.Project{
					ID:   "curl",
					Name: "curl",
					DonationURLs: []schema.DonationURL{
						{Platform: "opencollective", URL: "https://opencollective.com/curl"},
					},
				},
				Amount:     decimal.RequireFromString("9.00"),
				Percentage: 90.0,
				UsageCount: 9,
			},
			{
				Project:         &schema.Project{ID: "jq", Name: "jq"},
				Amount:          decimal.RequireFromString("1.00"),
				Percentage:      10.0,
				UsageCount:      1,
				CappedAtMinimum: true,
			},
		},
	}

	err := ExportRecommendations(outputPath, result)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[RecommendationRow](file)
	defer reader.Close()

	readData := make([]RecommendationRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, 2, n, "Should read all records")

	assert.Equal(t, "curl", readData[0].ProjectID)
	assert.Equal(t, "9.00", readData[0].Amount)
	assert.InDelta(t, 90.0, readData[0].Percentage, 0.001)
	assert.Equal(t, int64(9), readData[0].UsageCount)
	assert.False(t, readData[0].CappedAtMinimum)
	require.NotNil(t, readData[0].DonateURL)
	assert.Equal(t, "https://opencollective.com/curl", *readData[0].DonateURL)
	assert.WithinDuration(t, time.Now(), readData[0].GeneratedAt, time.Minute)

	assert.Equal(t, "jq", readData[1].ProjectID)
	assert.Equal(t, "1.00", readData[1].Amount)
	assert.True(t, readData[1].CappedAtMinimum)
	assert.Nil(t, readData[1].DonateURL, "Project without donation URL should yield null")
}

func TestExportRecommendationsEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_recommendations.parquet")

	result := &schema.DistributionResult{TotalAmount: decimal.Zero}
	require.NoError(t, ExportRecommendations(outputPath, result), "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Empty file still has a parquet footer")
}
