// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/schema"
	"github.com/shopspring/decimal"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API
// for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAnalysis prints usage analysis results using the configured output format.
func (ow *OutWriter) WriteAnalysis(analysis *schema.UsageAnalysis, registry contract.Registry, cfg *contract.Config, duration time.Duration) error {
	return PrintAnalysis(analysis, registry, cfg, duration)
}

// WriteDistribution prints donation recommendations using the configured output format.
func (ow *OutWriter) WriteDistribution(analysis *schema.UsageAnalysis, result *schema.DistributionResult, cfg *contract.Config, duration time.Duration) error {
	return PrintDistribution(analysis, result, cfg, duration)
}

// WriteLinks prints generated donation links.
func (ow *OutWriter) WriteLinks(links []schema.DonationLink, total decimal.Decimal, cfg *contract.Config) error {
	return PrintLinks(links, total, cfg)
}

// WriteProjects prints the project listing.
func (ow *OutWriter) WriteProjects(projects []*schema.Project, cfg *contract.Config) error {
	return PrintProjects(projects, cfg)
}

// WriteUnknowns prints classify store records.
func (ow *OutWriter) WriteUnknowns(records []schema.UnknownRecord, cfg *contract.Config) error {
	return PrintUnknowns(records, cfg)
}
