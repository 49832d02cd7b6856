// Package schema has configs, models and global variables for all parts of fundcli.
package schema

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// HistoryEntry is a single command record from the Atuin history store.
type HistoryEntry struct {
	ID        string    // Atuin record identifier
	Command   string    // Raw command line as typed, may contain pipes and operators
	Timestamp time.Time // When the command was started
	Duration  int64     // Wall-clock duration in nanoseconds
	ExitCode  int       // Process exit status
	Cwd       string    // Working directory at invocation time
	Hostname  string    // user:host tag recorded by Atuin
}

// Success reports whether the command exited cleanly.
func (e *HistoryEntry) Success() bool {
	return e.ExitCode == 0
}

// ExecStats accumulates usage for a single executable name across a run.
// It is owned exclusively by the aggregation pass and read-only afterward.
type ExecStats struct {
	Name       string    // Normalized executable name
	Count      int       // Number of invocations
	DurationNS int64     // Total accumulated duration in nanoseconds
	Successes  int       // Invocations with exit code 0
	Failures   int       // Invocations with non-zero exit code
	FirstUsed  time.Time // Earliest invocation in the window
	LastUsed   time.Time // Latest invocation in the window
}

// SuccessRate returns the success percentage (0-100), or 0 with no outcomes.
func (s *ExecStats) SuccessRate() float64 {
	total := s.Successes + s.Failures
	if total == 0 {
		return 0.0
	}
	return float64(s.Successes) / float64(total) * 100
}

// AvgDurationMS returns the mean invocation duration in milliseconds.
func (s *ExecStats) AvgDurationMS() float64 {
	if s.Count == 0 {
		return 0.0
	}
	return float64(s.DurationNS) / float64(s.Count) / 1e6
}

// DonationURL is one donation endpoint for a project.
type DonationURL struct {
	Platform string `yaml:"platform"` // opencollective, github_sponsors, direct
	URL      string `yaml:"url"`
}

// Project is an open source project eligible to receive donations.
// A project may own several executable names (e.g. coreutils).
type Project struct {
	ID           string        `yaml:"-"`
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	Executables  []string      `yaml:"executables"`
	DonationURLs []DonationURL `yaml:"donation_urls"`
	GitHub       string        `yaml:"github"`
	Website      string        `yaml:"website"`
}

// PrimaryDonationURL returns the first donation URL, or "" if none exist.
func (p *Project) PrimaryDonationURL() string {
	if len(p.DonationURLs) > 0 {
		return p.DonationURLs[0].URL
	}
	return ""
}

// ProjectStats aggregates usage across all of one project's executables.
type ProjectStats struct {
	Project     *Project
	Executables map[string]*ExecStats
}

// TotalCount returns invocation count summed over all executables.
func (p *ProjectStats) TotalCount() int {
	total := 0
	for _, s := range p.Executables {
		total += s.Count
	}
	return total
}

// TotalDurationNS returns accumulated duration summed over all executables.
func (p *ProjectStats) TotalDurationNS() int64 {
	var total int64
	for _, s := range p.Executables {
		total += s.DurationNS
	}
	return total
}

// TotalSuccesses returns successful invocations summed over all executables.
func (p *ProjectStats) TotalSuccesses() int {
	total := 0
	for _, s := range p.Executables {
		total += s.Successes
	}
	return total
}

// TotalFailures returns failed invocations summed over all executables.
func (p *ProjectStats) TotalFailures() int {
	total := 0
	for _, s := range p.Executables {
		total += s.Failures
	}
	return total
}

// SuccessRate returns the project-wide success percentage (0-100).
func (p *ProjectStats) SuccessRate() float64 {
	total := p.TotalSuccesses() + p.TotalFailures()
	if total == 0 {
		return 0.0
	}
	return float64(p.TotalSuccesses()) / float64(total) * 100
}

// UsageAnalysis is the complete result of one aggregation pass.
type UsageAnalysis struct {
	Period           TimePeriod
	PeriodStart      time.Time // Zero when the window had no entries
	PeriodEnd        time.Time
	TotalCommands    int
	TotalExecutables int
	ExecStats        map[string]*ExecStats
	ProjectStats     map[string]*ProjectStats
	Unknowns         map[string]int // Executable name -> count, no registry match
}

// KnownCount returns the number of invocations attributed to known projects.
func (a *UsageAnalysis) KnownCount() int {
	total := 0
	for _, s := range a.ProjectStats {
		total += s.TotalCount()
	}
	return total
}

// UnknownCount returns the number of invocations with no project match.
func (a *UsageAnalysis) UnknownCount() int {
	total := 0
	for _, c := range a.Unknowns {
		total += c
	}
	return total
}

// TopExecutables returns up to limit executables by count descending,
// ties broken by name for stable output. A negative limit returns all.
func (a *UsageAnalysis) TopExecutables(limit int) []*ExecStats {
	ranked := make([]*ExecStats, 0, len(a.ExecStats))
	for _, stats := range a.ExecStats {
		ranked = append(ranked, stats)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TopProjects returns up to limit projects by total count descending,
// ties broken by project id. A negative limit returns all.
func (a *UsageAnalysis) TopProjects(limit int) []*ProjectStats {
	ranked := make([]*ProjectStats, 0, len(a.ProjectStats))
	for _, stats := range a.ProjectStats {
		ranked = append(ranked, stats)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ci, cj := ranked[i].TotalCount(), ranked[j].TotalCount(); ci != cj {
			return ci > cj
		}
		return ranked[i].Project.ID < ranked[j].Project.ID
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TopUnknowns returns up to limit unknown executables by count
// descending, ties broken by name. A negative limit returns all.
func (a *UsageAnalysis) TopUnknowns(limit int) []ExecCount {
	ranked := make([]ExecCount, 0, len(a.Unknowns))
	for name, count := range a.Unknowns {
		ranked = append(ranked, ExecCount{Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Recommendation is a single advised donation, immutable once returned.
type Recommendation struct {
	Project         *Project
	Amount          decimal.Decimal // Currency amount, 2 fixed decimals
	Percentage      float64         // Share of total weight, unrounded
	UsageCount      int
	Weight          float64
	CappedAtMinimum bool // Amount was raised to the configured floor
}

// Exclusion records a project that received no recommendation and why.
type Exclusion struct {
	Project *Project
	Reason  string // One of the Reason* tags
}

// DistributionResult is the complete outcome of one allocation request.
type DistributionResult struct {
	TotalAmount     decimal.Decimal
	Recommendations []Recommendation
	Excluded        []Exclusion
}

// AllocatedAmount returns the sum of all recommendation amounts.
func (r *DistributionResult) AllocatedAmount() decimal.Decimal {
	total := decimal.Zero
	for _, rec := range r.Recommendations {
		total = total.Add(rec.Amount)
	}
	return total
}

// UnallocatedAmount returns the remainder not covered by recommendations.
func (r *DistributionResult) UnallocatedAmount() decimal.Decimal {
	return r.TotalAmount.Sub(r.AllocatedAmount())
}

// AggregatedRecommendation merges recommendations sharing a donation URL.
type AggregatedRecommendation struct {
	URL             string
	Projects        []*Project
	TotalAmount     decimal.Decimal
	TotalPercentage float64
	TotalUsageCount int
	AnyCapped       bool
}

// DonationLink is a generated, possibly prefilled, donation URL.
type DonationLink struct {
	ProjectName string
	Platform    string
	URL         string
	Amount      decimal.Decimal
	IsPrefilled bool // Whether the amount is carried in the URL
}

// UnknownRecord is the classify store row for one unknown executable.
type UnknownRecord struct {
	Executable       string
	Path             string // Resolved absolute path, "" when not found
	FileType         string // script, binary, not_found, unknown
	Classification   Classification
	CopyrightFound   string
	HelpText         string
	SuggestedProject string
	UserNotes        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AliasMapping links a shell alias to the project behind its expansion.
type AliasMapping struct {
	Alias      string
	Expansion  string
	Executable string // First executable of the expansion
	ProjectID  string // "" when the executable is unknown
}

// ExecCount is one executable name with its invocation count.
type ExecCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ClassifyStatus summarizes the classify store contents.
type ClassifyStatus struct {
	Backend      DatabaseBackend
	Location     string // File path or DSN host, "" for none
	TotalRecords int
	Unclassified int
}

// HistoryStats summarizes the history store contents.
type HistoryStats struct {
	TotalCommands int
	Oldest        time.Time
	Newest        time.Time
}
