// Package allocate turns aggregated usage into exact-sum donation
// amounts under minimum-floor and maximum-count constraints.
package allocate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fragmede/fundcli/schema"
)

type weightedProject struct {
	stats  *schema.ProjectStats
	weight float64
}

// Distribute allocates total across the analyzed projects.
//
// Projects are weighted under strategy and sorted by weight descending.
// The top maxProjects receive proportional shares rounded half-up to
// cents; shares below minAmount are set aside and redistributed among
// the remaining recommendations, which are then clamped to minAmount,
// rescaled if the sum overshot, and finally corrected by a residual
// cent adjustment to the highest-weighted recommendation so the amounts
// always sum to exactly total.
//
// A non-positive total is accepted and degenerates without error;
// constraining it is the caller's concern.
func Distribute(
	analysis *schema.UsageAnalysis,
	total decimal.Decimal,
	strategy schema.WeightStrategy,
	minAmount decimal.Decimal,
	maxProjects int,
) *schema.DistributionResult {
	result := &schema.DistributionResult{TotalAmount: total}
	if len(analysis.ProjectStats) == 0 {
		return result
	}

	maxDuration := maxProjectDuration(analysis.ProjectStats)

	// Map order is random, so fix a name order first; the stable sort
	// then breaks weight ties alphabetically, run after run.
	names := make([]string, 0, len(analysis.ProjectStats))
	for name := range analysis.ProjectStats {
		names = append(names, name)
	}
	sort.Strings(names)

	weights := make([]weightedProject, 0, len(names))
	for _, name := range names {
		stats := analysis.ProjectStats[name]
		weights = append(weights, weightedProject{stats, Weight(stats, strategy, maxDuration)})
	}
	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].weight > weights[j].weight
	})

	top := weights
	if maxProjects >= 0 && len(weights) > maxProjects {
		top = weights[:maxProjects]
	}
	beyond := weights[len(top):]

	totalWeight := 0.0
	for _, w := range top {
		totalWeight += w.weight
	}
	if totalWeight == 0 {
		for _, w := range weights {
			result.Excluded = append(result.Excluded, schema.Exclusion{
				Project: w.stats.Project,
				Reason:  schema.ReasonZeroWeight,
			})
		}
		return result
	}

	// First pass: proportional shares, setting aside sub-threshold ones.
	var recs []schema.Recommendation
	var belowProjects []*schema.Project
	setAside := decimal.Zero

	for _, w := range top {
		proportion := w.weight / totalWeight
		amount := total.Mul(decimal.NewFromFloat(proportion)).Round(2)

		if amount.LessThan(minAmount) {
			belowProjects = append(belowProjects, w.stats.Project)
			setAside = setAside.Add(amount)
			continue
		}
		recs = append(recs, schema.Recommendation{
			Project:    w.stats.Project,
			Amount:     amount,
			Percentage: proportion * 100,
			UsageCount: w.stats.TotalCount(),
			Weight:     w.weight,
		})
	}

	for _, p := range belowProjects {
		result.Excluded = append(result.Excluded, schema.Exclusion{
			Project: p,
			Reason:  schema.ReasonBelowMinimum,
		})
	}
	for _, w := range beyond {
		result.Excluded = append(result.Excluded, schema.Exclusion{
			Project: w.stats.Project,
			Reason:  schema.ReasonBeyondMaximum,
		})
	}

	// Hand the set-aside sum to the surviving recommendations, in
	// proportion to their own weights.
	if len(belowProjects) > 0 && len(recs) > 0 {
		recWeight := 0.0
		for i := range recs {
			recWeight += recs[i].Weight
		}
		if recWeight > 0 {
			for i := range recs {
				extra := setAside.Mul(decimal.NewFromFloat(recs[i].Weight / recWeight)).Round(2)
				recs[i].Amount = recs[i].Amount.Add(extra)
			}
		}
	}

	// Clamp anything still under the floor.
	for i := range recs {
		if recs[i].Amount.LessThan(minAmount) {
			recs[i].Amount = minAmount
			recs[i].CappedAtMinimum = true
		}
	}

	// Clamping can overshoot the total; scale back down.
	current := decimal.Zero
	for i := range recs {
		current = current.Add(recs[i].Amount)
	}
	if current.GreaterThan(total) {
		scale := total.Div(current)
		for i := range recs {
			recs[i].Amount = recs[i].Amount.Mul(scale).Round(2)
		}
	}

	// Residual cents from rounding land on the highest-weighted
	// recommendation, guaranteeing an exact sum.
	if len(recs) > 0 {
		final := decimal.Zero
		for i := range recs {
			final = final.Add(recs[i].Amount)
		}
		if diff := total.Sub(final); !diff.IsZero() {
			recs[0].Amount = recs[0].Amount.Add(diff)
		}
	}

	result.Recommendations = recs
	return result
}
