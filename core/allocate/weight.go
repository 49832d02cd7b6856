package allocate

import "github.com/fragmede/fundcli/schema"

// Weight maps a project's aggregated usage to a scalar weight under the
// selected strategy. maxDuration is the largest total duration observed
// across all projects in the run, used to normalize the combined blend;
// callers must guard it to at least 1.
func Weight(stats *schema.ProjectStats, strategy schema.WeightStrategy, maxDuration int64) float64 {
	switch strategy {
	case schema.CountStrategy:
		return float64(stats.TotalCount())
	case schema.DurationStrategy:
		return float64(stats.TotalDurationNS())
	case schema.SuccessStrategy:
		// More reliable runs contribute more value.
		return float64(stats.TotalCount()) * (stats.SuccessRate() / 100)
	case schema.CombinedStrategy:
		// 50% count, 30% normalized duration, 20% success-weighted count.
		countWeight := float64(stats.TotalCount())
		durationWeight := 0.0
		if maxDuration > 0 {
			durationWeight = float64(stats.TotalDurationNS()) / float64(maxDuration)
		}
		successWeight := countWeight * (stats.SuccessRate() / 100)
		return 0.5*countWeight + 0.3*durationWeight*countWeight + 0.2*successWeight
	default:
		return 0
	}
}

// maxProjectDuration returns the largest per-project total duration,
// guarded to 1 so normalization never divides by zero.
func maxProjectDuration(projectStats map[string]*schema.ProjectStats) int64 {
	maxDuration := int64(1)
	for _, stats := range projectStats {
		if d := stats.TotalDurationNS(); d > maxDuration {
			maxDuration = d
		}
	}
	return maxDuration
}
