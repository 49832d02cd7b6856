package allocate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fragmede/fundcli/schema"
)

// AggregateByURL groups recommendations by primary donation URL,
// summing amounts. Projects sharing one endpoint (GNU projects all
// pointing at the FSF, say) merge into a single entry; projects with no
// donation URL each keep their own entry with an empty URL. Results are
// ordered by total amount descending.
func AggregateByURL(recs []schema.Recommendation) []schema.AggregatedRecommendation {
	index := make(map[string]int)
	var aggregated []schema.AggregatedRecommendation

	for _, rec := range recs {
		url := rec.Project.PrimaryDonationURL()
		key := url
		if url == "" {
			// No endpoint to merge on; keep the project separate.
			key = "\x00" + rec.Project.ID
		}

		i, ok := index[key]
		if !ok {
			i = len(aggregated)
			index[key] = i
			aggregated = append(aggregated, schema.AggregatedRecommendation{
				URL:         url,
				TotalAmount: decimal.Zero,
			})
		}

		agg := &aggregated[i]
		agg.Projects = append(agg.Projects, rec.Project)
		agg.TotalAmount = agg.TotalAmount.Add(rec.Amount)
		agg.TotalPercentage += rec.Percentage
		agg.TotalUsageCount += rec.UsageCount
		agg.AnyCapped = agg.AnyCapped || rec.CappedAtMinimum
	}

	sort.SliceStable(aggregated, func(i, j int) bool {
		return aggregated[i].TotalAmount.GreaterThan(aggregated[j].TotalAmount)
	})
	return aggregated
}
