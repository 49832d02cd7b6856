// Package linkgen turns donation recommendations into clickable
// donation URLs and shareable reports.
//
// Most donation platforms do not support programmatic one-time
// donations via API, so the practical integration is prefilled URLs
// the user completes manually. Open Collective carries the amount in
// the URL; GitHub Sponsors does not.
package linkgen

import (
	"net/url"
	"strings"

	"github.com/fragmede/fundcli/core/allocate"
	"github.com/fragmede/fundcli/schema"
	"github.com/shopspring/decimal"
)

// Platform display names.
const (
	PlatformOpenCollective = "Open Collective"
	PlatformGitHubSponsors = "GitHub Sponsors"
	PlatformDirect         = "Direct"
)

// GenerateLinks builds one donation link per distinct donation URL.
// Projects sharing a URL (the GNU projects all point at the FSF) are
// combined into a single link with the summed amount. Recommendations
// without a donation URL produce no link.
func GenerateLinks(result *schema.DistributionResult) []schema.DonationLink {
	aggregated := allocate.AggregateByURL(result.Recommendations)

	var links []schema.DonationLink
	for _, agg := range aggregated {
		if agg.URL == "" {
			continue
		}

		names := make([]string, 0, len(agg.Projects))
		for _, project := range agg.Projects {
			names = append(names, project.Name)
		}
		name := strings.Join(names, ", ")

		platform, identifier := extractPlatform(agg.URL)
		switch platform {
		case "opencollective":
			links = append(links, schema.DonationLink{
				ProjectName: name,
				Platform:    PlatformOpenCollective,
				URL:         opencollectiveURL(identifier, agg.TotalAmount),
				Amount:      agg.TotalAmount,
				IsPrefilled: true,
			})
		case "github_sponsors":
			links = append(links, schema.DonationLink{
				ProjectName: name,
				Platform:    PlatformGitHubSponsors,
				URL:         githubSponsorsURL(identifier),
				Amount:      agg.TotalAmount,
				IsPrefilled: false,
			})
		default:
			links = append(links, schema.DonationLink{
				ProjectName: name,
				Platform:    PlatformDirect,
				URL:         agg.URL,
				Amount:      agg.TotalAmount,
				IsPrefilled: false,
			})
		}
	}
	return links
}

// extractPlatform classifies a donation URL and pulls out the platform
// identifier (collective slug or sponsors username).
func extractPlatform(donationURL string) (platform, identifier string) {
	switch {
	case strings.Contains(donationURL, "opencollective.com"):
		parts := strings.Split(strings.TrimRight(donationURL, "/"), "/")
		slug := parts[len(parts)-1]
		if (slug == "donate" || slug == "") && len(parts) >= 2 {
			slug = parts[len(parts)-2]
		}
		return "opencollective", slug

	case strings.Contains(donationURL, "github.com/sponsors"):
		parts := strings.Split(strings.TrimRight(donationURL, "/"), "/")
		return "github_sponsors", parts[len(parts)-1]

	default:
		return "direct", donationURL
	}
}

// opencollectiveURL builds a prefilled one-time donation URL like
// https://opencollective.com/curl/donate?amount=5.00&interval=one-time
func opencollectiveURL(slug string, amount decimal.Decimal) string {
	params := url.Values{}
	params.Set("amount", amount.StringFixed(2))
	params.Set("interval", "one-time")
	return "https://opencollective.com/" + slug + "/donate?" + params.Encode()
}

// githubSponsorsURL builds a sponsors URL. GitHub does not support
// amount prefill for one-time donations, the user picks the tier.
func githubSponsorsURL(username string) string {
	return "https://github.com/sponsors/" + username
}
