package linkgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fragmede/fundcli/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDistribution spans all three platforms plus a URL-less project.
func testDistribution() *schema.DistributionResult {
	curl := &schema.Project{
		ID:   "curl",
		Name: "curl",
		DonationURLs: []schema.DonationURL{
			{URL: "https://opencollective.com/curl", Platform: "opencollective"},
		},
	}
	ripgrep := &schema.Project{
		ID:   "ripgrep",
		Name: "ripgrep",
		DonationURLs: []schema.DonationURL{
			{URL: "https://github.com/sponsors/BurntSushi", Platform: "github_sponsors"},
		},
	}
	git := &schema.Project{
		ID:   "git",
		Name: "Git",
		DonationURLs: []schema.DonationURL{
			{URL: "https://sfconservancy.org/donate/", Platform: "direct"},
		},
	}
	jq := &schema.Project{ID: "jq", Name: "jq"}

	return &schema.DistributionResult{
		TotalAmount: decimal.RequireFromString("10.00"),
		Recommendations: []schema.Recommendation{
			{Project: curl, Amount: decimal.RequireFromString("4.00")},
			{Project: ripgrep, Amount: decimal.RequireFromString("3.00")},
			{Project: git, Amount: decimal.RequireFromString("2.00")},
			{Project: jq, Amount: decimal.RequireFromString("1.00")},
		},
	}
}

func TestGenerateLinks(t *testing.T) {
	links := GenerateLinks(testDistribution())
	require.Len(t, links, 3, "URL-less projects should produce no link")

	oc := links[0]
	assert.Equal(t, "curl", oc.ProjectName)
	assert.Equal(t, PlatformOpenCollective, oc.Platform)
	assert.Equal(t, "https://opencollective.com/curl/donate?amount=4.00&interval=one-time", oc.URL)
	assert.True(t, oc.IsPrefilled)

	gh := links[1]
	assert.Equal(t, PlatformGitHubSponsors, gh.Platform)
	assert.Equal(t, "https://github.com/sponsors/BurntSushi", gh.URL)
	assert.False(t, gh.IsPrefilled)

	direct := links[2]
	assert.Equal(t, PlatformDirect, direct.Platform)
	assert.Equal(t, "https://sfconservancy.org/donate/", direct.URL)
	assert.False(t, direct.IsPrefilled)
}

func TestGenerateLinksMergesSharedURL(t *testing.T) {
	fsf := "https://my.fsf.org/donate"
	coreutils := &schema.Project{ID: "coreutils", Name: "GNU coreutils", DonationURLs: []schema.DonationURL{{URL: fsf}}}
	bash := &schema.Project{ID: "bash", Name: "Bash", DonationURLs: []schema.DonationURL{{URL: fsf}}}

	result := &schema.DistributionResult{
		TotalAmount: decimal.RequireFromString("5.00"),
		Recommendations: []schema.Recommendation{
			{Project: coreutils, Amount: decimal.RequireFromString("3.00")},
			{Project: bash, Amount: decimal.RequireFromString("2.00")},
		},
	}

	links := GenerateLinks(result)
	require.Len(t, links, 1)
	assert.Equal(t, "GNU coreutils, Bash", links[0].ProjectName)
	assert.Equal(t, fsf, links[0].URL)
	assert.Equal(t, "5.00", links[0].Amount.StringFixed(2))
}

func TestExtractPlatform(t *testing.T) {
	tests := []struct {
		url            string
		wantPlatform   string
		wantIdentifier string
	}{
		{"https://opencollective.com/curl", "opencollective", "curl"},
		{"https://opencollective.com/webpack/donate", "opencollective", "webpack"},
		{"https://opencollective.com/babel/", "opencollective", "babel"},
		{"https://github.com/sponsors/BurntSushi", "github_sponsors", "BurntSushi"},
		{"https://github.com/sponsors/junegunn/", "github_sponsors", "junegunn"},
		{"https://sfconservancy.org/donate/", "direct", "https://sfconservancy.org/donate/"},
	}

	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			platform, identifier := extractPlatform(tc.url)
			assert.Equal(t, tc.wantPlatform, platform)
			assert.Equal(t, tc.wantIdentifier, identifier)
		})
	}
}

func TestMarkdownReport(t *testing.T) {
	report := MarkdownReport(testDistribution())

	assert.Contains(t, report, "# Donation Recommendations")
	assert.Contains(t, report, "**Total: $10.00**")
	assert.Contains(t, report, "| Project | Amount | Platform | Link |")
	assert.Contains(t, report, "| curl | $4.00 | Open Collective (pre-filled) | [Donate](https://opencollective.com/curl/donate?amount=4.00&interval=one-time) |")
	assert.Contains(t, report, "| ripgrep | $3.00 | GitHub Sponsors | [Donate](https://github.com/sponsors/BurntSushi) |")
}

func TestWriteReport(t *testing.T) {
	t.Run("markdown by default", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.md")
		require.NoError(t, WriteReport(path, testDistribution()))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "# Donation Recommendations"))
	})

	t.Run("html by extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.html")
		require.NoError(t, WriteReport(path, testDistribution()))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		html := string(content)
		assert.Contains(t, html, "<!DOCTYPE html>")
		assert.Contains(t, html, "Total: $10.00")
		assert.Contains(t, html, `<a href="https://github.com/sponsors/BurntSushi" target="_blank">Donate</a>`)
		assert.Contains(t, html, "$4.00")
	})
}
