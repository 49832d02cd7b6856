package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewBundled tests that the embedded database loads and indexes.
func TestNewBundled(t *testing.T) {
	r, err := NewBundled()
	require.NoError(t, err)
	assert.NotEmpty(t, r.AllProjects())

	project, ok := r.ProjectFor("curl")
	require.True(t, ok)
	assert.Equal(t, "curl", project.ID)
	assert.Equal(t, "https://opencollective.com/curl", project.PrimaryDonationURL())

	// Shared executables resolve to their umbrella project.
	project, ok = r.ProjectFor("ls")
	require.True(t, ok)
	assert.Equal(t, "coreutils", project.ID)

	_, ok = r.ProjectFor("definitely-not-a-tool")
	assert.False(t, ok)
}

// TestLoad tests parsing and defaulting of project data.
func TestLoad(t *testing.T) {
	data := []byte(`
mytool:
  description: Does things
shared:
  name: Shared Tools
  executables: [alpha, beta]
  donation_urls:
    - platform: opencollective
      url: https://opencollective.com/shared
`)
	r, err := Load(data)
	require.NoError(t, err)

	// Missing name falls back to the id, missing executables to [id].
	mytool, ok := r.Project("mytool")
	require.True(t, ok)
	assert.Equal(t, "mytool", mytool.Name)
	assert.Equal(t, []string{"mytool"}, mytool.Executables)
	assert.Equal(t, "", mytool.PrimaryDonationURL())

	project, ok := r.ProjectFor("beta")
	require.True(t, ok)
	assert.Equal(t, "shared", project.ID)
}

// TestLoadRejectsGarbage tests the parse error path.
func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load([]byte("[:::"))
	assert.Error(t, err)
}

// TestSearch tests substring matching across fields.
func TestSearch(t *testing.T) {
	r, err := NewBundled()
	require.NoError(t, err)

	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "by id",
			query:    "ripgrep",
			expected: "ripgrep",
		},
		{
			name:     "by executable",
			query:    "rg",
			expected: "ripgrep",
		},
		{
			name:     "by description",
			query:    "fuzzy finder",
			expected: "fzf",
		},
		{
			name:     "case insensitive name",
			query:    "POSTGRES",
			expected: "postgresql",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := r.Search(tt.query)
			require.NotEmpty(t, results)
			found := false
			for _, p := range results {
				if p.ID == tt.expected {
					found = true
				}
			}
			assert.True(t, found, "expected %s in results", tt.expected)
		})
	}

	assert.Empty(t, r.Search("zzzzzz-nothing"))
}

// TestAddMapping tests the custom mapping layer.
func TestAddMapping(t *testing.T) {
	r, err := NewBundled()
	require.NoError(t, err)

	r.AddMapping("g", "git")
	project, ok := r.ProjectFor("g")
	require.True(t, ok)
	assert.Equal(t, "git", project.ID)

	// Unknown target ids are ignored.
	r.AddMapping("x", "no-such-project")
	_, ok = r.ProjectFor("x")
	assert.False(t, ok)
}
