package aliases

import (
	"testing"

	"github.com/fragmede/fundcli/schema"
	"github.com/stretchr/testify/assert"
)

// fakeRegistry resolves executables from a fixed table.
type fakeRegistry struct {
	projects map[string]string // executable -> project id
}

func (r *fakeRegistry) ProjectFor(exe string) (*schema.Project, bool) {
	id, ok := r.projects[exe]
	if !ok {
		return nil, false
	}
	return &schema.Project{ID: id, Name: id}, true
}

func (r *fakeRegistry) Project(string) (*schema.Project, bool) { return nil, false }
func (r *fakeRegistry) AllProjects() []*schema.Project         { return nil }
func (r *fakeRegistry) Search(string) []*schema.Project        { return nil }
func (r *fakeRegistry) AddMapping(string, string)              {}

func TestParseBashZshAliases(t *testing.T) {
	output := `alias gs='git status'
alias ll='ls -la'
v=nvim
alias weird.name:x="echo hi"
not an alias line
`
	aliases := parseBashZshAliases(output)
	assert.Equal(t, map[string]string{
		"gs":           "git status",
		"ll":           "ls -la",
		"v":            "nvim",
		"weird.name:x": "echo hi",
	}, aliases)
}

func TestParseFishAliases(t *testing.T) {
	output := `alias gs 'git status'
alias ll ls -la
alias v nvim
`
	aliases := parseFishAliases(output)
	assert.Equal(t, map[string]string{
		"gs": "git status",
		"ll": "ls -la",
		"v":  "nvim",
	}, aliases)
}

func TestResolveExpansion(t *testing.T) {
	tests := []struct {
		name      string
		expansion string
		want      string
	}{
		{"simple", "git status", "git"},
		{"path prefix", "/usr/bin/python3 -m http.server", "python3"},
		{"wrapper is kept", "sudo systemctl", "sudo"},
		{"quoted token", `"git" commit`, "git"},
		{"empty", "   ", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveExpansion(tc.expansion))
		})
	}
}

func TestMappingsFrom(t *testing.T) {
	registry := &fakeRegistry{projects: map[string]string{
		"git":  "git",
		"nvim": "neovim",
		"ls":   "coreutils",
	}}

	shellAliases := map[string]string{
		"gs":   "git status",
		"v":    "nvim",
		"myls": "eza -l",
		"ls":   "ls --color=auto", // shadows a known executable
	}

	mappings := MappingsFrom(shellAliases, registry)

	assert.Equal(t, []schema.AliasMapping{
		{Alias: "gs", Expansion: "git status", Executable: "git", ProjectID: "git"},
		{Alias: "myls", Expansion: "eza -l", Executable: "eza", ProjectID: ""},
		{Alias: "v", Expansion: "nvim", Executable: "nvim", ProjectID: "neovim"},
	}, mappings)
}

func TestMappingsFromFollowsChains(t *testing.T) {
	registry := &fakeRegistry{projects: map[string]string{"git": "git"}}

	// g -> gs -> git status
	mappings := MappingsFrom(map[string]string{
		"gs": "git status",
		"g":  "gs",
	}, registry)

	var g, gs *schema.AliasMapping
	for i := range mappings {
		switch mappings[i].Alias {
		case "g":
			g = &mappings[i]
		case "gs":
			gs = &mappings[i]
		}
	}
	if assert.NotNil(t, g) {
		assert.Equal(t, "git", g.Executable)
		assert.Equal(t, "git", g.ProjectID)
	}
	if assert.NotNil(t, gs) {
		assert.Equal(t, "git", gs.Executable)
	}
}

func TestDetectShell(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")
	assert.Equal(t, "zsh", DetectShell())

	t.Setenv("SHELL", "/usr/local/bin/fish")
	assert.Equal(t, "fish", DetectShell())

	t.Setenv("SHELL", "/bin/tcsh")
	assert.Equal(t, "unknown", DetectShell())

	t.Setenv("SHELL", "")
	assert.Equal(t, "unknown", DetectShell())
}
