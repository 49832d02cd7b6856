// Package aliases probes the user's shell for aliases and resolves
// them to the projects behind their expansions.
package aliases

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/fragmede/fundcli/core/parse"
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/schema"
)

// shellTimeout bounds the interactive shell probe. Sourcing rc files
// can be slow but must never hang the CLI.
const shellTimeout = 5 * time.Second

// aliasLine matches one name=value alias definition from bash or zsh.
var aliasLine = regexp.MustCompile(`^([A-Za-z0-9_.:-]+)=(.+)$`)

// guardFragments are env var name fragments used by rc files to skip
// re-sourcing. They are removed so the probe shell loads its aliases.
var guardFragments = []string{"ALREADY_RUN", "_SOURCED", "_LOADED", "_INITIALIZED"}

// DetectShell reads $SHELL and reduces it to bash, zsh, fish or unknown.
func DetectShell() string {
	name := filepath.Base(os.Getenv("SHELL"))
	switch name {
	case "bash", "zsh", "fish":
		return name
	}
	return "unknown"
}

// GetAliases returns the active aliases of the given shell, mapping
// alias name to its expansion. An unknown shell yields no aliases.
func GetAliases(ctx context.Context, shell string) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, shellTimeout)
	defer cancel()

	var cmd *exec.Cmd
	switch shell {
	case "bash", "zsh":
		// -i so the shell sources its rc files and defines aliases
		cmd = exec.CommandContext(ctx, shell, "-ic", "alias")
	case "fish":
		cmd = exec.CommandContext(ctx, "fish", "-c", "alias")
	default:
		return nil, nil
	}
	cmd.Env = cleanShellEnv()

	out, err := cmd.Output()
	if err != nil {
		// Missing shell or rc file failure means no aliases, not a
		// hard error for the whole command
		return nil, nil
	}

	if shell == "fish" {
		return parseFishAliases(string(out)), nil
	}
	return parseBashZshAliases(string(out)), nil
}

// cleanShellEnv strips rc guard variables from the environment.
func cleanShellEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if containsAny(name, guardFragments) {
			continue
		}
		env = append(env, kv)
	}
	return env
}

func containsAny(s string, fragments []string) bool {
	for _, fragment := range fragments {
		if strings.Contains(s, fragment) {
			return true
		}
	}
	return false
}

// parseBashZshAliases parses `alias` output from bash or zsh.
// Bash prints "alias name='value'", zsh prints "name='value'" or
// "name=value".
func parseBashZshAliases(output string) map[string]string {
	aliases := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "alias ")

		m := aliasLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		aliases[m[1]] = stripQuotes(m[2])
	}
	return aliases
}

// parseFishAliases parses `alias` output from fish, which prints
// "alias name 'value'" or "alias name value".
func parseFishAliases(output string) map[string]string {
	aliases := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "alias ")

		name, value, ok := strings.Cut(line, " ")
		if !ok || name == "" {
			continue
		}
		aliases[name] = stripQuotes(strings.TrimSpace(value))
	}
	return aliases
}

// stripQuotes removes one pair of surrounding quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// ResolveExpansion reduces an alias expansion to its base executable
// name. The first token wins and wrappers are NOT skipped, because the
// alias itself is the thing being resolved (alias suod='sudo' resolves
// to sudo).
func ResolveExpansion(expansion string) string {
	fields := strings.Fields(strings.TrimSpace(expansion))
	if len(fields) == 0 {
		return ""
	}
	return parse.NormalizeExecutable(stripQuotes(fields[0]))
}

// BuildMappings probes the current shell and links each alias to the
// project behind its expansion. Aliases that shadow a known executable
// are dropped. The result is ordered by alias name.
func BuildMappings(ctx context.Context, registry contract.Registry) ([]schema.AliasMapping, error) {
	shellAliases, err := GetAliases(ctx, DetectShell())
	if err != nil {
		return nil, err
	}
	return MappingsFrom(shellAliases, registry), nil
}

// MappingsFrom resolves a raw alias table against the registry.
func MappingsFrom(shellAliases map[string]string, registry contract.Registry) []schema.AliasMapping {
	resolved := make(map[string]string, len(shellAliases))
	for name, expansion := range shellAliases {
		if exe := ResolveExpansion(expansion); exe != "" {
			resolved[name] = exe
		}
	}

	// Follow alias chains one level (alias pointing at another alias)
	for range 2 {
		changed := false
		for name, exe := range resolved {
			if target, ok := resolved[exe]; ok && exe != name {
				resolved[name] = target
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	var mappings []schema.AliasMapping
	for name, exe := range resolved {
		// An alias shadowing a known executable stays attributed to
		// that executable's own project
		if _, known := registry.ProjectFor(name); known {
			continue
		}

		mapping := schema.AliasMapping{
			Alias:      name,
			Expansion:  shellAliases[name],
			Executable: exe,
		}
		if project, ok := registry.ProjectFor(exe); ok {
			mapping.ProjectID = project.ID
		}
		mappings = append(mappings, mapping)
	}

	sort.Slice(mappings, func(i, j int) bool { return mappings[i].Alias < mappings[j].Alias })
	return mappings
}
