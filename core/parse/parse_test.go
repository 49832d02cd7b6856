package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSplitSegments tests splitting commands on top-level operators.
func TestSplitSegments(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		expected []string
	}{
		{
			name:     "simple command",
			command:  "ls -la",
			expected: []string{"ls -la"},
		},
		{
			name:     "pipe",
			command:  "cat foo | grep bar",
			expected: []string{"cat foo", "grep bar"},
		},
		{
			name:     "multiple pipes",
			command:  "cat foo | grep bar | wc -l",
			expected: []string{"cat foo", "grep bar", "wc -l"},
		},
		{
			name:     "and operator",
			command:  "make && make install",
			expected: []string{"make", "make install"},
		},
		{
			name:     "or operator",
			command:  "test -f foo || echo missing",
			expected: []string{"test -f foo", "echo missing"},
		},
		{
			name:     "semicolon",
			command:  "cd /tmp; ls",
			expected: []string{"cd /tmp", "ls"},
		},
		{
			name:     "pipe inside double quotes",
			command:  `echo "hello | world"`,
			expected: []string{`echo "hello | world"`},
		},
		{
			name:     "operator inside single quotes",
			command:  "echo 'a && b'",
			expected: []string{"echo 'a && b'"},
		},
		{
			name:     "semicolon inside command substitution",
			command:  "echo $(date; hostname)",
			expected: []string{"echo $(date; hostname)"},
		},
		{
			name:     "pipe inside brace group",
			command:  "{ cat foo | wc; } ; ls",
			expected: []string{"{ cat foo | wc; }", "ls"},
		},
		{
			name:     "trailing operator",
			command:  "ls ;",
			expected: []string{"ls"},
		},
		{
			name:     "empty input",
			command:  "",
			expected: nil,
		},
		{
			name:     "whitespace only",
			command:  "   ",
			expected: nil,
		},
		{
			name:     "unterminated quote keeps remainder together",
			command:  "echo 'abc | def",
			expected: []string{"echo 'abc | def"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitSegments(tt.command))
		})
	}
}

// TestExtractExecutable tests executable extraction from single segments.
func TestExtractExecutable(t *testing.T) {
	tests := []struct {
		name     string
		segment  string
		expected string
		found    bool
	}{
		{
			name:     "simple command",
			segment:  "ls -la",
			expected: "ls",
			found:    true,
		},
		{
			name:     "absolute path",
			segment:  "/usr/bin/curl http://example.com",
			expected: "curl",
			found:    true,
		},
		{
			name:     "relative path",
			segment:  "./script.py",
			expected: "script.py",
			found:    true,
		},
		{
			name:     "sudo wrapper",
			segment:  "sudo apt install vim",
			expected: "apt",
			found:    true,
		},
		{
			name:     "sudo with flag takes first bare word",
			segment:  "sudo -u postgres psql",
			expected: "postgres",
			found:    true,
		},
		{
			name:     "env wrapper with assignment",
			segment:  "env VAR=1 python script.py",
			expected: "python",
			found:    true,
		},
		{
			name:     "time wrapper",
			segment:  "time make",
			expected: "make",
			found:    true,
		},
		{
			name:     "leading variable assignment",
			segment:  "FOO=bar python script.py",
			expected: "python",
			found:    true,
		},
		{
			name:     "multiple leading assignments",
			segment:  "FOO=bar BAZ=qux go test",
			expected: "go",
			found:    true,
		},
		{
			name:    "comment",
			segment: "# this is a comment",
		},
		{
			name:    "empty",
			segment: "",
		},
		{
			name:    "whitespace only",
			segment: "   ",
		},
		{
			name:    "assignment only",
			segment: "FOO=bar",
		},
		{
			name:    "command substitution in command position",
			segment: "$(which python) --version",
		},
		{
			name:    "backtick substitution in command position",
			segment: "`which python` --version",
		},
		{
			name:     "unbalanced quote falls back to whitespace split",
			segment:  `echo "unterminated foo`,
			expected: "echo",
			found:    true,
		},
		{
			name:     "quoted argument",
			segment:  `grep "some pattern" file.txt`,
			expected: "grep",
			found:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exe, ok := ExtractExecutable(tt.segment)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, exe)
		})
	}
}

// TestCommandToken tests the aggregation-side token rule, which credits
// a leading wrapper instead of looking through it.
func TestCommandToken(t *testing.T) {
	tests := []struct {
		name     string
		segment  string
		expected string
		found    bool
	}{
		{
			name:     "plain command",
			segment:  "ls -la",
			expected: "ls",
			found:    true,
		},
		{
			name:     "wrapper credited",
			segment:  "sudo tee /tmp/foo",
			expected: "sudo",
			found:    true,
		},
		{
			name:     "wrapper after assignment",
			segment:  "FOO=bar env python",
			expected: "env",
			found:    true,
		},
		{
			name:    "comment",
			segment: "# nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exe, ok := CommandToken(tt.segment)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, exe)
		})
	}
}

// TestNormalizeExecutable tests path stripping.
func TestNormalizeExecutable(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{
			name:     "bare name",
			token:    "curl",
			expected: "curl",
		},
		{
			name:     "absolute path",
			token:    "/usr/bin/curl",
			expected: "curl",
		},
		{
			name:     "relative path",
			token:    "./foo.py",
			expected: "foo.py",
		},
		{
			name:     "home path",
			token:    "~/bin/mytool",
			expected: "mytool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeExecutable(tt.token))
		})
	}
}

// TestExtractExecutables tests the full per-record pipeline.
func TestExtractExecutables(t *testing.T) {
	tests := []struct {
		name            string
		command         string
		includeBuiltins bool
		expected        []string
	}{
		{
			name:     "simple",
			command:  "git status",
			expected: []string{"git"},
		},
		{
			name:     "pipe chain",
			command:  "cat foo.txt | grep error | wc -l",
			expected: []string{"cat", "grep", "wc"},
		},
		{
			name:     "and chain repeats",
			command:  "make && make install",
			expected: []string{"make", "make"},
		},
		{
			name:     "wrapper credited in its segment",
			command:  "cat /etc/passwd | sudo tee /tmp/foo",
			expected: []string{"cat", "sudo"},
		},
		{
			name:     "builtins excluded",
			command:  "cd /tmp && ls",
			expected: []string{"ls"},
		},
		{
			name:            "builtins included",
			command:         "cd /tmp && ls",
			includeBuiltins: true,
			expected:        []string{"cd", "ls"},
		},
		{
			name:     "control keyword segments yield nothing",
			command:  "if true; then ls; fi",
			expected: nil,
		},
		{
			name:     "comment yields nothing",
			command:  "# just a note",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractExecutables(tt.command, tt.includeBuiltins))
		})
	}
}

// TestCountExecutables tests folding many commands into counts.
func TestCountExecutables(t *testing.T) {
	commands := []string{
		"git status",
		"git commit -m msg",
		"cat foo | grep bar",
		"cd /tmp",
	}

	counts := CountExecutables(commands, false)

	assert.Equal(t, 2, counts["git"])
	assert.Equal(t, 1, counts["cat"])
	assert.Equal(t, 1, counts["grep"])
	assert.NotContains(t, counts, "cd")
}

// TestSplitSegmentsNeverEmpty checks that emitted segments are trimmed
// and non-empty for a spread of operator-heavy inputs.
func TestSplitSegmentsNeverEmpty(t *testing.T) {
	commands := []string{
		"a && && b",
		"; ; ;",
		"| foo |",
		"a;b;c",
		"   x   ||   y   ",
	}

	for _, cmd := range commands {
		for _, seg := range SplitSegments(cmd) {
			assert.NotEmpty(t, seg)
			assert.Equal(t, seg, strings.TrimSpace(seg))
		}
	}
}
