package parse

import (
	"strings"
	"testing"
)

// FuzzSplitSegments fuzzes the segmenter with arbitrary command strings.
func FuzzSplitSegments(f *testing.F) {
	seeds := []string{
		"ls -la",
		"cat foo | grep bar | wc -l",
		"make && make install; echo done",
		`echo "a | b" 'c && d'`,
		"echo $(date; hostname) || true",
		"echo 'unterminated",
		"((}{))",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, command string) {
		for _, seg := range SplitSegments(command) {
			if seg == "" {
				t.Error("empty segment emitted")
			}
			if seg != strings.TrimSpace(seg) {
				t.Errorf("untrimmed segment %q", seg)
			}
		}
	})
}

// FuzzExtractExecutables fuzzes the full pipeline; it must never panic
// and never return empty names regardless of input.
func FuzzExtractExecutables(f *testing.F) {
	seeds := []struct {
		command         string
		includeBuiltins bool
	}{
		{"sudo apt install vim", false},
		{"FOO=bar python script.py", false},
		{"cd /tmp && ls", true},
		{`grep "pat | tern" f.txt | sort -u`, false},
		{"$(which python) --version", false},
		{"\\ \"' \x00", false},
	}
	for _, seed := range seeds {
		f.Add(seed.command, seed.includeBuiltins)
	}

	f.Fuzz(func(t *testing.T, command string, includeBuiltins bool) {
		for _, exe := range ExtractExecutables(command, includeBuiltins) {
			if exe == "" {
				t.Errorf("empty executable from %q", command)
			}
		}
	})
}
