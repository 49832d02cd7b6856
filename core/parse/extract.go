package parse

import (
	"errors"
	"strings"
)

// errUnterminated is returned by splitWords when a quote never closes.
var errUnterminated = errors.New("unterminated quote")

// ExtractExecutable extracts the executable name from a single command
// segment. Wrapper commands, flags, and environment assignments are
// skipped, so "sudo apt install" yields "apt" and "env VAR=1 python x.py"
// yields "python". The second return value is false when the segment has
// no usable executable (empty, comment, assignments only, or a command
// substitution in command position).
func ExtractExecutable(segment string) (string, bool) {
	return segmentToken(segment, true)
}

// CommandToken is like ExtractExecutable but credits a wrapper command
// in command position as the segment's token instead of looking through
// it: "sudo tee /tmp/foo" yields "sudo". Used by the aggregation path,
// where the wrapper's own usage is what gets counted.
func CommandToken(segment string) (string, bool) {
	return segmentToken(segment, false)
}

func segmentToken(segment string, transparent bool) (string, bool) {
	segment = strings.TrimSpace(segment)
	if segment == "" || strings.HasPrefix(segment, "#") {
		return "", false
	}

	// Multiple assignments may precede the real command.
	for {
		rest, ok := stripAssignment(segment)
		if !ok {
			break
		}
		segment = strings.TrimSpace(rest)
	}
	if segment == "" {
		return "", false
	}

	tokens, err := splitWords(segment)
	if err != nil {
		// Unbalanced quotes: degrade to naive whitespace splitting
		// rather than failing the record.
		tokens = strings.Fields(segment)
	}

	for _, token := range tokens {
		if IsWrapper(token) {
			if transparent {
				continue
			}
			return token, true
		}
		if strings.HasPrefix(token, "-") {
			// Flag, possibly belonging to a wrapper (sudo -u user).
			continue
		}
		if isAssignment(token) {
			// Assignment after a wrapper (env VAR=1 python).
			continue
		}
		if strings.HasPrefix(token, "$(") || strings.HasPrefix(token, "`") {
			// Command substitution in command position is not a
			// literal executable name.
			return "", false
		}
		if exe := NormalizeExecutable(token); exe != "" {
			return exe, true
		}
		return "", false
	}

	return "", false
}

// NormalizeExecutable reduces a raw token to a program identifier by
// stripping any directory prefix: /usr/bin/curl -> curl, ./script.py ->
// script.py. Tilde and variable references are left literal; for a path
// like ~/bin/mytool the basename still applies.
func NormalizeExecutable(exe string) string {
	if idx := strings.LastIndexByte(exe, '/'); idx >= 0 {
		return exe[idx+1:]
	}
	return exe
}

// ExtractExecutables runs the full per-record pipeline: segment the
// command, reduce each segment to at most one token, and filter builtins
// (unless requested) and control keywords.
func ExtractExecutables(command string, includeBuiltins bool) []string {
	var executables []string

	for _, segment := range SplitSegments(command) {
		exe, ok := CommandToken(segment)
		if !ok {
			continue
		}
		if !includeBuiltins && IsBuiltin(exe) {
			continue
		}
		if IsControlKeyword(exe) {
			continue
		}
		executables = append(executables, exe)
	}

	return executables
}

// CountExecutables folds the extraction results of many commands into
// per-program invocation counts.
func CountExecutables(commands []string, includeBuiltins bool) map[string]int {
	counts := make(map[string]int)
	for _, command := range commands {
		for _, exe := range ExtractExecutables(command, includeBuiltins) {
			counts[exe]++
		}
	}
	return counts
}

// stripAssignment removes one leading NAME=value assignment and returns
// the remainder. The value may be quoted but must be non-whitespace.
func stripAssignment(s string) (string, bool) {
	i := 0
	for i < len(s) && isIdentByte(s[i], i == 0) {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '=' {
		return s, false
	}
	i++ // consume '='
	for i < len(s) && s[i] != ' ' && s[i] != '\t' {
		i++
	}
	return s[i:], true
}

func isAssignment(token string) bool {
	rest, ok := stripAssignment(token)
	return ok && rest == ""
}

func isIdentByte(c byte, first bool) bool {
	if c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
		return true
	}
	return !first && c >= '0' && c <= '9'
}

// splitWords tokenizes text with shell-like quoting rules: single quotes
// are literal, double quotes allow backslash escapes of " and \, and a
// backslash outside quotes escapes the next byte. It returns
// errUnterminated when a quote never closes so callers can fall back.
func splitWords(s string) ([]string, error) {
	var tokens []string
	var buf strings.Builder
	inToken := false

	flush := func() {
		if inToken {
			tokens = append(tokens, buf.String())
			buf.Reset()
			inToken = false
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n':
			flush()
		case '\'':
			inToken = true
			end := strings.IndexByte(s[i+1:], '\'')
			if end < 0 {
				return nil, errUnterminated
			}
			buf.WriteString(s[i+1 : i+1+end])
			i += end + 1
		case '"':
			inToken = true
			i++
			closed := false
			for i < len(s) {
				if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
					buf.WriteByte(s[i+1])
					i += 2
					continue
				}
				if s[i] == '"' {
					closed = true
					break
				}
				buf.WriteByte(s[i])
				i++
			}
			if !closed {
				return nil, errUnterminated
			}
		case '\\':
			inToken = true
			if i+1 < len(s) {
				buf.WriteByte(s[i+1])
				i++
			}
		default:
			inToken = true
			buf.WriteByte(c)
		}
	}
	flush()

	return tokens, nil
}
