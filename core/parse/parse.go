// Package parse reduces raw shell command lines to executable names.
//
// It recognizes just enough shell syntax to avoid mis-segmentation:
// quotes, subshells and brace groups are tracked but never evaluated.
package parse

import "strings"

// SplitSegments splits a command into segments on top-level pipes and
// logical operators (|, &&, ||, ;). It does not split inside quotes,
// subshells or brace groups. Operators are consumed, not emitted;
// segments are trimmed and empty ones dropped.
//
// Unbalanced quotes or parens never fail: the scan keeps whatever state
// it is in until end of input, so an unterminated quote makes the whole
// remainder a single segment.
func SplitSegments(command string) []string {
	var segments []string
	var current strings.Builder
	depth := 0
	inSingle := false
	inDouble := false

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			segments = append(segments, s)
		}
		current.Reset()
	}

	for i := 0; i < len(command); i++ {
		c := command[i]

		switch {
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			current.WriteByte(c)
		case c == '"' && !inSingle:
			inDouble = !inDouble
			current.WriteByte(c)
		case inSingle || inDouble:
			current.WriteByte(c)
		case c == '(' || c == '{':
			depth++
			current.WriteByte(c)
		case c == ')' || c == '}':
			depth--
			current.WriteByte(c)
		case depth == 0:
			rest := command[i:]
			switch {
			case strings.HasPrefix(rest, "&&") || strings.HasPrefix(rest, "||"):
				flush()
				i++ // consume both operator bytes
			case c == '|':
				flush()
			case c == ';':
				flush()
			default:
				current.WriteByte(c)
			}
		default:
			current.WriteByte(c)
		}
	}
	flush()

	return segments
}
