package classify

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/fragmede/fundcli/schema"
)

// Probe limits. The file probe can stat large binaries, help probes
// can hang on interactive tools.
const (
	fileProbeTimeout  = 5 * time.Second
	helpProbeTimeout  = 2 * time.Second
	copyrightMaxLines = 50
	helpMaxLines      = 10
)

// copyrightPatterns detect copyright or authorship lines in scripts.
var copyrightPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\(c\)\s*\d{4}`),
	regexp.MustCompile(`(?i)©\s*\d{4}`),
	regexp.MustCompile(`(?i)copyright\s+\d{4}`),
	regexp.MustCompile(`(?i)copyright\s+\(c\)`),
	regexp.MustCompile(`(?i)author:\s*\S+`),
	regexp.MustCompile(`(?i)license:\s*\S+`),
	regexp.MustCompile(`(?i)mit license`),
	regexp.MustCompile(`(?i)apache license`),
	regexp.MustCompile(`(?i)gnu general public license`),
	regexp.MustCompile(`(?i)\bgpl\b`),
	regexp.MustCompile(`(?i)\bbsd\b.*license`),
	regexp.MustCompile(`(?i)all rights reserved`),
}

// systemDirs indicate OS-managed commands.
var systemDirs = []string{
	"/usr/bin",
	"/bin",
	"/usr/sbin",
	"/sbin",
	"/System",
}

// packageManagerFragments mark paths owned by a package manager.
var packageManagerFragments = []string{
	"/homebrew/",
	"/.nvm/",
	"/.npm/",
	"/.yarn/",
	"/miniconda/",
	"/anaconda/",
	"/.cargo/",
}

// macOSBuiltins are macOS commands that may not answer --help.
var macOSBuiltins = map[string]struct{}{
	"open": {}, "pbcopy": {}, "pbpaste": {}, "say": {}, "osascript": {}, "defaults": {},
	"launchctl": {}, "diskutil": {}, "hdiutil": {}, "ditto": {}, "plutil": {},
	"security": {}, "codesign": {}, "spctl": {}, "xattr": {}, "chflags": {},
	"mdls": {}, "mdfind": {}, "mdutil": {}, "screencapture": {}, "sips": {},
	"caffeinate": {}, "pmset": {}, "systemsetup": {}, "networksetup": {},
}

// Investigate probes one executable and returns a record ready for
// the classify store. It never fails; probes that error leave their
// fields empty.
func Investigate(ctx context.Context, name string) *schema.UnknownRecord {
	path, err := exec.LookPath(name)
	if err != nil {
		return &schema.UnknownRecord{
			Executable:     name,
			FileType:       "not_found",
			Classification: schema.NotFoundClass,
		}
	}

	fileType := probeFileType(ctx, path)

	var copyrightLine string
	if fileType == "script" {
		copyrightLine = scanCopyright(path)
	}

	helpText := probeHelp(ctx, name)

	class, _ := suggestClassification(name, path, copyrightLine)

	return &schema.UnknownRecord{
		Executable:     name,
		Path:           path,
		FileType:       fileType,
		Classification: class,
		CopyrightFound: copyrightLine,
		HelpText:       helpText,
	}
}

// probeFileType runs the file command against a path and reduces its
// verdict to script, binary or unknown.
func probeFileType(ctx context.Context, path string) string {
	ctx, cancel := context.WithTimeout(ctx, fileProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "file", path).Output()
	if err != nil {
		return "unknown"
	}

	verdict := strings.ToLower(string(out))
	switch {
	case strings.Contains(verdict, "script") || strings.Contains(verdict, "text"):
		return "script"
	case strings.Contains(verdict, "executable") || strings.Contains(verdict, "mach-o") || strings.Contains(verdict, "elf"):
		return "binary"
	default:
		return "unknown"
	}
}

// scanCopyright looks for a copyright or license line near the top of
// a script. It returns the first matching line, truncated.
func scanCopyright(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for i := 0; i < copyrightMaxLines && scanner.Scan(); i++ {
		line := scanner.Text()
		for _, pattern := range copyrightPatterns {
			if pattern.MatchString(line) {
				line = strings.TrimSpace(line)
				if len(line) > 200 {
					line = line[:200]
				}
				return line
			}
		}
	}
	return ""
}

// probeHelp captures the first lines of --help or -h output.
func probeHelp(ctx context.Context, name string) string {
	for _, flag := range []string{"--help", "-h"} {
		helpCtx, cancel := context.WithTimeout(ctx, helpProbeTimeout)
		out, err := exec.CommandContext(helpCtx, name, flag).CombinedOutput()
		cancel()
		// Some tools print help and exit nonzero, keep the output
		if len(out) == 0 && err != nil {
			continue
		}

		text := strings.TrimSpace(string(out))
		if len(text) <= 10 {
			continue
		}
		lines := strings.Split(text, "\n")
		if len(lines) > helpMaxLines {
			lines = lines[:helpMaxLines]
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

// suggestClassification guesses where an executable came from.
func suggestClassification(name, path, copyrightLine string) (schema.Classification, string) {
	if path == "" {
		return schema.NotFoundClass, "executable not found in PATH"
	}

	if _, ok := macOSBuiltins[name]; ok {
		return schema.SystemClass, "macOS built-in command"
	}

	if isSystemPath(path) {
		if copyrightLine != "" {
			return schema.ThirdPartyClass, fmt.Sprintf("system path with copyright: %s", truncate(copyrightLine, 50))
		}
		return schema.SystemClass, fmt.Sprintf("system path: %s", path)
	}

	if isUserDirectory(path) && copyrightLine == "" {
		return schema.UserClass, "user directory, no copyright detected"
	}

	if copyrightLine != "" {
		return schema.ThirdPartyClass, fmt.Sprintf("copyright found: %s", truncate(copyrightLine, 50))
	}

	if isPackageManagerPath(path) {
		return schema.ThirdPartyClass, "installed via package manager"
	}

	return schema.UnknownClass, "unable to determine classification"
}

// isSystemPath reports whether a path sits under an OS directory.
func isSystemPath(path string) bool {
	for _, dir := range systemDirs {
		if strings.HasPrefix(path, dir) {
			return true
		}
	}
	return false
}

// isUserDirectory reports whether a path sits in the user's home,
// excluding package manager territory inside it.
func isUserDirectory(path string) bool {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return false
	}
	if !strings.HasPrefix(path, home) {
		return false
	}

	lower := strings.ToLower(path)
	if strings.Contains(lower, "/.local/share/") {
		return false
	}
	for _, fragment := range packageManagerFragments {
		if strings.Contains(lower, fragment) {
			return false
		}
	}
	return true
}

// isPackageManagerPath reports whether a path is owned by a package manager.
func isPackageManagerPath(path string) bool {
	lower := strings.ToLower(path)
	for _, fragment := range packageManagerFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// truncate trims a string to at most n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
