package classify

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fragmede/fundcli/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestigateNotFound(t *testing.T) {
	rec := Investigate(context.Background(), "definitely-not-a-real-command-xyz")
	require.NotNil(t, rec)
	assert.Equal(t, "definitely-not-a-real-command-xyz", rec.Executable)
	assert.Empty(t, rec.Path)
	assert.Equal(t, "not_found", rec.FileType)
	assert.Equal(t, schema.NotFoundClass, rec.Classification)
}

func TestScanCopyright(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "copyright line",
			content: "#!/bin/sh\n# Copyright 2019 Example Corp\necho hi\n",
			want:    "# Copyright 2019 Example Corp",
		},
		{
			name:    "license line",
			content: "#!/usr/bin/env python\n# License: MIT\nprint('hi')\n",
			want:    "# License: MIT",
		},
		{
			name:    "gpl word boundary",
			content: "# released under the GPL\n",
			want:    "# released under the GPL",
		},
		{
			name:    "no match",
			content: "#!/bin/sh\necho hi\n",
			want:    "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "script.sh")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o755))
			assert.Equal(t, tc.want, scanCopyright(path))
		})
	}
}

func TestScanCopyrightIgnoresDeepLines(t *testing.T) {
	content := ""
	for range 60 {
		content += "echo filler\n"
	}
	content += "# Copyright 2020 Buried Deep\n"

	path := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	assert.Empty(t, scanCopyright(path), "Matches past the scan window should be ignored")
}

func TestSuggestClassification(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name      string
		exe       string
		path      string
		copyright string
		want      schema.Classification
	}{
		{"not found", "ghost", "", "", schema.NotFoundClass},
		{"macos builtin", "pbcopy", "/usr/bin/pbcopy", "", schema.SystemClass},
		{"system path", "ls", "/usr/bin/ls", "", schema.SystemClass},
		{"system path with copyright", "tool", "/usr/bin/tool", "Copyright 2020 X", schema.ThirdPartyClass},
		{"user script", "mine", filepath.Join(home, "bin", "mine"), "", schema.UserClass},
		{"copyright elsewhere", "vendored", "/opt/stuff/vendored", "MIT License", schema.ThirdPartyClass},
		{"homebrew install", "brewtool", "/opt/homebrew/bin/brewtool", "", schema.ThirdPartyClass},
		{"cargo install in home", "rusttool", filepath.Join(home, ".cargo", "bin", "rusttool"), "", schema.ThirdPartyClass},
		{"undetermined", "opt", "/opt/misc/opt", "", schema.UnknownClass},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, reason := suggestClassification(tc.exe, tc.path, tc.copyright)
			assert.Equal(t, tc.want, got)
			assert.NotEmpty(t, reason)
		})
	}
}

func TestIsUserDirectory(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.True(t, isUserDirectory(filepath.Join(home, "scripts", "x")))
	assert.False(t, isUserDirectory("/usr/local/bin/x"))
	assert.False(t, isUserDirectory(filepath.Join(home, ".local", "share", "x")))
	assert.False(t, isUserDirectory(filepath.Join(home, ".npm", "bin", "x")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
}
