package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passdig/passdig/internal/ignore"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "passdig.yaml", `keywords: [apikey, credential]
max_length: 400
max_files: 25
glob_syntax: path
workers: 4
include:
  - "*.py"
templates:
  - name: env
    tail: '=\S{8,}'
`)
	cfg, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"apikey", "credential"}, cfg.Keywords)
	require.NotNil(t, cfg.MaxLength)
	assert.Equal(t, 400, *cfg.MaxLength)
	require.NotNil(t, cfg.MaxFiles)
	assert.Equal(t, 25, *cfg.MaxFiles)
	require.NotNil(t, cfg.GlobSyntax)
	assert.Equal(t, "path", *cfg.GlobSyntax)
	require.NotNil(t, cfg.Workers)
	assert.Equal(t, 4, *cfg.Workers)
	assert.Equal(t, []string{"*.py"}, cfg.Include)
	require.Len(t, cfg.Templates, 1)
	assert.Equal(t, "env", cfg.Templates[0].Name)
	assert.Equal(t, `=\S{8,}`, cfg.Templates[0].Tail)
	assert.Nil(t, cfg.NoColor)
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "bad.yml", "keywords: [unterminated\n")
	_, err := LoadFile(p)
	assert.Error(t, err)
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "passdig.yaml", "max_files: 1\n")
	writeTemp(t, dir, ".passdig.yaml", "max_files: 7\n")
	cfg, err := LoadLocal(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.MaxFiles)
	assert.Equal(t, 7, *cfg.MaxFiles)
}

func TestLoadLocal_NoConfig(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	assert.Error(t, err)
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "passdig")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	writeTemp(t, cfgDir, "config.yml", "max_length: 9\n")
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, cfg.MaxLength)
	assert.Equal(t, 9, *cfg.MaxLength)
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	// Simulate no HOME as well by clearing HOME; LoadGlobal should error
	t.Setenv("HOME", "")
	_, err := LoadGlobal()
	assert.Error(t, err)
}

func TestReadList(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "words.txt", "token\r\n\n  \napi key\nsecret")
	got, err := ReadList(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"token", "api key", "secret"}, got)

	_, err = ReadList(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIgnoreFile_CompilesLongPatterns(t *testing.T) {
	dir := t.TempDir()
	long := "no-" + strings.Repeat("x", 100*1024)
	writeTemp(t, dir, "ignore.txt", "#.*\r\n\n"+long+"\n")
	writeTemp(t, dir, ".passdig.yml", "ignore_file: ignore.txt\n")

	fc, err := LoadLocal(dir)
	require.NoError(t, err)
	patterns, err := fc.IgnoreList()
	require.NoError(t, err)
	require.Len(t, patterns, 2)

	m, err := ignore.Compile(patterns)
	require.NoError(t, err)
	assert.True(t, m.Match(`# password = "hunter22"`))
	assert.True(t, m.Match(long+` password = "hunter22"`))
	assert.False(t, m.Match(`password = "hunter22"`))
}

func TestLists_ResolveRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "conf")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeTemp(t, sub, "words.txt", "credential\n")
	writeTemp(t, sub, "ignore.txt", "^#.*\n")
	writeTemp(t, sub, "exclude.txt", "*.lock\n")
	p := writeTemp(t, sub, ".passdig.yml", `keywords: [token]
keywords_file: words.txt
ignore_file: ignore.txt
exclude: ["*.min.js"]
exclude_file: exclude.txt
`)
	cfg, err := LoadFile(p)
	require.NoError(t, err)

	kw, err := cfg.KeywordList()
	require.NoError(t, err)
	assert.Equal(t, []string{"token", "credential"}, kw)

	ig, err := cfg.IgnoreList()
	require.NoError(t, err)
	assert.Equal(t, []string{"^#.*"}, ig)

	ex, err := cfg.ExcludeList()
	require.NoError(t, err)
	assert.Equal(t, []string{"*.min.js", "*.lock"}, ex)

	inc, err := cfg.IncludeList()
	require.NoError(t, err)
	assert.Empty(t, inc)
}

func TestLists_MissingFileIsAnError(t *testing.T) {
	missing := "nope.txt"
	cfg := FileConfig{KeywordsFile: &missing, dir: t.TempDir()}
	_, err := cfg.KeywordList()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
