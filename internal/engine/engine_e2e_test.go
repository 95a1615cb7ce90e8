package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passdig/passdig/internal/detectors"
	"github.com/passdig/passdig/internal/ignore"
)

// Basic end-to-end: one file holding one hardcoded secret, default config.
func TestScanWithStats_Basic(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"settings.py": `api_secret = "sk_live_1234567890"`})

	res, err := ScanWithStats(context.Background(), Config{Root: dir, MaxLength: DefaultMaxLength})
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	f := res.Findings[0]
	assert.Equal(t, filepath.Join(dir, "settings.py"), f.File)
	assert.Equal(t, `secret = "sk_live_1234567890"`, f.Target)
	assert.Equal(t, 0, f.Line)
	assert.Equal(t, 1, res.FilesExamined)
	assert.False(t, res.Truncated)
}

func TestScanWithStats_EmptyTree(t *testing.T) {
	res, err := ScanWithStats(context.Background(), Config{Root: t.TempDir()})
	require.NoError(t, err)
	assert.Zero(t, res.FilesExamined)
	assert.Empty(t, res.Findings)
}

func TestScanWithStats_FilesContiguousAndInWalkOrder(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a/one.env":   "token=aaaa1111\npassword = \"bbbb2222\"\n",
		"b/two.env":   "secret=cccc3333\n",
		"c/three.env": "nothing here\noauth: 'dddd4444'\n",
	})
	res, err := ScanWithStats(context.Background(), Config{Root: dir})
	require.NoError(t, err)
	require.Len(t, res.Findings, 4)
	var files []string
	for _, f := range res.Findings {
		if len(files) == 0 || files[len(files)-1] != f.File {
			files = append(files, f.File)
		}
	}
	assert.Len(t, files, 3, "findings of one file are contiguous")
}

func TestScanWithStats_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"x.cfg":     "db_pass=hunter22\n",
		"y/z.yaml":  "token: 'abcdefgh'\n",
		"y/w/v.ini": "senha = \"segredo1\"\n",
	})
	cfg := Config{Root: dir}
	first, err := ScanWithStats(context.Background(), cfg)
	require.NoError(t, err)
	second, err := ScanWithStats(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, first.Findings, second.Findings)
	assert.Equal(t, first.Digest(), second.Digest())
	assert.Len(t, first.Digest(), 16)
}

func TestScanWithStats_ParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{}
	for i := 0; i < 40; i++ {
		files[fmt.Sprintf("d%d/f%02d.txt", i%4, i)] = fmt.Sprintf("line\ntoken=val%06d\npassword = \"pw%06d\"\n", i, i)
	}
	writeTree(t, dir, files)

	seq, err := ScanWithStats(context.Background(), Config{Root: dir})
	require.NoError(t, err)
	par, err := ScanWithStats(context.Background(), Config{Root: dir, Workers: 8})
	require.NoError(t, err)
	assert.Equal(t, seq.Findings, par.Findings)
	assert.Equal(t, seq.FilesExamined, par.FilesExamined)

	capped, err := ScanWithStats(context.Background(), Config{Root: dir, Workers: 8, MaxFiles: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, capped.FilesExamined)
	assert.True(t, capped.Truncated)
	assert.Equal(t, seq.Findings[:14], capped.Findings)
}

func TestScanWithStats_ConfigErrorsBeforeWalk(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	cases := map[string]Config{
		"empty keyword":  {Root: missing, Keywords: []string{"token", ""}},
		"bad ignore":     {Root: missing, IgnorePatterns: []string{"(oops"}},
		"bad glob":       {Root: missing, IncludeGlobs: []string{"[x"}},
		"bad template":   {Root: missing, Templates: []detectors.Template{{Name: "t", Tail: "("}}},
		"no root":        {},
		"empty template": {Root: missing, Templates: []detectors.Template{}},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ScanWithStats(context.Background(), cfg)
			require.Error(t, err)
			assert.False(t, errors.Is(err, os.ErrNotExist), "must fail before touching the filesystem: %v", err)
			assert.True(t, errors.Is(err, detectors.ErrConfiguration) || errors.Is(err, detectors.ErrDetectorCompilation), "%v", err)
		})
	}

	_, err := ScanWithStats(context.Background(), Config{Root: missing, IgnorePatterns: []string{"(oops"}})
	assert.ErrorIs(t, err, ignore.ErrInvalidPattern)
}

func TestScanWithStats_FilesystemErrorPropagates(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"ok.txt": "token=abcdefgh", "locked.txt": "secret=abcdefgh"})
	locked := filepath.Join(dir, "locked.txt")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o644) })

	_, err := ScanWithStats(context.Background(), Config{Root: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), "locked.txt")
}

func TestScanWithStats_MissingRoot(t *testing.T) {
	_, err := ScanWithStats(context.Background(), Config{Root: filepath.Join(t.TempDir(), "gone")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScanWithStats_BinaryFileCountedButSilent(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"img.png": "\x89PNG\r\n\x1a\n\x00\x00token=abcdefgh", "a.txt": "token=abcdefgh"})

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	res, err := ScanWithStats(context.Background(), Config{Root: dir, Logger: logger})
	require.NoError(t, err)
	assert.Equal(t, 2, res.FilesExamined)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, filepath.Join(dir, "a.txt"), res.Findings[0].File)

	var sawBinary bool
	for _, e := range hook.AllEntries() {
		if e.Message == "stopped at non-text content" {
			sawBinary = true
		}
	}
	assert.True(t, sawBinary)
}

func TestScanWithStats_CustomKeywordsAndIgnores(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"app.js": "const apiKey = 'abcd1234';\n// apiKey = 'zzzz9999'\nconst token = 'abcd1234';\n"})
	res, err := ScanWithStats(context.Background(), Config{
		Root:           dir,
		Keywords:       []string{"apikey"},
		IgnorePatterns: []string{`\s*//`},
	})
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, `apiKey = 'abcd1234'`, res.Findings[0].Target)
}

func TestScanWithStats_Progress(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a": "", "b": "", "c": ""})
	n := 0
	_, err := ScanWithStats(context.Background(), Config{Root: dir, Progress: func() { n++ }})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
