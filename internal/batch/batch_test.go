package batch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/cssguide/internal/config"
)

const (
	messy = ".a{color:#FFF}"
	clean = ".a {\n\tcolor: red;\n}\n"
	fixed = ".a {\n\tcolor: #fff;\n}\n"
)

func quietOptions(mode Mode) Options {
	return Options{
		Mode:    mode,
		Workers: 2,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_Lint(t *testing.T) {
	dir := writeFiles(t, map[string]string{"messy.css": messy, "clean.css": clean})
	paths := []string{
		filepath.Join(dir, "messy.css"),
		filepath.Join(dir, "missing.css"),
		filepath.Join(dir, "clean.css"),
	}

	results := Run(context.Background(), paths, nil, quietOptions(ModeLint))
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, paths[i], r.Path, "results keep input order")
	}

	assert.NoError(t, results[0].Err)
	assert.NotEmpty(t, results[0].Violations)
	assert.False(t, results[0].Changed)

	require.Error(t, results[1].Err)
	assert.ErrorIs(t, results[1].Err, os.ErrNotExist)

	assert.NoError(t, results[2].Err)
	assert.Empty(t, results[2].Violations)

	assert.Equal(t, messy, readFile(t, paths[0]), "lint never writes")
}

func TestRun_Fix(t *testing.T) {
	dir := writeFiles(t, map[string]string{"messy.css": messy, "clean.css": clean})
	paths := []string{filepath.Join(dir, "messy.css"), filepath.Join(dir, "clean.css")}

	results := Run(context.Background(), paths, nil, quietOptions(ModeFix))
	require.Len(t, results, 2)

	assert.True(t, results[0].Changed)
	assert.True(t, results[0].Written)
	assert.Empty(t, results[0].Violations)
	assert.Equal(t, fixed, readFile(t, paths[0]))

	assert.False(t, results[1].Changed)
	assert.False(t, results[1].Written)
	assert.Equal(t, clean, readFile(t, paths[1]))
}

func TestRun_Check(t *testing.T) {
	dir := writeFiles(t, map[string]string{"messy.css": messy, "clean.css": clean})
	paths := []string{filepath.Join(dir, "messy.css"), filepath.Join(dir, "clean.css")}

	results := Run(context.Background(), paths, nil, quietOptions(ModeCheck))

	assert.Equal(t, []string{paths[0]}, Changed(results))
	assert.False(t, results[0].Written)
	assert.Equal(t, messy, readFile(t, paths[0]), "check never writes")
}

func TestRun_SyntaxErrorNotRewritten(t *testing.T) {
	broken := ".a { color:#FFF;\n"
	dir := writeFiles(t, map[string]string{"broken.css": broken})
	path := filepath.Join(dir, "broken.css")

	results := Run(context.Background(), []string{path}, nil, quietOptions(ModeFix))

	assert.False(t, results[0].Changed)
	assert.NotEmpty(t, results[0].Violations)
	assert.Equal(t, broken, readFile(t, path))
}

func TestRun_Cancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.css": messy})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, []string{filepath.Join(dir, "a.css")}, nil, quietOptions(ModeLint))
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}

func TestRun_Config(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.css": messy})
	cfg, err := config.New(config.WithIndent(config.IndentSpace, 2))
	require.NoError(t, err)

	Run(context.Background(), []string{filepath.Join(dir, "a.css")}, cfg, quietOptions(ModeFix))
	assert.Equal(t, ".a {\n  color: #fff;\n}\n", readFile(t, filepath.Join(dir, "a.css")))
}

func TestWithTimeout(t *testing.T) {
	res, err := withTimeout(context.Background(), 0, func() FileResult {
		return FileResult{Text: "done"}
	})
	require.NoError(t, err)
	assert.Equal(t, "done", res.Text)

	release := make(chan struct{})
	defer close(release)

	_, err = withTimeout(context.Background(), 10*time.Millisecond, func() FileResult {
		<-release
		return FileResult{}
	})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestReport(t *testing.T) {
	results := []FileResult{
		Process(messy, nil, ModeLint),
		{Path: "gone.css", Err: os.ErrNotExist},
		Process(messy, nil, ModeCheck),
	}
	results[0].Path = "a.css"
	results[2].Path = "b.css"

	rep := Report(results)

	assert.Equal(t, 3, rep.FilesScanned)
	assert.Equal(t, 1, rep.FilesFixed)
	require.Len(t, rep.Failed, 1)
	assert.Equal(t, "gone.css", rep.Failed[0].File)

	require.NotEmpty(t, rep.Issues)
	for _, issue := range rep.Issues {
		assert.Equal(t, "a.css", issue.File, "formatted b.css has no violations left")
		assert.Equal(t, messy, issue.SourceLine)
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "lint", ModeLint.String())
	assert.Equal(t, "fix", ModeFix.String())
	assert.Equal(t, "check", ModeCheck.String())
}
