package pipeline

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loaderHeader = `{"type":"session","id":"s1","timestamp":"2026-02-10T08:00:00Z","cwd":"/home/alice/projects/myapp"}`

func writeSessionFile(t *testing.T, dir, project, name string, lines ...string) string {
	t.Helper()
	projDir := filepath.Join(dir, project)
	require.NoError(t, os.MkdirAll(projDir, 0o755))
	path := filepath.Join(projDir, name)
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loaderFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeSessionFile(t, dir, "--home-alice-projects-myapp--", "s1.jsonl",
		loaderHeader,
		`{"type":"message","timestamp":"2026-02-10T08:01:00Z","message":{"role":"user","text":"hi"}}`,
		`{"type":"message","timestamp":"2026-02-10T08:02:00Z","message":{"role":"assistant","model":"claude-sonnet-4-5","usage":{"input":10,"output":5}}}`,
	)
	writeSessionFile(t, dir, "--home-alice-projects-other--", "s2.jsonl",
		`{"type":"session","id":"s2","timestamp":"2026-02-11T09:00:00Z","cwd":"/home/alice/projects/other"}`,
		`not json at all`,
		`{"type":"message","timestamp":"2026-02-11T09:05:00Z","message":{"role":"user","text":"x"}}`,
	)
	// Headerless: discovered but contributes no session.
	writeSessionFile(t, dir, "--home-alice-projects-other--", "empty.jsonl",
		`{"type":"message","timestamp":"2026-02-11T09:00:00Z","message":{"role":"user","text":"x"}}`,
	)
	return dir
}

func TestLoad_ParsesTree(t *testing.T) {
	dir := loaderFixture(t)

	res, err := Load(LoadOptions{SessionsDir: dir, NoCache: true, Home: "/home/alice"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalFiles)
	assert.Equal(t, 2, res.ParsedFiles)
	assert.Equal(t, 1, res.HeaderlessFiles)
	assert.Equal(t, 0, res.CacheHits)
	assert.Equal(t, 1, res.SkippedLines)
	assert.Equal(t, 0, res.FileErrors)
	assert.Equal(t, 2, res.ProjectCount)
	require.Len(t, res.Sessions, 2)

	byID := map[string]bool{}
	for _, s := range res.Sessions {
		byID[s.ID] = true
	}
	assert.True(t, byID["s1"])
	assert.True(t, byID["s2"])
}

func TestLoad_CacheHitsOnSecondRun(t *testing.T) {
	dir := loaderFixture(t)
	cacheDir := t.TempDir()
	opts := LoadOptions{SessionsDir: dir, CacheDir: cacheDir, Home: "/home/alice"}

	first, err := Load(opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, first.CacheHits)

	second, err := Load(opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, second.CacheHits, "the two parsed files are served from cache")
	assert.Equal(t, 2, second.ParsedFiles)
	assert.Equal(t, 1, second.HeaderlessFiles)
	require.Len(t, second.Sessions, 2)

	// Cached stats match the fresh parse.
	fresh := map[string]string{}
	for _, s := range first.Sessions {
		fresh[s.ID] = s.Project
	}
	for _, s := range second.Sessions {
		assert.Equal(t, fresh[s.ID], s.Project, s.ID)
	}
}

func TestLoad_NoCacheNeverCaches(t *testing.T) {
	dir := loaderFixture(t)
	cacheDir := t.TempDir()
	opts := LoadOptions{SessionsDir: dir, CacheDir: cacheDir, NoCache: true, Home: "/home/alice"}

	_, err := Load(opts, nil)
	require.NoError(t, err)
	res, err := Load(opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.CacheHits)

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoad_ModifiedFileReparsed(t *testing.T) {
	dir := loaderFixture(t)
	cacheDir := t.TempDir()
	opts := LoadOptions{SessionsDir: dir, CacheDir: cacheDir, Home: "/home/alice"}

	_, err := Load(opts, nil)
	require.NoError(t, err)

	path := filepath.Join(dir, "--home-alice-projects-myapp--", "s1.jsonl")
	appended := loaderHeader + "\n" +
		`{"type":"message","timestamp":"2026-02-10T08:01:00Z","message":{"role":"user","text":"hi"}}` + "\n" +
		`{"type":"message","timestamp":"2026-02-10T08:02:00Z","message":{"role":"user","text":"again"}}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(appended), 0o644))
	// Force an mtime change even on coarse-grained filesystems.
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Chtimes(path, info.ModTime().Add(1e6), info.ModTime().Add(1e6)))

	res, err := Load(opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.CacheHits, "only the untouched file is a hit")

	for _, s := range res.Sessions {
		if s.ID == "s1" {
			assert.Equal(t, 2, s.UserMessages)
		}
	}
}

func TestLoad_MissingDir(t *testing.T) {
	res, err := Load(LoadOptions{SessionsDir: filepath.Join(t.TempDir(), "nope"), NoCache: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalFiles)
	assert.Empty(t, res.Sessions)
}

func TestLoad_ProgressReachesTotal(t *testing.T) {
	dir := loaderFixture(t)

	var mu sync.Mutex
	var calls int
	var last int
	_, err := Load(LoadOptions{SessionsDir: dir, NoCache: true, Home: "/home/alice"}, func(current, total int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if current > last {
			last = current
		}
		assert.Equal(t, 3, total)
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, last)
}
