package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "github"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jira.json"),
		[]byte(`{"name":"jira","tools":["jira-search","jira-create"]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"),
		[]byte(`{nope`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"),
		[]byte("docs"), 0o644))

	names, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "github", "jira", "jira-create", "jira-search"}, names)
}

func TestScan_EmptyManifestFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "linear.json"), []byte(`{}`), 0o644))

	names, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"linear"}, names)
}

func TestScan_Missing(t *testing.T) {
	names, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, names)
}

func TestRun(t *testing.T) {
	a := Run(
		[]string{"github", "jira", "linear", "jira"},
		[]string{"bash", "read", "github"},
	)

	assert.Equal(t, []string{"github", "jira", "linear"}, a.Installed)
	assert.Equal(t, []string{"bash", "github", "read"}, a.Used)
	assert.Equal(t, []string{"jira", "linear"}, a.Unused)
	assert.Equal(t, []string{"bash", "read"}, a.Missing)
}

func TestRun_Empty(t *testing.T) {
	a := Run(nil, nil)
	assert.Empty(t, a.Unused)
	assert.Empty(t, a.Missing)
}
