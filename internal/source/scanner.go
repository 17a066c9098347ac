package source

import (
	"os"
	"path/filepath"
	"strings"
)

// ScanDir walks the sessions directory and discovers all JSONL session
// files under its per-project subdirectories. Unreadable entries are
// skipped; an enumeration error on the root propagates to the caller.
func ScanDir(sessionsDir, home string) ([]DiscoveredFile, error) {
	info, err := os.Stat(sessionsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(sessionsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".jsonl" {
			return nil
		}

		rel, _ := filepath.Rel(sessionsDir, path)
		parts := strings.Split(rel, string(filepath.Separator))
		if len(parts) < 2 {
			return nil
		}

		projectDir := parts[0]
		decoded := DecodeProjectDir(projectDir)

		files = append(files, DiscoveredFile{
			Path:        path,
			Project:     ProjectFromPath(decoded, home),
			ProjectDir:  projectDir,
			DecodedPath: decoded,
			SessionID:   strings.TrimSuffix(d.Name(), ".jsonl"),
		})
		return nil
	})

	return files, err
}

// DecodeProjectDir reverses the directory-name encoding of a project path:
// path segments joined by "-" and wrapped in a "--...--" delimiter, so
// "--home-alice-projects-myapp--" decodes to "/home/alice/projects/myapp".
// The encoding is lossy (hyphens inside segments are indistinguishable from
// separators); names that don't follow the convention are returned as-is.
func DecodeProjectDir(dirName string) string {
	if len(dirName) <= 4 ||
		!strings.HasPrefix(dirName, "--") || !strings.HasSuffix(dirName, "--") {
		return dirName
	}
	inner := dirName[2 : len(dirName)-2]
	if inner == "" {
		return dirName
	}
	return "/" + strings.ReplaceAll(inner, "-", "/")
}

// CountProjects returns the number of unique projects in a set of
// discovered files.
func CountProjects(files []DiscoveredFile) int {
	seen := make(map[string]struct{})
	for _, f := range files {
		seen[f.Project] = struct{}{}
	}
	return len(seen)
}
