// Package inventory scans the assistant's extensions directory for
// installed tools and compares that set against the tools observed in
// session logs.
package inventory

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/samber/lo"
)

// manifest is the subset of an extension manifest we care about. An
// extension may expose several tools under one install.
type manifest struct {
	Name  string   `json:"name"`
	Tools []string `json:"tools"`
}

// Scan lists the tool names installed under dir. Each subdirectory counts
// as one installed tool named after the directory; each *.json manifest
// contributes its name plus any tools it declares. A missing directory or
// an unreadable manifest is not an error, the entry is just skipped or
// falls back to the file's base name.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			names = append(names, name)
			continue
		}
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, manifestTools(filepath.Join(dir, name))...)
	}

	names = lo.Uniq(names)
	sort.Strings(names)
	return names, nil
}

func manifestTools(path string) []string {
	base := strings.TrimSuffix(filepath.Base(path), ".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return []string{base}
	}
	var m manifest
	if err := sonic.Unmarshal(data, &m); err != nil {
		return []string{base}
	}

	names := m.Tools
	if m.Name != "" {
		names = append(names, m.Name)
	}
	if len(names) == 0 {
		names = []string{base}
	}
	return names
}

// Audit is the set difference between installed tools and the tools that
// actually appear in session logs.
type Audit struct {
	Installed []string `json:"installed"`
	Used      []string `json:"used"`
	Unused    []string `json:"unused"`
	Missing   []string `json:"missing"`
}

// Run compares the installed set against the used set. Unused holds tools
// installed but never called; Missing holds tools called in sessions with
// no matching install. Both come back sorted.
func Run(installed, used []string) Audit {
	installed = lo.Uniq(installed)
	used = lo.Uniq(used)
	unused, missing := lo.Difference(installed, used)

	sort.Strings(installed)
	sort.Strings(used)
	sort.Strings(unused)
	sort.Strings(missing)

	return Audit{
		Installed: installed,
		Used:      used,
		Unused:    unused,
		Missing:   missing,
	}
}
