package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeProjectDir(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"conventional", "--home-alice-projects-myapp--", "/home/alice/projects/myapp"},
		{"hyphenated segment is lossy", "--home-alice-code-my-tool--", "/home/alice/code/my/tool"},
		{"no wrapping falls back", "plain-dir", "plain-dir"},
		{"prefix only falls back", "--half-wrapped", "--half-wrapped"},
		{"empty inner falls back", "----", "----"},
		{"too short", "--", "--"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeProjectDir(tt.in); got != tt.want {
				t.Errorf("DecodeProjectDir(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	projDir := filepath.Join(root, "--home-alice-projects-myapp--")
	if err := os.MkdirAll(projDir, 0o750); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"aaa.jsonl", "bbb.jsonl", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(projDir, name), []byte("{}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	// Loose files at the top level are not sessions.
	if err := os.WriteFile(filepath.Join(root, "stray.jsonl"), []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	files, err := ScanDir(root, "/home/alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("found %d files, want 2", len(files))
	}
	for _, f := range files {
		if f.Project != "myapp" {
			t.Errorf("Project = %q, want myapp", f.Project)
		}
		if f.DecodedPath != "/home/alice/projects/myapp" {
			t.Errorf("DecodedPath = %q", f.DecodedPath)
		}
	}
	if files[0].SessionID == files[1].SessionID {
		t.Error("session ids must come from distinct filenames")
	}
}

func TestScanDir_Missing(t *testing.T) {
	files, err := ScanDir(filepath.Join(t.TempDir(), "nope"), "")
	if err != nil {
		t.Fatalf("missing dir should not error, got %v", err)
	}
	if files != nil {
		t.Errorf("expected no files, got %d", len(files))
	}
}
