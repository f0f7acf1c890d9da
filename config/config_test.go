package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Extension != "txt" || cfg.AssetsDir != "assets" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := Default()
	cfg.Theme = "graphite"
	cfg.UndoGroupMs = 500
	if err := cfg.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.GetTheme().Name != "Graphite" {
		t.Fatalf("expected graphite theme, got %s", got.GetTheme().Name)
	}
	if got.UndoGroupInterval() != 500*time.Millisecond {
		t.Fatalf("expected 500ms group interval, got %v", got.UndoGroupInterval())
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestUnknownThemeFallsBack(t *testing.T) {
	cfg := Default()
	cfg.Theme = "nope"
	if cfg.GetTheme() != Themes["classic"] {
		t.Fatalf("expected classic fallback")
	}
}

func TestChooserDirPrefersAssets(t *testing.T) {
	wd := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	if err := os.Chdir(wd); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	defer func() { _ = os.Chdir(prev) }()

	cfg := Default()
	if got := cfg.ChooserDir(); filepath.Base(got) == "assets" {
		t.Fatalf("expected working directory when assets is missing, got %s", got)
	}
	if err := os.Mkdir(filepath.Join(wd, "assets"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if got := cfg.ChooserDir(); filepath.Base(got) != "assets" {
		t.Fatalf("expected assets directory, got %s", got)
	}
}

func TestFindEditorConfig(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "notes")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	write := func(path, body string) {
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	write(filepath.Join(root, ".editorconfig"), "root = true\n\n[*]\ncharset = utf-8\nend_of_line = lf\n")
	write(filepath.Join(sub, ".editorconfig"), "[*.{txt,md}]\ncharset = latin1\nend_of_line = CRLF\ntab_width = 8\n")

	s := FindEditorConfig(filepath.Join(sub, "a.txt"))
	if s == nil {
		t.Fatalf("expected settings")
	}
	if s.Charset != "latin1" || s.LineEnding() != "CRLF" || s.TabWidth != 8 {
		t.Fatalf("expected closer file to win, got %+v", s)
	}

	s = FindEditorConfig(filepath.Join(sub, "a.go"))
	if s == nil || s.Charset != "utf-8" || s.LineEnding() != "LF" {
		t.Fatalf("expected root section only, got %+v", s)
	}
}
