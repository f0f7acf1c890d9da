package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write %s failed: %v", name, err)
		}
	}
}

func entryNames(fc *FileChooser) []string {
	var names []string
	for _, e := range fc.Entries {
		names = append(names, e.Name)
	}
	return names
}

func TestFileChooserFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.txt", "A.TXT", "image.png", ".hidden.txt")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	fc := NewFileChooser(ChooseOpen, dir, "txt", nil)

	want := []string{"..", "sub", "A.TXT", "b.txt"}
	got := entryNames(fc)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFileChooserEnterChoosesSelectedFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt")
	fc := NewFileChooser(ChooseOpen, dir, "txt", nil)
	var chosen string
	fc.OnChoose = func(path string) { chosen = path }

	fc.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	fc.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if chosen != filepath.Join(fc.Dir, "a.txt") {
		t.Fatalf("expected a.txt chosen, got %q", chosen)
	}
}

func TestFileChooserTypedNameWins(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt")
	fc := NewFileChooser(ChooseSave, dir, "txt", nil)
	var chosen string
	fc.OnChoose = func(path string) { chosen = path }

	for _, r := range "new" {
		fc.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	fc.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if chosen != filepath.Join(fc.Dir, "new") {
		t.Fatalf("expected typed name chosen as-is, got %q", chosen)
	}
}

func TestFileChooserEntersDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	writeFiles(t, sub, "inner.txt")
	fc := NewFileChooser(ChooseOpen, dir, "txt", nil)
	chosen := false
	fc.OnChoose = func(string) { chosen = true }

	fc.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	fc.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if chosen {
		t.Fatalf("expected Enter on a directory to navigate, not choose")
	}
	if filepath.Base(fc.Dir) != "sub" {
		t.Fatalf("expected to be in sub, got %q", fc.Dir)
	}
	names := entryNames(fc)
	if len(names) != 2 || names[1] != "inner.txt" {
		t.Fatalf("unexpected listing %v", names)
	}

	// ".." is first and goes back up
	fc.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if fc.Dir != filepath.Dir(sub) {
		t.Fatalf("expected to be back in %q, got %q", filepath.Dir(sub), fc.Dir)
	}
}

func TestFileChooserEscapeCancels(t *testing.T) {
	fc := NewFileChooser(ChooseOpen, t.TempDir(), "txt", nil)
	cancelled := false
	fc.OnCancel = func() { cancelled = true }

	fc.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))

	if !cancelled {
		t.Fatalf("expected Escape to cancel")
	}
}

func TestFileChooserTabCompletesSelection(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "draft.txt")
	fc := NewFileChooser(ChooseSave, dir, "txt", nil)

	fc.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	fc.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	fc.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))

	if fc.Input != "draft.tx" || fc.CursorPos != 8 {
		t.Fatalf("expected completed then trimmed input, got %q at %d", fc.Input, fc.CursorPos)
	}
}

func TestFileChooserRenderShowsFilter(t *testing.T) {
	screen := newTestScreen(t)
	fc := NewFileChooser(ChooseOpen, t.TempDir(), "txt", nil)
	fc.Render(screen, 0, 0, 80, 24)

	found := false
	for y := 0; y < 24 && !found; y++ {
		var row []rune
		for x := 0; x < 80; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			row = append(row, r)
		}
		found = strings.Contains(string(row), "Text Files (*.txt)")
	}
	if !found {
		t.Fatalf("expected the filter description on screen")
	}
}
