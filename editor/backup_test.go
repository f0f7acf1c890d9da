package editor

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBackupRecoveredOnOpen(t *testing.T) {
	e, fc, _ := newTestEditor(t)
	path := filepath.Join(t.TempDir(), "draft.txt")
	if err := os.WriteFile(path, []byte("saved\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}
	fc.path, fc.ok = path, true
	e.openDocument()
	e.moveCaret(e.doc.Len(), false)
	typeString(e, "unsaved")
	e.saveBackup()

	if _, err := os.Stat(backupPathForFile(path)); err != nil {
		t.Fatalf("expected a backup file: %v", err)
	}

	other, ofc, _ := newTestEditorWithHome(t, os.Getenv("HOME"))
	ofc.path, ofc.ok = path, true
	other.openDocument()

	if got := other.doc.Text(); got != "saved\nunsaved" {
		t.Fatalf("expected recovered text, got %q", got)
	}
	if !other.doc.Dirty() {
		t.Fatalf("expected recovered document to be modified")
	}
	if other.history.CanUndo() {
		t.Fatalf("expected no undo across recovery")
	}
}

func TestSaveRemovesBackup(t *testing.T) {
	e, fc, _ := newTestEditor(t)
	path := filepath.Join(t.TempDir(), "draft.txt")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	fc.path, fc.ok = path, true
	e.openDocument()
	typeString(e, "x")
	e.saveBackup()

	e.save()

	if _, err := os.Stat(backupPathForFile(path)); !os.IsNotExist(err) {
		t.Fatalf("expected backup removed after save, stat err=%v", err)
	}
}

func TestUntitledDocumentIsNotBackedUp(t *testing.T) {
	e, _, _ := newTestEditor(t)
	typeString(e, "untitled text")
	e.saveBackup()

	if entries, _ := os.ReadDir(backupDir()); len(entries) != 0 {
		t.Fatalf("expected no backups for an untitled document, got %d", len(entries))
	}
}

func newTestEditorWithHome(t *testing.T, home string) (*Editor, *fakeChooser, *fakeNotifier) {
	t.Helper()
	e, fc, fn := newTestEditor(t)
	t.Setenv("HOME", home)
	return e, fc, fn
}
