package editor

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func key(k tcell.Key, r rune, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, r, mod)
}

func typeKeys(e *Editor, s string) {
	for _, r := range s {
		e.handleKey(key(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestTypingAndBackspace(t *testing.T) {
	e, _, _ := newTestEditor(t)
	typeKeys(e, "abc")
	e.handleKey(key(tcell.KeyBackspace2, 0, tcell.ModNone))

	if e.doc.Text() != "ab" || e.caret != 2 {
		t.Fatalf("expected ab with caret 2, got %q caret %d", e.doc.Text(), e.caret)
	}
}

func TestCtrlRuneChordsDispatch(t *testing.T) {
	e, _, _ := newTestEditor(t)
	typeKeys(e, "abc")

	e.handleKey(key(tcell.KeyRune, 'z', tcell.ModCtrl))
	if e.doc.Text() != "" {
		t.Fatalf("expected Ctrl+Z to undo, got %q", e.doc.Text())
	}
	e.handleKey(key(tcell.KeyRune, 'y', tcell.ModCtrl))
	if e.doc.Text() != "abc" {
		t.Fatalf("expected Ctrl+Y to redo, got %q", e.doc.Text())
	}
	e.handleKey(key(tcell.KeyRune, 'z', tcell.ModCtrl))
	e.handleKey(key(tcell.KeyRune, 'Z', tcell.ModCtrl|tcell.ModShift))
	if e.doc.Text() != "abc" {
		t.Fatalf("expected Ctrl+Shift+Z to redo, got %q", e.doc.Text())
	}
}

func TestCtrlSaveOpensChooserForUntitled(t *testing.T) {
	e, fc, _ := newTestEditor(t)
	typeKeys(e, "x")
	fc.ok = false

	e.handleKey(key(tcell.KeyRune, 's', tcell.ModCtrl))

	if len(fc.calls) != 1 || fc.calls[0] != "save" {
		t.Fatalf("expected save prompt, got %v", fc.calls)
	}
}

func TestShiftArrowsSelect(t *testing.T) {
	e, _, _ := newTestEditor(t)
	typeKeys(e, "hello")
	e.handleKey(key(tcell.KeyLeft, 0, tcell.ModShift))
	e.handleKey(key(tcell.KeyLeft, 0, tcell.ModShift))

	sel, ok := e.selection()
	if !ok || sel.Start != 3 || sel.End != 5 {
		t.Fatalf("expected selection 3..5, got %+v ok=%v", sel, ok)
	}

	e.handleKey(key(tcell.KeyDelete, 0, tcell.ModNone))
	if e.doc.Text() != "hel" {
		t.Fatalf("expected selection deleted, got %q", e.doc.Text())
	}
}

func TestVerticalMoveKeepsColumn(t *testing.T) {
	e, _, _ := newTestEditor(t)
	e.doc.SetText("abcdef\nx\nabcdef")
	e.caret = 4

	e.handleKey(key(tcell.KeyDown, 0, tcell.ModNone))
	if cur := e.caretCursor(); cur.Line != 1 || cur.Col != 1 {
		t.Fatalf("expected 1:1, got %d:%d", cur.Line, cur.Col)
	}
	e.handleKey(key(tcell.KeyDown, 0, tcell.ModNone))
	if cur := e.caretCursor(); cur.Line != 2 || cur.Col != 4 {
		t.Fatalf("expected goal column restored at 2:4, got %d:%d", cur.Line, cur.Col)
	}
}

func TestF10OpensFileMenuAndEnterRunsNew(t *testing.T) {
	e, _, _ := newTestEditor(t)
	typeKeys(e, "text")

	e.handleKey(key(tcell.KeyF10, 0, tcell.ModNone))
	if !e.menuBar.IsOpen() {
		t.Fatalf("expected F10 to open the menu bar")
	}
	typeKeys(e, "q")
	if e.doc.Text() != "text" {
		t.Fatalf("expected keys to go to the open menu, got %q", e.doc.Text())
	}

	e.handleKey(key(tcell.KeyEnter, 0, tcell.ModNone))
	if e.menuBar.IsOpen() {
		t.Fatalf("expected menu to close after activation")
	}
	if e.doc.Text() != "" || e.state.CurrentFile != "" {
		t.Fatalf("expected File > New to clear the document, got %q", e.doc.Text())
	}
}

func TestAltEOpensEditMenu(t *testing.T) {
	e, _, _ := newTestEditor(t)
	typeKeys(e, "ab")

	e.handleKey(key(tcell.KeyRune, 'e', tcell.ModAlt))
	if e.menuBar.Open != 1 {
		t.Fatalf("expected Edit menu open, got %d", e.menuBar.Open)
	}
	typeKeys(e, "u")
	if e.doc.Text() != "" {
		t.Fatalf("expected Edit > Undo via hotkey, got %q", e.doc.Text())
	}
}

func TestDisplayColumnMapping(t *testing.T) {
	line := "\tab"
	if got := bufferColToDisplayCol(line, 1, 4); got != 4 {
		t.Fatalf("expected tab to span 4 columns, got %d", got)
	}
	if got := displayColToBufferCol(line, 5, 4); got != 2 {
		t.Fatalf("expected display col 5 to map to rune 2, got %d", got)
	}
	if got := displayColToBufferCol(line, 99, 4); got != 3 {
		t.Fatalf("expected past-end to clamp to 3, got %d", got)
	}
}
