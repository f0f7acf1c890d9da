package editor

import (
	"unicode"
	"unicode/utf8"

	"notepad/buffer"

	"github.com/gdamore/tcell/v2"
)

func (e *Editor) handleKey(ev *tcell.EventKey) {
	// Modal layers first, topmost wins
	if e.dialog != nil {
		e.dialog.HandleKey(ev)
		return
	}
	if e.fileChooser != nil {
		e.fileChooser.HandleKey(ev)
		return
	}
	if e.menuBar.IsOpen() {
		e.menuBar.HandleKey(ev)
		return
	}

	mod := ev.Modifiers()
	shift := mod&tcell.ModShift != 0

	// Menu access
	if ev.Key() == tcell.KeyF10 {
		e.menuBar.OpenMenu(0)
		return
	}
	if ev.Key() == tcell.KeyRune && mod&tcell.ModAlt != 0 {
		if e.menuBar.OpenByHotkey(ev.Rune()) {
			return
		}
	}

	if letter, shifted := ctrlLetter(ev); letter != 0 && e.runCtrl(letter, shifted) {
		return
	}
	if ev.Key() == tcell.KeyF12 {
		e.saveAs()
		return
	}

	// Reset mouseScrolling on keyboard input so view snaps back to the caret
	e.mouseScrolling = false
	e.handleEditKey(ev, shift)
}

// ctrlLetter returns the lower-case letter of a Ctrl+letter chord and
// whether Shift was held, or 0 for anything else. Terminals report these
// either as control keys or as runes with ModCtrl.
func ctrlLetter(ev *tcell.EventKey) (rune, bool) {
	shift := ev.Modifiers()&tcell.ModShift != 0
	switch {
	case ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0:
		r := ev.Rune()
		if unicode.IsUpper(r) {
			shift = true
		}
		return unicode.ToLower(r), shift
	case ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ:
		switch ev.Key() {
		case tcell.KeyBackspace, tcell.KeyTab, tcell.KeyEnter:
			return 0, false
		}
		return rune('a' + ev.Key() - tcell.KeyCtrlA), shift
	}
	return 0, false
}

func (e *Editor) runCtrl(letter rune, shift bool) bool {
	switch letter {
	case 'n':
		e.newDocument()
	case 'o':
		e.openDocument()
	case 's':
		if shift {
			e.saveAs()
		} else {
			e.save()
		}
	case 'q':
		e.exit()
	case 'z':
		// Ctrl+Shift+Z = Redo, Ctrl+Z = Undo
		if shift {
			e.redo()
		} else {
			e.undo()
		}
	case 'y':
		e.redo()
	case 'x':
		e.cut()
	case 'c':
		e.copySelection()
	case 'v':
		e.paste()
	case 'a':
		e.selectAll()
	default:
		return false
	}
	return true
}

// handleEditKey covers typing and caret movement in the text area.
func (e *Editor) handleEditKey(ev *tcell.EventKey, shift bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return
		}
		e.insertText(string(ev.Rune()))
	case tcell.KeyEnter:
		e.insertText("\n")
	case tcell.KeyTab:
		e.insertText("\t")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.deleteSelection() {
			return
		}
		if e.caret > 0 {
			e.doc.Delete(e.caret-1, 1)
			e.caret--
		}
		e.goalCol = -1
	case tcell.KeyDelete:
		if e.deleteSelection() {
			return
		}
		if e.caret < e.doc.Len() {
			e.doc.Delete(e.caret, 1)
		}
		e.goalCol = -1
	case tcell.KeyEscape:
		e.anchor = -1
	case tcell.KeyLeft:
		if sel, ok := e.selection(); ok && !shift {
			e.moveCaret(sel.Start, false)
			return
		}
		e.moveCaret(e.caret-1, shift)
	case tcell.KeyRight:
		if sel, ok := e.selection(); ok && !shift {
			e.moveCaret(sel.End, false)
			return
		}
		e.moveCaret(e.caret+1, shift)
	case tcell.KeyUp:
		e.moveVertical(-1, shift)
	case tcell.KeyDown:
		e.moveVertical(1, shift)
	case tcell.KeyPgUp:
		e.moveVertical(-e.pageSize(), shift)
	case tcell.KeyPgDn:
		e.moveVertical(e.pageSize(), shift)
	case tcell.KeyHome:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			e.moveCaret(0, shift)
			return
		}
		line := e.doc.PosToCursor(e.caret).Line
		e.moveCaret(e.doc.LineStart(line), shift)
	case tcell.KeyEnd:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			e.moveCaret(e.doc.Len(), shift)
			return
		}
		line := e.doc.PosToCursor(e.caret).Line
		e.moveCaret(e.doc.CursorToPos(buffer.Cursor{Line: line, Col: utf8.RuneCountInString(e.doc.Line(line))}), shift)
	}
}

// selection returns the selected range, if any.
func (e *Editor) selection() (buffer.Selection, bool) {
	if e.anchor < 0 || e.anchor == e.caret {
		return buffer.Selection{}, false
	}
	return buffer.NewSelection(e.anchor, e.caret), true
}

// insertText types s at the caret, replacing the selection.
func (e *Editor) insertText(s string) {
	if sel, ok := e.selection(); ok {
		e.doc.Replace(sel.Start, sel.Len(), s)
		e.caret = sel.Start + utf8.RuneCountInString(s)
	} else {
		e.caret = e.doc.Insert(e.caret, s)
	}
	e.anchor = -1
	e.goalCol = -1
}

// deleteSelection removes the selected text and reports whether there was any.
func (e *Editor) deleteSelection() bool {
	sel, ok := e.selection()
	if !ok {
		return false
	}
	e.doc.Delete(sel.Start, sel.Len())
	e.caret = sel.Start
	e.anchor = -1
	e.goalCol = -1
	return true
}

// moveCaret puts the caret at pos, extending the selection when extend is set.
func (e *Editor) moveCaret(pos int, extend bool) {
	if pos < 0 {
		pos = 0
	}
	if pos > e.doc.Len() {
		pos = e.doc.Len()
	}
	if extend {
		if e.anchor < 0 {
			e.anchor = e.caret
		}
	} else {
		e.anchor = -1
	}
	e.caret = pos
	e.goalCol = -1
}

// moveVertical moves the caret by delta lines, keeping its display column.
func (e *Editor) moveVertical(delta int, extend bool) {
	cur := e.doc.PosToCursor(e.caret)
	goal := e.goalCol
	if goal < 0 {
		goal = bufferColToDisplayCol(e.doc.Line(cur.Line), cur.Col, e.tabSize)
	}
	line := min(max(cur.Line+delta, 0), e.doc.LineCount()-1)
	col := displayColToBufferCol(e.doc.Line(line), goal, e.tabSize)
	e.moveCaret(e.doc.CursorToPos(buffer.Cursor{Line: line, Col: col}), extend)
	e.goalCol = goal
}

func (e *Editor) pageSize() int {
	if e.screen == nil {
		return 20
	}
	_, _, _, h := e.editorLayout()
	return max(h-1, 1)
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	// Dialogs and the chooser are modal
	if e.dialog != nil {
		e.dialog.HandleMouse(ev)
		return
	}
	if e.fileChooser != nil {
		e.fileChooser.HandleMouse(ev)
		return
	}
	if e.menuBar.HandleMouse(ev) || e.menuBar.IsOpen() {
		return
	}

	mx, my := ev.Position()
	btn := ev.Buttons()
	ex, ey, ew, eh := e.editorLayout()

	switch {
	case btn&tcell.WheelUp != 0:
		e.scrollY = max(e.scrollY-3, 0)
		e.mouseScrolling = true
	case btn&tcell.WheelDown != 0:
		e.scrollY = min(e.scrollY+3, max(e.doc.LineCount()-1, 0))
		e.mouseScrolling = true
	case btn&tcell.Button1 != 0:
		if !e.mouseDown {
			if mx < ex || mx >= ex+ew || my < ey || my >= ey+eh {
				return
			}
			e.mouseDown = true
			e.mouseScrolling = false
			pos := e.screenToPos(mx, my)
			e.moveCaret(pos, ev.Modifiers()&tcell.ModShift != 0)
			e.mouseAnchor = pos
			if e.anchor >= 0 {
				e.mouseAnchor = e.anchor
			}
			return
		}
		// Dragging extends the selection from where the press happened
		pos := e.screenToPos(mx, my)
		e.caret = pos
		e.anchor = e.mouseAnchor
		e.goalCol = -1
	case btn == tcell.ButtonNone:
		e.mouseDown = false
	}
}

// screenToPos maps a screen cell in the text area to a document position.
func (e *Editor) screenToPos(mx, my int) int {
	ex, ey, _, eh := e.editorLayout()
	row := min(max(my-ey, 0), max(eh-1, 0))
	line := min(e.scrollY+row, e.doc.LineCount()-1)
	col := displayColToBufferCol(e.doc.Line(line), max(mx-ex, 0)+e.scrollX, e.tabSize)
	return e.doc.CursorToPos(buffer.Cursor{Line: line, Col: col})
}
