package editor

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"notepad/buffer"
	"notepad/fileio"
	"notepad/highlight"
	"notepad/ui"
)

// Chooser asks the user for a path. done is called once, with ok false when
// the user backs out.
type Chooser interface {
	ChooseOpen(dir string, done func(path string, ok bool))
	ChooseSave(dir string, done func(path string, ok bool))
}

// Notifier reports command outcomes. Notify is a confirmation the user
// dismisses, after which dismissed runs if it is non-nil; Fail is an error
// shown without interrupting typing.
type Notifier interface {
	Notify(msg string, dismissed func())
	Fail(msg string)
}

type screenChooser struct{ e *Editor }

func (c *screenChooser) ChooseOpen(dir string, done func(string, bool)) {
	c.e.showChooser(ui.ChooseOpen, dir, done)
}

func (c *screenChooser) ChooseSave(dir string, done func(string, bool)) {
	c.e.showChooser(ui.ChooseSave, dir, done)
}

func (e *Editor) showChooser(mode ui.ChooserMode, dir string, done func(string, bool)) {
	fc := ui.NewFileChooser(mode, dir, e.cfg.Extension, e.cfg.GetTheme())
	if mode == ui.ChooseSave && e.state.CurrentFile != "" {
		fc.SetInput(filepath.Base(e.state.CurrentFile))
	}
	fc.OnChoose = func(path string) {
		e.fileChooser = nil
		done(path, true)
	}
	fc.OnCancel = func() {
		e.fileChooser = nil
		done("", false)
	}
	e.fileChooser = fc
}

type screenNotifier struct{ e *Editor }

func (n *screenNotifier) Notify(msg string, dismissed func()) {
	d := ui.NewMessageDialog(appName, msg)
	d.OnDismiss = func() {
		n.e.dialog = nil
		if dismissed != nil {
			dismissed()
		}
	}
	n.e.dialog = d
}

func (n *screenNotifier) Fail(msg string) { n.e.setTemporaryError(msg) }

// reportError logs err and shows it on the status bar.
func (e *Editor) reportError(err error) {
	log.Printf("notepad: %v", err)
	e.notifier.Fail("Error: " + err.Error())
}

// newDocument empties the document and forgets the current file.
func (e *Editor) newDocument() {
	e.leaveFile()
	e.resetDocument("")
	e.state.CurrentFile = ""
	e.codec, e.lineEnding, e.tabSize = e.formatFor("")
	e.language = ""
	e.setTitle("")
}

// resetDocument loads text as a fresh, unmodified document with no history.
func (e *Editor) resetDocument(text string) {
	e.doc.SetText(text)
	e.doc.MarkSaved()
	e.history.Reset()
	e.anchor = -1
	e.goalCol = -1
	e.caret = 0
	e.scrollX, e.scrollY = 0, 0
	e.highlight.Invalidate()
}

// leaveFile drops everything tied to the current file before switching away.
func (e *Editor) leaveFile() {
	e.cleanBackup(e.state.CurrentFile)
	e.unwatchFile()
}

func (e *Editor) openDocument() {
	e.chooser.ChooseOpen(e.cfg.ChooserDir(), func(path string, ok bool) {
		if !ok {
			return
		}
		e.openFile(path)
	})
}

// openFile replaces the document with the file at path. A file that cannot
// be read leaves the editor as it was.
func (e *Editor) openFile(path string) bool {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	codec, lineEnding, tabSize := e.formatFor(path)
	text, err := fileio.Open(path, codec)
	if err != nil {
		e.reportError(err)
		return false
	}

	e.leaveFile()
	e.resetDocument(text)
	e.state.CurrentFile = path
	e.codec, e.lineEnding, e.tabSize = codec, lineEnding, tabSize
	e.language = highlight.DetectLanguage(path)
	e.setTitle(path)

	if e.recoverBackup(path) {
		e.setTemporaryMessage("Recovered unsaved changes to " + filepath.Base(path))
	}
	e.watchFile(path)
	return true
}

func (e *Editor) saveAs() { e.saveAsThen(nil) }

func (e *Editor) saveAsThen(then func()) {
	e.chooser.ChooseSave(e.cfg.ChooserDir(), func(path string, ok bool) {
		if !ok {
			return
		}
		path = fileio.EnsureExtension(path, e.cfg.Extension)
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if !e.writeFile(path) {
			return
		}
		// then waits for the confirmation to be dismissed
		e.notifier.Notify("Saved File!", then)
	})
}

func (e *Editor) save() { e.saveThen(nil) }

// saveThen writes the document to the current file, or asks for one first.
// then runs only after a successful write.
func (e *Editor) saveThen(then func()) {
	if e.state.CurrentFile == "" {
		e.saveAsThen(then)
		return
	}
	if !e.writeFile(e.state.CurrentFile) {
		return
	}
	e.setTemporaryMessage("Saved " + filepath.Base(e.state.CurrentFile))
	if then != nil {
		then()
	}
}

// writeFile saves the document to path and makes path the current file. A
// new path is written in the charset and line ending chosen for it.
func (e *Editor) writeFile(path string) bool {
	codec, lineEnding, tabSize := e.codec, e.lineEnding, e.tabSize
	if path != e.state.CurrentFile {
		codec, lineEnding, tabSize = e.formatFor(path)
	}
	if err := fileio.Save(path, e.doc.Text(), codec, lineEnding); err != nil {
		e.reportError(err)
		return false
	}
	e.codec, e.lineEnding, e.tabSize = codec, lineEnding, tabSize
	e.doc.MarkSaved()
	e.lastSave = time.Now()
	e.cleanBackup(path)

	if path != e.state.CurrentFile {
		e.leaveFile()
		e.state.CurrentFile = path
		e.language = highlight.DetectLanguage(path)
		e.highlight.Invalidate()
		e.setTitle(path)
		e.watchFile(path)
	}
	return true
}

// exit quits, first offering to save unsaved changes.
func (e *Editor) exit() {
	if !e.cfg.ConfirmExit || !e.doc.Dirty() {
		e.quit = true
		return
	}
	d := ui.NewSaveConfirmDialog(e.displayName())
	d.Theme = e.cfg.GetTheme()
	d.OnConfirm = func(answer rune) {
		e.dialog = nil
		switch answer {
		case 'y':
			e.saveThen(func() { e.quit = true })
		case 'n':
			e.quit = true
		}
	}
	e.dialog = d
}

func (e *Editor) undo() {
	if edit, ok := e.history.Undo(e.doc); ok {
		e.afterHistory(edit)
	}
}

func (e *Editor) redo() {
	if edit, ok := e.history.Redo(e.doc); ok {
		e.afterHistory(edit)
	}
}

func (e *Editor) afterHistory(edit buffer.Edit) {
	e.anchor = -1
	e.goalCol = -1
	e.caret = edit.Caret()
}

func (e *Editor) cut() {
	sel, ok := e.selection()
	if !ok {
		return
	}
	e.clipboard.Copy(e.doc.Slice(sel.Start, sel.End))
	e.deleteSelection()
	e.history.Break()
}

func (e *Editor) copySelection() {
	sel, ok := e.selection()
	if !ok {
		return
	}
	e.clipboard.Copy(e.doc.Slice(sel.Start, sel.End))
}

func (e *Editor) paste() {
	text := e.clipboard.Paste()
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return
	}
	e.history.Break()
	e.insertText(text)
	e.history.Break()
}

func (e *Editor) selectAll() {
	e.anchor = 0
	e.caret = e.doc.Len()
	e.goalCol = -1
}
