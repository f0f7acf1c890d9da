package editor

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"notepad/buffer"
	"notepad/clipboardx"
	"notepad/config"
	"notepad/fileio"
	"notepad/highlight"
	"notepad/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

type Component interface {
	Render(screen tcell.Screen, x, y, width, height int)
	HandleKey(ev *tcell.EventKey) bool
	HandleMouse(ev *tcell.EventMouse) bool
	IsFocused() bool
	SetFocused(bool)
}

const appName = "Notepad"

// State is the file association the File menu commands read and change.
type State struct {
	CurrentFile string // "" until the document is opened or saved
	Title       string
}

type Editor struct {
	screen tcell.Screen
	cfg    *config.Config

	doc     *buffer.Document
	history *buffer.History
	state   State

	// Format of the current file
	codec      fileio.Codec
	lineEnding string
	tabSize    int
	language   string
	lastSave   time.Time

	chooser  Chooser
	notifier Notifier

	menuBar     *ui.MenuBar
	statusBar   *ui.StatusBar
	dialog      *ui.Dialog
	fileChooser *ui.FileChooser

	clipboard *clipboardx.Clipboard
	highlight *highlight.Highlighter

	caret   int
	anchor  int // selection anchor, -1 when nothing is selected
	goalCol int // display column kept across vertical moves, -1 when unset

	scrollY, scrollX int

	// Mouse drag tracking
	mouseDown      bool
	mouseAnchor    int
	mouseScrolling bool

	quit bool

	// File watching
	fileWatcher *fsnotify.Watcher
	watchedFile string

	stopBackups chan struct{}

	// Temporary status messages
	statusMessageTime time.Time
}

// FileWatchEvent carries file system change notifications to the main event loop.
type FileWatchEvent struct {
	tcell.EventTime
	Path string
	Op   fsnotify.Op
}

func New(cfg *config.Config) *Editor {
	e := &Editor{
		cfg:       cfg,
		doc:       buffer.NewDocument(),
		history:   buffer.NewHistory(),
		statusBar: ui.NewStatusBar(),
		clipboard: clipboardx.New(true),
		highlight: highlight.New(),
		anchor:    -1,
		goalCol:   -1,
	}
	e.history.GroupInterval = cfg.UndoGroupInterval()
	e.history.Track(e.doc)
	e.chooser = &screenChooser{e: e}
	e.notifier = &screenNotifier{e: e}
	e.menuBar = e.buildMenus()
	e.codec, e.lineEnding, e.tabSize = e.formatFor("")
	e.setTitle("")
	return e
}

func (e *Editor) buildMenus() *ui.MenuBar {
	return ui.NewMenuBar(
		ui.Menu{Title: "File", Hotkey: 'f', Items: []ui.MenuItem{
			{Label: "New", Shortcut: "Ctrl+N", Hotkey: 'n', OnSelect: e.newDocument},
			{Label: "Open...", Shortcut: "Ctrl+O", Hotkey: 'o', OnSelect: e.openDocument},
			{Label: "Save As...", Shortcut: "Ctrl+Shift+S", Hotkey: 'a', OnSelect: e.saveAs},
			{Label: "Save", Shortcut: "Ctrl+S", Hotkey: 's', OnSelect: e.save},
			{Label: "Exit", Shortcut: "Ctrl+Q", Hotkey: 'x', OnSelect: e.exit},
		}},
		ui.Menu{Title: "Edit", Hotkey: 'e', Items: []ui.MenuItem{
			{Label: "Undo", Shortcut: "Ctrl+Z", Hotkey: 'u', OnSelect: e.undo},
			{Label: "Redo", Shortcut: "Ctrl+Y", Hotkey: 'r', OnSelect: e.redo},
			{Label: "Cut", Shortcut: "Ctrl+X", Hotkey: 't', OnSelect: e.cut},
			{Label: "Copy", Shortcut: "Ctrl+C", Hotkey: 'c', OnSelect: e.copySelection},
			{Label: "Paste", Shortcut: "Ctrl+V", Hotkey: 'p', OnSelect: e.paste},
			{Label: "Select All", Shortcut: "Ctrl+A", Hotkey: 'l', OnSelect: e.selectAll},
		}},
	)
}

// Run opens the terminal screen and processes events until Exit. The first
// entry of files, if any, is opened; otherwise the last session is restored.
func (e *Editor) Run(files []string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	e.screen = screen

	e.setupFileWatcher(screen)
	e.startBackupTimer(screen)

	if len(files) > 0 {
		e.openFile(files[0])
	} else if e.cfg.RestoreSession {
		e.RestoreSession()
	}

	for !e.quit {
		e.clearExpiredMessages()
		e.render()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			e.handleKey(ev)
		case *tcell.EventMouse:
			e.handleMouse(ev)
		case *FileWatchEvent:
			e.handleFileWatchEvent(ev)
		case *backupTickEvent:
			e.saveBackup()
		case nil:
			e.quit = true
		}
	}

	e.SaveSession()

	if e.stopBackups != nil {
		close(e.stopBackups)
	}
	if e.fileWatcher != nil {
		e.fileWatcher.Close()
	}

	// A clean exit leaves nothing to recover
	e.cleanBackup(e.state.CurrentFile)

	screen.Clear()
	screen.Fini()
	return nil
}

// formatFor picks the charset, line ending and tab width for path: settings
// first, then what the file already uses, then .editorconfig.
func (e *Editor) formatFor(path string) (fileio.Codec, string, int) {
	codec, err := fileio.LookupCodec(e.cfg.Encoding)
	if err != nil {
		log.Printf("settings: %v; using utf-8", err)
		codec = fileio.UTF8
	}
	lineEnding := e.cfg.LineEnding
	if lineEnding != fileio.CRLF {
		lineEnding = fileio.LF
	}
	tabSize := e.cfg.TabSize
	if tabSize <= 0 {
		tabSize = 4
	}
	if path == "" {
		return codec, lineEnding, tabSize
	}

	if _, err := os.Stat(path); err == nil {
		lineEnding = fileio.DetectLineEnding(path)
	}
	if fs := config.FindEditorConfig(path); fs != nil {
		if fs.Charset != "" {
			if c, err := fileio.LookupCodec(fs.Charset); err == nil {
				codec = c
			} else {
				log.Printf("editorconfig for %s: %v", path, err)
			}
		}
		if le := fs.LineEnding(); le != "" {
			lineEnding = le
		}
		if fs.TabWidth > 0 {
			tabSize = fs.TabWidth
		}
	}
	return codec, lineEnding, tabSize
}

// setTitle shows "Notepad" for an unnamed document and the file name otherwise.
func (e *Editor) setTitle(path string) {
	if path == "" {
		e.state.Title = appName
		return
	}
	e.state.Title = filepath.Base(path)
}

// displayName is used in prompts about the current document.
func (e *Editor) displayName() string {
	if e.state.CurrentFile == "" {
		return "Untitled"
	}
	return filepath.Base(e.state.CurrentFile)
}

func (e *Editor) updateStatus() {
	cur := e.doc.PosToCursor(e.caret)
	e.statusBar.Filename = e.state.CurrentFile
	e.statusBar.Line = cur.Line
	e.statusBar.Col = cur.Col
	e.statusBar.Encoding = e.codec.String()
	e.statusBar.LineEnd = e.lineEnding
	e.statusBar.Modified = e.doc.Dirty()
	e.statusBar.SelChars = 0
	if sel, ok := e.selection(); ok {
		e.statusBar.SelChars = sel.Len()
	}
	if e.menuBar.IsOpen() {
		e.statusBar.Mode = "MENU"
	} else {
		e.statusBar.Mode = "EDIT"
	}
}

// setTemporaryMessage sets a message that will auto-clear after 5 seconds
func (e *Editor) setTemporaryMessage(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = false
	e.statusMessageTime = time.Now()
}

// setTemporaryError sets an error message that will auto-clear after 5 seconds
func (e *Editor) setTemporaryError(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = true
	e.statusMessageTime = time.Now()
}

func (e *Editor) clearExpiredMessages() {
	if !e.statusMessageTime.IsZero() && time.Since(e.statusMessageTime) > 5*time.Second {
		e.statusBar.Message = ""
		e.statusBar.IsError = false
		e.statusMessageTime = time.Time{}
	}
}
