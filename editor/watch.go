package editor

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"notepad/fileio"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

// setupFileWatcher starts the goroutine that forwards changes to the current
// file to the event loop. The watcher follows the file's directory so saves
// done by rename-and-replace are seen too.
func (e *Editor) setupFileWatcher(screen tcell.Screen) {
	if !e.cfg.WatchFile {
		return
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Graceful degradation - continue without watching
		log.Printf("file watcher: %v", err)
		return
	}
	e.fileWatcher = watcher

	go func() {
		// Debounce: collect events and send after quiet period
		debounceTimer := time.NewTimer(100 * time.Millisecond)
		debounceTimer.Stop()
		pending := make(map[string]fsnotify.Op)

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				pending[event.Name] |= event.Op
				debounceTimer.Reset(100 * time.Millisecond)

			case <-debounceTimer.C:
				for path, op := range pending {
					ev := &FileWatchEvent{Path: path, Op: op}
					ev.SetEventNow()
					screen.PostEvent(ev)
				}
				pending = make(map[string]fsnotify.Op)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("file watcher: %v", err)
			}
		}
	}()
}

func (e *Editor) watchFile(path string) {
	if e.fileWatcher == nil || path == "" {
		return
	}
	e.unwatchFile()
	if err := e.fileWatcher.Add(filepath.Dir(path)); err != nil {
		log.Printf("watch %s: %v", path, err)
		return
	}
	e.watchedFile = path
}

func (e *Editor) unwatchFile() {
	if e.fileWatcher == nil || e.watchedFile == "" {
		return
	}
	_ = e.fileWatcher.Remove(filepath.Dir(e.watchedFile))
	e.watchedFile = ""
}

// handleFileWatchEvent reloads the current file after an outside change, or
// warns when that would throw away unsaved edits.
func (e *Editor) handleFileWatchEvent(ev *FileWatchEvent) {
	path := e.state.CurrentFile
	if path == "" || ev.Path != path {
		return
	}
	name := filepath.Base(path)

	switch {
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if _, err := os.Stat(path); err != nil {
			e.setTemporaryError("Warning: " + name + " was deleted externally")
			return
		}
		fallthrough // replaced in place
	case ev.Op&(fsnotify.Write|fsnotify.Create) != 0:
		info, err := os.Stat(path)
		if err != nil {
			return
		}
		// Allow 1 second grace period after our last save
		if !e.lastSave.IsZero() && info.ModTime().Sub(e.lastSave) <= time.Second {
			return
		}
		if e.doc.Dirty() {
			e.setTemporaryError("⚠ " + name + " was modified externally! (unsaved changes)")
			return
		}
		e.reloadFile()
	}
}

// reloadFile rereads the current file keeping the caret where it was. The
// line ending is detected again since the outside change may have altered it.
func (e *Editor) reloadFile() {
	path := e.state.CurrentFile
	codec, lineEnding, tabSize := e.formatFor(path)
	text, err := fileio.Open(path, codec)
	if err != nil {
		e.reportError(err)
		return
	}
	e.codec, e.lineEnding, e.tabSize = codec, lineEnding, tabSize
	caret := e.caret
	e.resetDocument(text)
	e.caret = min(caret, e.doc.Len())
	e.setTemporaryMessage("↻ " + filepath.Base(path) + " (reloaded)")
}
