package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"notepad/config"

	"github.com/gdamore/tcell/v2"
)

type backupInfo struct {
	OriginalPath string `json:"original_path"`
	Timestamp    string `json:"timestamp"`
}

// backupTickEvent asks the event loop to write a crash backup.
type backupTickEvent struct {
	tcell.EventTime
}

func backupDir() string {
	return filepath.Join(config.DataDir(), "backups")
}

func backupPathForFile(originalPath string) string {
	h := sha256.Sum256([]byte(originalPath))
	return filepath.Join(backupDir(), fmt.Sprintf("%x.bak", h[:8]))
}

func backupMetaPath(backupPath string) string {
	return backupPath + ".json"
}

func (e *Editor) startBackupTimer(screen tcell.Screen) {
	if e.cfg.BackupInterval <= 0 {
		return
	}
	interval := time.Duration(e.cfg.BackupInterval) * time.Second
	e.stopBackups = make(chan struct{})
	stop := e.stopBackups
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ev := &backupTickEvent{}
				ev.SetEventNow()
				screen.PostEvent(ev)
			case <-stop:
				return
			}
		}
	}()
}

// saveBackup copies unsaved edits of the current file aside. Untitled
// documents have nowhere to be recovered into and are skipped.
func (e *Editor) saveBackup() {
	path := e.state.CurrentFile
	if path == "" || !e.doc.Dirty() {
		return
	}
	if err := os.MkdirAll(backupDir(), 0o755); err != nil {
		log.Printf("backup: %v", err)
		return
	}
	bpath := backupPathForFile(path)
	if err := os.WriteFile(bpath, []byte(e.doc.Text()), 0o644); err != nil {
		log.Printf("backup %s: %v", path, err)
		return
	}
	meta, _ := json.Marshal(backupInfo{
		OriginalPath: path,
		Timestamp:    time.Now().Format(time.RFC3339),
	})
	if err := os.WriteFile(backupMetaPath(bpath), meta, 0o644); err != nil {
		log.Printf("backup %s: %v", path, err)
	}
}

func (e *Editor) cleanBackup(path string) {
	if path == "" {
		return
	}
	bpath := backupPathForFile(path)
	os.Remove(bpath)
	os.Remove(backupMetaPath(bpath))
}

// recoverBackup loads a backup of path that is newer than the file itself
// into the document, leaving it modified. The backup stays until the
// document is saved or abandoned.
func (e *Editor) recoverBackup(path string) bool {
	bpath := backupPathForFile(path)
	data, err := os.ReadFile(backupMetaPath(bpath))
	if err != nil {
		return false
	}
	var info backupInfo
	if err := json.Unmarshal(data, &info); err != nil || info.OriginalPath != path {
		return false
	}
	bstat, err := os.Stat(bpath)
	if err != nil {
		return false
	}
	if fstat, err := os.Stat(path); err == nil && !bstat.ModTime().After(fstat.ModTime()) {
		// The file was saved after the backup was taken
		e.cleanBackup(path)
		return false
	}
	text, err := os.ReadFile(bpath)
	if err != nil {
		log.Printf("recover %s: %v", path, err)
		return false
	}
	e.doc.SetText(string(text))
	e.history.Reset()
	return true
}
