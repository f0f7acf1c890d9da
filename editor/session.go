package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"notepad/buffer"
	"notepad/config"
)

// SessionData is what a working directory remembers between runs.
type SessionData struct {
	WorkingDir  string `json:"working_dir"`
	CurrentFile string `json:"current_file"`
	Line        int    `json:"cursor_line"`
	Col         int    `json:"cursor_col"`
	ScrollY     int    `json:"scroll_y"`
	ScrollX     int    `json:"scroll_x"`
}

func sessionDir() string {
	return filepath.Join(config.DataDir(), "sessions")
}

func sessionPath(workDir string) string {
	hash := sha256.Sum256([]byte(workDir))
	return filepath.Join(sessionDir(), fmt.Sprintf("%x.json", hash[:8]))
}

func (e *Editor) SaveSession() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	path := sessionPath(wd)

	if e.state.CurrentFile == "" {
		// Nothing file-backed is open: clear any stale session.
		_ = os.Remove(path)
		return
	}

	cur := e.caretCursor()
	session := SessionData{
		WorkingDir:  wd,
		CurrentFile: e.state.CurrentFile,
		Line:        cur.Line,
		Col:         cur.Col,
		ScrollY:     e.scrollY,
		ScrollX:     e.scrollX,
	}

	os.MkdirAll(sessionDir(), 0755)

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return
	}

	os.WriteFile(path, data, 0644)
}

// RestoreSession reopens the file and caret saved for the working directory.
func (e *Editor) RestoreSession() bool {
	wd, err := os.Getwd()
	if err != nil {
		return false
	}

	data, err := os.ReadFile(sessionPath(wd))
	if err != nil {
		return false
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return false
	}
	if session.WorkingDir != wd || session.CurrentFile == "" {
		return false
	}
	if _, err := os.Stat(session.CurrentFile); err != nil {
		return false
	}
	if !e.openFile(session.CurrentFile) {
		return false
	}

	e.caret = e.doc.CursorToPos(buffer.Cursor{Line: session.Line, Col: session.Col})
	e.scrollY = session.ScrollY
	e.scrollX = session.ScrollX
	return true
}
