package ui

import (
	"fmt"

	"notepad/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type StatusBar struct {
	Mode     string // "EDIT" or "MENU"
	Filename string
	Line     int
	Col      int
	Encoding string
	LineEnd  string
	Modified bool
	SelChars int    // number of selected characters (0 = no selection)
	Message  string // temporary status message
	IsError  bool   // Message is an error
	Theme    *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{
		Mode:     "EDIT",
		Encoding: "UTF-8",
		LineEnd:  "LF",
	}
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width, height int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["classic"]
	}

	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	modeStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(tcell.ColorWhite).Bold(true)

	fill(screen, x, y, width, 1, style)
	limit := x + width

	col := drawString(screen, x, y, limit, " "+s.Mode+" ", modeStyle)
	col = drawString(screen, col, y, limit, " ", style)

	// A temporary message replaces the file info
	if s.Message != "" {
		msgStyle := style
		if s.IsError {
			msgStyle = style.Foreground(theme.ErrorFg).Bold(true)
		}
		drawString(screen, col, y, limit, s.Message, msgStyle)
		return
	}

	fname := s.Filename
	if fname == "" {
		fname = "Untitled"
	}
	if s.Modified {
		fname = "*" + fname
	}
	col = drawString(screen, col, y, limit, fname, style)

	var right string
	if s.SelChars > 0 {
		right = fmt.Sprintf("Sel: %d │ Ln %d, Col %d │ %s │ %s ", s.SelChars, s.Line+1, s.Col+1, s.Encoding, s.LineEnd)
	} else {
		right = fmt.Sprintf("Ln %d, Col %d │ %s │ %s ", s.Line+1, s.Col+1, s.Encoding, s.LineEnd)
	}
	rightStart := limit - runewidth.StringWidth(right)
	if rightStart > col+2 {
		drawString(screen, rightStart, y, limit, right, style)
	}
}

func (s *StatusBar) HandleKey(ev *tcell.EventKey) bool     { return false }
func (s *StatusBar) HandleMouse(ev *tcell.EventMouse) bool { return false }
func (s *StatusBar) IsFocused() bool                        { return false }
func (s *StatusBar) SetFocused(f bool)                      {}
