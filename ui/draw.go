package ui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawString writes s from column x, never past limit, and returns the
// column after the last cell written.
func drawString(screen tcell.Screen, x, y, limit int, s string, style tcell.Style) int {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			w = 1
		}
		if x+w > limit {
			break
		}
		screen.SetContent(x, y, ch, nil, style)
		x += w
	}
	return x
}

// drawHotkeyLabel draws label with the first occurrence of hotkey in hkStyle.
func drawHotkeyLabel(screen tcell.Screen, x, y, limit int, label string, hotkey rune, style, hkStyle tcell.Style) int {
	marked := false
	for _, ch := range label {
		st := style
		if !marked && hotkey != 0 && equalFoldRune(ch, hotkey) {
			st = hkStyle
			marked = true
		}
		x = drawString(screen, x, y, limit, string(ch), st)
	}
	return x
}

func equalFoldRune(a, b rune) bool {
	return a != 0 && unicode.ToLower(a) == unicode.ToLower(b)
}

// truncateLeft shortens s from the left with an ellipsis so it fits width cells.
func truncateLeft(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && runewidth.StringWidth(string(runes))+1 > width {
		runes = runes[1:]
	}
	return "…" + string(runes)
}

func fill(screen tcell.Screen, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			screen.SetContent(col, row, ' ', nil, style)
		}
	}
}
