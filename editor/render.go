package editor

import (
	"notepad/buffer"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// bufferColToDisplayCol converts a buffer column (rune index) to display column (with tabs expanded and wide chars)
func bufferColToDisplayCol(line string, bufCol int, tabSize int) int {
	displayCol := 0
	for i, r := range []rune(line) {
		if i >= bufCol {
			break
		}
		displayCol += runeDisplayWidth(r, displayCol, tabSize)
	}
	return displayCol
}

// displayColToBufferCol converts a display column (visual position) to buffer column (rune index)
func displayColToBufferCol(line string, targetDisplayCol int, tabSize int) int {
	if targetDisplayCol <= 0 {
		return 0
	}
	displayCol := 0
	for i, r := range []rune(line) {
		next := displayCol + runeDisplayWidth(r, displayCol, tabSize)
		// A click on the right half of a wide cell lands after it
		if next > targetDisplayCol {
			if targetDisplayCol-displayCol >= next-targetDisplayCol {
				return i + 1
			}
			return i
		}
		displayCol = next
	}
	return len([]rune(line))
}

func runeDisplayWidth(r rune, atCol, tabSize int) int {
	if r == '\t' {
		return tabSize - (atCol % tabSize)
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// editorLayout is the text area between the menu bar and the status bar.
func (e *Editor) editorLayout() (x, y, w, h int) {
	screenW, screenH := e.screen.Size()
	return 0, 2, screenW, max(screenH-3, 0)
}

func (e *Editor) render() {
	theme := e.cfg.GetTheme()

	defaultStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	e.screen.SetStyle(defaultStyle)
	e.screen.Clear()

	screenW, screenH := e.screen.Size()

	e.menuBar.Theme = theme
	e.statusBar.Theme = theme
	e.updateStatus()

	e.renderTitle(screenW)

	ex, ey, ew, eh := e.editorLayout()
	e.renderText(ex, ey, ew, eh)

	e.statusBar.Render(e.screen, 0, screenH-1, screenW, 1)

	// The menu bar goes last so its dropdown covers the text
	e.menuBar.Render(e.screen, 0, 1, screenW, screenH-1)

	if e.fileChooser != nil {
		e.fileChooser.Theme = theme
		e.fileChooser.Render(e.screen, 0, 0, screenW, screenH)
	}
	if e.dialog != nil {
		e.dialog.Theme = theme
		e.dialog.Render(e.screen, 0, 0, screenW, screenH)
	}

	if e.dialog == nil && e.fileChooser == nil && !e.menuBar.IsOpen() {
		e.showCaret(ex, ey, ew, eh)
	} else {
		e.screen.HideCursor()
	}

	e.screen.Show()
}

// renderTitle draws the window title, starred while there are unsaved changes.
func (e *Editor) renderTitle(width int) {
	theme := e.cfg.GetTheme()
	style := tcell.StyleDefault.Background(theme.TitleBg).Foreground(theme.TitleFg).Bold(true)
	for cx := 0; cx < width; cx++ {
		e.screen.SetContent(cx, 0, ' ', nil, style)
	}
	title := e.windowTitle()
	col := max((width-runewidth.StringWidth(title))/2, 0)
	for _, ch := range title {
		if col >= width {
			break
		}
		e.screen.SetContent(col, 0, ch, nil, style)
		col += runeDisplayWidth(ch, col, 1)
	}
}

func (e *Editor) windowTitle() string {
	if e.doc.Dirty() {
		return "*" + e.state.Title
	}
	return e.state.Title
}

func (e *Editor) renderText(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if !e.mouseScrolling {
		e.ensureCaretVisible(w, h)
	}

	theme := e.cfg.GetTheme()
	lineStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	sel, hasSel := e.selection()

	var styled [][]tcell.Style
	if e.cfg.Highlight && e.language != "" {
		styled = e.styleLines(lineStyle)
	}

	for row := 0; row < h; row++ {
		lineIdx := e.scrollY + row
		if lineIdx >= e.doc.LineCount() {
			break
		}
		start := e.doc.LineStart(lineIdx)
		runes := []rune(e.doc.Line(lineIdx))
		displayCol := 0
		for i, r := range runes {
			cw := runeDisplayWidth(r, displayCol, e.tabSize)
			style := lineStyle
			if lineIdx < len(styled) && i < len(styled[lineIdx]) {
				style = styled[lineIdx][i]
			}
			if hasSel && sel.Contains(start+i) {
				style = style.Background(theme.Selection)
			}
			sx := x + displayCol - e.scrollX
			displayCol += cw
			if sx+cw <= x || sx >= x+w {
				continue
			}
			ch := r
			if r == '\t' {
				ch = ' '
				for k := 1; k < cw && sx+k < x+w; k++ {
					e.screen.SetContent(sx+k, y+row, ' ', nil, style)
				}
			}
			if sx >= x {
				e.screen.SetContent(sx, y+row, ch, nil, style)
			}
		}
		// Selected line breaks show as one highlighted cell
		end := start + len(runes)
		if hasSel && sel.Contains(end) && end < e.doc.Len() {
			if sx := x + displayCol - e.scrollX; sx >= x && sx < x+w {
				e.screen.SetContent(sx, y+row, ' ', nil, lineStyle.Background(theme.Selection))
			}
		}
	}
}

// styleLines expands the highlighter's tokens into one style per rune.
func (e *Editor) styleLines(base tcell.Style) [][]tcell.Style {
	lines := e.highlight.Lines(e.doc.Text(), e.language, base)
	out := make([][]tcell.Style, len(lines))
	for i, l := range lines {
		for _, tok := range l.Tokens {
			for range tok.Text {
				out[i] = append(out[i], tok.Style)
			}
		}
	}
	return out
}

func (e *Editor) ensureCaretVisible(textW, textH int) {
	cur := e.doc.PosToCursor(e.caret)
	if cur.Line < e.scrollY {
		e.scrollY = cur.Line
	}
	if cur.Line >= e.scrollY+textH {
		e.scrollY = cur.Line - textH + 1
	}

	// Horizontal: scrollX is in display columns
	caretCol := bufferColToDisplayCol(e.doc.Line(cur.Line), cur.Col, e.tabSize)
	if caretCol < e.scrollX {
		e.scrollX = caretCol
	}
	rightLimit := min(max((textW*7)/10, 1), max(textW-1, 0))
	if caretCol > e.scrollX+rightLimit {
		e.scrollX = caretCol - rightLimit
	}
}

func (e *Editor) showCaret(x, y, w, h int) {
	cur := e.doc.PosToCursor(e.caret)
	sx := x + bufferColToDisplayCol(e.doc.Line(cur.Line), cur.Col, e.tabSize) - e.scrollX
	sy := y + cur.Line - e.scrollY
	if sx >= x && sx < x+w && sy >= y && sy < y+h {
		e.screen.ShowCursor(sx, sy)
		return
	}
	e.screen.HideCursor()
}

// caretCursor is the caret as a line and column.
func (e *Editor) caretCursor() buffer.Cursor {
	return e.doc.PosToCursor(e.caret)
}
