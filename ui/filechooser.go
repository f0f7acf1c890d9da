package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"notepad/config"
	"notepad/fileio"

	"github.com/gdamore/tcell/v2"
)

type ChooserMode int

const (
	ChooseOpen ChooserMode = iota
	ChooseSave
)

type chooserEntry struct {
	Name  string
	IsDir bool
}

// FileChooser is a modal picker listing sub-directories and files that
// match Ext in Dir. Any typed name is accepted, filtered or not.
type FileChooser struct {
	Mode      ChooserMode
	Dir       string
	Ext       string // filter, e.g. "txt"; "" lists every file
	Input     string
	CursorPos int
	Entries   []chooserEntry
	Selected  int
	Err       string // last directory read error
	focused   bool
	scrollOff int

	Theme *config.ColorScheme

	OnChoose func(path string)
	OnCancel func()
}

func NewFileChooser(mode ChooserMode, dir, ext string, theme *config.ColorScheme) *FileChooser {
	fc := &FileChooser{
		Mode:    mode,
		Ext:     ext,
		focused: true,
		Theme:   theme,
	}
	fc.SetDir(dir)
	return fc
}

// SetDir lists dir: ".." first, then directories, then matching files, each
// group sorted by name. Hidden entries are skipped.
func (fc *FileChooser) SetDir(dir string) {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	fc.Dir = dir
	fc.Entries = fc.Entries[:0]
	fc.Selected = 0
	fc.scrollOff = 0
	fc.Err = ""

	if parent := filepath.Dir(dir); parent != dir {
		fc.Entries = append(fc.Entries, chooserEntry{Name: "..", IsDir: true})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		fc.Err = err.Error()
		return
	}
	var dirs, files []chooserEntry
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() {
			dirs = append(dirs, chooserEntry{Name: name, IsDir: true})
		} else if fileio.MatchesFilter(name, fc.Ext) {
			files = append(files, chooserEntry{Name: name})
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return strings.ToLower(dirs[i].Name) < strings.ToLower(dirs[j].Name) })
	sort.Slice(files, func(i, j int) bool { return strings.ToLower(files[i].Name) < strings.ToLower(files[j].Name) })
	fc.Entries = append(fc.Entries, dirs...)
	fc.Entries = append(fc.Entries, files...)
}

// resolve turns the typed input into a path relative to Dir.
func (fc *FileChooser) resolve(input string) string {
	if strings.HasPrefix(input, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			input = filepath.Join(home, input[2:])
		}
	}
	if filepath.IsAbs(input) {
		return filepath.Clean(input)
	}
	return filepath.Join(fc.Dir, input)
}

// submit handles Enter: a typed directory or a selected directory is
// entered, anything else is chosen.
func (fc *FileChooser) submit() {
	if fc.Input != "" {
		path := fc.resolve(fc.Input)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			fc.SetDir(path)
			fc.SetInput("")
			return
		}
		fc.choose(path)
		return
	}
	if fc.Selected < 0 || fc.Selected >= len(fc.Entries) {
		return
	}
	e := fc.Entries[fc.Selected]
	if e.IsDir {
		if e.Name == ".." {
			fc.SetDir(filepath.Dir(fc.Dir))
		} else {
			fc.SetDir(filepath.Join(fc.Dir, e.Name))
		}
		return
	}
	fc.choose(filepath.Join(fc.Dir, e.Name))
}

func (fc *FileChooser) choose(path string) {
	if fc.OnChoose != nil {
		fc.OnChoose(path)
	}
}

func (fc *FileChooser) cancel() {
	if fc.OnCancel != nil {
		fc.OnCancel()
	}
}

func (fc *FileChooser) SetInput(s string) {
	fc.Input = s
	fc.CursorPos = len([]rune(s))
}

func (fc *FileChooser) Render(screen tcell.Screen, x, y, width, height int) {
	theme := fc.Theme
	if theme == nil {
		theme = config.Themes["classic"]
	}
	style := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	titleStyle := tcell.StyleDefault.Background(theme.TitleBg).Foreground(theme.TitleFg).Bold(true)
	inputStyle := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.DialogFg)
	selStyle := tcell.StyleDefault.Background(theme.MenuActiveBg).Foreground(theme.MenuActiveFg)
	dirStyle := style.Bold(true)
	errStyle := style.Foreground(theme.ErrorFg)

	boxW := min(max(width*2/3, 40), width)
	boxH := min(max(height*2/3, 10), height)
	bx := x + (width-boxW)/2
	by := y + (height-boxH)/2
	fill(screen, bx, by, boxW, boxH, style)

	title := " Open "
	if fc.Mode == ChooseSave {
		title = " Save As "
	}
	fill(screen, bx, by, boxW, 1, titleStyle)
	col := drawString(screen, bx, by, bx+boxW, title, titleStyle)
	drawString(screen, col, by, bx+boxW, truncateLeft(fc.Dir, boxW-(col-bx)-1), titleStyle)

	// File name field
	label := "File name: "
	col = drawString(screen, bx+1, by+1, bx+boxW-1, label, style)
	fill(screen, col, by+1, bx+boxW-1-col, 1, inputStyle)
	runes := []rune(fc.Input)
	for i, ch := range runes {
		st := inputStyle
		if i == fc.CursorPos {
			st = st.Reverse(true)
		}
		col = drawString(screen, col, by+1, bx+boxW-1, string(ch), st)
	}
	if fc.CursorPos >= len(runes) && col < bx+boxW-1 {
		screen.SetContent(col, by+1, ' ', nil, inputStyle.Reverse(true))
	}

	filter := "All files"
	if fc.Ext != "" {
		filter = "Text Files (*." + fc.Ext + ")"
	}
	drawString(screen, bx+1, by+boxH-1, bx+boxW-1, filter+"   Enter: choose  Esc: cancel", style)

	listY := by + 3
	listH := boxH - 5
	if fc.Err != "" {
		drawString(screen, bx+1, listY, bx+boxW-1, fc.Err, errStyle)
		return
	}
	if fc.Selected < fc.scrollOff {
		fc.scrollOff = fc.Selected
	}
	if listH > 0 && fc.Selected >= fc.scrollOff+listH {
		fc.scrollOff = fc.Selected - listH + 1
	}
	for i := 0; i < listH && fc.scrollOff+i < len(fc.Entries); i++ {
		idx := fc.scrollOff + i
		e := fc.Entries[idx]
		name := e.Name
		st := style
		if e.IsDir {
			name += string(filepath.Separator)
			st = dirStyle
		}
		if idx == fc.Selected {
			st = selStyle
			fill(screen, bx+1, listY+i, boxW-2, 1, st)
		}
		drawString(screen, bx+2, listY+i, bx+boxW-1, name, st)
	}
}

func (fc *FileChooser) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		fc.cancel()
	case tcell.KeyEnter:
		fc.submit()
	case tcell.KeyUp:
		if fc.Selected > 0 {
			fc.Selected--
		}
	case tcell.KeyDown:
		if fc.Selected < len(fc.Entries)-1 {
			fc.Selected++
		}
	case tcell.KeyPgUp:
		fc.Selected = max(fc.Selected-10, 0)
	case tcell.KeyPgDn:
		fc.Selected = max(min(fc.Selected+10, len(fc.Entries)-1), 0)
	case tcell.KeyTab:
		// Complete the field from the highlighted entry.
		if fc.Selected >= 0 && fc.Selected < len(fc.Entries) && fc.Entries[fc.Selected].Name != ".." {
			fc.SetInput(fc.Entries[fc.Selected].Name)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if fc.CursorPos > 0 {
			runes := []rune(fc.Input)
			fc.Input = string(runes[:fc.CursorPos-1]) + string(runes[fc.CursorPos:])
			fc.CursorPos--
		}
	case tcell.KeyDelete:
		runes := []rune(fc.Input)
		if fc.CursorPos < len(runes) {
			fc.Input = string(runes[:fc.CursorPos]) + string(runes[fc.CursorPos+1:])
		}
	case tcell.KeyLeft:
		if fc.CursorPos > 0 {
			fc.CursorPos--
		}
	case tcell.KeyRight:
		if fc.CursorPos < len([]rune(fc.Input)) {
			fc.CursorPos++
		}
	case tcell.KeyHome:
		fc.CursorPos = 0
	case tcell.KeyEnd:
		fc.CursorPos = len([]rune(fc.Input))
	case tcell.KeyRune:
		runes := []rune(fc.Input)
		fc.Input = string(runes[:fc.CursorPos]) + string(ev.Rune()) + string(runes[fc.CursorPos:])
		fc.CursorPos++
	}
	return true
}

func (fc *FileChooser) HandleMouse(ev *tcell.EventMouse) bool { return true }
func (fc *FileChooser) IsFocused() bool                       { return fc.focused }
func (fc *FileChooser) SetFocused(f bool)                     { fc.focused = f }
