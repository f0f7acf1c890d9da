package ui

import (
	"notepad/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type MenuItem struct {
	Label    string
	Shortcut string // hint shown right-aligned, e.g. "Ctrl+S"
	Hotkey   rune   // letter that activates the item while the menu is open
	OnSelect func()
}

type Menu struct {
	Title  string
	Hotkey rune
	Items  []MenuItem
}

// MenuBar is a one-row bar of pull-down menus.
type MenuBar struct {
	Menus    []Menu
	Open     int // index of the pulled-down menu, -1 when closed
	Selected int // highlighted item in the open menu

	x, y, w int // layout coords set on render
	focused bool

	// Mouse press tracking for click-on-release
	mousePressX, mousePressY int
	mousePressed             bool

	Theme *config.ColorScheme
}

func NewMenuBar(menus ...Menu) *MenuBar {
	return &MenuBar{Menus: menus, Open: -1}
}

func (mb *MenuBar) IsOpen() bool { return mb.Open >= 0 }

// OpenMenu pulls down menu i with its first item highlighted.
func (mb *MenuBar) OpenMenu(i int) {
	if i < 0 || i >= len(mb.Menus) {
		return
	}
	mb.Open = i
	mb.Selected = 0
	mb.focused = true
}

func (mb *MenuBar) Close() {
	mb.Open = -1
	mb.Selected = 0
	mb.focused = false
}

// OpenByHotkey opens the menu whose hotkey matches r, case-insensitively.
func (mb *MenuBar) OpenByHotkey(r rune) bool {
	for i, m := range mb.Menus {
		if equalFoldRune(m.Hotkey, r) {
			mb.OpenMenu(i)
			return true
		}
	}
	return false
}

func (mb *MenuBar) activate(item int) {
	if mb.Open < 0 || item < 0 || item >= len(mb.Menus[mb.Open].Items) {
		return
	}
	it := mb.Menus[mb.Open].Items[item]
	mb.Close()
	if it.OnSelect != nil {
		it.OnSelect()
	}
}

// titleSpan returns the screen columns [start, end) of menu i's title.
func (mb *MenuBar) titleSpan(i int) (int, int) {
	col := mb.x
	for j := 0; j < i; j++ {
		col += runewidth.StringWidth(mb.Menus[j].Title) + 2
	}
	return col, col + runewidth.StringWidth(mb.Menus[i].Title) + 2
}

func (mb *MenuBar) dropdownWidth(m Menu) int {
	labelW, shortW := 0, 0
	for _, it := range m.Items {
		labelW = max(labelW, runewidth.StringWidth(it.Label))
		shortW = max(shortW, runewidth.StringWidth(it.Shortcut))
	}
	w := 1 + labelW + 1
	if shortW > 0 {
		w += 2 + shortW + 1
	}
	return w
}

func (mb *MenuBar) Render(screen tcell.Screen, x, y, width, height int) {
	mb.x, mb.y, mb.w = x, y, width

	theme := mb.Theme
	if theme == nil {
		theme = config.Themes["classic"]
	}
	barStyle := tcell.StyleDefault.Background(theme.MenuBarBg).Foreground(theme.MenuBarFg)
	activeStyle := tcell.StyleDefault.Background(theme.MenuActiveBg).Foreground(theme.MenuActiveFg)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, barStyle)
	}

	for i, m := range mb.Menus {
		start, _ := mb.titleSpan(i)
		style := barStyle
		if i == mb.Open {
			style = activeStyle
		}
		col := drawString(screen, start, y, x+width, " ", style)
		col = drawHotkeyLabel(screen, col, y, x+width, m.Title, m.Hotkey, style, style.Foreground(theme.MenuHotkeyFg).Underline(true))
		drawString(screen, col, y, x+width, " ", style)
	}

	if mb.Open >= 0 {
		mb.renderDropdown(screen, theme, height)
	}
}

func (mb *MenuBar) renderDropdown(screen tcell.Screen, theme *config.ColorScheme, height int) {
	m := mb.Menus[mb.Open]
	start, _ := mb.titleSpan(mb.Open)
	w := mb.dropdownWidth(m)
	itemStyle := tcell.StyleDefault.Background(theme.MenuBarBg).Foreground(theme.MenuBarFg)
	selStyle := tcell.StyleDefault.Background(theme.MenuActiveBg).Foreground(theme.MenuActiveFg)

	for i, it := range m.Items {
		row := mb.y + 1 + i
		if row >= mb.y+height {
			break
		}
		style := itemStyle
		if i == mb.Selected {
			style = selStyle
		}
		for cx := start; cx < start+w && cx < mb.x+mb.w; cx++ {
			screen.SetContent(cx, row, ' ', nil, style)
		}
		drawHotkeyLabel(screen, start+1, row, start+w, it.Label, it.Hotkey, style, style.Foreground(theme.MenuHotkeyFg).Underline(true))
		if it.Shortcut != "" {
			drawString(screen, start+w-1-runewidth.StringWidth(it.Shortcut), row, start+w, it.Shortcut, style)
		}
	}
}

func (mb *MenuBar) HandleKey(ev *tcell.EventKey) bool {
	if mb.Open < 0 {
		return false
	}
	items := mb.Menus[mb.Open].Items
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyF10:
		mb.Close()
	case tcell.KeyLeft:
		mb.OpenMenu((mb.Open + len(mb.Menus) - 1) % len(mb.Menus))
	case tcell.KeyRight:
		mb.OpenMenu((mb.Open + 1) % len(mb.Menus))
	case tcell.KeyUp:
		if len(items) > 0 {
			mb.Selected = (mb.Selected + len(items) - 1) % len(items)
		}
	case tcell.KeyDown:
		if len(items) > 0 {
			mb.Selected = (mb.Selected + 1) % len(items)
		}
	case tcell.KeyEnter:
		mb.activate(mb.Selected)
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			if !mb.OpenByHotkey(ev.Rune()) {
				mb.Close()
			}
			return true
		}
		for i, it := range items {
			if equalFoldRune(it.Hotkey, ev.Rune()) {
				mb.activate(i)
				break
			}
		}
	}
	// An open menu is modal: swallow everything else.
	return true
}

func (mb *MenuBar) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	btn := ev.Buttons()

	if btn == tcell.Button1 {
		if !mb.mousePressed {
			mb.mousePressX, mb.mousePressY = mx, my
			mb.mousePressed = true
		}
		return mb.hit(mx, my)
	}
	if btn != tcell.ButtonNone || !mb.mousePressed {
		return mb.Open >= 0
	}
	mb.mousePressed = false
	if mx != mb.mousePressX || my != mb.mousePressY {
		return mb.Open >= 0
	}

	if my == mb.y {
		for i := range mb.Menus {
			start, end := mb.titleSpan(i)
			if mx >= start && mx < end {
				if mb.Open == i {
					mb.Close()
				} else {
					mb.OpenMenu(i)
				}
				return true
			}
		}
		if mb.Open >= 0 {
			mb.Close()
			return true
		}
		return false
	}

	if mb.Open >= 0 {
		start, _ := mb.titleSpan(mb.Open)
		w := mb.dropdownWidth(mb.Menus[mb.Open])
		item := my - mb.y - 1
		if mx >= start && mx < start+w && item >= 0 && item < len(mb.Menus[mb.Open].Items) {
			mb.activate(item)
		} else {
			mb.Close()
		}
		return true
	}
	return false
}

// hit reports whether (mx, my) lies on the bar or the open dropdown.
func (mb *MenuBar) hit(mx, my int) bool {
	if my == mb.y && mx >= mb.x && mx < mb.x+mb.w {
		return true
	}
	if mb.Open < 0 {
		return false
	}
	start, _ := mb.titleSpan(mb.Open)
	w := mb.dropdownWidth(mb.Menus[mb.Open])
	item := my - mb.y - 1
	return mx >= start && mx < start+w && item >= 0 && item < len(mb.Menus[mb.Open].Items)
}

func (mb *MenuBar) IsFocused() bool   { return mb.focused }
func (mb *MenuBar) SetFocused(f bool) { mb.focused = f }
