package ui

import (
	"notepad/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type DialogType int

const (
	DialogNone DialogType = iota
	DialogMessage
	DialogSaveConfirm
)

// Dialog is a modal box drawn centred over the editor.
type Dialog struct {
	Type    DialogType
	Title   string
	Message string
	focused bool

	Theme *config.ColorScheme

	// Callbacks
	OnDismiss func()            // message dialogs
	OnConfirm func(answer rune) // save confirm: 'y', 'n', 'c'
}

func NewMessageDialog(title, message string) *Dialog {
	return &Dialog{
		Type:    DialogMessage,
		Title:   title,
		Message: message,
		focused: true,
	}
}

func NewSaveConfirmDialog(filename string) *Dialog {
	return &Dialog{
		Type:    DialogSaveConfirm,
		Title:   "Notepad",
		Message: "Save changes to " + filename + "?",
		focused: true,
	}
}

func (d *Dialog) buttons() string {
	if d.Type == DialogSaveConfirm {
		return "[Y]es  [N]o  [C]ancel"
	}
	return "[ OK ]"
}

func (d *Dialog) Render(screen tcell.Screen, x, y, width, height int) {
	theme := d.Theme
	if theme == nil {
		theme = config.Themes["classic"]
	}
	style := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	titleStyle := tcell.StyleDefault.Background(theme.TitleBg).Foreground(theme.TitleFg).Bold(true)
	buttonStyle := style.Reverse(true)

	inner := max(runewidth.StringWidth(d.Message), runewidth.StringWidth(d.buttons()), runewidth.StringWidth(d.Title)) + 4
	boxW := min(inner+2, width)
	boxH := min(6, height)
	bx := x + (width-boxW)/2
	by := y + (height-boxH)/2

	fill(screen, bx, by, boxW, boxH, style)
	for cx := bx; cx < bx+boxW; cx++ {
		screen.SetContent(cx, by, ' ', nil, titleStyle)
		screen.SetContent(cx, by+boxH-1, tcell.RuneHLine, nil, style)
	}
	for cy := by + 1; cy < by+boxH-1; cy++ {
		screen.SetContent(bx, cy, tcell.RuneVLine, nil, style)
		screen.SetContent(bx+boxW-1, cy, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(bx, by+boxH-1, tcell.RuneLLCorner, nil, style)
	screen.SetContent(bx+boxW-1, by+boxH-1, tcell.RuneLRCorner, nil, style)

	drawString(screen, bx+2, by, bx+boxW-1, d.Title, titleStyle)
	drawString(screen, bx+(boxW-runewidth.StringWidth(d.Message))/2, by+2, bx+boxW-1, d.Message, style)
	btn := d.buttons()
	drawString(screen, bx+(boxW-runewidth.StringWidth(btn))/2, by+3, bx+boxW-1, btn, buttonStyle)
}

func (d *Dialog) HandleKey(ev *tcell.EventKey) bool {
	if d.Type == DialogSaveConfirm {
		return d.handleSaveConfirmKey(ev)
	}
	switch ev.Key() {
	case tcell.KeyEnter, tcell.KeyEscape:
		d.dismiss()
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			d.dismiss()
		}
	}
	return true
}

func (d *Dialog) dismiss() {
	if d.OnDismiss != nil {
		d.OnDismiss()
	}
}

func (d *Dialog) handleSaveConfirmKey(ev *tcell.EventKey) bool {
	ch := ev.Rune()
	switch {
	case ch == 'y' || ch == 'Y':
		if d.OnConfirm != nil {
			d.OnConfirm('y')
		}
	case ch == 'n' || ch == 'N':
		if d.OnConfirm != nil {
			d.OnConfirm('n')
		}
	case ch == 'c' || ch == 'C' || ev.Key() == tcell.KeyEscape:
		if d.OnConfirm != nil {
			d.OnConfirm('c')
		}
	}
	return true
}

// HandleMouse dismisses message dialogs on click; the dialog stays modal.
func (d *Dialog) HandleMouse(ev *tcell.EventMouse) bool {
	if d.Type == DialogMessage && ev.Buttons() == tcell.Button1 {
		d.dismiss()
	}
	return true
}

func (d *Dialog) IsFocused() bool   { return d.focused }
func (d *Dialog) SetFocused(f bool) { d.focused = f }
