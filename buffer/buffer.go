package buffer

import (
	"unicode/utf8"
)

// Document is the in-memory text of the editor, addressed by linear rune
// offsets in [0, Len()].
type Document struct {
	text []rune

	// OnMutation is called after every change made through SetText, Insert,
	// Delete or Replace. Changes applied by History do not fire it.
	OnMutation func(pos int, removed, inserted string)

	lineStarts []int // lazily rebuilt, nil when stale
	saved      string
}

func NewDocument() *Document {
	return &Document{}
}

func (d *Document) Text() string { return string(d.text) }
func (d *Document) Len() int     { return len(d.text) }

// Slice returns the text between start and end, clamped to the document.
func (d *Document) Slice(start, end int) string {
	start, end = d.clamp(start), d.clamp(end)
	if start >= end {
		return ""
	}
	return string(d.text[start:end])
}

// SetText replaces the whole content. History is not touched.
func (d *Document) SetText(s string) {
	d.Replace(0, len(d.text), s)
}

// Insert inserts s at pos and returns the position just after the inserted text.
func (d *Document) Insert(pos int, s string) int {
	pos = d.clamp(pos)
	d.Replace(pos, 0, s)
	return pos + utf8.RuneCountInString(s)
}

// Delete removes n runes starting at pos and returns the removed text.
func (d *Document) Delete(pos, n int) string {
	pos = d.clamp(pos)
	removed := d.Slice(pos, pos+n)
	d.Replace(pos, n, "")
	return removed
}

// Replace swaps n runes at pos for s.
func (d *Document) Replace(pos, n int, s string) {
	pos = d.clamp(pos)
	removed := d.replace(pos, n, s)
	if removed == s {
		return
	}
	if d.OnMutation != nil {
		d.OnMutation(pos, removed, s)
	}
}

func (d *Document) replace(pos, n int, s string) string {
	pos = d.clamp(pos)
	n = max(n, 0)
	end := d.clamp(pos + n)
	removed := string(d.text[pos:end])
	if removed == s {
		return removed
	}
	ins := []rune(s)
	out := make([]rune, 0, len(d.text)-(end-pos)+len(ins))
	out = append(out, d.text[:pos]...)
	out = append(out, ins...)
	out = append(out, d.text[end:]...)
	d.text = out
	d.lineStarts = nil
	return removed
}

// apply performs e without notifying OnMutation.
func (d *Document) apply(e Edit) {
	d.replace(e.Pos, utf8.RuneCountInString(e.Removed), e.Inserted)
}

func (d *Document) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(d.text) {
		return len(d.text)
	}
	return pos
}

// Dirty reports whether the content differs from the last MarkSaved snapshot.
func (d *Document) Dirty() bool {
	return string(d.text) != d.saved
}

func (d *Document) MarkSaved() {
	d.saved = string(d.text)
}

func (d *Document) starts() []int {
	if d.lineStarts != nil {
		return d.lineStarts
	}
	starts := []int{0}
	for i, r := range d.text {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	d.lineStarts = starts
	return starts
}

// LineCount counts the lines shown on screen. A trailing newline opens an
// empty last line.
func (d *Document) LineCount() int {
	return len(d.starts())
}

// Line returns line i without its newline.
func (d *Document) Line(i int) string {
	starts := d.starts()
	if i < 0 || i >= len(starts) {
		return ""
	}
	end := len(d.text)
	if i+1 < len(starts) {
		end = starts[i+1] - 1
	}
	return string(d.text[starts[i]:end])
}

// LineStart returns the linear position of the first rune of line i.
func (d *Document) LineStart(i int) int {
	starts := d.starts()
	if i <= 0 {
		return 0
	}
	if i >= len(starts) {
		return len(d.text)
	}
	return starts[i]
}

func (d *Document) lineLen(i int) int {
	starts := d.starts()
	end := len(d.text)
	if i+1 < len(starts) {
		end = starts[i+1] - 1
	}
	return end - starts[i]
}

func (d *Document) PosToCursor(pos int) Cursor {
	pos = d.clamp(pos)
	starts := d.starts()
	lo, hi := 0, len(starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if starts[mid] <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return Cursor{Line: lo, Col: pos - starts[lo]}
}

// CursorToPos maps a line/column pair to a linear position, clamping the
// column to the line length.
func (d *Document) CursorToPos(c Cursor) int {
	starts := d.starts()
	if c.Line < 0 {
		return 0
	}
	if c.Line >= len(starts) {
		return len(d.text)
	}
	col := c.Col
	if col < 0 {
		col = 0
	}
	if n := d.lineLen(c.Line); col > n {
		col = n
	}
	return starts[c.Line] + col
}
