package buffer

import (
	"time"
	"unicode"
	"unicode/utf8"
)

// Edit is one reversible mutation: at Pos, Removed was replaced by Inserted.
type Edit struct {
	Pos      int
	Removed  string
	Inserted string
	Time     time.Time // when the edit was recorded or last extended
}

func (e Edit) Inverse() Edit {
	return Edit{Pos: e.Pos, Removed: e.Inserted, Inserted: e.Removed, Time: e.Time}
}

func (e Edit) IsInsert() bool { return e.Removed == "" && e.Inserted != "" }
func (e Edit) IsDelete() bool { return e.Inserted == "" && e.Removed != "" }

// Caret is the position just after the inserted text once e is applied.
func (e Edit) Caret() int {
	return e.Pos + utf8.RuneCountInString(e.Inserted)
}

const DefaultGroupInterval = 300 * time.Millisecond

// History is a linear undo history: records[:cursor] are applied,
// records[cursor:] have been undone and can be redone.
type History struct {
	records []Edit
	cursor  int
	sealed  bool // next Record must not extend the last record

	GroupInterval time.Duration
	Now           func() time.Time
}

func NewHistory() *History {
	return &History{GroupInterval: DefaultGroupInterval, Now: time.Now}
}

// Record appends e at the cursor, dropping every undone record. Quick runs of
// typed or backspaced characters are folded into a single record.
func (h *History) Record(e Edit) {
	e.Time = h.now()
	if h.cursor < len(h.records) {
		h.records = h.records[:h.cursor]
		h.sealed = true
	}
	if !h.sealed && h.cursor > 0 && h.extend(&h.records[h.cursor-1], e) {
		return
	}
	h.records = append(h.records, e)
	h.cursor = len(h.records)
	h.sealed = false
}

func (h *History) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h *History) extend(prev *Edit, cur Edit) bool {
	if cur.Time.Sub(prev.Time) >= h.GroupInterval {
		return false
	}
	switch {
	case prev.IsInsert() && cur.IsInsert():
		if utf8.RuneCountInString(cur.Inserted) != 1 || cur.Pos != prev.Caret() {
			return false
		}
		if isGroupBreak(lastRune(prev.Inserted), lastRune(cur.Inserted)) {
			return false
		}
		prev.Inserted += cur.Inserted
	case prev.IsDelete() && cur.IsDelete():
		if utf8.RuneCountInString(cur.Removed) != 1 {
			return false
		}
		switch {
		case cur.Pos+1 == prev.Pos: // backspace
			if isGroupBreak(firstRune(prev.Removed), lastRune(cur.Removed)) {
				return false
			}
			prev.Pos = cur.Pos
			prev.Removed = cur.Removed + prev.Removed
		case cur.Pos == prev.Pos: // forward delete
			if isGroupBreak(lastRune(prev.Removed), lastRune(cur.Removed)) {
				return false
			}
			prev.Removed += cur.Removed
		default:
			return false
		}
	default:
		return false
	}
	prev.Time = cur.Time
	return true
}

// isGroupBreak reports whether whitespace separates two typed runes.
func isGroupBreak(prev, cur rune) bool {
	return unicode.IsSpace(prev) || unicode.IsSpace(cur)
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func (h *History) CanUndo() bool { return h.cursor > 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.records) }

// Undo reverts the record before the cursor on doc and returns the edit that
// was applied. It does nothing when there is nothing to undo.
func (h *History) Undo(doc *Document) (Edit, bool) {
	if !h.CanUndo() {
		return Edit{}, false
	}
	inv := h.records[h.cursor-1].Inverse()
	doc.apply(inv)
	h.cursor--
	h.sealed = true
	return inv, true
}

// Redo reapplies the record at the cursor.
func (h *History) Redo(doc *Document) (Edit, bool) {
	if !h.CanRedo() {
		return Edit{}, false
	}
	rec := h.records[h.cursor]
	doc.apply(rec)
	h.cursor++
	h.sealed = true
	return rec, true
}

// Break makes the next recorded edit start a new undo step.
func (h *History) Break() { h.sealed = true }

func (h *History) Reset() {
	h.records = nil
	h.cursor = 0
	h.sealed = false
}

func (h *History) Len() int    { return len(h.records) }
func (h *History) Cursor() int { return h.cursor }

// Track wires doc so that every mutation it reports is recorded.
func (h *History) Track(doc *Document) {
	doc.OnMutation = func(pos int, removed, inserted string) {
		h.Record(Edit{Pos: pos, Removed: removed, Inserted: inserted})
	}
}
