package buffer

type Cursor struct {
	Line, Col int
}

func (c Cursor) Before(other Cursor) bool {
	if c.Line != other.Line {
		return c.Line < other.Line
	}
	return c.Col < other.Col
}

func (c Cursor) Equal(other Cursor) bool {
	return c.Line == other.Line && c.Col == other.Col
}

// Selection is a half-open range of linear positions.
type Selection struct {
	Start, End int
}

func NewSelection(a, b int) Selection {
	if a < b {
		return Selection{Start: a, End: b}
	}
	return Selection{Start: b, End: a}
}

func (s Selection) Contains(pos int) bool {
	return pos >= s.Start && pos < s.End
}

func (s Selection) Empty() bool {
	return s.Start == s.End
}

func (s Selection) Len() int {
	return s.End - s.Start
}
