package highlight

import (
	"crypto/sha256"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/gdamore/tcell/v2"
)

type Token struct {
	Text  string
	Style tcell.Style
}

type StyledLine struct {
	Tokens []Token
}

// Highlighter remembers the last document it styled so repeated renders of
// unchanged text are free.
type Highlighter struct {
	key   [sha256.Size]byte
	lang  string
	lines []StyledLine
}

func New() *Highlighter {
	return &Highlighter{}
}

func (h *Highlighter) Invalidate() {
	h.lines = nil
}

// Lines styles every line of text for lang on top of base. Unknown languages
// produce a single unstyled token per line.
func (h *Highlighter) Lines(text, lang string, base tcell.Style) []StyledLine {
	key := sha256.Sum256([]byte(text))
	if h.lines != nil && key == h.key && lang == h.lang {
		return h.lines
	}

	raw := strings.Split(text, "\n")
	styled := make([]StyledLine, len(raw))

	lexer := lexers.Get(lang)
	if lang == "" || lexer == nil {
		for i, l := range raw {
			styled[i] = StyledLine{Tokens: []Token{{Text: l, Style: base}}}
		}
		h.key, h.lang, h.lines = key, lang, styled
		return styled
	}

	iter, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		for i, l := range raw {
			styled[i] = StyledLine{Tokens: []Token{{Text: l, Style: base}}}
		}
		return styled
	}

	line := 0
	for _, tok := range iter.Tokens() {
		style := tokenStyle(tok.Type, base)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				line++
			}
			if line >= len(styled) {
				break
			}
			if part != "" {
				styled[line].Tokens = append(styled[line].Tokens, Token{Text: part, Style: style})
			}
		}
	}

	h.key, h.lang, h.lines = key, lang, styled
	return styled
}

// DetectLanguage returns the chroma lexer name for filename, or "" for plain
// text and unknown files.
func DetectLanguage(filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return ""
	}
	cfg := lexer.Config()
	if cfg == nil || strings.EqualFold(cfg.Name, "plaintext") {
		return ""
	}
	return cfg.Name
}

func tokenStyle(t chroma.TokenType, base tcell.Style) tcell.Style {
	switch {
	case t.InCategory(chroma.Keyword):
		return base.Foreground(tcell.ColorBlue).Bold(true)
	case t.InSubCategory(chroma.LiteralString):
		return base.Foreground(tcell.ColorGreen)
	case t.InCategory(chroma.Comment):
		return base.Foreground(tcell.ColorGray).Italic(true)
	case t.InSubCategory(chroma.LiteralNumber):
		return base.Foreground(tcell.ColorDarkCyan)
	case t == chroma.NameFunction || t == chroma.NameFunctionMagic:
		return base.Foreground(tcell.ColorPurple)
	case t == chroma.NameClass || t == chroma.NameException || t == chroma.NameDecorator:
		return base.Foreground(tcell.ColorFuchsia)
	case t == chroma.NameBuiltin || t == chroma.NameBuiltinPseudo:
		return base.Foreground(tcell.ColorTeal)
	}
	return base
}
