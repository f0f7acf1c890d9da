package fileio

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Codec converts between file bytes and document text.
type Codec struct {
	Name string
	enc  encoding.Encoding // nil means strict UTF-8
}

var UTF8 = Codec{Name: "utf-8"}

// LookupCodec resolves a charset name as written in settings.json or an
// .editorconfig charset property. An empty name selects UTF-8.
func LookupCodec(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "utf-8-bom", "utf8-bom":
		return Codec{Name: "utf-8-bom", enc: unicode.UTF8BOM}, nil
	case "utf-16le":
		return Codec{Name: "utf-16le", enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)}, nil
	case "utf-16be":
		return Codec{Name: "utf-16be", enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)}, nil
	case "latin1", "iso-8859-1":
		return Codec{Name: "latin1", enc: charmap.ISO8859_1}, nil
	case "windows-1252", "cp1252":
		return Codec{Name: "windows-1252", enc: charmap.Windows1252}, nil
	}
	return Codec{}, fmt.Errorf("unsupported encoding %q", name)
}

func (c Codec) strict() bool { return c.enc == nil }

func (c Codec) reader(r io.Reader) io.Reader {
	if c.enc == nil {
		return r
	}
	return transform.NewReader(r, c.enc.NewDecoder())
}

// Encode converts text to file bytes. Runes the charset cannot represent are
// an error.
func (c Codec) Encode(text string) ([]byte, error) {
	if c.enc == nil {
		if !utf8.ValidString(text) {
			return nil, ErrInvalidEncoding
		}
		return []byte(text), nil
	}
	out, err := c.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.Name, err)
	}
	return out, nil
}

func (c Codec) String() string { return c.Name }
