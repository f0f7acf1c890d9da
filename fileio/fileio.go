// Package fileio reads and writes whole documents as plain text files.
package fileio

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	LF   = "LF"
	CRLF = "CRLF"
)

// Open reads the file at path line by line and rebuilds the text with a
// newline after every line, including the last one even when the file has
// no trailing newline. A line ends at "\n", "\r\n" or a lone "\r"; all come
// back as "\n".
func Open(path string, codec Codec) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	r := bufio.NewReader(codec.reader(f))
	var sb, line strings.Builder
	flush := func() error {
		if codec.strict() && !utf8.ValidString(line.String()) {
			return &IOError{Op: "open", Path: path, Err: ErrInvalidEncoding}
		}
		sb.WriteString(line.String())
		sb.WriteByte('\n')
		line.Reset()
		return nil
	}
	for {
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", &IOError{Op: "open", Path: path, Err: err}
		}
		switch b {
		case '\r':
			if next, err := r.Peek(1); err == nil && next[0] == '\n' {
				r.Discard(1)
			}
			fallthrough
		case '\n':
			if err := flush(); err != nil {
				return "", err
			}
		default:
			line.WriteByte(b)
		}
	}
	if line.Len() > 0 {
		if err := flush(); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// DetectLineEnding reports CRLF when the file uses "\r\n" breaks. Missing or
// unreadable files report LF.
func DetectLineEnding(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return LF
	}
	defer f.Close()

	buf := make([]byte, 8192)
	n, _ := io.ReadFull(f, buf)
	if strings.Contains(string(buf[:n]), "\r\n") {
		return CRLF
	}
	return LF
}

// Save writes content to path, creating the file when it does not exist and
// truncating it otherwise. The previous content is not kept.
func Save(path, content string, codec Codec, lineEnding string) (err error) {
	if lineEnding == CRLF {
		content = strings.ReplaceAll(content, "\n", "\r\n")
	}
	data, err := codec.Encode(content)
	if err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "save", Path: path, Err: cerr}
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := w.Write(data); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// EnsureExtension appends "."+ext to path unless the file name already ends
// with it, compared case-insensitively.
func EnsureExtension(path, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" || MatchesFilter(path, ext) {
		return path
	}
	return path + "." + ext
}

// MatchesFilter reports whether the base name of path ends with "."+ext.
func MatchesFilter(path, ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return true
	}
	name := filepath.Base(path)
	suffix := "." + ext
	return len(name) >= len(suffix) && strings.EqualFold(name[len(name)-len(suffix):], suffix)
}
