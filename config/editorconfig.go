package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileSettings are the .editorconfig properties the notepad honours.
type FileSettings struct {
	Charset   string // "utf-8", "latin1", "utf-16le", ...
	EndOfLine string // "lf" or "crlf"
	TabWidth  int    // 0 means unset
}

// LineEnding maps end_of_line to "LF"/"CRLF", or "" when unset.
func (s *FileSettings) LineEnding() string {
	switch s.EndOfLine {
	case "crlf":
		return "CRLF"
	case "lf":
		return "LF"
	}
	return ""
}

// FindEditorConfig walks from the file's directory upward, stopping at a
// root = true file, and merges the sections matching the file name. Closer
// files win. Returns nil when nothing applies.
func FindEditorConfig(filePath string) *FileSettings {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil
	}
	fileName := filepath.Base(absPath)

	var found []map[string]string
	for dir := filepath.Dir(absPath); ; {
		props, isRoot := readEditorConfig(filepath.Join(dir, ".editorconfig"), fileName)
		if props != nil {
			found = append(found, props)
		}
		if isRoot {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if len(found) == 0 {
		return nil
	}

	merged := make(map[string]string)
	for i := len(found) - 1; i >= 0; i-- {
		for k, v := range found[i] {
			merged[k] = v
		}
	}
	return fileSettingsFrom(merged)
}

// readEditorConfig returns the properties of sections matching fileName and
// whether the file declares root = true.
func readEditorConfig(path, fileName string) (map[string]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	props := make(map[string]string)
	isRoot := false
	preamble := true
	matching := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if line[0] == '[' && line[len(line)-1] == ']' {
			preamble = false
			matching = sectionMatches(line[1:len(line)-1], fileName)
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))
		switch {
		case preamble && key == "root":
			isRoot = value == "true"
		case matching:
			props[key] = value
		}
	}

	if len(props) == 0 {
		return nil, isRoot
	}
	return props, isRoot
}

// sectionMatches matches a section glob such as "*.{txt,md}" against a base
// file name.
func sectionMatches(pattern, fileName string) bool {
	for _, p := range expandBraces(pattern) {
		if ok, _ := filepath.Match(p, fileName); ok {
			return true
		}
	}
	return false
}

func expandBraces(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}
	}
	depth, closeIdx := 0, -1
	for i := open; i < len(pattern) && closeIdx < 0; i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
	}
	if closeIdx < 0 {
		return []string{pattern}
	}

	var out []string
	for _, alt := range splitAlternatives(pattern[open+1 : closeIdx]) {
		out = append(out, expandBraces(pattern[:open]+alt+pattern[closeIdx+1:])...)
	}
	return out
}

func splitAlternatives(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func fileSettingsFrom(m map[string]string) *FileSettings {
	s := &FileSettings{
		Charset:   m["charset"],
		EndOfLine: m["end_of_line"],
	}
	if v, ok := m["tab_width"]; ok {
		s.TabWidth, _ = strconv.Atoi(v)
	} else if v, ok := m["indent_size"]; ok {
		s.TabWidth, _ = strconv.Atoi(v)
	}
	if s.TabWidth < 0 {
		s.TabWidth = 0
	}
	if s.Charset == "" && s.EndOfLine == "" && s.TabWidth == 0 {
		return nil
	}
	return s
}
