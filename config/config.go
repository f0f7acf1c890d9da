package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	TabSize        int    `json:"tab_size"`
	Theme          string `json:"theme"`
	AssetsDir      string `json:"assets_dir"`
	Extension      string `json:"extension"`
	Encoding       string `json:"encoding"`
	LineEnding     string `json:"line_ending"` // "LF" or "CRLF" for new files
	UndoGroupMs    int    `json:"undo_group_ms"`
	WatchFile      bool   `json:"watch_file"`
	Highlight      bool   `json:"highlight"`
	BackupInterval int    `json:"backup_interval_seconds"` // 0 disables backups
	ConfirmExit    bool   `json:"confirm_exit"`
	RestoreSession bool   `json:"restore_session"`
}

type ColorScheme struct {
	Name            string
	Background      tcell.Color
	Foreground      tcell.Color
	Selection       tcell.Color
	TitleBg         tcell.Color
	TitleFg         tcell.Color
	MenuBarBg       tcell.Color
	MenuBarFg       tcell.Color
	MenuActiveBg    tcell.Color
	MenuActiveFg    tcell.Color
	MenuHotkeyFg    tcell.Color
	StatusBarBg     tcell.Color
	StatusBarFg     tcell.Color
	StatusBarModeBg tcell.Color
	ErrorFg         tcell.Color
	DialogBg        tcell.Color
	DialogFg        tcell.Color
	DialogInputBg   tcell.Color
}

var Themes = map[string]*ColorScheme{
	"classic": {
		Name:            "Classic",
		Background:      tcell.ColorWhite,
		Foreground:      tcell.ColorBlack,
		Selection:       tcell.ColorLightBlue,
		TitleBg:         tcell.ColorNavy,
		TitleFg:         tcell.ColorWhite,
		MenuBarBg:       tcell.ColorSilver,
		MenuBarFg:       tcell.ColorBlack,
		MenuActiveBg:    tcell.ColorNavy,
		MenuActiveFg:    tcell.ColorWhite,
		MenuHotkeyFg:    tcell.ColorMaroon,
		StatusBarBg:     tcell.ColorSilver,
		StatusBarFg:     tcell.ColorBlack,
		StatusBarModeBg: tcell.ColorNavy,
		ErrorFg:         tcell.ColorMaroon,
		DialogBg:        tcell.ColorSilver,
		DialogFg:        tcell.ColorBlack,
		DialogInputBg:   tcell.ColorWhite,
	},
	"graphite": {
		Name:            "Graphite",
		Background:      tcell.NewRGBColor(40, 40, 40),
		Foreground:      tcell.NewRGBColor(220, 220, 220),
		Selection:       tcell.NewRGBColor(80, 80, 90),
		TitleBg:         tcell.NewRGBColor(25, 25, 25),
		TitleFg:         tcell.NewRGBColor(230, 230, 230),
		MenuBarBg:       tcell.NewRGBColor(60, 60, 60),
		MenuBarFg:       tcell.NewRGBColor(220, 220, 220),
		MenuActiveBg:    tcell.NewRGBColor(100, 100, 110),
		MenuActiveFg:    tcell.NewRGBColor(255, 255, 255),
		MenuHotkeyFg:    tcell.NewRGBColor(240, 190, 90),
		StatusBarBg:     tcell.NewRGBColor(60, 60, 60),
		StatusBarFg:     tcell.NewRGBColor(220, 220, 220),
		StatusBarModeBg: tcell.NewRGBColor(100, 100, 110),
		ErrorFg:         tcell.NewRGBColor(255, 110, 100),
		DialogBg:        tcell.NewRGBColor(55, 55, 55),
		DialogFg:        tcell.NewRGBColor(230, 230, 230),
		DialogInputBg:   tcell.NewRGBColor(75, 75, 75),
	},
	"monokai": {
		Name:            "Monokai",
		Background:      tcell.NewRGBColor(39, 40, 34),
		Foreground:      tcell.NewRGBColor(248, 248, 242),
		Selection:       tcell.NewRGBColor(73, 72, 62),
		TitleBg:         tcell.NewRGBColor(30, 31, 26),
		TitleFg:         tcell.NewRGBColor(248, 248, 242),
		MenuBarBg:       tcell.NewRGBColor(73, 72, 62),
		MenuBarFg:       tcell.NewRGBColor(248, 248, 242),
		MenuActiveBg:    tcell.NewRGBColor(102, 217, 239),
		MenuActiveFg:    tcell.NewRGBColor(39, 40, 34),
		MenuHotkeyFg:    tcell.NewRGBColor(249, 38, 114),
		StatusBarBg:     tcell.NewRGBColor(73, 72, 62),
		StatusBarFg:     tcell.NewRGBColor(248, 248, 242),
		StatusBarModeBg: tcell.NewRGBColor(102, 217, 239),
		ErrorFg:         tcell.NewRGBColor(249, 38, 114),
		DialogBg:        tcell.NewRGBColor(39, 40, 34),
		DialogFg:        tcell.NewRGBColor(248, 248, 242),
		DialogInputBg:   tcell.NewRGBColor(73, 72, 62),
	},
}

func Default() *Config {
	return &Config{
		TabSize:        4,
		Theme:          "classic",
		AssetsDir:      "assets",
		Extension:      "txt",
		Encoding:       "utf-8",
		LineEnding:     "LF",
		UndoGroupMs:    300,
		WatchFile:      true,
		Highlight:      false,
		BackupInterval: 30,
		ConfirmExit:    true,
		RestoreSession: true,
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["classic"]
	}
	return theme
}

// UndoGroupInterval is the window in which typed characters share one undo step.
func (c *Config) UndoGroupInterval() time.Duration {
	if c.UndoGroupMs <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(c.UndoGroupMs) * time.Millisecond
}

// ChooserDir returns the directory file choosers open in: the assets
// directory under the working directory when it exists, the working
// directory otherwise.
func (c *Config) ChooserDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	if c.AssetsDir == "" {
		return cwd
	}
	dir := c.AssetsDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cwd, dir)
	}
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return cwd
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "notepad", "settings.json")
}

// DataDir holds sessions, backups and the diagnostics log.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "notepad")
}

func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
