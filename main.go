package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"notepad/config"
	"notepad/editor"
)

// openLog sends the standard logger to a file; the terminal belongs to the
// editor while it runs.
func openLog() *os.File {
	dir := config.DataDir()
	if dir == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "notepad.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	return f
}

func main() {
	if f := openLog(); f != nil {
		defer f.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("settings: %v; using defaults", err)
		cfg = config.Default()
	} else if _, err := os.Stat(config.ConfigPath()); os.IsNotExist(err) {
		// First run: write the defaults out so they can be edited.
		if err := cfg.Save(); err != nil {
			log.Printf("settings: %v", err)
		}
	}

	args := os.Args[1:]
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "usage: notepad [file]")
		os.Exit(2)
	}
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			fmt.Fprintf(os.Stderr, "error: %s is a directory\n", args[0])
			os.Exit(1)
		}
	}

	e := editor.New(cfg)
	if err := e.Run(args); err != nil {
		log.Printf("run: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
