package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"pyjs/compiler"
)

const (
	historyFile = ".pyjs_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

// runREPL translates statements typed at the terminal until EOF or :quit.
func runREPL(cfg Config) int {
	fmt.Printf("\033[1mpyjs\033[0m %s runtime, :quit to exit\n", cfg.Runtime)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	tr := compiler.NewTranslator(cfg.options()...)
	for {
		code, ok := readStatement(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		switch strings.TrimSpace(code) {
		case "":
			continue
		case ":quit":
			return 0
		}

		mod, err := compiler.ParseModule(code+"\n", "<stdin>")
		if err == nil {
			var out string
			if out, err = tr.Translate(mod); err == nil {
				fmt.Print(out)
			}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "\033[31m%v\033[0m\n", err)
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readStatement reads one statement. A line ending in ':' opens a block that
// continues until an empty line.
func readStatement(ln *liner.State) (string, bool) {
	var lines []string
	for {
		prompt := promptMain
		if len(lines) > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			if len(lines) > 0 {
				return strings.Join(lines, "\n"), true
			}
			return "", false
		}
		if err != nil {
			// ctrl-c drops the pending input
			return "", true
		}
		if len(lines) > 0 && strings.TrimSpace(line) == "" {
			return strings.Join(lines, "\n"), true
		}
		lines = append(lines, line)
		if !continues(lines) {
			return strings.Join(lines, "\n"), true
		}
	}
}

// continues reports whether the statement read so far needs more lines.
func continues(lines []string) bool {
	if len(lines) > 1 {
		return true
	}
	return strings.HasSuffix(strings.TrimRight(lines[0], " \t"), ":")
}
