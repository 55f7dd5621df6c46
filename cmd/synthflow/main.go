package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	synthflow "github.com/WEE-TECHNOLOGY-SOLUTION/SynthFlow"
)

const (
	appName     = "synthflow"
	historyFile = ".synthflow_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(synthflow.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`SynthFlow %s (built %s)

Usage:
  %s run <file.sf>    Run a script.
  %s repl             Start the REPL.
  %s version          Print the compiled version.

`, synthflow.Version, synthflow.BuildDate, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.sf>\n", appName)
		return 2
	}
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	ip := synthflow.NewInterpreter()
	stmts, perr := synthflow.Parse(string(src))
	if perr != nil {
		fmt.Fprintln(os.Stderr, synthflow.WrapErrorWithName(perr, filepath.Base(path), string(src)))
		return 1
	}
	if _, rerr := ip.Execute(stmts, ip.Global); rerr != nil {
		fmt.Fprintln(os.Stderr, synthflow.WrapErrorWithName(rerr, filepath.Base(path), string(src)))
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl() int {
	fmt.Printf("SynthFlow %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n", synthflow.Version)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := filepath.Join(homeDir(), historyFile)
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	ip := synthflow.NewInterpreter()

	for {
		src, ok := readInput(line)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		if strings.TrimSpace(src) == ":quit" {
			return 0
		}
		line.AppendHistory(src)

		val, err := ip.EvalPersistentSource(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if val.Tag != synthflow.VTNull {
			fmt.Println(synthflow.FormatValue(val))
		}
	}
}

// readInput collects one logical input, prompting for continuation lines
// while delimiters remain unbalanced.
func readInput(line *liner.State) (string, bool) {
	var b strings.Builder
	prompt := promptMain
	for {
		text, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			return "", true // cancelled input; present a fresh prompt
		}
		if err != nil {
			return "", false // EOF
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(text)
		if !needsContinuation(b.String()) {
			return b.String(), true
		}
		prompt = promptCont
	}
}

// needsContinuation reports whether the input has unbalanced delimiters and
// should keep reading lines.
func needsContinuation(src string) bool {
	toks, err := synthflow.NewLexer(src).Scan()
	if err != nil {
		return false // let the parser surface the error
	}
	depth := 0
	for _, t := range toks {
		switch t.Type {
		case synthflow.LPAREN, synthflow.LBRACE, synthflow.LBRACKET:
			depth++
		case synthflow.RPAREN, synthflow.RBRACE, synthflow.RBRACKET:
			depth--
		}
	}
	return depth > 0
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}
