package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/arjpeg/helix/pkg/driver"
	"github.com/arjpeg/helix/pkg/lexer"
	"github.com/arjpeg/helix/pkg/parser"
	"github.com/arjpeg/helix/pkg/source"
)

const licenseText = `Helix is distributed under the MIT license.
See the LICENSE file shipped with the source for the full text.`

const replHelp = `Enter statements to evaluate them. Bindings persist between inputs.
Incomplete input (an open block, parenthesis or string) continues on the next line.

commands:
  !help, !h       show this message
  !version, !v    print the version
  !license, !l    print licensing information
  !quit, !q       leave the session (Ctrl-D also works)`

func runREPLCommand(args []string) int {
	var common commonFlags
	fs := newFlagSet("repl", &common)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	cfg, logger, err := setup(common)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if err := runREPL(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "repl: %v\n", err)
		return 1
	}
	return 0
}

func runREPL(cfg *driver.Config, logger *slog.Logger) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := driver.ExpandHome(cfg.REPL.HistoryFile)
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			if _, err := line.ReadHistory(f); err != nil {
				logger.Warn("read history", "path", historyPath, "err", err)
			}
			f.Close()
		}
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stdout, "Helix v%s\nType !help for help.\n", strings.TrimPrefix(cliToolVersion, "helix "))
	}

	session := driver.NewSession(cfg, os.Stdout, logger)
	var buffer inputBuffer
	for {
		prompt := cfg.REPL.Prompt
		if !buffer.empty() {
			prompt = cfg.REPL.Continuation
		}
		input, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			buffer.reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(os.Stdout)
			break
		}
		if err != nil {
			return err
		}

		if buffer.empty() {
			if cmd, ok := parseCommand(input); ok {
				if err := runCommand(os.Stdout, cmd); errors.Is(err, errQuit) {
					break
				}
				line.AppendHistory(input)
				continue
			}
			if strings.TrimSpace(input) == "" {
				continue
			}
		}

		text, complete := buffer.add(input)
		if !complete {
			continue
		}
		line.AppendHistory(text)

		val, err := session.Run(source.Anonymous, text)
		if err != nil {
			reportError(session, cfg, err)
			continue
		}
		if cfg.REPL.EchoResults {
			echo(os.Stdout, val)
		}
	}

	if historyPath != "" {
		f, err := os.Create(historyPath)
		if err != nil {
			logger.Warn("write history", "path", historyPath, "err", err)
			return nil
		}
		defer f.Close()
		if _, err := line.WriteHistory(f); err != nil {
			logger.Warn("write history", "path", historyPath, "err", err)
		}
	}
	return nil
}

type replCommand int

const (
	cmdQuit replCommand = iota
	cmdHelp
	cmdVersion
	cmdLicense
)

var replCommands = map[string]replCommand{
	"quit":    cmdQuit,
	"q":       cmdQuit,
	"exit":    cmdQuit,
	"help":    cmdHelp,
	"h":       cmdHelp,
	"version": cmdVersion,
	"v":       cmdVersion,
	"license": cmdLicense,
	"licence": cmdLicense,
	"l":       cmdLicense,
}

// parseCommand recognizes "!name" lines. Anything else, including "!true",
// is left for the evaluator.
func parseCommand(input string) (replCommand, bool) {
	trimmed := strings.TrimSpace(input)
	name, ok := strings.CutPrefix(trimmed, "!")
	if !ok {
		return 0, false
	}
	cmd, ok := replCommands[strings.ToLower(name)]
	return cmd, ok
}

func runCommand(w io.Writer, cmd replCommand) error {
	switch cmd {
	case cmdQuit:
		return errQuit
	case cmdHelp:
		fmt.Fprintln(w, replHelp)
	case cmdVersion:
		fmt.Fprintln(w, cliToolVersion)
	case cmdLicense:
		fmt.Fprintln(w, licenseText)
	}
	return nil
}

// inputBuffer joins REPL lines until they form a complete program.
type inputBuffer struct {
	lines []string
}

func (b *inputBuffer) empty() bool {
	return len(b.lines) == 0
}

func (b *inputBuffer) reset() {
	b.lines = b.lines[:0]
}

// add appends line and, once the joined text no longer needs more input,
// returns it and empties the buffer.
func (b *inputBuffer) add(line string) (string, bool) {
	b.lines = append(b.lines, line)
	text := strings.Join(b.lines, "\n")
	if needsMoreInput(text) {
		return "", false
	}
	b.reset()
	return text, true
}

// needsMoreInput reports whether text stops inside an open string, bracket
// or block, or right after an operator.
func needsMoreInput(text string) bool {
	tokens, err := lexer.Tokenize(text, 0)
	if err != nil {
		return errors.Is(err, lexer.ErrUnterminatedString)
	}
	_, err = parser.Parse(tokens)
	return parser.IsIncomplete(err)
}
