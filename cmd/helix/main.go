package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/arjpeg/helix/pkg/ast"
	"github.com/arjpeg/helix/pkg/driver"
	"github.com/arjpeg/helix/pkg/runtime"
)

const cliToolVersion = "helix 0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		return runREPLCommand(nil)
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage(os.Stdout)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runFileCommand(args[1:])
	case "repl":
		return runREPLCommand(args[1:])
	case "tokens":
		return runTokensCommand(args[1:])
	case "ast":
		return runASTCommand(args[1:])
	default:
		if strings.HasPrefix(args[0], "-") {
			fmt.Fprintf(os.Stderr, "unknown flag %s\n", args[0])
			printUsage(os.Stderr)
			return 1
		}
		return runFileCommand(args)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `usage: helix <command> [flags] [file]

commands:
  run <file>     evaluate a source file
  repl           start an interactive session (default with no arguments)
  tokens <file>  print the token stream of a file
  ast <file>     print the syntax tree of a file
  version        print the version
  help           show this message

flags (run, repl, tokens, ast):
  --config <path>     config file (default: ./%s when present)
  --log-level <level> debug, info, warn or error
`, driver.ConfigFileName)
}

// commonFlags are accepted by every subcommand that touches source.
type commonFlags struct {
	configPath string
	logLevel   string
}

func newFlagSet(name string, common *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&common.configPath, "config", "", "path to a config file")
	fs.StringVar(&common.logLevel, "log-level", "", "log level override")
	return fs
}

// setup loads configuration and builds the logger for a subcommand.
func setup(common commonFlags) (*driver.Config, *slog.Logger, error) {
	cfg, err := loadConfig(common.configPath)
	if err != nil {
		return nil, nil, err
	}
	if common.logLevel != "" {
		cfg.Log.Level = common.logLevel
	}
	level, err := driver.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}
	return cfg, logger, nil
}

func loadConfig(path string) (*driver.Config, error) {
	if path != "" {
		return driver.LoadConfig(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return driver.DefaultConfig(), nil
	}
	if found, ok := driver.FindConfig(wd); ok {
		return driver.LoadConfig(found)
	}
	return driver.DefaultConfig(), nil
}

// singleFile parses flags and returns the one positional file argument.
func singleFile(name string, args []string) (string, commonFlags, bool) {
	var common commonFlags
	fs := newFlagSet(name, &common)
	if err := fs.Parse(args); err != nil {
		return "", common, false
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "helix %s requires exactly one source file\n", name)
		return "", common, false
	}
	return fs.Arg(0), common, true
}

func runFileCommand(args []string) int {
	path, common, ok := singleFile("run", args)
	if !ok {
		return 1
	}
	cfg, logger, err := setup(common)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	session := driver.NewSession(cfg, os.Stdout, logger)
	if _, err := session.RunFile(path); err != nil {
		reportError(session, cfg, err)
		return 1
	}
	return 0
}

func runTokensCommand(args []string) int {
	path, common, ok := singleFile("tokens", args)
	if !ok {
		return 1
	}
	cfg, logger, err := setup(common)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	text, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		return 1
	}
	session := driver.NewSession(cfg, io.Discard, logger)
	tokens, err := session.Tokenize(path, string(text))
	if err != nil {
		reportError(session, cfg, err)
		return 1
	}
	for _, tok := range tokens {
		fmt.Fprintln(os.Stdout, tok)
	}
	return 0
}

func runASTCommand(args []string) int {
	var common commonFlags
	fs := newFlagSet("ast", &common)
	asJSON := fs.Bool("json", false, "print the tree as JSON")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "helix ast requires exactly one source file")
		return 1
	}
	path := fs.Arg(0)
	cfg, logger, err := setup(common)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	text, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		return 1
	}
	session := driver.NewSession(cfg, io.Discard, logger)
	program, err := session.Parse(path, string(text))
	if err != nil {
		reportError(session, cfg, err)
		return 1
	}
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(program); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			return 1
		}
		return 0
	}
	for _, stmt := range program.Body {
		fmt.Fprintln(os.Stdout, ast.Dump(stmt))
	}
	return 0
}

// reportError renders pipeline errors with source context and falls back to
// the plain message for anything else.
func reportError(session *driver.Session, cfg *driver.Config, err error) {
	diag, ok := session.Diagnose(err)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	renderer := driver.NewRenderer(session.Sources(), cfg.Diagnostics.Color, os.Stderr)
	if renderErr := renderer.Render(os.Stderr, diag); renderErr != nil {
		fmt.Fprintln(os.Stderr, driver.DescribeDiagnostic(diag))
	}
}

// echo prints a REPL result unless it is null.
func echo(w io.Writer, val runtime.Value) {
	if val == nil || val.Kind() == runtime.KindNull {
		return
	}
	fmt.Fprintln(w, runtime.Inspect(val))
}

var errQuit = errors.New("quit")
