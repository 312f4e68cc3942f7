package driver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arjpeg/helix/pkg/interpreter"
	"github.com/arjpeg/helix/pkg/lexer"
	"github.com/arjpeg/helix/pkg/parser"
	"github.com/arjpeg/helix/pkg/source"
)

// DiagnosticSeverity captures diagnostic levels. Every pipeline failure is
// an error.
type DiagnosticSeverity string

const SeverityError DiagnosticSeverity = "error"

// Stage names the pipeline stage that produced a diagnostic.
type Stage string

const (
	StageLexer   Stage = "lexer"
	StageParser  Stage = "parser"
	StageRuntime Stage = "runtime"
)

// DiagnosticLocation references a source span for diagnostics. Lines and
// columns are 1-based.
type DiagnosticLocation struct {
	Path      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// Diagnostic is a stage error resolved against its source buffer.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Stage    Stage
	Kind     string
	Message  string
	Span     source.Span
	Location DiagnosticLocation
}

// DiagnosticFromError converts a lexer, parser or runtime error into a
// diagnostic. It reports false for errors from any other source.
func DiagnosticFromError(err error, sources *source.Map) (Diagnostic, bool) {
	diag := Diagnostic{Severity: SeverityError}
	var (
		lexErr   *lexer.Error
		parseErr *parser.Error
		rtErr    *interpreter.RuntimeError
	)
	switch {
	case errors.As(err, &lexErr):
		diag.Stage, diag.Kind, diag.Span = StageLexer, lexErr.Kind.String(), lexErr.Span
		diag.Message = lexErr.Error()
	case errors.As(err, &parseErr):
		diag.Stage, diag.Kind, diag.Span = StageParser, parseErr.Kind.String(), parseErr.Span
		diag.Message = parseErr.Error()
	case errors.As(err, &rtErr):
		diag.Stage, diag.Kind, diag.Span = StageRuntime, rtErr.Kind.String(), rtErr.Span
		diag.Message = rtErr.Error()
	default:
		return Diagnostic{}, false
	}
	diag.Location = locate(diag.Span, sources)
	return diag, true
}

func locate(span source.Span, sources *source.Map) DiagnosticLocation {
	file, ok := sources.File(span.Source)
	if !ok {
		return DiagnosticLocation{}
	}
	start := file.Locate(span.Start)
	end := file.Locate(span.End)
	return DiagnosticLocation{
		Path:      file.Name,
		Line:      start.Line,
		Column:    start.Column + 1,
		EndLine:   end.Line,
		EndColumn: end.Column + 1,
	}
}

// DescribeDiagnostic formats a diagnostic as a single CLI line.
func DescribeDiagnostic(diag Diagnostic) string {
	message := strings.TrimSpace(diag.Message)
	prefix := string(diag.Stage) + ": "
	location := formatDiagnosticLocation(diag.Location)
	if location != "" {
		return fmt.Sprintf("%s%s %s", prefix, location, message)
	}
	return fmt.Sprintf("%s%s", prefix, message)
}

func formatDiagnosticLocation(loc DiagnosticLocation) string {
	path := strings.TrimSpace(loc.Path)
	line := loc.Line
	column := loc.Column
	switch {
	case path != "" && line > 0 && column > 0:
		return fmt.Sprintf("%s:%d:%d", path, line, column)
	case path != "" && line > 0:
		return fmt.Sprintf("%s:%d", path, line)
	case path != "":
		return path
	case line > 0 && column > 0:
		return fmt.Sprintf("line %d, column %d", line, column)
	case line > 0:
		return fmt.Sprintf("line %d", line)
	default:
		return ""
	}
}
