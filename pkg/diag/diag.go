// Package diag carries diagnostics out of the core: structured records plus
// a logrus-backed sink, replacing a direct "fmt.Printf(\"ERROR: ...\")" +
// exit-handler style with typed values the driver decides how to present
// and whether to turn into a non-zero exit code. Process-exit policy stays
// with the CLI driver; this package only reports.
package diag

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Stage identifies which component raised a Diagnostic.
type Stage int

const (
	StageLex Stage = iota
	StageParse
	StageSema
	StageLoader
	StageResource
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lex"
	case StageParse:
		return "parse"
	case StageSema:
		return "sema"
	case StageLoader:
		return "loader"
	case StageResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Severity distinguishes a hard error from a recoverable warning (e.g. an
// undeclared identifier).
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Diagnostic is one reportable condition, formatted as
// "<stage> error at line L, column C: <message>".
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Line     int
	Column   int
	Message  string
}

// Error renders d in the canonical format above, satisfying the error
// interface so a Diagnostic can be wrapped with %w.
func (d Diagnostic) Error() string {
	kind := "error"
	if d.Severity == SeverityWarning {
		kind = "warning"
	}
	return fmt.Sprintf("%s %s at line %d, column %d: %s", d.Stage, kind, d.Line, d.Column, d.Message)
}

// Counter accumulates diagnostics raised during a single parse/annotate
// pass.
type Counter struct {
	Errors   int
	Warnings int
}

// Record increments Errors or Warnings depending on d.Severity.
func (c *Counter) Record(d Diagnostic) {
	if d.Severity == SeverityWarning {
		c.Warnings++
	} else {
		c.Errors++
	}
}

// Sink logs Diagnostics through logrus at the severity-appropriate level
// and tallies them in an embedded Counter.
type Sink struct {
	Counter
	log *logrus.Entry
}

// NewSink returns a Sink that logs through log, tagging every entry with
// component="core".
func NewSink(log *logrus.Logger) *Sink {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Sink{log: log.WithField("component", "core")}
}

// Report logs d and records it in the embedded Counter.
func (s *Sink) Report(d Diagnostic) {
	s.Counter.Record(d)
	entry := s.log.WithFields(logrus.Fields{
		"stage":  d.Stage.String(),
		"line":   d.Line,
		"column": d.Column,
	})
	if d.Severity == SeverityWarning {
		entry.Warn(d.Message)
	} else {
		entry.Error(d.Message)
	}
}
