// Package common provides spans, diagnostics and small helpers shared by the
// frontend and backend packages.
package common

import (
	protocol "github.com/gluax-lang/lsp"
)

type (
	dSeverity  = protocol.DiagnosticSeverity
	diagnostic = protocol.Diagnostic
)

func NewDiagnostic(severity dSeverity, message string, span Span) *diagnostic {
	return &protocol.Diagnostic{
		Severity: &severity,
		Message:  message,
		Range:    span.ToRange(),
	}
}

func ErrorDiag(msg string, span Span) *diagnostic {
	return NewDiagnostic(protocol.DiagnosticSeverityError, msg, span)
}

func WarningDiag(msg string, span Span) *diagnostic {
	return NewDiagnostic(protocol.DiagnosticSeverityWarning, msg, span)
}

// DiagPosition returns the 1-based line and column a diagnostic starts at.
func DiagPosition(d *diagnostic) (line, column uint32) {
	return d.Range.Start.Line + 1, d.Range.Start.Character + 1
}
