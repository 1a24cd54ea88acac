package errs

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zacolang/zaco/internal/ast"
)

// Report is the canonical structured diagnostic type for the zaco compiler.
// Every user-visible failure (resolver, type, codegen) is built as a Report
// and carries a source span so the CLI can render a precise location.
type Report struct {
	Schema  string         `json:"schema"`         // Always "zaco.diagnostic/v1"
	Code    string         `json:"code"`           // e.g. "TYP004"
	Phase   string         `json:"phase"`          // "resolver", "checker", "lowerer", "codegen"
	Message string         `json:"message"`        // Human-readable message
	Span    *ast.Span      `json:"span,omitempty"` // Source location, when known
	Data    map[string]any `json:"data,omitempty"` // Structured supporting data
}

// ReportError wraps a Report so it survives errors.As() unwrapping while
// still satisfying the error interface.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	if e.Rep.Span != nil {
		return fmt.Sprintf("%s: %s: %s", e.Rep.Span.Start, e.Rep.Code, e.Rep.Message)
	}
	return fmt.Sprintf("%s: %s", e.Rep.Code, e.Rep.Message)
}

// AsReport extracts a Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// New builds a Report and wraps it as an error.
func New(phase, code, message string, span *ast.Span) *ReportError {
	return &ReportError{Rep: &Report{
		Schema:  "zaco.diagnostic/v1",
		Code:    code,
		Phase:   phase,
		Message: message,
		Span:    span,
		Data:    map[string]any{},
	}}
}

// Newf is New with a formatted message.
func Newf(phase, code string, span *ast.Span, format string, args ...any) *ReportError {
	return New(phase, code, fmt.Sprintf(format, args...), span)
}

// WithData attaches a key/value pair to the report and returns the same
// error for chaining at the call site.
func (e *ReportError) WithData(key string, value any) *ReportError {
	if e.Rep.Data == nil {
		e.Rep.Data = map[string]any{}
	}
	e.Rep.Data[key] = value
	return e
}

// ToJSON renders the report as JSON, indented unless compact is requested.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
