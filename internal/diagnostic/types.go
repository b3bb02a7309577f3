package diagnostic

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Diagnostics holds all findings from loading and validating schemas.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single finding.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this kind of finding.
	Code string
	// Message is the human-readable description.
	Message string
	// Namespace names the schema namespace this relates to (if any).
	Namespace string
	// Path locates the declaration inside the namespace (if any),
	// e.g. "types.Alarm.properties.periodInMinutes".
	Path string
	// Suggestions are likely intended spellings or fixes.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Add records diag under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error finding.
func (d *Diagnostics) AddError(code, message, namespace, path string) {
	d.Add(Diagnostic{
		Severity:  SeverityError,
		Code:      code,
		Message:   message,
		Namespace: namespace,
		Path:      path,
	})
}

// AddWarning adds a warning finding.
func (d *Diagnostics) AddWarning(code, message, namespace, path string) {
	d.Add(Diagnostic{
		Severity:  SeverityWarning,
		Code:      code,
		Message:   message,
		Namespace: namespace,
		Path:      path,
	})
}

// AddInfo adds an informational finding.
func (d *Diagnostics) AddInfo(code, message, namespace, path string) {
	d.Add(Diagnostic{
		Severity:  SeverityInfo,
		Code:      code,
		Message:   message,
		Namespace: namespace,
		Path:      path,
	})
}

// HasErrors returns true if there are any error findings.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Error returns a combined error from all error findings, or nil if
// valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Namespace != "" {
		prefix = append(prefix, "["+d.Namespace+"]")
	}

	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, " or ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
