// Package diagnostic provides structured findings from schema loading
// and validation.
//
// Key capabilities:
//   - Unresolved reference errors with "did you mean" suggestions
//   - Duplicate declaration and malformed shape errors
//   - Unknown compiler option warnings
//   - Severity-grouped reporting for the CLI
package diagnostic
