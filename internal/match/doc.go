// Package match provides name normalization, Levenshtein distance
// calculation, and ranked "did you mean" suggestions for misspelled
// schema names.
//
// Key functions:
//   - NormalizeName: normalizes schema identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks candidate names for an unresolved reference
package match
