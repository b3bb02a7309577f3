// Package code implements the indentation-aware document builder the
// generators write declarations into.
//
// A Code collects lines under a current indent level, wraps comment
// text at a column limit, and substitutes {name} placeholders across
// previously appended lines. Indent levels only change inside Scope,
// so a document can never end up with an unbalanced block: the scope
// close runs on every path out of the body, including error returns.
package code

import (
	"fmt"
	"strings"
)

const (
	indentSize           = 2
	defaultCommentLength = 80
	commentPrefix        = "// "
)

type line struct {
	text string
	// substitute marks lines eligible for placeholder substitution.
	// Comment lines never are, since descriptions may contain braces.
	substitute bool
}

// Code accumulates generated source text line by line.
// The zero value is not usable; call New.
type Code struct {
	lines         []line
	indent        int
	commentLength int
}

// New returns an empty document with the default comment wrap column.
func New() *Code {
	return &Code{commentLength: defaultCommentLength}
}

// Append adds one line at the current indent level. Trailing whitespace
// is stripped and empty lines stay empty rather than carrying indent.
func (c *Code) Append(text string) *Code {
	c.append(text, true)

	return c
}

// Appendf adds one formatted line at the current indent level.
func (c *Code) Appendf(format string, args ...any) *Code {
	c.append(fmt.Sprintf(format, args...), true)

	return c
}

// Scope appends open (when non-empty), runs body one indent level
// deeper, then appends close (when non-empty). The close line is
// emitted even when body fails, so partial output keeps balanced
// indentation; body's error is returned as-is.
func (c *Code) Scope(open, close string, body func() error) error {
	if open != "" {
		c.append(open, true)
	}

	c.indent += indentSize
	err := body()
	c.indent -= indentSize

	if close != "" {
		c.append(close, true)
	}

	return err
}

// Comment appends text as a // comment, wrapped at the configured
// column accounting for the current indent. Wrapping breaks at word
// boundaries; a single word longer than the limit is emitted whole.
func (c *Code) Comment(text string) *Code {
	maxLen := c.commentLength - c.indent - len(commentPrefix)

	for _, paragraph := range strings.Split(text, "\n") {
		for len(paragraph) > maxLen {
			cut := strings.LastIndex(paragraph[:maxLen+1], " ")
			if cut < 0 {
				cut = strings.Index(paragraph, " ")
				if cut < 0 {
					break
				}
			}

			c.append(commentPrefix+paragraph[:cut], false)
			paragraph = paragraph[cut+1:]
		}

		c.append(commentPrefix+paragraph, false)
	}

	return c
}

// Concat appends every line of other at the current indent level,
// preserving other's internal indentation and substitution flags.
func (c *Code) Concat(other *Code) *Code {
	if other == c {
		panic("code: Concat of a document with itself")
	}

	for _, ln := range other.lines {
		c.append(ln.text, ln.substitute)
	}

	return c
}

// Cblock appends other followed by one blank line. An empty other
// contributes nothing, not even the blank.
func (c *Code) Cblock(other *Code) *Code {
	if other.IsEmpty() {
		return c
	}

	return c.Concat(other).Append("")
}

// Substitute replaces {name} tokens with the given values on every
// line still eligible, then marks those lines done. Substitution is
// one-shot: a token introduced by a substituted value is left alone by
// later calls.
func (c *Code) Substitute(vars map[string]string) *Code {
	if len(vars) == 0 {
		return c
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	replacer := strings.NewReplacer(pairs...)

	for i := range c.lines {
		if !c.lines[i].substitute {
			continue
		}

		c.lines[i].text = replacer.Replace(c.lines[i].text)
		c.lines[i].substitute = false
	}

	return c
}

// IsEmpty reports whether nothing has been appended yet.
func (c *Code) IsEmpty() bool {
	return len(c.lines) == 0
}

// String renders the document, one line per element. A trailing empty
// line renders as a final newline.
func (c *Code) String() string {
	parts := make([]string, len(c.lines))
	for i, ln := range c.lines {
		parts[i] = ln.text
	}

	return strings.Join(parts, "\n")
}

func (c *Code) append(text string, substitute bool) {
	text = strings.TrimRight(text, " \t")
	if text != "" && c.indent > 0 {
		text = strings.Repeat(" ", c.indent) + text
	}

	c.lines = append(c.lines, line{text: text, substitute: substitute})
}
