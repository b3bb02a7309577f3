package code

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeIndentation(t *testing.T) {
	c := New()

	err := c.Scope("namespace alarms {", "}  // namespace alarms", func() error {
		c.Append("int x = 0;")

		return c.Scope("struct Foo {", "};", func() error {
			c.Append("bool b;")
			c.Append("")

			return nil
		})
	})
	require.NoError(t, err)

	expected := strings.Join([]string{
		"namespace alarms {",
		"  int x = 0;",
		"  struct Foo {",
		"    bool b;",
		"",
		"  };",
		"}  // namespace alarms",
	}, "\n")
	assert.Equal(t, expected, c.String())
}

func TestScopeClosesOnError(t *testing.T) {
	sentinel := errors.New("emit failed")
	c := New()

	err := c.Scope("struct Broken {", "};", func() error {
		c.Append("int a;")

		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	// The close line still lands and later appends are back at the
	// outer level.
	c.Append("int after;")
	assert.Equal(t, "struct Broken {\n  int a;\n};\nint after;", c.String())
}

func TestAppendTrimsTrailingWhitespace(t *testing.T) {
	c := New()
	c.Append("int x;   ")
	c.Appendf("int %s;\t", "y")

	assert.Equal(t, "int x;\nint y;", c.String())
	assert.False(t, c.IsEmpty())
	assert.True(t, New().IsEmpty())
}

func TestSubstitute(t *testing.T) {
	c := New()
	c.Append("struct {classname} {")
	c.Comment("Uses {classname} braces literally")
	c.Append("};")

	c.Substitute(map[string]string{"classname": "Alarm"})

	got := c.String()
	assert.Contains(t, got, "struct Alarm {")
	assert.Contains(t, got, "// Uses {classname} braces literally")
}

func TestSubstituteIsOneShot(t *testing.T) {
	c := New()
	c.Append("using {alias} = {target};")

	c.Substitute(map[string]string{"alias": "List", "target": "{alias}"})
	c.Substitute(map[string]string{"alias": "Other"})

	// The token introduced by the first substitution is not rewritten.
	assert.Equal(t, "using List = {alias};", c.String())
}

func TestCommentWrapping(t *testing.T) {
	words := strings.TrimSpace(strings.Repeat("word ", 30))

	c := New()
	c.Comment(words)

	lines := strings.Split(c.String(), "\n")
	assert.Len(t, lines, 2)
	for _, ln := range lines {
		assert.True(t, strings.HasPrefix(ln, "// "), "line %q missing prefix", ln)
		assert.LessOrEqual(t, len(ln), 80)
	}

	// Wrapping accounts for the current indent.
	indented := New()
	err := indented.Scope("struct S {", "};", func() error {
		indented.Comment(words)

		return nil
	})
	require.NoError(t, err)

	for _, ln := range strings.Split(indented.String(), "\n") {
		assert.LessOrEqual(t, len(ln), 80)
	}
}

func TestCommentOverlongWord(t *testing.T) {
	word := "https://" + strings.Repeat("x", 100)

	c := New()
	c.Comment("see " + word)

	lines := strings.Split(c.String(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "// see", lines[0])
	assert.Equal(t, "// "+word, lines[1])
}

func TestConcatReindents(t *testing.T) {
	inner := New()
	err := inner.Scope("struct Inner {", "};", func() error {
		inner.Append("int x;")

		return nil
	})
	require.NoError(t, err)

	outer := New()
	err = outer.Scope("namespace ns {", "}  // namespace ns", func() error {
		outer.Cblock(inner)
		outer.Cblock(New())
		outer.Append("int y;")

		return nil
	})
	require.NoError(t, err)

	expected := strings.Join([]string{
		"namespace ns {",
		"  struct Inner {",
		"    int x;",
		"  };",
		"",
		"  int y;",
		"}  // namespace ns",
	}, "\n")
	assert.Equal(t, expected, outer.String())
}
