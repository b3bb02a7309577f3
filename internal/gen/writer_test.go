package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles_WritesNestedOutputs(t *testing.T) {
	dir := t.TempDir()

	files := []GeneratedFile{
		{Filename: "api/alarms.h", Content: []byte("// alarms\n")},
		{Filename: "idle.h", Content: []byte("// idle\n")},
	}

	require.NoError(t, WriteFiles(files, dir, false))

	content, err := os.ReadFile(filepath.Join(dir, "api", "alarms.h"))
	require.NoError(t, err)
	assert.Equal(t, "// alarms\n", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "idle.h"))
	require.NoError(t, err)
	assert.Equal(t, "// idle\n", string(content))
}

func TestWriteFiles_RefusesOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	files := []GeneratedFile{{Filename: "idle.h", Content: []byte("new\n")}}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "idle.h"), []byte("old\n"), 0o644))

	err := WriteFiles(files, dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to overwrite")

	// The original survives a refused write.
	content, err := os.ReadFile(filepath.Join(dir, "idle.h"))
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(content))

	require.NoError(t, WriteFiles(files, dir, true))

	content, err = os.ReadFile(filepath.Join(dir, "idle.h"))
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(content))
}
