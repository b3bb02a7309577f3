package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-compiler/internal/model"
	"schema-compiler/internal/schema"
)

// loadExample parses one shipped sample schema under a flat source name
// so output paths have no directory prefix.
func loadExample(t *testing.T, filename string) *model.Model {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("..", "..", "examples", "schemas", filename))
	require.NoError(t, err)

	namespaces, diags, err := schema.Parse(data, filename)
	require.NoError(t, err)
	require.True(t, diags.IsValid(), "example schema must be clean: %v", diags.Errors)

	m := model.NewModel()
	for _, ns := range namespaces {
		m.AddNamespace(ns)
	}

	return m
}

func TestGenerateAlarmsExample(t *testing.T) {
	m := loadExample(t, "alarms.json")

	files, err := NewGenerator(m, DefaultGeneratorConfig()).GenerateAll()
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, "alarms.h", files[0].Filename)

	content := string(files[0].Content)
	assert.Contains(t, content, "namespace extensions {")
	assert.Contains(t, content, "namespace alarms {")
	assert.Contains(t, content, "struct Alarm {")
	assert.Contains(t, content, "struct AlarmCreateInfo {")
	assert.Contains(t, content, "namespace ClearAll {")
	assert.Contains(t, content, "namespace Results {")
	assert.Contains(t, content, "namespace OnAlarm {")
	assert.Contains(t, content, "std::vector<Alarm> alarms;")
}

func TestGenerateIdleExample(t *testing.T) {
	m := loadExample(t, "idle.yaml")

	files, err := NewGenerator(m, DefaultGeneratorConfig()).GenerateAll()
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, "idle.h", files[0].Filename)

	content := string(files[0].Content)
	assert.Contains(t, content, "enum IdleState {")
	assert.Contains(t, content, "IDLE_STATE_NONE = 0,")
	assert.Contains(t, content, "IDLE_STATE_ACTIVE,")
	assert.Contains(t, content, "IDLE_STATE_LAST = IDLE_STATE_LOCKED,")
	assert.Contains(t, content, "const char* ToString(IdleState as_enum);")
	assert.Contains(t, content, "IdleState ParseIdleState(base::StringPiece as_string);")
}

func TestGenerateSidePanelExample(t *testing.T) {
	m := loadExample(t, "side_panel.json")

	files, err := NewGenerator(m, DefaultGeneratorConfig()).GenerateAll()
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, "side_panel.h", files[0].Filename)

	content := string(files[0].Content)
	assert.Contains(t, content, "struct SidePanel {")
	assert.Contains(t, content, "struct ManifestKeys {")
	assert.Contains(t, content, "static bool ParseFromDictionary(")
	assert.Contains(t, content, "base::expected<")
}
