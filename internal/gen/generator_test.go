package gen

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-compiler/internal/model"
)

func TestGenerator_Generate_EmptyNamespaceSkeleton(t *testing.T) {
	ns := &model.Namespace{Name: "idle", SourceFile: "idle.json"}
	m := model.NewModel()
	m.AddNamespace(ns)

	file, err := NewGenerator(m, DefaultGeneratorConfig()).Generate(ns)
	require.NoError(t, err)

	assert.Equal(t, "idle.h", file.Filename)

	want := `// Copyright 2025 The Schema Compiler Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// GENERATED FROM THE API DEFINITION IN
//   idle.json
// DO NOT EDIT.

#ifndef IDLE_H__
#define IDLE_H__

#include <stdint.h>

#include <map>
#include <memory>
#include <string>
#include <vector>

#include "base/values.h"

namespace extensions {
namespace api {
namespace idle {

}  // namespace idle
}  // namespace api
}  // namespace extensions

#endif  // IDLE_H__
`
	assert.Equal(t, want, string(file.Content))
}

func TestGenerator_Generate_Deterministic(t *testing.T) {
	build := func() (*model.Model, *model.Namespace) {
		ns := &model.Namespace{Name: "alarms", SourceFile: "alarms.json"}
		ns.AddType(&model.Type{
			Name:         "alarms.Alarm",
			PropertyType: model.PropertyTypeObject,
			Origin:       model.Origin{FromJSON: true, FromClient: true},
			Properties: []*model.Property{
				{Name: "name", Type: &model.Type{PropertyType: model.PropertyTypeString}},
				{Name: "periodInMinutes", Optional: true,
					Type: &model.Type{PropertyType: model.PropertyTypeDouble}},
			},
		})
		ns.Functions = []*model.Function{{
			Name: "get",
			Params: []*model.Property{
				{Name: "name", Optional: true,
					Type: &model.Type{PropertyType: model.PropertyTypeString}},
			},
			ReturnsAsync: &model.ReturnsAsync{Name: "callback", Params: []*model.Property{
				{Name: "alarm", Type: &model.Type{
					PropertyType: model.PropertyTypeRef, Ref: "alarms.Alarm"}},
			}},
		}}
		ns.Events = []*model.Event{{Name: "onAlarm", Params: []*model.Property{
			{Name: "alarm", Type: &model.Type{
				PropertyType: model.PropertyTypeRef, Ref: "alarms.Alarm"}},
		}}}

		m := model.NewModel()
		m.AddNamespace(ns)

		return m, ns
	}

	m1, ns1 := build()
	gen := NewGenerator(m1, DefaultGeneratorConfig())

	first, err := gen.Generate(ns1)
	require.NoError(t, err)

	again, err := gen.Generate(ns1)
	require.NoError(t, err)

	m2, ns2 := build()
	other, err := NewGenerator(m2, DefaultGeneratorConfig()).Generate(ns2)
	require.NoError(t, err)

	assert.Equal(t, string(first.Content), string(again.Content))
	assert.Equal(t, string(first.Content), string(other.Content))
}

func TestGenerator_Generate_SectionOrder(t *testing.T) {
	ns := &model.Namespace{Name: "kitchen", SourceFile: "kitchen.json"}
	ns.Properties = []*model.Property{
		{Name: "limit", Value: 10,
			Type: &model.Type{PropertyType: model.PropertyTypeInteger}},
	}
	ns.AddType(&model.Type{
		Name:         "kitchen.Sink",
		PropertyType: model.PropertyTypeObject,
		Origin:       model.Origin{FromJSON: true},
	})
	ns.ManifestKeys = &model.Type{
		Name:         "kitchen.ManifestKeys",
		PropertyType: model.PropertyTypeObject,
		Origin:       model.Origin{FromManifestKeys: true},
		Properties: []*model.Property{
			{Name: "sink", Optional: true,
				Type: &model.Type{PropertyType: model.PropertyTypeBoolean}},
		},
	}
	ns.Functions = []*model.Function{{Name: "wash"}}
	ns.Events = []*model.Event{{Name: "onDrip"}}

	content := generateNamespace(t, ns)

	assert.Contains(t, content, "extern const int limit;")

	banners := []string{
		"// Properties",
		"// Types",
		"// Manifest Keys",
		"// Functions",
		"// Events",
	}

	last := -1
	for _, banner := range banners {
		idx := strings.Index(content, banner)
		require.NotEqual(t, -1, idx, "missing %q", banner)
		assert.Greater(t, idx, last, "%q out of order", banner)
		last = idx
	}
}

func TestGenerator_Generate_OutputPathMirrorsSource(t *testing.T) {
	ns := &model.Namespace{Name: "fileSystem", SourceFile: "extensions/api/file_system.json"}
	m := model.NewModel()
	m.AddNamespace(ns)

	file, err := NewGenerator(m, DefaultGeneratorConfig()).Generate(ns)
	require.NoError(t, err)

	assert.Equal(t, "extensions/api/file_system.h", file.Filename)

	content := string(file.Content)
	assert.Contains(t, content, "#ifndef EXTENSIONS_API_FILE_SYSTEM_H__")
	assert.Contains(t, content, "#endif  // EXTENSIONS_API_FILE_SYSTEM_H__")
	assert.Contains(t, content, "namespace file_system {")
}

func TestGenerator_Generate_CrossNamespaceInclude(t *testing.T) {
	windows := &model.Namespace{Name: "windows", SourceFile: "api/windows.json"}
	windows.AddType(&model.Type{
		Name:         "windows.Window",
		PropertyType: model.PropertyTypeObject,
		Origin:       model.Origin{FromJSON: true},
	})

	sessions := &model.Namespace{Name: "sessions", SourceFile: "api/sessions.json"}
	sessions.AddType(&model.Type{
		Name:         "sessions.Session",
		PropertyType: model.PropertyTypeObject,
		Origin:       model.Origin{FromJSON: true},
		Properties: []*model.Property{
			{Name: "window", Optional: true, Type: &model.Type{
				PropertyType: model.PropertyTypeRef, Ref: "windows.Window"}},
		},
	})

	m := model.NewModel()
	m.AddNamespace(windows)
	m.AddNamespace(sessions)

	file, err := NewGenerator(m, DefaultGeneratorConfig()).Generate(sessions)
	require.NoError(t, err)

	content := string(file.Content)
	assert.Contains(t, content, `#include "api/windows.h"`)
	assert.Contains(t, content, "absl::optional<windows::Window> window;")
	assert.NotContains(t, content, "struct Window;")
}

func TestGenerator_Generate_CircularNamespaceForwardDeclarations(t *testing.T) {
	windows := &model.Namespace{Name: "windows", SourceFile: "api/windows.json"}
	windows.AddType(&model.Type{
		Name:         "windows.Window",
		PropertyType: model.PropertyTypeObject,
		Origin:       model.Origin{FromJSON: true},
	})

	tabs := &model.Namespace{Name: "tabs", SourceFile: "api/tabs.json"}
	tabs.AddType(&model.Type{
		Name:         "tabs.Tab",
		PropertyType: model.PropertyTypeObject,
		Origin:       model.Origin{FromJSON: true},
		Properties: []*model.Property{
			{Name: "window", Optional: true, Type: &model.Type{
				PropertyType: model.PropertyTypeRef, Ref: "windows.Window"}},
		},
	})

	m := model.NewModel()
	m.AddNamespace(windows)
	m.AddNamespace(tabs)

	file, err := NewGenerator(m, DefaultGeneratorConfig()).Generate(tabs)
	require.NoError(t, err)

	content := string(file.Content)
	assert.NotContains(t, content, `#include "api/windows.h"`)
	assert.Contains(t, content, "struct Window;")
	assert.Contains(t, content, "namespace windows {")
	assert.Contains(t, content, "absl::optional<windows::Window> window;")
}

func TestGenerator_GenerateAll_ModelOrder(t *testing.T) {
	first := &model.Namespace{Name: "bravo", SourceFile: "bravo.json"}
	second := &model.Namespace{Name: "alpha", SourceFile: "alpha.json"}

	m := model.NewModel()
	m.AddNamespace(first)
	m.AddNamespace(second)

	files, err := NewGenerator(m, DefaultGeneratorConfig()).GenerateAll()
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "bravo.h", files[0].Filename)
	assert.Equal(t, "alpha.h", files[1].Filename)
}

func TestGenerator_GenerateAll_ReportsCycleNamespace(t *testing.T) {
	ns := &model.Namespace{Name: "loop", SourceFile: "loop.json"}
	a := &model.Type{Name: "loop.A", PropertyType: model.PropertyTypeObject}
	a.Properties = []*model.Property{
		{Name: "b", Type: &model.Type{PropertyType: model.PropertyTypeRef, Ref: "loop.B"}},
	}
	b := &model.Type{Name: "loop.B", PropertyType: model.PropertyTypeObject}
	b.Properties = []*model.Property{
		{Name: "a", Type: &model.Type{PropertyType: model.PropertyTypeRef, Ref: "loop.A"}},
	}
	ns.AddType(a)
	ns.AddType(b)

	m := model.NewModel()
	m.AddNamespace(ns)

	_, err := NewGenerator(m, DefaultGeneratorConfig()).GenerateAll()
	require.Error(t, err)

	var cycleErr *CircularDependencyError
	assert.True(t, errors.As(err, &cycleErr))
	assert.Contains(t, err.Error(), "loop")
}
