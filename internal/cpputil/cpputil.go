// Package cpputil holds the C++ naming and formatting helpers shared by
// the declaration generators: class names, constant names, include
// guards, namespace scoping, and the fixed file banners.
package cpputil

import (
	"fmt"
	"regexp"
	"strings"

	"schema-compiler/internal/code"
	"schema-compiler/internal/model"
)

// License is the fixed header emitted at the top of every generated
// file.
const License = `// Copyright 2025 The Schema Compiler Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.`

var nonWord = regexp.MustCompile(`\W`)

// Classname converts a schema name to a C++ type name. Non-identifier
// characters split the name and each piece gets a leading capital:
// "fooBar" -> "FooBar", "experimental.idltest" -> "Experimental_Idltest".
func Classname(name string) string {
	parts := nonWord.Split(name, -1)
	for i, part := range parts {
		if part != "" {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}

	return strings.Join(parts, "_")
}

// ToCamelCase converts "foo_bar" to "FooBar". Capitals inside a part
// are preserved, so "hTTP_server" becomes "HTTPServer".
func ToCamelCase(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for _, part := range strings.Split(name, "_") {
		if part != "" {
			b.WriteString(strings.ToUpper(part[:1]))
			b.WriteString(part[1:])
		}
	}

	return b.String()
}

// UnixNameToConstantName converts "foo_bar" to the kConstant spelling
// "kFooBar".
func UnixNameToConstantName(unixName string) string {
	var b strings.Builder
	b.WriteByte('k')

	for _, part := range strings.Split(unixName, "_") {
		if part != "" {
			b.WriteString(strings.ToUpper(part[:1]))
			b.WriteString(part[1:])
		}
	}

	return b.String()
}

// GeneratedFileMessage returns the do-not-edit banner naming the schema
// definition a file was generated from.
func GeneratedFileMessage(sourceFile string) string {
	return fmt.Sprintf("// GENERATED FROM THE API DEFINITION IN\n//   %s\n// DO NOT EDIT.",
		ToPosixPath(sourceFile))
}

// GenerateIfndefName formats an output path as its include guard macro:
// "path/to/alarms.h" -> "PATH_TO_ALARMS_H__".
func GenerateIfndefName(filePath string) string {
	guard := strings.ToUpper(filePath) + "__"

	return strings.NewReplacer("/", "_", "\\", "_", ".", "_", "-", "_").Replace(guard)
}

// GetCppNamespace expands a namespace pattern for one namespace. The
// pattern names the scope generated declarations live in, with
// "{namespace}" standing for the namespace's unix name; an empty
// pattern means the bare namespace.
func GetCppNamespace(pattern, namespace string) string {
	if pattern == "" {
		return namespace
	}

	return strings.ReplaceAll(pattern, "{namespace}", namespace)
}

// OpenNamespace returns the opening lines for a :: separated namespace
// path, one nested namespace per component.
func OpenNamespace(cppNamespace string) *code.Code {
	c := code.New()
	for _, component := range strings.Split(cppNamespace, "::") {
		c.Appendf("namespace %s {", component)
	}

	return c
}

// CloseNamespace returns the closing lines matching OpenNamespace, in
// reverse component order.
func CloseNamespace(cppNamespace string) *code.Code {
	c := code.New()

	components := strings.Split(cppNamespace, "::")
	for i := len(components) - 1; i >= 0; i-- {
		c.Appendf("}  // namespace %s", components[i])
	}

	return c
}

// GetParameterDeclaration renders one parameter of a generated factory:
// fundamentals pass by value, everything else by const reference.
func GetParameterDeclaration(param *model.Property, cppType string) string {
	if param.Type.PropertyType.IsFundamental() {
		return fmt.Sprintf("%s %s", cppType, param.UnixName())
	}

	return fmt.Sprintf("const %s& %s", cppType, param.UnixName())
}

// ToPosixPath normalizes Windows path separators to forward slashes.
func ToPosixPath(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
