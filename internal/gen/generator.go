package gen

import (
	"path"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"schema-compiler/internal/code"
	"schema-compiler/internal/cpputil"
	"schema-compiler/internal/model"
)

// GeneratorConfig holds configuration for declaration generation.
type GeneratorConfig struct {
	// NamespacePattern is the C++ scope generated declarations live in,
	// with "{namespace}" standing for the namespace's unix name. Empty
	// means the bare namespace.
	NamespacePattern string

	// CircularNamespaces lists namespaces whose headers cannot include
	// each other. They get forward declarations for their soft
	// dependencies instead of soft includes.
	CircularNamespaces []string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		NamespacePattern:   "extensions::api::{namespace}",
		CircularNamespaces: []string{"tabs", "windows"},
	}
}

// Generator renders one C++ declaration header per namespace of a
// loaded model. It performs no I/O; callers hand the results to
// WriteFiles. Generation over distinct namespaces is safe to run
// concurrently, since each Generate call works on fresh state.
type Generator struct {
	model  *model.Model
	config GeneratorConfig
}

// NewGenerator creates a new Generator over a loaded model.
func NewGenerator(m *model.Model, config GeneratorConfig) *Generator {
	return &Generator{model: m, config: config}
}

// GeneratedFile represents one rendered output file. Filename is
// relative to the output root and mirrors the schema's source path.
type GeneratedFile struct {
	Filename string
	Content  []byte
}

// Generate renders the declaration header for one namespace. Identical
// models and configuration produce byte-identical output.
func (g *Generator) Generate(ns *model.Namespace) (GeneratedFile, error) {
	run := &generator{
		model:                 g.model,
		ns:                    ns,
		types:                 newTypeHelper(g.model, ns),
		namespacePattern:      g.config.NamespacePattern,
		includeSoft:           !slices.Contains(g.config.CircularNamespaces, ns.Name),
		generateErrorMessages: ns.Options.GenerateErrorMessages,
		modernisedEnums:       ns.Options.ModernisedEnums,
	}

	content, err := run.generate()
	if err != nil {
		return GeneratedFile{}, err
	}

	return GeneratedFile{Filename: run.outputFile(), Content: []byte(content)}, nil
}

// GenerateAll renders every namespace in model order.
func (g *Generator) GenerateAll() ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(g.model.Namespaces))
	for _, ns := range g.model.Namespaces {
		file, err := g.Generate(ns)
		if err != nil {
			return nil, errors.Wrapf(err, "generating namespace %s", ns.Name)
		}

		files = append(files, file)
	}

	return files, nil
}

// generator is the per-namespace state of one Generate call.
type generator struct {
	model *model.Model
	ns    *model.Namespace
	types *typeHelper

	namespacePattern      string
	includeSoft           bool
	generateErrorMessages bool
	modernisedEnums       bool
}

// outputFile is the header path for the namespace: its source file
// with the extension replaced by .h.
func (g *generator) outputFile() string {
	source := cpputil.ToPosixPath(g.ns.SourceFile)
	if source == "" {
		return g.ns.UnixName() + ".h"
	}

	return strings.TrimSuffix(source, path.Ext(source)) + ".h"
}

// generate renders the whole header: banners, guard, includes, then the
// declaration sections in fixed order inside the namespace scope. A
// section's banner only appears when the section has content.
func (g *generator) generate() (string, error) {
	c := code.New()

	c.Append(cpputil.License)
	c.Append("")
	c.Append(cpputil.GeneratedFileMessage(g.ns.SourceFile))
	c.Append("")

	ifndefName := cpputil.GenerateIfndefName(g.outputFile())

	c.Appendf("#ifndef %s", ifndefName)
	c.Appendf("#define %s", ifndefName)
	c.Append("")
	c.Append("#include <stdint.h>")
	c.Append("")
	c.Append("#include <map>")
	c.Append("#include <memory>")
	c.Append("#include <string>")
	c.Append("#include <vector>")
	c.Append("")
	c.Append(`#include "base/values.h"`)
	c.Cblock(g.types.generateIncludes(g.includeSoft, g.generateErrorMessages))
	c.Append("")

	if !g.includeSoft {
		c.Cblock(g.types.generateForwardDeclarations(g.namespacePattern))
	}

	cppNamespace := cpputil.GetCppNamespace(g.namespacePattern, g.ns.UnixName())
	c.Concat(cpputil.OpenNamespace(cppNamespace))
	c.Append("")

	if len(g.ns.Properties) > 0 {
		g.sectionBanner(c, "Properties")
		for _, prop := range g.ns.Properties {
			propertyCode, err := g.types.propertyValues(prop, "extern const {type} {name};")
			if err != nil {
				return "", err
			}

			if propertyCode != nil {
				c.Cblock(propertyCode)
			}
		}
	}

	if len(g.ns.Types) > 0 {
		g.sectionBanner(c, "Types")

		order, err := g.fieldDependencyOrder()
		if err != nil {
			return "", err
		}

		types, err := g.generateTypes(order, typeOptions{toplevel: true, typedefs: true})
		if err != nil {
			return "", err
		}
		c.Cblock(types)
	}

	if g.ns.ManifestKeys != nil {
		g.sectionBanner(c, "Manifest Keys")

		manifest, err := g.generateManifestKeys()
		if err != nil {
			return "", err
		}
		c.Cblock(manifest)
	}

	if len(g.ns.Functions) > 0 {
		g.sectionBanner(c, "Functions")
		for _, fn := range g.ns.Functions {
			fc, err := g.generateFunction(fn)
			if err != nil {
				return "", err
			}
			c.Cblock(fc)
		}
	}

	if len(g.ns.Events) > 0 {
		g.sectionBanner(c, "Events")
		for _, ev := range g.ns.Events {
			ec, err := g.generateEvent(ev)
			if err != nil {
				return "", err
			}
			c.Cblock(ec)
		}
	}

	c.Concat(cpputil.CloseNamespace(cppNamespace))
	c.Append("")
	c.Appendf("#endif  // %s", ifndefName)
	c.Append("")

	return c.String(), nil
}

func (g *generator) sectionBanner(c *code.Code, title string) {
	c.Append("//")
	c.Appendf("// %s", title)
	c.Append("//")
	c.Append("")
}
