package schema

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"schema-compiler/internal/diagnostic"
	"schema-compiler/internal/model"
)

// Parse parses one schema file's content into model namespaces. The
// file holds either a list of namespace definitions or a single one;
// sourceFile names it in the model (and decides comment stripping by
// extension). Syntax failures return an error; semantic findings
// accumulate in the returned diagnostics.
func Parse(data []byte, sourceFile string) ([]*model.Namespace, *diagnostic.Diagnostics, error) {
	if strings.EqualFold(path.Ext(sourceFile), ".json") {
		data = stripLineComments(data)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, errors.Wrapf(err, "parsing schema %s", sourceFile)
	}

	doc := &root
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		doc = root.Content[0]
	}

	var defs []*namespaceDef

	switch {
	case doc.Kind == 0 || doc.Tag == "!!null":
		// Empty document.
	case doc.Kind == yaml.SequenceNode:
		if err := doc.Decode(&defs); err != nil {
			return nil, nil, errors.Wrapf(err, "parsing schema %s", sourceFile)
		}
	case doc.Kind == yaml.MappingNode:
		var single namespaceDef
		if err := doc.Decode(&single); err != nil {
			return nil, nil, errors.Wrapf(err, "parsing schema %s", sourceFile)
		}

		defs = []*namespaceDef{&single}
	default:
		return nil, nil, errors.Newf(
			"parsing schema %s: expected a namespace definition or a list of them", sourceFile)
	}

	diags := &diagnostic.Diagnostics{}

	var namespaces []*model.Namespace

	for _, def := range defs {
		if def == nil {
			continue
		}

		if def.Nocompile {
			diags.AddInfo("nocompile_namespace",
				"namespace is marked nocompile and is skipped", def.Namespace, "")
			continue
		}

		if ns := buildNamespace(def, sourceFile, diags); ns != nil {
			namespaces = append(namespaces, ns)
		}
	}

	return namespaces, diags, nil
}

// LoadFile reads and parses one schema file.
func LoadFile(filename string) ([]*model.Namespace, *diagnostic.Diagnostics, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading schema file %s", filename)
	}

	return Parse(data, filepath.ToSlash(filename))
}

// LoadFiles reads every given schema file into one model and validates
// it. Read and syntax failures abort immediately; everything else comes
// back as diagnostics, and namespaces that loaded cleanly are usable
// even when a sibling did not.
func LoadFiles(filenames []string, log zerolog.Logger) (*model.Model, *diagnostic.Diagnostics, error) {
	m := model.NewModel()
	diags := &diagnostic.Diagnostics{}

	for _, filename := range filenames {
		log.Debug().Str("file", filename).Msg("loading schema")

		namespaces, fileDiags, err := LoadFile(filename)
		if err != nil {
			return nil, nil, err
		}

		diags.Merge(*fileDiags)

		for _, ns := range namespaces {
			if _, exists := m.Namespace(ns.Name); exists {
				diags.AddError("duplicate_namespace",
					"namespace is declared more than once across the loaded files", ns.Name, "")
				continue
			}

			m.AddNamespace(ns)
		}
	}

	diags.Merge(*Validate(m))

	log.Debug().
		Int("files", len(filenames)).
		Int("namespaces", len(m.Namespaces)).
		Int("errors", len(diags.Errors)).
		Int("warnings", len(diags.Warnings)).
		Msg("schema model built")

	return m, diags, nil
}

// stripLineComments removes // comments from JSON schema text. Comments
// run to end of line and are recognized only outside string literals;
// newlines stay so parse errors keep their line numbers.
func stripLineComments(data []byte) []byte {
	out := make([]byte, 0, len(data))

	inString := false
	escaped := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out = append(out, c)

			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}

			continue
		}

		if c == '"' {
			inString = true

			out = append(out, c)

			continue
		}

		if c == '/' && i+1 < len(data) && data[i+1] == '/' {
			for i < len(data) && data[i] != '\n' {
				i++
			}

			if i < len(data) {
				out = append(out, '\n')
			}

			continue
		}

		out = append(out, c)
	}

	return out
}
