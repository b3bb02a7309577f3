package main

import (
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"schema-compiler/internal/diagnostic"
	"schema-compiler/internal/gen"
	"schema-compiler/internal/schema"
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate declaration headers from schema files",
	Long: `Generate one C++ declaration header per schema namespace.

Schemas come from --schema files and --dir directories (walked for
.json, .yaml, and .yml files). Validation findings are logged; any
error aborts generation. Headers land under the output directory,
mirroring each schema's source path with the extension replaced by .h.

Examples:
  schema-compiler gen -s extensions/api/alarms.json -o out
  schema-compiler gen -d extensions/api -o out --force
  schema-compiler gen -s alarms.json --stdout
  schema-compiler gen -d extensions/api -o out --watch`,
	RunE: runGen,
}

var (
	genSchemas          []string
	genDirs             []string
	genOutDir           string
	genStdout           bool
	genForce            bool
	genNamespacePattern string
	genWatch            bool
)

func init() {
	rootCmd.AddCommand(genCmd)

	genCmd.Flags().StringArrayVarP(&genSchemas, "schema", "s", nil, "schema file to load (repeatable)")
	genCmd.Flags().StringArrayVarP(&genDirs, "dir", "d", nil, "directory to scan for schema files (repeatable)")
	genCmd.Flags().StringVarP(&genOutDir, "out", "o", "out", "output directory for generated headers")
	genCmd.Flags().BoolVar(&genStdout, "stdout", false, "write generated headers to stdout instead of files")
	genCmd.Flags().BoolVarP(&genForce, "force", "f", false, "overwrite existing output files")
	genCmd.Flags().StringVar(&genNamespacePattern, "namespace-pattern", gen.DefaultGeneratorConfig().NamespacePattern,
		"C++ scope for generated declarations, {namespace} expands to the schema namespace")
	genCmd.Flags().BoolVar(&genWatch, "watch", false, "regenerate whenever a schema file changes")
}

func runGen(cmd *cobra.Command, args []string) error {
	files, err := collectSchemaFiles(genSchemas, genDirs)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return errors.New("no schema files given, use --schema or --dir")
	}

	if genWatch {
		// Every regeneration rewrites the previous run's output.
		genForce = true
	}

	if err := generate(files); err != nil {
		if !genWatch {
			return err
		}

		// In watch mode a broken schema is not fatal: report it and
		// wait for the next save.
		logger.Error().Err(err).Msg("generation failed")
	}

	if !genWatch {
		return nil
	}

	return watchSchemas(files)
}

// generate runs one full load, validate, render, write cycle.
func generate(files []string) error {
	m, diags, err := schema.LoadFiles(files, logger)
	if err != nil {
		return err
	}

	logDiagnostics(diags)

	if diags.HasErrors() {
		return diags.Error()
	}

	config := gen.DefaultGeneratorConfig()
	config.NamespacePattern = genNamespacePattern

	generated, err := gen.NewGenerator(m, config).GenerateAll()
	if err != nil {
		return err
	}

	if genStdout {
		for _, file := range generated {
			if _, err := os.Stdout.Write(file.Content); err != nil {
				return errors.Wrap(err, "writing to stdout")
			}
		}

		return nil
	}

	if err := gen.WriteFiles(generated, genOutDir, genForce); err != nil {
		return err
	}

	for _, file := range generated {
		logger.Info().Str("file", filepath.Join(genOutDir, filepath.FromSlash(file.Filename))).Msg("header written")
	}

	return nil
}

func logDiagnostics(diags *diagnostic.Diagnostics) {
	for _, d := range diags.Infos {
		logger.Info().Msg(d.String())
	}

	for _, d := range diags.Warnings {
		logger.Warn().Msg(d.String())
	}

	for _, d := range diags.Errors {
		logger.Error().Msg(d.String())
	}
}

// watchSchemas blocks, regenerating on schema changes until interrupted.
func watchSchemas(files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer watcher.Close()

	// Watch directories, not files: editors doing atomic saves replace
	// the file, which silently drops file-level watches.
	for _, dir := range watchDirs(files) {
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "watching %s", dir)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	logger.Info().Int("files", len(files)).Msg("watching schema files for changes")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isSchemaFile(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("schema file changed")

			// Rescan so files created after startup are picked up.
			current, err := collectSchemaFiles(genSchemas, genDirs)
			if err != nil {
				logger.Error().Err(err).Msg("schema rescan failed")
				continue
			}

			if err := generate(current); err != nil {
				logger.Error().Err(err).Msg("regeneration failed")
				continue
			}

			logger.Info().Int("files", len(current)).Msg("regenerated")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Error().Err(err).Msg("watcher error")

		case <-sigCh:
			logger.Info().Msg("stopping watch")
			return nil
		}
	}
}

// collectSchemaFiles expands the schema and directory flags into a
// deduplicated file list: explicit files first in flag order, then
// directory walks in lexical order.
func collectSchemaFiles(schemas, dirs []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, s := range schemas {
		add(s)
	}

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() || !isSchemaFile(p) {
				return nil
			}

			add(p)

			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "scanning %s", dir)
		}
	}

	return out, nil
}

// watchDirs returns the parent directories of the given files, deduplicated.
func watchDirs(files []string) []string {
	seen := map[string]bool{}
	var out []string

	for _, f := range files {
		dir := filepath.Dir(f)
		if !seen[dir] {
			seen[dir] = true
			out = append(out, dir)
		}
	}

	return out
}

func isSchemaFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}

	return false
}
