package main

import (
	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"schema-compiler/internal/schema"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the loaded schema model for debugging",
	Long: `Load and validate schema files, then print the in-memory model.

The dump shows the model exactly as the generator sees it: qualified
type names, property order, origins, and compiler options. Validation
findings are logged but do not suppress the dump.

Examples:
  schema-compiler dump -s extensions/api/alarms.json
  schema-compiler dump -d extensions/api`,
	RunE: runDump,
}

var (
	dumpSchemas []string
	dumpDirs    []string
)

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().StringArrayVarP(&dumpSchemas, "schema", "s", nil, "schema file to load (repeatable)")
	dumpCmd.Flags().StringArrayVarP(&dumpDirs, "dir", "d", nil, "directory to scan for schema files (repeatable)")
}

func runDump(cmd *cobra.Command, args []string) error {
	files, err := collectSchemaFiles(dumpSchemas, dumpDirs)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return errors.New("no schema files given, use --schema or --dir")
	}

	m, diags, err := schema.LoadFiles(files, logger)
	if err != nil {
		return err
	}

	logDiagnostics(diags)

	spew.Dump(m)

	if diags.HasErrors() {
		return diags.Error()
	}

	return nil
}
