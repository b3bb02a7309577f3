package gen

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files under the output directory,
// creating intermediate directories as needed. Without force, an
// already existing output file aborts the whole write.
func WriteFiles(files []GeneratedFile, outputDir string, force bool) error {
	for _, file := range files {
		outputPath := filepath.Join(outputDir, filepath.FromSlash(file.Filename))

		if !force {
			if _, err := os.Stat(outputPath); err == nil {
				return errors.Newf("refusing to overwrite %s without force", outputPath)
			}
		}

		if err := os.MkdirAll(filepath.Dir(outputPath), dirPerm); err != nil {
			return errors.Wrapf(err, "creating output directory for %s", file.Filename)
		}

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return errors.Wrapf(err, "writing file %s", file.Filename)
		}
	}

	return nil
}
