// Package artifact persists intermediate pipeline results as CSV files so
// that extract, transform, merge and load can run as separate invocations.
package artifact

import (
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Write marshals rows to a CSV file at path, creating parent directories as
// needed. The header comes from the row type's csv struct tags.
func Write[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "artifact: create dir for %s", path)
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return eris.Wrapf(err, "artifact: marshal %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "artifact: write %s", path)
	}

	zap.L().Info("artifact written", zap.String("path", path), zap.Int("rows", len(rows)))
	return nil
}

// Read unmarshals a CSV file written by Write back into typed rows.
func Read[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "artifact: read %s", path)
	}

	var rows []T
	if err := csvutil.Unmarshal(data, &rows); err != nil {
		return nil, eris.Wrapf(err, "artifact: unmarshal %s", path)
	}
	return rows, nil
}
