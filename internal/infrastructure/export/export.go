// Package export persists analysis artifacts — sweep curves as CSV, scenes
// and result summaries as JSON — under a configured output directory.  It
// deliberately depends only on primitive row data so that any layer can hand
// results down without import cycles.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/turtacn/RSU-Analyzer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

// Exporter writes artifacts into a fixed output directory, creating it on
// first use.
type Exporter struct {
	dir    string
	logger logging.Logger
}

// New creates an Exporter rooted at dir.  An empty dir means the current
// working directory.
func New(dir string, logger logging.Logger) *Exporter {
	if dir == "" {
		dir = "."
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Exporter{dir: dir, logger: logger}
}

// Dir returns the output directory artifacts are written into.
func (e *Exporter) Dir() string { return e.dir }

// write persists data under the exporter's directory and returns the full
// artifact path.
func (e *Exporter) write(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", errors.Wrap(err, errors.CodeExportDirFailed,
			fmt.Sprintf("create output directory %q", e.dir))
	}
	path := filepath.Join(e.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, errors.CodeExportWriteFailed,
			fmt.Sprintf("write artifact %q", path))
	}
	return path, nil
}

// sanitizeName strips path separators out of user-supplied names so that a
// ring named "a/b" cannot escape the output directory.
func sanitizeName(name string) string {
	return strings.NewReplacer("/", "-", "\\", "-").Replace(name)
}
