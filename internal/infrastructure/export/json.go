package export

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/turtacn/RSU-Analyzer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

// DefaultSceneFilename names a scene artifact after its ring and angles,
// e.g. "syn-T-1 (theta=30, delta=103).json".
func DefaultSceneFilename(name string, theta, delta float64) string {
	return fmt.Sprintf("%s (theta=%s, delta=%s).json",
		sanitizeName(name),
		strconv.FormatFloat(theta, 'g', -1, 64),
		strconv.FormatFloat(delta, 'g', -1, 64))
}

// EncodeJSON renders v as indented JSON with a trailing newline.
func EncodeJSON(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExportEncodeFailed, "encode json artifact")
	}
	return append(data, '\n'), nil
}

// JSON encodes v and writes it under the exporter's directory, returning the
// artifact path.
func (e *Exporter) JSON(filename string, v interface{}) (string, error) {
	data, err := EncodeJSON(v)
	if err != nil {
		return "", err
	}
	path, err := e.write(filename, data)
	if err != nil {
		return "", err
	}
	e.logger.Info("wrote json artifact", logging.String("path", path))
	return path, nil
}
