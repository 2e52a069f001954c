package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/turtacn/RSU-Analyzer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

// SweepRow is one sample of a theta sweep curve.
type SweepRow struct {
	Theta float64
	RSU   float64
}

// DefaultSweepFilename names a sweep artifact after its ring and bridge
// angle, e.g. "syn-T-1 (delta=103).csv".
func DefaultSweepFilename(name string, delta float64) string {
	return fmt.Sprintf("%s (delta=%s).csv",
		sanitizeName(name), strconv.FormatFloat(delta, 'g', -1, 64))
}

// EncodeSweepCSV renders rows as CSV with a "theta,rsu" header.  Values keep
// full float64 precision so curves survive a round trip through the file.
func EncodeSweepCSV(rows []SweepRow) ([]byte, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"theta", "rsu"}); err != nil {
		return nil, errors.Wrap(err, errors.CodeExportEncodeFailed, "write csv header")
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatFloat(row.Theta, 'g', -1, 64),
			strconv.FormatFloat(row.RSU, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, errors.Wrap(err, errors.CodeExportEncodeFailed, "write csv record")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, errors.CodeExportEncodeFailed, "flush csv")
	}
	return []byte(sb.String()), nil
}

// SweepCSV encodes rows and writes them under the exporter's directory,
// returning the artifact path.
func (e *Exporter) SweepCSV(filename string, rows []SweepRow) (string, error) {
	data, err := EncodeSweepCSV(rows)
	if err != nil {
		return "", err
	}
	path, err := e.write(filename, data)
	if err != nil {
		return "", err
	}
	e.logger.Info("wrote sweep csv",
		logging.String("path", path),
		logging.Int("rows", len(rows)),
	)
	return path, nil
}
