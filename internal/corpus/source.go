package corpus

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	internalErrors "github.com/gcbaptista/go-case-predictor/internal/errors"
	"github.com/gcbaptista/go-case-predictor/model"
)

// LoadFile opens the corpus at path and parses it.
// Open, read and close failures are returned as *errors.SourceUnavailableError carrying the path.
// The file is closed on every exit path.
func LoadFile(path string) (records []model.Record, err error) {
	file, err := os.Open(path) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		return nil, internalErrors.NewSourceUnavailableError(path, err)
	}
	defer closeSource(file, path, &records, &err)

	records, err = Parse(file)
	if err != nil {
		// Parse does not know the path; attach it
		var srcErr *internalErrors.SourceUnavailableError
		if errors.As(err, &srcErr) {
			return nil, internalErrors.NewSourceUnavailableError(path, srcErr.Err)
		}
		return nil, err
	}
	return records, nil
}

// closeSource closes c. A close failure replaces a successful result; an earlier error wins.
func closeSource(c io.Closer, path string, records *[]model.Record, err *error) {
	closeErr := c.Close()
	if closeErr == nil || *err != nil {
		return
	}
	*records = nil
	*err = internalErrors.NewSourceUnavailableError(path, fmt.Errorf("close: %w", closeErr))
}

// Format renders one record as "Key: Value" lines in key order.
// Parsing the result yields the same record.
func Format(rec model.Record) string {
	var sb strings.Builder
	for _, k := range rec.Keys() {
		sb.WriteString(k)
		sb.WriteString(Separator)
		sb.WriteByte(' ')
		sb.WriteString(rec[k])
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatAll renders records separated by blank lines.
func FormatAll(records []model.Record) string {
	parts := make([]string, 0, len(records))
	for _, rec := range records {
		if len(rec) == 0 {
			continue
		}
		parts = append(parts, Format(rec))
	}
	return strings.Join(parts, "\n")
}
