// Package corpus parses case records from blank-line delimited "Key: Value" text.
package corpus

import (
	"bufio"
	"errors"
	"io"
	"strings"

	internalErrors "github.com/gcbaptista/go-case-predictor/internal/errors"
	"github.com/gcbaptista/go-case-predictor/model"
)

// Separator splits a line into key and value at its first occurrence.
const Separator = ":"

const byteOrderMark = "\uFEFF"

// Parse reads records from r.
//
// Each line is trimmed. A blank line ends the current record; a line containing Separator
// sets key = value on the current record (last write wins); any other line is ignored.
// Records without fields are never emitted. Read failures are reported as
// ErrSourceUnavailable; an input without records yields an empty, non-nil slice.
func Parse(r io.Reader) ([]model.Record, error) {
	reader := bufio.NewReader(r)
	records := make([]model.Record, 0)
	current := model.Record{}
	first := true

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, internalErrors.NewSourceUnavailableError("", err)
		}
		if line == "" && err != nil {
			break
		}

		if first {
			line = strings.TrimPrefix(line, byteOrderMark)
			first = false
		}
		line = strings.TrimSpace(line)

		if line == "" {
			if len(current) > 0 {
				records = append(records, current)
				current = model.Record{}
			}
		} else if key, value, ok := splitLine(line); ok {
			current[key] = value
		}

		if err != nil {
			break
		}
	}

	if len(current) > 0 {
		records = append(records, current)
	}
	return records, nil
}

// splitLine splits a trimmed line at the first Separator.
// Lines without a separator or with an empty key are rejected.
func splitLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, Separator)
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}
