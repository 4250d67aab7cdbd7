// Package export turns a stored collection into downloadable JSON or CSV text.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNothingToExport is returned by CSV when the collection is empty.
var ErrNothingToExport = errors.New("nothing to export")

// Row is a record that knows its own CSV layout.
type Row interface {
	CSVHeader() []string
	CSVRow() []string
}

const (
	ContentTypeJSON = "application/json; charset=utf-8"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

// JSON returns the records pretty-printed with a two-space indent.
func JSON[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export json: %w", err)
	}
	return data, nil
}

// CSV returns a header line followed by one line per record. Every field is
// quoted so commas, quotes and line breaks inside values survive.
func CSV[T Row](records []T) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(records[0].CSVHeader(), ","))
	for _, r := range records {
		fields := r.CSVRow()
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = quote(f)
		}
		lines = append(lines, strings.Join(quoted, ","))
	}
	return []byte(strings.Join(lines, "\n")), nil
}

// Filename builds "<prefix>-<YYYY-MM-DD>.<ext>" from the UTC date of now.
func Filename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", prefix, now.UTC().Format(time.DateOnly), ext)
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
