// Package export serializes views of records into delimited text.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
)

// Column maps a record field to a header of the exported table.
type Column struct {
	SourceField   string `json:"source_field"`
	DisplayHeader string `json:"display_header"`
}

// Value returns the value of a field of a record, nil when the record has
// none. Both record.GeneField and record.PublicationField qualify.
type Value[T any] func(rec T, field string) any

// ToDelimitedText serializes records into a header row followed by one row
// per record. Fields that contain the separator, a quote or a line break
// are quoted, quotes inside them are doubled.
func ToDelimitedText[T any](
	records []T,
	columns []Column,
	value Value[T],
	sep rune,
) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, records, columns, value, sep); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write streams the delimited text into w.
func Write[T any](
	w io.Writer,
	records []T,
	columns []Column,
	value Value[T],
	sep rune,
) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep

	row := make([]string, len(columns))
	for i, c := range columns {
		row[i] = c.DisplayHeader
	}
	if err := cw.Write(row); err != nil {
		return writeError(err)
	}

	for _, r := range records {
		for i, c := range columns {
			row[i] = Render(value(r, c.SourceField))
		}
		if err := cw.Write(row); err != nil {
			return writeError(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return writeError(err)
	}
	return nil
}

// Render converts a field value into its text form. Nil is empty, floats
// use the shortest form that parses back to the same value.
func Render(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case int:
		return strconv.Itoa(n)
	case bool:
		return strconv.FormatBool(n)
	default:
		return fmt.Sprint(n)
	}
}

// ParseFormat accepts "csv" or "tsv".
func ParseFormat(s string) (gnfmt.Format, error) {
	f, err := gnfmt.NewFormat(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || (f != gnfmt.CSV && f != gnfmt.TSV) {
		return gnfmt.FormatNone, formatError(s)
	}
	return f, nil
}

// Separator of a delimited format. Anything but TSV is comma separated.
func Separator(f gnfmt.Format) rune {
	if f == gnfmt.TSV {
		return '\t'
	}
	return ','
}

// Extension of files of a delimited format, without the dot.
func Extension(f gnfmt.Format) string {
	if f == gnfmt.TSV {
		return "tsv"
	}
	return "csv"
}

// ContentType of a delimited format for HTTP responses.
func ContentType(f gnfmt.Format) string {
	if f == gnfmt.TSV {
		return "text/tab-separated-values; charset=utf-8"
	}
	return "text/csv; charset=utf-8"
}

// FileName builds a download name with an ISO date stamp, for example
// "genes_2026-10-14.csv".
func FileName(prefix string, t time.Time, f gnfmt.Format) string {
	return fmt.Sprintf("%s_%s.%s", prefix, t.Format(time.DateOnly), Extension(f))
}
