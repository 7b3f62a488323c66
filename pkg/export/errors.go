package export

import (
	"fmt"
	"runtime"

	"github.com/gnames/degportal/pkg/errcode"
	"github.com/gnames/gn"
)

func writeError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	msg := "Cannot write exported table"

	return &gn.Error{
		Code: errcode.ExportWriteError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func formatError(s string) error {
	msg := "Unsupported export format <em>%s</em>, use csv or tsv"
	vars := []any{s}

	return &gn.Error{
		Code: errcode.ExportFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unsupported export format %q", s),
	}
}

// CreateFileError is returned when an export file cannot be created.
func CreateFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	msg := `Cannot create export file <em>%s</em>

<em>How to fix:</em>
  Check that the directory exists and is writable`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ExportWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
