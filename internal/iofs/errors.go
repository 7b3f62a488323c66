package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/degportal/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateDirError is returned when a config, cache or log directory
// cannot be created.
func CreateDirError(dir string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	msg := `Cannot create directory <em>%s</em>

<em>How to fix:</em>
  Check permissions of your home directory`

	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: mkdir: %w", fn, err),
	}
}

// CopyFileError is returned when an embedded default file cannot be
// written out.
func CopyFileError(file string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	msg := `Cannot write default settings to <em>%s</em>

<em>How to fix:</em>
  Create the file by hand from the defaults in the documentation`

	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: []any{file},
		Err:  fmt.Errorf("from %s: write default: %w", fn, err),
	}
}

// ReadFileError is returned when a settings file cannot be read or
// decoded.
func ReadFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	msg := `Cannot read <em>%s</em>

<em>How to fix:</em>
  Check the YAML syntax, or delete the file to restore defaults`

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: read %s: %w", fn, path, err),
	}
}
