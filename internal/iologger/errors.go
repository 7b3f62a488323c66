package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/degportal/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateLogFileError is returned when the log file cannot be opened.
func CreateLogFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	msg := `Cannot open log file <em>%s</em>

<em>How to fix:</em>
  Set log.destination to stderr in config.yaml, or check permissions`

	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: open log: %w", fn, err),
	}
}
