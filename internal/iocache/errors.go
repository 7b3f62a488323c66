package iocache

import (
	"fmt"
	"runtime"

	"github.com/gnames/degportal/pkg/errcode"
	"github.com/gnames/gn"
)

func CacheOpenError(path string, err error) error {
	msg := `Cannot open document cache <em>%s</em>

<em>How to fix:</em>
  Remove the file to start with an empty cache,
  or run with <em>DEGPORTAL_FETCH_USE_CACHE=false</em>`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open cache: %w", fn, err),
	}
}

func CacheReadError(name string, err error) error {
	msg := "Cannot read <em>%s</em> from document cache"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.CacheReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read cache: %w", fn, err),
	}
}

func CacheWriteError(name string, err error) error {
	msg := "Cannot save <em>%s</em> to document cache"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.CacheWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write cache: %w", fn, err),
	}
}
