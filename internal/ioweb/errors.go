package ioweb

import (
	"fmt"

	"github.com/gnames/degportal/pkg/errcode"
	"github.com/gnames/gn"
)

// ServerStartError is returned when the HTTP listener cannot start.
func ServerStartError(port int, err error) error {
	msg := `Cannot start HTTP server on port <em>%d</em>

<em>How to fix:</em>
  1. Check that no other process uses the port
  2. Pick another port with --port or server.port in config.yaml`

	vars := []any{port}

	return &gn.Error{
		Code: errcode.ServerStartError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("listen on :%d: %w", port, err),
	}
}

// ServerLoadError wraps a failure to load records for the server.
func ServerLoadError(kind string, err error) error {
	msg := `Cannot load <em>%s</em> for the portal

<em>How to fix:</em>
  Run <em>degportal fetch</em> to see which document fails`

	vars := []any{kind}

	return &gn.Error{
		Code: errcode.ServerLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("load %s: %w", kind, err),
	}
}
