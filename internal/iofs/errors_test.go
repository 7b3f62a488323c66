package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/degportal/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Structure verifies codes, vars and wrapping of file system
// errors.
func TestErrors_Structure(t *testing.T) {
	originalErr := errors.New("permission denied")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		path string
	}{
		{"CreateDirError", CreateDirError("/test/dir", originalErr),
			errcode.CreateDirError, "/test/dir"},
		{"CopyFileError", CopyFileError("/test/config.yaml", originalErr),
			errcode.CopyFileError, "/test/config.yaml"},
		{"ReadFileError", ReadFileError("/data/genes.json", originalErr),
			errcode.ReadFileError, "/data/genes.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")

			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])

			assert.ErrorIs(t, gnErr.Err, originalErr,
				"Should wrap original error")
			assert.Contains(t, gnErr.Err.Error(), "from",
				"Error should mention caller context")
		})
	}
}
