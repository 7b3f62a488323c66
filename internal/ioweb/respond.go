package ioweb

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gnames/degportal/pkg/catalog"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

var stripTags = strings.NewReplacer("<em>", "", "</em>", "")

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	enc := gnfmt.GNjson{}
	bs, err := enc.Encode(v)
	if err != nil {
		logError("Cannot encode response", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(bs)
}

func writeError(w http.ResponseWriter, status int, err error) {
	res := errorResponse{Status: http.StatusText(status), Message: Message(err)}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		res.Code = int(gnErr.Code)
	}
	writeJSON(w, status, res)
}

func writeLoading(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{
		Status:  http.StatusText(http.StatusServiceUnavailable),
		Message: "records are loading, try again shortly",
	})
}

func writeLoadFailed(w http.ResponseWriter, kind catalog.Kind, err error) {
	if err == nil {
		err = fmt.Errorf("no %s loaded", kind)
	}
	writeError(w, http.StatusInternalServerError, err)
}

// Message returns the user facing text of an error. For gn.Error it is the
// formatted message without markup.
func Message(err error) string {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Msg != "" {
		return stripTags.Replace(fmt.Sprintf(gnErr.Msg, gnErr.Vars...))
	}
	return err.Error()
}

func logError(msg string, err error) {
	slog.Error(msg, "error", err)
}
