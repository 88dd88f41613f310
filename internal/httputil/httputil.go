package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-tspc/tspc/internal/logging"
)

// RequireJSONPost guards a handler entry point: only POST with a JSON body
// is accepted. Returns false after writing the error response.
func RequireJSONPost(ctx context.Context, w http.ResponseWriter, r *http.Request) bool {
	logger := logging.FromContext(ctx)
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		logger.Debugf("method %v is not allowed", r.Method)
		_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
		return false
	}
	if t := r.Header.Get("content-type"); !strings.HasPrefix(t, "application/json") {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		logger.Debugf("content-type %q is not application/json", t)
		_, _ = fmt.Fprint(w, `{"error": "content-type is not application/json"}`)
		return false
	}
	return true
}

// DecodeErr maps a JSON decoding failure to the matching client error.
func DecodeErr(ctx context.Context, w http.ResponseWriter, err error) {
	var (
		syntaxErr    *json.SyntaxError
		unmarshalErr *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syntaxErr):
		RespBadRequest(ctx, w, `{"error": "malformed json at position %v"}`, syntaxErr.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		RespBadRequest(ctx, w, `{"error": "malformed json"}`)
	case errors.As(err, &unmarshalErr):
		RespBadRequest(ctx, w, `{"error": "invalid value %v at position %v"}`, unmarshalErr.Field, unmarshalErr.Offset)
	case errors.Is(err, io.EOF):
		RespBadRequest(ctx, w, `{"error": "body must not be empty"}`)
	case err.Error() == "http: request body too large":
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	default:
		RespInternalError(ctx, w, `{"error": "failed to decode json %v"}`, err)
	}
}

func RespBadRequest(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logging.FromContext(ctx).Debug(msg)
	http.Error(w, msg, http.StatusBadRequest)
}

func RespInternalError(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	logging.FromContext(ctx).Errorf(format, args...)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

// RespJSON writes v as the JSON response body.
func RespJSON(ctx context.Context, w http.ResponseWriter, v interface{}) {
	bytes, err := json.Marshal(v)
	if err != nil {
		RespInternalError(ctx, w, `{"error": "failed to encode output json %v"}`, err)
		return
	}
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(bytes)
}
