package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/hitx/ui-api/internal/apperror"
)

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorBody is the JSON shape of a classified error. RetryAt is set only for
// rate-limit errors and is epoch milliseconds.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	RetryAt int64  `json:"retryAt,omitempty"`
}

// errorBodyFrom flattens an apperror into the wire shape. The opaque cause
// never leaves the process; only code and message do.
func errorBodyFrom(appErr *apperror.Error) ErrorBody {
	return ErrorBody{
		Code:    string(appErr.Code),
		Message: appErr.Message,
		RetryAt: appErr.ResetAt,
	}
}

// WriteError classifies err and writes it as a JSON error response using
// the error's canonical HTTP status.
func WriteError(w http.ResponseWriter, err error) {
	appErr := apperror.From(err)
	WriteJSON(w, appErr.Status, map[string]ErrorBody{"error": errorBodyFrom(appErr)})
}
