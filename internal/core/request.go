// AngelaMos | 2026
// request.go

package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

// DecodeJSON reads a single JSON object from the request body. It writes
// the error response itself and reports whether the handler may go on.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			JSONError(w, NewAppError(
				ErrInvalidInput,
				"request body too large",
				http.StatusRequestEntityTooLarge,
				"PAYLOAD_TOO_LARGE",
			))
			return false
		}
		BadRequest(w, "invalid request body")
		return false
	}
	return true
}

func QueryInt(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
