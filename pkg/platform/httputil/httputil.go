// Package httputil centralizes JSON encoding and domain error translation so
// handlers stay thin.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	domainerrors "vetgate/pkg/domain-errors"
)

const maxBodyBytes = 1 << 20

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a coded error into the JSON error envelope. Internal
// errors keep their message out of the response.
func WriteError(w http.ResponseWriter, err error) {
	code := domainerrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	if code != domainerrors.CodeInternal {
		var de *domainerrors.Error
		if errors.As(err, &de) && de.Message != "" {
			body["error_description"] = de.Message
		}
	}
	WriteJSON(w, domainerrors.ToHTTPStatus(code), body)
}

// Decode reads a JSON request body into T. Failures come back as coded
// bad-request errors ready for WriteError.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		return v, domainerrors.Wrap(err, domainerrors.CodeBadRequest, "invalid request body")
	}
	return v, nil
}
