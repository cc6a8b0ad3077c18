package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON marshals data and writes it with the given status code and an
// application/json content type. Returns the bytes written to the body.
//
// When marshaling fails the response degrades to a plain 500 and the
// wrapped error is returned to the caller.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "failed to serialize response", http.StatusInternalServerError)
		return 0, fmt.Errorf("marshal response payload: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(payload)
}
