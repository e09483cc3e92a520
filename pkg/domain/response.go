package common

import (
	"encoding/json"
	"net/http"
)

// errorBody is the wire shape of every error response: {"detail": "..."}.
type errorBody struct {
	Detail string `json:"detail"`
}

// WriteErrorResponse renders err as a JSON {"detail": "..."} body with the
// status code the error taxonomy assigns it.
func WriteErrorResponse(w http.ResponseWriter, err error) error {
	status := StatusCodeFor(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(errorBody{Detail: err.Error()})
}

// WriteSuccessResponse renders data as JSON with the given status code. A
// nil data writes an empty body (used for 204 No Content).
func WriteSuccessResponse(w http.ResponseWriter, data interface{}, statusCode int) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(data)
}
