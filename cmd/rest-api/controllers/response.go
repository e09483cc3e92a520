// Package controllers renders usecase results as HTTP responses: plain
// JSON bodies on success, {"detail": "..."} on error, per §6.
package controllers

import (
	"net/http"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
)

// WriteOK renders data as a 200 response.
func WriteOK(w http.ResponseWriter, data interface{}) {
	writeSuccess(w, data, http.StatusOK)
}

// WriteCreated renders data as a 201 response.
func WriteCreated(w http.ResponseWriter, data interface{}) {
	writeSuccess(w, data, http.StatusCreated)
}

// WriteNoContent renders an empty 204 response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func writeSuccess(w http.ResponseWriter, data interface{}, status int) {
	if err := common.WriteSuccessResponse(w, data, status); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// WriteError renders err as the status its taxonomy assigns it, per §7.
func WriteError(w http.ResponseWriter, err error) {
	_ = common.WriteErrorResponse(w, err)
}
