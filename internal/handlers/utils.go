package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/cone-one/ragchat/internal/api"
	"github.com/cone-one/ragchat/pkg/logger_i"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}, log *logger_i.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// too late for a clean status code, just log it
		log.Error("Error encoding response", "error", err)
	}
}

func writeDetail(w http.ResponseWriter, statusCode int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Detail: detail})
}

func closeBody(body io.ReadCloser, log *logger_i.Logger) {
	if err := body.Close(); err != nil {
		log.Error("Couldn't close request body", "error", err)
	}
}
