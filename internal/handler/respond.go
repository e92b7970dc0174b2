package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bookshop/bookshop-go/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.Response{Success: false, Message: msg})
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, model.Response{Success: true, Data: data})
}

// respondList writes a list payload with the count field the API has
// always carried on collection responses.
func respondList(w http.ResponseWriter, status int, data any, count int) {
	writeJSON(w, status, model.Response{Success: true, Count: &count, Data: data})
}
