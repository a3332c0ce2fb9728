package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/scrape", h.Submit).Methods(http.MethodPost)
	r.HandleFunc("/job/{jobId}", h.Status).Methods(http.MethodGet)
	r.HandleFunc("/job/{jobId}/csv", h.ExportCSV).Methods(http.MethodGet)
	r.HandleFunc("/jobs", h.List).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	return r
}
