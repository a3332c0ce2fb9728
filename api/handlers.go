package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/seifshamyy/aqar-scraper/jobs"
	"github.com/seifshamyy/aqar-scraper/models"
	"github.com/seifshamyy/aqar-scraper/storage"
)

type Handler struct {
	Store           *jobs.Store
	Runner          *jobs.Runner
	DefaultMaxPages int
}

func NewHandler(store *jobs.Store, runner *jobs.Runner, defaultMaxPages int) *Handler {
	if defaultMaxPages < 1 {
		defaultMaxPages = 1
	}
	return &Handler{Store: store, Runner: runner, DefaultMaxPages: defaultMaxPages}
}

type scrapeRequest struct {
	OriginURL  string `json:"originUrl"`
	LimitPages int    `json:"limit_pages"`
}

// Submit registers a job and dispatches the scrape in the
// background; the response never waits for the browser.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid JSON body",
		})
		return
	}
	if req.OriginURL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "originUrl is required",
		})
		return
	}

	pages := req.LimitPages
	if pages < 1 {
		pages = h.DefaultMaxPages
	}

	id := uuid.NewString()
	h.Store.Put(models.Job{
		ID:        id,
		OriginURL: req.OriginURL,
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
	})

	go h.Runner.Run(context.Background(), id, req.OriginURL, pages)

	writeJSON(w, http.StatusAccepted, map[string]any{
		"success":        true,
		"jobId":          id,
		"checkStatusUrl": "/job/" + id,
		"tip":            fmt.Sprintf("Poll /job/%s until status is completed", id),
	})
}

// Status reports a job's lifecycle state. Results appear only once
// the job is terminal.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["jobId"]

	job, ok := h.Store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}

	if !job.Status.Terminal() {
		writeJSON(w, http.StatusOK, map[string]any{
			"jobId":       job.ID,
			"status":      job.Status,
			"progress":    job.Progress,
			"currentPage": job.CurrentPage,
			"totalPages":  job.TotalPages,
		})
		return
	}

	data := job.Results
	if data == nil {
		data = []models.Listing{}
	}

	resp := map[string]any{
		"jobId":       job.ID,
		"status":      job.Status,
		"progress":    job.Progress,
		"count":       len(data),
		"data":        data,
		"completedAt": job.CompletedAt,
	}
	if job.Error != "" {
		resp["error"] = job.Error
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all := h.Store.List()

	summaries := make([]map[string]any, 0, len(all))
	for _, job := range all {
		summaries = append(summaries, map[string]any{
			"jobId":    job.ID,
			"status":   job.Status,
			"progress": job.Progress,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"jobs": summaries})
}

// ExportCSV streams a completed job's results as CSV.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["jobId"]

	job, ok := h.Store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}
	if job.Status != models.StatusCompleted {
		writeError(w, http.StatusConflict, "Job is not completed")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "job-"+id+".csv"))
	if err := storage.WriteCSV(w, job.Results); err != nil {
		// Headers are already out; nothing left to do but log-free bail.
		return
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
