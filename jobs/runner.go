package jobs

import (
	"context"
	"math"
	"time"

	"github.com/seifshamyy/aqar-scraper/models"
	"github.com/seifshamyy/aqar-scraper/scraper"
	"github.com/seifshamyy/aqar-scraper/services"
	"github.com/seifshamyy/aqar-scraper/utils"
)

// ResultWriter persists a completed job's deduplicated listings.
type ResultWriter interface {
	WriteResults(jobID string, listings []models.Listing) error
}

// Runner executes one scrape per job: Queued → Running → Completed
// or Failed, with no retries and no backward transitions. All state
// is written back through the store; the runner holds only the id.
type Runner struct {
	Store  *Store
	Driver scraper.Driver
	Pager  scraper.Options

	// Snapshots is optional; nil disables result persistence.
	Snapshots ResultWriter
}

// Run drives one job to a terminal state. It is meant to be called
// in its own goroutine; a failure here never surfaces to the caller,
// only to pollers of the store.
func (r *Runner) Run(ctx context.Context, id, originURL string, maxPages int) {
	if maxPages < 1 {
		maxPages = 1
	}

	r.Store.Update(id, func(j *models.Job) {
		j.Status = models.StatusRunning
		j.Progress = 0
	})
	utils.Info("Job %s running: %s (up to %d pages)", id, originURL, maxPages)

	sess, err := r.Driver.NewSession(ctx)
	if err != nil {
		r.fail(id, err)
		return
	}
	defer sess.Close()

	listings, err := scraper.Paginate(ctx, sess, originURL, maxPages, r.Pager, func(page, total int) {
		r.Store.Update(id, func(j *models.Job) {
			j.CurrentPage = page
			j.TotalPages = total
			j.Progress = int(math.Round(float64(page) / float64(total) * 100))
		})
	})
	if err != nil {
		r.fail(id, err)
		return
	}

	unique := services.Dedupe(listings)
	now := time.Now()

	r.Store.Update(id, func(j *models.Job) {
		j.Status = models.StatusCompleted
		j.Progress = 100
		j.Results = unique
		j.CompletedAt = &now
	})

	sum := services.Summarize(unique)
	utils.Success("Job %s completed: %d unique listings (%d priced, avg %.0f)",
		id, sum.Count, sum.PricedCount, sum.AveragePrice)

	if r.Snapshots != nil {
		if err := r.Snapshots.WriteResults(id, unique); err != nil {
			// Snapshot failures never fail the job.
			utils.Error("Job %s: result snapshot failed: %v", id, err)
		}
	}
}

// fail marks the job terminal. Partial results are discarded and
// progress resets to 0.
func (r *Runner) fail(id string, err error) {
	utils.Error("Job %s failed: %v", id, err)
	r.Store.Update(id, func(j *models.Job) {
		j.Status = models.StatusFailed
		j.Error = err.Error()
		j.Progress = 0
	})
}
