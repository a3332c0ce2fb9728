package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seifshamyy/aqar-scraper/models"
)

// PostgresWriter snapshots completed job results. It is optional:
// the service runs fully in-memory without it.
type PostgresWriter struct {
	pool *pgxpool.Pool
}

func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	return &PostgresWriter{pool: pool}, nil
}

func (w *PostgresWriter) Close() {
	if w.pool != nil {
		w.pool.Close()
	}
}

func (w *PostgresWriter) EnsureSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	sql := `
	CREATE TABLE IF NOT EXISTS scrape_results (
		id BIGSERIAL PRIMARY KEY,
		job_id TEXT NOT NULL,
		title TEXT NOT NULL,
		price TEXT NOT NULL,
		area TEXT,
		link TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (job_id, link)
	);

	CREATE INDEX IF NOT EXISTS idx_scrape_results_job ON scrape_results(job_id);
	`

	if _, err := w.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

// WriteResults batch-inserts one completed job's listings. Rows
// already snapshotted for the same job/link pair are skipped.
func (w *PostgresWriter) WriteResults(jobID string, listings []models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	batch := &pgx.Batch{}
	insertSQL := `
	INSERT INTO scrape_results (job_id, title, price, area, link)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (job_id, link) DO NOTHING;
	`

	enqueued := 0
	for _, l := range listings {
		link := strings.TrimSpace(l.Link)
		if link == "" {
			continue
		}
		batch.Queue(insertSQL,
			strings.TrimSpace(l.Title),
			strings.TrimSpace(l.Price),
			strings.TrimSpace(l.Area),
			link,
		)
		enqueued++
	}

	if enqueued == 0 {
		return nil
	}

	results := w.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < enqueued; i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert failed at row %d: %w", i, err)
		}
	}

	return nil
}
