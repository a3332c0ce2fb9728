package storage

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/seifshamyy/aqar-scraper/models"
)

// WriteCSV encodes listings as CSV with a header row.
// csv.Writer handles quoting, commas inside fields and line endings.
func WriteCSV(w io.Writer, listings []models.Listing) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"title", "price", "area", "link"}); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}

	for _, l := range listings {
		if err := cw.Write([]string{l.Title, l.Price, l.Area, l.Link}); err != nil {
			return fmt.Errorf("csv write error: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}

	return nil
}
