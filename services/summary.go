package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/seifshamyy/aqar-scraper/models"
)

// Summary aggregates price stats over a completed result set.
// Prices that do not parse are counted but excluded from the stats.
type Summary struct {
	Count        int
	PricedCount  int
	MinPrice     float64
	MaxPrice     float64
	AveragePrice float64
}

func Summarize(listings []models.Listing) Summary {
	s := Summary{Count: len(listings)}

	var (
		sum float64
		min = math.MaxFloat64
		max = -1.0
	)

	for _, l := range listings {
		v, err := strconv.ParseFloat(strings.ReplaceAll(l.Price, ",", ""), 64)
		if err != nil || v <= 0 {
			continue
		}
		s.PricedCount++
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if s.PricedCount > 0 {
		s.MinPrice = min
		s.MaxPrice = max
		s.AveragePrice = sum / float64(s.PricedCount)
	}

	return s
}
