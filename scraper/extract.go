package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/seifshamyy/aqar-scraper/models"
)

const maxTitleLen = 100

// priceRe matches a thousands-grouped amount: 1-3 leading digits,
// one or more comma-grouped segments, optional decimal suffix.
// Ungrouped numbers ("5000") are navigational noise, not prices.
var priceRe = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d+)?`)

// areaRe captures the surface immediately before the square-meter
// marker, e.g. "150 م²".
var areaRe = regexp.MustCompile(`(\d+)\s*م²`)

// categoryMarkers flag "browse all listings in ..." navigation links
// that carry prices in their text but are not listings themselves.
var categoryMarkers = []string{
	"جميع الإعلانات",
	"عرض الكل",
}

// ExtractListings maps every anchor in the rendered page to a
// candidate listing. Anchors without a price token, and category
// navigation anchors, are dropped silently. Duplicate links are
// retained here; dedup happens after pagination.
func ExtractListings(baseURL, html string) ([]models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	var listings []models.Listing

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		if text == "" || isCategoryLink(text) {
			return
		}

		price := priceRe.FindString(text)
		if price == "" {
			return
		}

		href, _ := a.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}

		listings = append(listings, models.Listing{
			Title: extractTitle(a, text),
			Price: price,
			Area:  extractArea(text),
			Link:  base.ResolveReference(ref).String(),
		})
	})

	return listings, nil
}

func isCategoryLink(text string) bool {
	for _, marker := range categoryMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// extractTitle prefers a nested heading; otherwise the first line of
// the anchor text, truncated.
func extractTitle(a *goquery.Selection, text string) string {
	heading := strings.TrimSpace(a.Find("h1, h2, h3, h4, h5, h6").First().Text())
	if heading != "" {
		return heading
	}

	firstLine := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
	return truncate(firstLine, maxTitleLen)
}

func extractArea(text string) string {
	if m := areaRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return "N/A"
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
