// Package scraper collects plot availability rows from the MIDC land
// bank portal by walking its paginated partial-view endpoint.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/midc-land-bank/ragserver/common/httpx"
	"github.com/midc-land-bank/ragserver/common/logger"
	"github.com/midc-land-bank/ragserver/config"
	"github.com/midc-land-bank/ragserver/dataset"
)

// Property-type tabs on the land-bank portal.
var tabs = []struct {
	id   int
	name string
}{
	{1, "Industrial"},
	{2, "Commercial"},
	{3, "Residential"},
}

// fullPageRows is the portal's page size. A shorter page is the last
// page of a tab.
const fullPageRows = 10

// Scraper fetches and parses the land-bank availability tables.
type Scraper struct {
	baseURL  string
	maxPages int
	delay    time.Duration
	client   *httpx.Client
}

// New creates a scraper from configuration.
func New(cfg *config.ScraperConfig) *Scraper {
	return &Scraper{
		baseURL:  cfg.BaseURL,
		maxPages: cfg.MaxPages,
		delay:    time.Duration(cfg.DelayMs) * time.Millisecond,
		client:   httpx.NewFromConfig(cfg.HTTP),
	}
}

// ScrapeAll walks all property-type tabs and returns every plot row.
func (s *Scraper) ScrapeAll(ctx context.Context) ([]dataset.Plot, error) {
	var plots []dataset.Plot
	for _, tab := range tabs {
		tabPlots, err := s.scrapeTab(ctx, tab.id, tab.name)
		if err != nil {
			return nil, fmt.Errorf("failed to scrape %s tab: %w", tab.name, err)
		}
		logger.Infof("scraped %d %s plots", len(tabPlots), tab.name)
		plots = append(plots, tabPlots...)
	}
	return plots, nil
}

// scrapeTab pages through one tab until an empty page, a short page,
// a repeated first row, or the page limit.
func (s *Scraper) scrapeTab(ctx context.Context, tabID int, propertyType string) ([]dataset.Plot, error) {
	var collected []dataset.Plot
	var prevFirst plotRow
	havePrev := false
	scrapedAt := time.Now()

	for page := 1; s.maxPages <= 0 || page <= s.maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := s.fetchPage(ctx, tabID, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		rows, err := parsePlotRows(body)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		if len(rows) == 0 {
			break
		}

		// The portal clamps past-end page numbers to the last page, so
		// a repeat shows up as the previous page's first row again.
		if havePrev && rows[0] == prevFirst {
			break
		}
		prevFirst = rows[0]
		havePrev = true

		for _, row := range rows {
			collected = append(collected, dataset.Plot{
				SrNo:           row.SrNo,
				RegionalOffice: row.RegionalOffice,
				IndustrialArea: row.IndustrialArea,
				PlotNo:         row.PlotNo,
				AreaSqMeter:    row.AreaSqMeter,
				PropertyType:   propertyType,
				ScrapedAt:      scrapedAt,
			})
		}
		logger.Debugf("tab %d page %d: %d rows", tabID, page, len(rows))

		if len(rows) < fullPageRows {
			break
		}
		if s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return collected, nil
}

func (s *Scraper) fetchPage(ctx context.Context, tabID, page int) (string, error) {
	url := fmt.Sprintf(
		"%s/LandBank/IndexforAllRecordsPartialView?pageno=%d&tab=%d&DeskID=&DistrictID=&IndustrialAreaID=&minsize=&maxsize=&maxprice=&minprice=&isCETP=null&PollutionLevel=0&PropertyTypeCode=&PlotTypeCode=",
		s.baseURL, page, tabID,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	// The portal serves the partial view only to browser-like clients.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return readBody(resp)
}
