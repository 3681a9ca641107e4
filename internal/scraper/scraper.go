package scraper

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"mspro-labs/tapboard/internal/checkins"
	"mspro-labs/tapboard/internal/config"
	"mspro-labs/tapboard/internal/metrics"
	"mspro-labs/tapboard/internal/models"
	"mspro-labs/tapboard/internal/taplist"
)

var logger = log.New(os.Stdout, "SCRAPER: ", log.LstdFlags|log.Lshortfile)

// Snapshot is one run of both pipelines.
type Snapshot struct {
	Checkins []models.CheckinRecord `json:"checkins"`
	Taps     []models.TapRecord     `json:"taps"`
}

// Service wires a Fetcher to the two extractors.
type Service struct {
	fetcher  Fetcher
	site     *config.SiteConfig
	checkins *checkins.Extractor
	taps     *taplist.Extractor
	metrics  *metrics.Metrics
}

// NewService builds the pipelines from the site config. m may be nil.
func NewService(f Fetcher, site *config.SiteConfig, m *metrics.Metrics, opts ...checkins.Option) *Service {
	return &Service{
		fetcher:  f,
		site:     site,
		checkins: checkins.New(site.Selectors.Checkins, opts...),
		taps:     taplist.New(site.Selectors.Taps),
		metrics:  m,
	}
}

// NewFetcher picks the Fetcher for mode (config.FetchHTTP or config.FetchBrowser).
func NewFetcher(mode string, site *config.SiteConfig) (Fetcher, error) {
	switch mode {
	case config.FetchHTTP, "":
		return NewHTTPFetcher(site.UserAgent, site.FetchTimeout), nil
	case config.FetchBrowser:
		logger.Println("Launching headless browser...")
		return NewBrowserFetcher(site.FetchTimeout)
	default:
		return nil, fmt.Errorf("unknown fetch mode %q", mode)
	}
}

// FetchCheckins downloads the feed page and extracts its check-ins.
func (s *Service) FetchCheckins(ctx context.Context) ([]models.CheckinRecord, error) {
	begin := time.Now()
	html, err := s.fetch(ctx, models.KindCheckins)
	if err != nil {
		s.metrics.ObserveExtraction(models.KindCheckins, time.Since(begin), 0, err)
		return nil, err
	}
	records, err := s.ParseCheckins(html)
	s.metrics.ObserveExtraction(models.KindCheckins, time.Since(begin), len(records), err)
	if err != nil {
		return nil, err
	}
	logger.Printf("Extracted %d check-ins in %s", len(records), time.Since(begin).Round(time.Millisecond))
	return records, nil
}

// FetchTaps downloads the tap-list page and extracts all slots.
func (s *Service) FetchTaps(ctx context.Context) ([]models.TapRecord, error) {
	begin := time.Now()
	html, err := s.fetch(ctx, models.KindTaps)
	if err != nil {
		s.metrics.ObserveExtraction(models.KindTaps, time.Since(begin), 0, err)
		return nil, err
	}
	taps, err := s.ParseTaps(html)
	s.metrics.ObserveExtraction(models.KindTaps, time.Since(begin), len(taps), err)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveTaps(taps)
	logger.Printf("Extracted %d tap slots in %s", len(taps), time.Since(begin).Round(time.Millisecond))
	return taps, nil
}

// FetchAll runs both pipelines concurrently. Either failing fails the run.
func (s *Service) FetchAll(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := s.FetchCheckins(ctx)
		snap.Checkins = records
		return err
	})
	g.Go(func() error {
		taps, err := s.FetchTaps(ctx)
		snap.Taps = taps
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// ParseCheckins extracts check-ins from already fetched HTML.
func (s *Service) ParseCheckins(html string) ([]models.CheckinRecord, error) {
	records, err := s.checkins.Parse(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse check-ins: %w", err)
	}
	return records, nil
}

// ParseTaps extracts the tap list from already fetched HTML.
func (s *Service) ParseTaps(html string) ([]models.TapRecord, error) {
	taps, err := s.taps.Parse(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tap list: %w", err)
	}
	return taps, nil
}

// Parse dispatches html to the extractor for kind.
func (s *Service) Parse(kind models.Kind, html string) (any, error) {
	switch kind {
	case models.KindCheckins:
		return s.ParseCheckins(html)
	case models.KindTaps:
		return s.ParseTaps(html)
	}
	return nil, fmt.Errorf("unknown page kind %q", kind)
}

func (s *Service) fetch(ctx context.Context, kind models.Kind) (string, error) {
	url, err := s.site.URLFor(kind)
	if err != nil {
		return "", err
	}
	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		logger.Printf("Fetching %s from %s failed: %v", kind, url, err)
		return "", fmt.Errorf("failed to fetch %s: %w", kind, err)
	}
	return html, nil
}
