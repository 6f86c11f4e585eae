// Package registry scrapes vehicle data from the public Traficom lookup
// page with a headless browser. One browser session is reused across
// lookups; each lookup runs in its own tab which is closed on every exit
// path. Any internal failure returns an error the resolver treats as "try
// the fallback", never as something to surface to the user.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"

	"github.com/bimmerhuolto/backend/engine/domain"
)

// Input field candidates, tried in order. The registry has changed its
// markup before; the list starts with the current form and degrades to
// generic selectors.
var inputSelectors = []string{
	`input[name="rekisteritunnus"]`,
	`input[name="registrationNumber"]`,
	`#rekisterinumero`,
	`input[type="search"]`,
	`form input[type="text"]`,
}

// Results container candidates, same ordering idea.
var resultSelectors = []string{
	`.ajoneuvon-tiedot`,
	`.vehicle-details`,
	`#search-results table`,
	`.results table`,
}

// rowsJS collects label/value pairs from result tables and definition
// lists. Extraction from the pairs happens in Go (see ExtractFields) so it
// can be tested against fixtures.
const rowsJS = `(() => {
	const out = [];
	document.querySelectorAll('tr').forEach(tr => {
		const cells = tr.querySelectorAll('th,td');
		if (cells.length >= 2) {
			out.push({label: cells[0].innerText.trim(), value: cells[1].innerText.trim()});
		}
	});
	document.querySelectorAll('dl').forEach(dl => {
		const dts = dl.querySelectorAll('dt');
		const dds = dl.querySelectorAll('dd');
		for (let i = 0; i < Math.min(dts.length, dds.length); i++) {
			out.push({label: dts[i].innerText.trim(), value: dds[i].innerText.trim()});
		}
	});
	return out;
})()`

// Config for the scraper.
type Config struct {
	// URL of the public lookup page.
	URL string
	// Timeout bounds one full lookup (navigation to extraction).
	Timeout time.Duration
	// MinInterval throttles consecutive lookups against the registry.
	MinInterval time.Duration
	// Headless controls browser visibility; disable for local debugging.
	Headless bool
}

// DefaultConfig returns the production scraper configuration.
func DefaultConfig() Config {
	return Config{
		URL:         "https://liikenneasiat.traficom.fi/ajoneuvon-tiedot",
		Timeout:     30 * time.Second,
		MinInterval: 2 * time.Second,
		Headless:    true,
	}
}

// Scraper drives the shared browser session.
type Scraper struct {
	cfg        Config
	browserCtx context.Context
	cancels    []context.CancelFunc
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Start launches the headless browser. Failure here is fatal to startup;
// every later failure is soft.
func Start(ctx context.Context, cfg Config, logger *slog.Logger) (*Scraper, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.URL == "" {
		cfg = DefaultConfig()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.NoSandbox,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Force the browser process up now so a missing Chrome aborts startup
	// instead of failing the first lookup.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	return &Scraper{
		cfg:        cfg,
		browserCtx: browserCtx,
		cancels:    []context.CancelFunc{cancelBrowser, cancelAlloc},
		limiter:    rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
		logger:     logger,
	}, nil
}

// Close shuts the browser session down.
func (s *Scraper) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

// Scrape looks up one plate. It opens a tab, fills the search form, waits
// for results, and extracts label/value rows. A result missing make or
// model counts as a failure.
func (s *Scraper) Scrape(ctx context.Context, plate string) (*domain.VehicleFields, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tabCtx, closeTab := chromedp.NewContext(s.browserCtx)
	defer closeTab()
	tabCtx, cancel := context.WithTimeout(tabCtx, s.cfg.Timeout)
	defer cancel()

	if err := chromedp.Run(tabCtx, chromedp.Navigate(s.cfg.URL)); err != nil {
		return nil, fmt.Errorf("navigate registry: %w", err)
	}

	input, err := s.firstVisible(tabCtx, inputSelectors)
	if err != nil {
		return nil, fmt.Errorf("locate search input: %w", err)
	}

	if err := chromedp.Run(tabCtx,
		chromedp.SendKeys(input, plate, chromedp.ByQuery),
		chromedp.Submit(input, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("submit search: %w", err)
	}

	results, err := s.firstVisible(tabCtx, resultSelectors)
	if err != nil {
		return nil, fmt.Errorf("await results: %w", err)
	}
	s.logger.Debug("registry results visible", "plate", plate, "selector", results)

	var rows []LabelValue
	if err := chromedp.Run(tabCtx, chromedp.Evaluate(rowsJS, &rows)); err != nil {
		return nil, fmt.Errorf("extract rows: %w", err)
	}

	fields := ExtractFields(rows)
	if !fields.Complete() {
		return nil, fmt.Errorf("registry result incomplete for %s: make=%q model=%q",
			plate, fields.Make, fields.Model)
	}
	return fields, nil
}

// firstVisible tries selector candidates in order, giving each a short
// window, and returns the first that appears.
func (s *Scraper) firstVisible(ctx context.Context, candidates []string) (string, error) {
	for _, sel := range candidates {
		attempt, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := chromedp.Run(attempt, chromedp.WaitVisible(sel, chromedp.ByQuery))
		cancel()
		if err == nil {
			return sel, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("no candidate selector matched (%d tried)", len(candidates))
}
