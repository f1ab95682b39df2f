package app

import (
	"ShopScraper/internal/database"
	"ShopScraper/internal/models"
	"ShopScraper/internal/pager"
	"ShopScraper/internal/scraper"
	"ShopScraper/internal/scraper/ebay"
	"ShopScraper/pkg/config"
	"ShopScraper/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrEmptyQuery is returned when a search term is blank after trimming.
var ErrEmptyQuery = errors.New("search term is empty")

// App is the main application structure holding all dependencies.
type App struct {
	Config  *config.Config
	Repo    *database.DBRepository
	Scraper scraper.Scraper

	fetcher scraper.Fetcher
	// searchMu allows one fetch-extract-replace run at a time. Reads do not take it.
	searchMu sync.Mutex
}

// New opens the configured store and builds the eBay scraper.
func New(cfg *config.Config) (*App, error) {
	repo, err := database.InitDB(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	fetcher, err := scraper.NewFetcher(cfg.Scraper)
	if err != nil {
		repo.Close()
		return nil, err
	}

	ebayScraper, err := ebay.New(fetcher, cfg.Ebay)
	if err != nil {
		fetcher.Close()
		repo.Close()
		return nil, err
	}

	a := NewWithScraper(cfg, repo, ebayScraper)
	a.fetcher = fetcher
	return a, nil
}

// NewWithScraper assembles an App from already built parts.
func NewWithScraper(cfg *config.Config, repo *database.DBRepository, s scraper.Scraper) *App {
	return &App{Config: cfg, Repo: repo, Scraper: s}
}

// Close releases the fetcher and the database.
func (a *App) Close() error {
	if a.fetcher != nil {
		if err := a.fetcher.Close(); err != nil {
			log.Printf("WARN: closing fetcher: %v", err)
		}
	}
	return a.Repo.Close()
}

// PageSize is the number of listings per page.
func (a *App) PageSize() int {
	if a.Config.Pager.PageSize < 1 {
		return pager.DefaultPageSize
	}
	return a.Config.Pager.PageSize
}

// Search fetches the results for term, extracts the listings and replaces
// the stored batch with them. On any error the stored batch is left as it was.
func (a *App) Search(ctx context.Context, term string) (int, error) {
	term = utils.NormalizeQuery(term)
	if term == "" {
		return 0, ErrEmptyQuery
	}

	a.searchMu.Lock()
	defer a.searchMu.Unlock()

	log.Printf("--- Starting Search Task: %q ---", term)
	start := time.Now()

	listings, err := a.Scraper.Search(ctx, term)
	if err != nil {
		log.Printf("Search for %q failed, keeping previous results: %v", term, err)
		return 0, fmt.Errorf("search %q: %w", term, err)
	}

	log.Printf("Collected %d listings. Saving to database...", len(listings))
	if err := a.Repo.Replace(ctx, listings); err != nil {
		return 0, fmt.Errorf("store results for %q: %w", term, err)
	}

	log.Printf("--- Search Task Finished in %s ---", time.Since(start).Round(time.Millisecond))
	return len(listings), nil
}

// ListAll returns the stored batch in document order.
func (a *App) ListAll(ctx context.Context) ([]models.Listing, error) {
	return a.Repo.ListAll(ctx)
}

// View returns the page of the stored batch that state points at.
func (a *App) View(ctx context.Context, state pager.State) (models.PageView, error) {
	_, view, err := a.navigate(ctx, state, func(s pager.State, total, size int) pager.State { return s })
	return view, err
}

// Prev moves state one page back and returns the new page.
func (a *App) Prev(ctx context.Context, state pager.State) (pager.State, models.PageView, error) {
	return a.navigate(ctx, state, pager.State.Prev)
}

// Next moves state one page forward and returns the new page.
func (a *App) Next(ctx context.Context, state pager.State) (pager.State, models.PageView, error) {
	return a.navigate(ctx, state, pager.State.Next)
}

// Jump moves state to page n, clamped into range.
func (a *App) Jump(ctx context.Context, state pager.State, n int) (pager.State, models.PageView, error) {
	return a.navigate(ctx, state, func(s pager.State, total, size int) pager.State {
		return s.Jump(n, total, size)
	})
}

// navigate loads the batch once so the move and the rendered page agree on its size.
func (a *App) navigate(ctx context.Context, state pager.State, move func(pager.State, int, int) pager.State) (pager.State, models.PageView, error) {
	listings, err := a.Repo.ListAll(ctx)
	if err != nil {
		return state, models.PageView{}, err
	}

	size := a.PageSize()
	next := move(state, len(listings), size)
	p := next.Current(len(listings), size)

	view := models.PageView{
		Listings:   append([]models.Listing{}, listings[p.Start:p.End]...),
		PageNumber: p.Number,
		TotalPages: p.TotalPages,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
	}
	return pager.State{Page: p.Number}, view, nil
}
