package server

import (
	"ShopScraper/internal/app"
	"ShopScraper/internal/models"
	"ShopScraper/internal/pager"
	"ShopScraper/internal/scraper"
	"ShopScraper/pkg/config"
	"ShopScraper/utils"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// Server renders the stored listings and keeps one pager.State per browser session.
type Server struct {
	app        *app.App
	cookieName string
	sessions   *sessionStore

	router *mux.Router
}

// New builds the router for a.
func New(a *app.App, cfg config.ServerConfig) *Server {
	s := &Server{
		app:        a,
		cookieName: cfg.SessionCookie,
		sessions:   newSessionStore(cfg.SessionTTL, cfg.MaxSessions),
		router:     mux.NewRouter(),
	}
	if s.cookieName == "" {
		s.cookieName = "shop_session"
	}

	s.router.HandleFunc("/", s.indexHandler).Methods("GET")
	s.router.HandleFunc("/search", s.searchHandler).Methods("POST")
	s.router.HandleFunc("/page/prev", s.prevHandler).Methods("POST")
	s.router.HandleFunc("/page/next", s.nextHandler).Methods("POST")
	s.router.HandleFunc("/page/jump", s.jumpHandler).Methods("POST")
	s.router.HandleFunc("/api/listings", s.listingsHandler).Methods("GET")
	s.router.HandleFunc("/api/view", s.viewHandler).Methods("GET")
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves a on cfg.Addr until the listener fails.
func Start(a *app.App, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           New(a, cfg).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	log.Printf("Listings API available at http://localhost%s/api/listings", cfg.Addr)
	return srv.ListenAndServe()
}

// state returns the session id from the request cookie and its page. Requests
// without a live session read page 1 and get no session until they change it.
func (s *Server) state(r *http.Request) (string, pager.State) {
	c, err := r.Cookie(s.cookieName)
	if err != nil {
		return "", pager.NewState()
	}
	st, _ := s.sessions.get(c.Value)
	return c.Value, st
}

// setState records st for the session, issuing a cookie when the session is new.
// It must run before anything is written to w.
func (s *Server) setState(w http.ResponseWriter, id string, st pager.State) string {
	key, issued := s.sessions.put(id, st)
	if issued {
		http.SetCookie(w, &http.Cookie{
			Name:     s.cookieName,
			Value:    key,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return key
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	_, st := s.state(r)
	view, err := s.app.View(r.Context(), st)
	if err != nil {
		log.Printf("ERROR: loading page view: %v", err)
		http.Error(w, "Failed to load listings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, view); err != nil {
		log.Printf("ERROR: rendering page: %v", err)
	}
}

func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := s.state(r)

	n, err := s.app.Search(r.Context(), r.FormValue("q"))
	if err != nil {
		var fe *scraper.FetchError
		var pe *scraper.ParseError
		switch {
		case errors.Is(err, app.ErrEmptyQuery):
			http.Error(w, "Search term is empty", http.StatusBadRequest)
		case errors.As(err, &fe), errors.As(err, &pe):
			http.Error(w, "Search failed: "+err.Error(), http.StatusBadGateway)
		default:
			log.Printf("ERROR: search: %v", err)
			http.Error(w, "Failed to store results", http.StatusInternalServerError)
		}
		return
	}

	id = s.setState(w, id, pager.NewState())
	log.Printf("Session %s: search stored %d listings", id, n)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) prevHandler(w http.ResponseWriter, r *http.Request) {
	s.move(w, r, func(st pager.State) (pager.State, models.PageView, error) {
		return s.app.Prev(r.Context(), st)
	})
}

func (s *Server) nextHandler(w http.ResponseWriter, r *http.Request) {
	s.move(w, r, func(st pager.State) (pager.State, models.PageView, error) {
		return s.app.Next(r.Context(), st)
	})
}

func (s *Server) jumpHandler(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.FormValue("page"))
	if err != nil {
		http.Error(w, "Invalid page number", http.StatusBadRequest)
		return
	}
	s.move(w, r, func(st pager.State) (pager.State, models.PageView, error) {
		return s.app.Jump(r.Context(), st, n)
	})
}

func (s *Server) move(w http.ResponseWriter, r *http.Request, action func(pager.State) (pager.State, models.PageView, error)) {
	id, st := s.state(r)
	next, _, err := action(st)
	if err != nil {
		log.Printf("ERROR: changing page: %v", err)
		http.Error(w, "Failed to load listings", http.StatusInternalServerError)
		return
	}
	s.setState(w, id, next)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) viewHandler(w http.ResponseWriter, r *http.Request) {
	_, st := s.state(r)
	view, err := s.app.View(r.Context(), st)
	if err != nil {
		http.Error(w, "Failed to load listings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, view)
}

// listingsHandler serves the stored batch page by page without touching any session.
func (s *Server) listingsHandler(w http.ResponseWriter, r *http.Request) {
	// 1. Parse pagination parameters
	queryParams := r.URL.Query()
	page, _ := strconv.Atoi(queryParams.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(queryParams.Get("limit"))
	if limit < 1 {
		limit = s.app.PageSize()
	}

	// 2. Get the page and the total it was cut from in one read
	listings, p, total, err := s.app.Repo.ListPage(r.Context(), page, limit)
	if err != nil {
		log.Printf("ERROR: listing page %d: %v", page, err)
		http.Error(w, "Failed to get listings", http.StatusInternalServerError)
		return
	}

	data := make([]models.APIListing, 0, len(listings))
	for i, l := range listings {
		low, high, _ := utils.PriceRange(l.Price)
		data = append(data, models.APIListing{
			Position:   p.Start + i + 1,
			Title:      l.Title,
			Price:      l.Price,
			PriceValue: low,
			PriceMax:   high,
			ImageURL:   l.ImageURL,
			Link:       l.Link,
		})
	}

	// 3. Build final response
	writeJSON(w, models.ListingsResponse{
		Data: data,
		Pagination: models.Pagination{
			TotalItems:  total,
			TotalPages:  p.TotalPages,
			CurrentPage: p.Number,
			HasPrev:     p.HasPrev,
			HasNext:     p.HasNext,
		},
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
