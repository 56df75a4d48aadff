// Package web serves the worksheet and report pages and forwards user events
// to the section stores, the photo adapter, and the report aggregator.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/thsolutions/homesheet/internal/analysis"
	"github.com/thsolutions/homesheet/internal/domain"
	"github.com/thsolutions/homesheet/internal/photocache"
	"github.com/thsolutions/homesheet/internal/photos"
	"github.com/thsolutions/homesheet/internal/report"
	"github.com/thsolutions/homesheet/internal/reportdb"
	"github.com/thsolutions/homesheet/internal/worksheet"
)

// backendAPI is the subset of backend.Client the web layer hands to the
// worksheet stores, the photo adapter, and the photo proxy.
type backendAPI interface {
	SectionRecords(ctx context.Context, section domain.Section, inspectionID string) ([]domain.ItemRecord, error)
	UpsertSectionRecords(ctx context.Context, section domain.Section, records []domain.ItemRecord) error
	ItemPhotos(ctx context.Context, inspectionID, itemName string) ([]domain.Photo, error)
	UploadPhoto(ctx context.Context, inspectionID, itemName, filename string, file io.Reader) (domain.Photo, error)
	DeletePhoto(ctx context.Context, photoID int64) error
	PhotoFile(ctx context.Context, photoURL string) (io.ReadCloser, string, error)
}

// Deps carries everything a Server needs.
type Deps struct {
	Backend       backendAPI
	Reports       *report.Aggregator
	Snapshots     *reportdb.Store
	Summarizer    analysis.Summarizer
	PhotoCache    *photocache.Cache
	DebounceDelay time.Duration
}

type pageKey struct {
	section      domain.Section
	inspectionID string
}

// pageEntry tracks when a registered page was last requested so idle pages
// can be evicted.
type pageEntry struct {
	page     *worksheet.Page
	lastUsed time.Time
}

// pageIdleTTL is how long a worksheet page may sit unused before it is
// flushed and dropped from the registry.
const pageIdleTTL = 30 * time.Minute

type Server struct {
	deps      Deps
	templates embed.FS
	mux       *http.ServeMux
	tmplFuncs template.FuncMap
	logger    *slog.Logger
	pageTTL   time.Duration

	mu    sync.Mutex
	pages map[pageKey]*pageEntry
}

func NewServer(deps Deps, tmpl embed.FS, logger *slog.Logger) *Server {
	s := &Server{
		deps:      deps,
		templates: tmpl,
		mux:       http.NewServeMux(),
		logger:    logger,
		pageTTL:   pageIdleTTL,
		pages:     map[pageKey]*pageEntry{},
		tmplFuncs: template.FuncMap{
			"slug":       slug,
			"label":      fieldLabel,
			"pathEscape": url.PathEscape,
			"photoList":  newPhotoListView,
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /worksheets/{section}/{inspectionID}", s.handleWorksheet)
	s.mux.HandleFunc("POST /worksheets/{section}/{inspectionID}/items/{item}/checkbox", s.handleCheckbox)
	s.mux.HandleFunc("POST /worksheets/{section}/{inspectionID}/items/{item}/comment", s.handleComment)
	s.mux.HandleFunc("POST /worksheets/{section}/{inspectionID}/items/{item}/status", s.handleStatus)
	s.mux.HandleFunc("POST /worksheets/{section}/{inspectionID}/details", s.handleSaveDetails)
	s.mux.HandleFunc("POST /worksheets/{section}/{inspectionID}/items/{item}/photos", s.handleUploadPhotos)
	s.mux.HandleFunc("DELETE /worksheets/{section}/{inspectionID}/items/{item}/photos/{photoID}", s.handleDeletePhoto)
	s.mux.HandleFunc("GET /reports/{propertyID}/{inspectionID}", s.handleReport)
	s.mux.HandleFunc("POST /reports/{propertyID}/{inspectionID}/analyze", s.handleAnalyze)
	s.mux.HandleFunc("GET /reports/{propertyID}/{inspectionID}/analysis", s.handleGetAnalysis)
	s.mux.HandleFunc("GET /photos/{photoID}", s.handlePhotoProxy)
}

// page returns the live worksheet page for a (section, inspection) pair,
// creating and loading it on first access. A page that fails its initial load
// is not registered, so the next request retries.
func (s *Server) page(ctx context.Context, cfg domain.SectionConfig, inspectionID string) (*worksheet.Page, error) {
	key := pageKey{section: cfg.Section, inspectionID: inspectionID}

	s.mu.Lock()
	if e, ok := s.pages[key]; ok {
		e.lastUsed = time.Now()
		s.mu.Unlock()
		return e.page, nil
	}
	s.mu.Unlock()

	store := worksheet.NewStore(s.deps.Backend, inspectionID, cfg.Section, s.deps.DebounceDelay, s.logger)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}

	adapter := photos.NewAdapter(s.deps.Backend, inspectionID, s.logger)
	for _, name := range cfg.ItemNames() {
		if err := adapter.Fetch(ctx, name); err != nil {
			s.logger.Error("failed to fetch photos on page load",
				"inspection_id", inspectionID, "item", name, "error", err)
		}
	}

	p := &worksheet.Page{Config: cfg, Store: store, Photos: adapter}
	if cfg.DetailItem != "" {
		p.Detail = worksheet.NewDetailStore(store, cfg.DetailItem, s.logger)
	}

	s.mu.Lock()
	if existing, ok := s.pages[key]; ok {
		// Another request won the race; keep the registered page so debounce
		// state stays singular per pair.
		existing.lastUsed = time.Now()
		s.mu.Unlock()
		return existing.page, nil
	}
	s.pages[key] = &pageEntry{page: p, lastUsed: time.Now()}
	idle := s.evictIdleLocked()
	s.mu.Unlock()

	for _, old := range idle {
		old.Store.Flush()
	}
	return p, nil
}

// evictIdleLocked drops pages idle past the TTL from the registry and returns
// them so the caller can flush their pending writes outside the lock.
func (s *Server) evictIdleLocked() []*worksheet.Page {
	cutoff := time.Now().Add(-s.pageTTL)
	var idle []*worksheet.Page
	for key, e := range s.pages {
		if e.lastUsed.Before(cutoff) {
			idle = append(idle, e.page)
			delete(s.pages, key)
		}
	}
	return idle
}

// Flush forces every page's pending debounced persist to run. Call on
// shutdown so the last burst of edits is not lost with the process.
func (s *Server) Flush() {
	s.mu.Lock()
	pages := make([]*worksheet.Page, 0, len(s.pages))
	for _, e := range s.pages {
		pages = append(pages, e.page)
	}
	s.mu.Unlock()

	for _, p := range pages {
		p.Store.Flush()
	}
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline' https://unpkg.com; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data:; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w http.ResponseWriter, data any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, "base", data)
}

// renderPartial parses one partial file and executes its {{define}} block.
func (s *Server) renderPartial(w http.ResponseWriter, file, name string, data any) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, file)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, name, data)
}

// photoListView is the data a photo_list partial renders.
type photoListView struct {
	BasePath string
	ItemName string
	Photos   []domain.Photo
}

func newPhotoListView(basePath, itemName string, list []domain.Photo) photoListView {
	return photoListView{BasePath: basePath, ItemName: itemName, Photos: list}
}

// fieldLabel turns a snake_case form field name into a display label, e.g.
// "inspection_method" becomes "Inspection Method".
func fieldLabel(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// slug lowercases a value and collapses non-alphanumeric runs to dashes, for
// use in element IDs and CSS class names.
func slug(v any) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(toString(v)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case domain.Status:
		return string(t)
	case domain.Section:
		return string(t)
	default:
		return ""
	}
}
