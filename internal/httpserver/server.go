// internal/httpserver/server.go
//
// HTTP server wiring for the Hangman backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, timeouts, panic recovery, JSON, CORS).
//   - Public endpoints: "/", "/health", OpenAPI document.
//   - Game endpoints: mounted under /games (routes_games.go).
//
// Notes:
//   - Every response body is JSON, including 404/405 from the router itself.
//   - CORS allows a single configured origin; credentials are only advertised
//     for a concrete origin, never for "*".

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/apps/go-server/assets"
	"github.com/robalobadob/hangman/apps/go-server/internal/store"
	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

// Options tunes the middleware stack.
type Options struct {
	ClientOrigin   string        // CORS origin; "*" when empty
	RequestTimeout time.Duration // per-request deadline; 10s when zero
}

// Server bundles router, game store, per-game locks and the word source.
type Server struct {
	r     *chi.Mux
	store store.Store
	locks *store.Locks
	words words.Source
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, src words.Source, opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "*"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	s := &Server{r: chi.NewRouter(), store: st, locks: store.NewLocks(), words: src}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped zerolog logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(opts.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "hangman-go",
			"endpoints": []string{
				"/health", "POST /games", "GET /games", "GET /games/{id}",
				"POST /games/{id}", "DELETE /games/{id}", openAPIPath,
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get(openAPIPath, handleOpenAPI)

	s.mountGames(s.r)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one structured line per finished request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("reqId", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// ------------------------------- openapi -----------------------------------

const openAPIPath = "/hangman_api/swagger/swagger.json"

// handleOpenAPI serves the embedded OpenAPI document.
func handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := assets.OpenAPI()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("read openapi document")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "openapi_unavailable"})
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// ------------------------------- small util --------------------------------

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
