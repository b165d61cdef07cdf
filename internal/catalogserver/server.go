// Package catalogserver exposes a loaded catalog over read-only HTTP so
// other front ends can fetch the same quizzes.
package catalogserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/quizcraft/internal/catalog"
	"github.com/abhisek/quizcraft/internal/quiz"
)

// Options configures the handler.
type Options struct {
	// CORSOrigins lists allowed browser origins. Empty disables CORS headers.
	CORSOrigins []string

	// Quiet drops the per-request access log.
	Quiet bool
}

// Summary is one row of GET /quizzes.
type Summary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Questions int    `json:"questions"`
	Results   int    `json:"results"`
	MaxScore  int    `json:"max_score"`
}

type quizDoc struct {
	ID string `json:"id"`
	quiz.Quiz
}

// NewHandler builds the router:
//
//	GET /quiz.json       the whole catalog document
//	GET /quizzes         summaries in catalog order
//	GET /quizzes/{id}    one quiz, 404 when unknown
//	GET /healthz
func NewHandler(c *catalog.Catalog, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	if !opts.Quiet {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/quiz.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, c)
	})
	r.Route("/quizzes", func(qr chi.Router) {
		qr.Get("/", listHandler(c))
		qr.Get("/{id}", getHandler(c))
	})
	return r
}

func listHandler(c *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]Summary, 0, c.Len())
		for _, q := range c.List() {
			out = append(out, Summary{
				ID:        q.ID,
				Title:     q.Title,
				Questions: len(q.Questions),
				Results:   len(q.Results),
				MaxScore:  q.MaxScore(),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getHandler(c *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		q, err := c.Get(id)
		if errors.Is(err, catalog.ErrNotFound) {
			writeErr(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, quizDoc{ID: id, Quiz: q})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Error: msg})
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
