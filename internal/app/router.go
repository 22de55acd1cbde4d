package app

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/etaxql/etaxql/internal/observability"
	"github.com/etaxql/etaxql/internal/platform/httpx"
	"github.com/etaxql/etaxql/internal/query"
	"github.com/etaxql/etaxql/web"
)

// DocumentCounter reports how many documents are being served.
type DocumentCounter interface {
	Len() int
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Documents      DocumentCounter
	GraphQLHandler *query.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with etaxql defaults.
func NewRouter(params RouterParams) http.Handler {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	if !InTestMode() {
		r.Use(chimw.Logger)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrNotFound, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondError(w, fmt.Errorf("%w: %s %s", httpx.ErrMethodNotAllowed, r.Method, r.URL.Path))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		documents := 0
		if params.Documents != nil {
			documents = params.Documents.Len()
		}
		if documents == 0 {
			httpx.RespondError(w, fmt.Errorf("%w: no documents loaded", httpx.ErrUnavailable))
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"status": "ok", "documents": documents})
	})

	if params.GraphQLHandler != nil {
		r.Route("/graphql", params.GraphQLHandler.MountRoutes)
	}
	if params.Metrics != nil && (params.Config == nil || params.Config.MetricsEnabled) {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		logger.Error("create static sub filesystem", slog.Any("error", err))
		return r
	}
	index, err := fs.ReadFile(staticFS, "index.html")
	if err != nil {
		logger.Error("read explorer page", slog.Any("error", err))
	} else {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("Cache-Control", "no-cache")
			_, _ = w.Write(index)
		})
	}
	fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
	r.Handle("/static/*", staticCacheHandler(fileServer))

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
// Explorer assets are cached for 1 hour in browser.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
