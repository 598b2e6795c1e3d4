package router

import (
	"net/http"

	_ "cat-lifecycle/docs"
	"cat-lifecycle/internal/httpapi"
	"cat-lifecycle/internal/middleware"
	"cat-lifecycle/internal/platform/logger"
	"cat-lifecycle/internal/platform/metrics"
	"cat-lifecycle/internal/ports/auth"
	"cat-lifecycle/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Store        *store.Store
	AuthVerifier auth.AuthVerifier // puede ser nil (backend memory)
	Logger       logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.InstrumentHandler)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	httpapi.RegisterRoutes(r, opts.Store, opts.Logger)

	return r
}
