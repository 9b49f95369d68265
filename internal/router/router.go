package router

import (
	"net/http"

	_ "shelter-registry/docs" // registra el documento para /swagger/doc.json
	"shelter-registry/internal/domain/shelters"
	"shelter-registry/internal/middleware"
	"shelter-registry/internal/platform/logger"
	"shelter-registry/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Service *shelters.Service

	// Opcionales
	Metrics *metrics.Metrics // nil => sin /metrics
	Logger  logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.StaffContext)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	shelters.RegisterRoutes(r, opts.Service)

	return r
}
