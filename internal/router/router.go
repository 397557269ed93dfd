package router

import (
	"encoding/json"
	"net/http"

	_ "medistock/docs" // registra el documento OpenAPI para /swagger
	"medistock/internal/adapters/capabilities/roles"
	"medistock/internal/domain/dashboard"
	"medistock/internal/domain/doctors"
	"medistock/internal/domain/ledger"
	"medistock/internal/domain/products"
	"medistock/internal/domain/suggestions"
	"medistock/internal/metrics"
	"medistock/internal/middleware"
	"medistock/internal/platform/logger"
	"medistock/internal/ports/auth"
	"medistock/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Backend Backend
	Logger  logger.Logger

	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Resolver     *roles.Resolver   // nil = roles.NewResolver()
	Suggester    suggestions.Suggester

	// Opcional: si viene, se exponen métricas en /metrics.
	Registry    *prometheus.Registry
	RateLimiter *middleware.RateLimiter
	CORSOrigins []string
}

// App es el router armado más los servicios que el proceso necesita fuera de HTTP.
type App struct {
	Handler  http.Handler
	Services *Services
	Metrics  *metrics.Metrics
}

func New(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = roles.NewResolver()
	}

	var m *metrics.Metrics
	var ledgerOpts []ledger.Option
	if opts.Registry != nil {
		opts.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(opts.Registry)
		ledgerOpts = append(ledgerOpts, ledger.WithObserver(m))
	}

	svcs := NewServices(opts.Backend, log, opts.Suggester, ledgerOpts...)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLog(log))
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   orDefault(opts.CORSOrigins, []string{"*"}),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Debug-User-ID", "X-Debug-Role"},
		ExposedHeaders:   []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	need := func(f capabilities.Feature) func(http.Handler) http.Handler {
		return middleware.RequireFeature(resolver, f)
	}
	// Las escrituras consumen rate limit; las lecturas no.
	write := func(f capabilities.Feature) func(http.Handler) http.Handler {
		gate := need(f)
		if opts.RateLimiter == nil {
			return gate
		}
		return func(next http.Handler) http.Handler {
			return gate(opts.RateLimiter.Limit(next))
		}
	}

	r.With(need(capabilities.FeatureCatalogRead)).Post("/auth/login", loginHandler(resolver))

	doctors.RegisterRoutes(r, svcs.Doctors, need(capabilities.FeatureCatalogRead), write(capabilities.FeatureCatalogWrite))
	products.RegisterRoutes(r, svcs.Products, need(capabilities.FeatureCatalogRead), write(capabilities.FeatureCatalogWrite))
	ledger.RegisterRoutes(r, svcs.Ledger, need(capabilities.FeatureLedgerRead), write(capabilities.FeatureLedgerWrite))
	suggestions.RegisterRoutes(r, svcs.Suggestions, write(capabilities.FeatureSuggestionsUse))
	dashboard.RegisterRoutes(r, svcs.Dashboard, need(capabilities.FeatureLedgerRead))

	return &App{Handler: r, Services: svcs, Metrics: m}
}

type loginResponse struct {
	Username string   `json:"username"`
	Role     string   `json:"role"`
	Features []string `json:"features"`
}

// loginHandler godoc
// @Summary Validar credenciales
// @Description Devuelve el usuario autenticado (Basic auth) con su rol y features.
// @Tags auth
// @Produce json
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "unauthorized"
// @Router /auth/login [post]
func loginHandler(resolver *roles.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		features := resolver.Features(claims.Role)
		out := loginResponse{
			Username: claims.UserID,
			Role:     string(claims.Role),
			Features: make([]string, 0, len(features)),
		}
		for _, f := range features {
			out.Features = append(out.Features, string(f))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
