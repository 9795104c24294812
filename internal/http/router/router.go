package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	_ "github.com/rogerio-castellano/products-api/docs"
	"github.com/rogerio-castellano/products-api/internal/http/handlers"
	mw "github.com/rogerio-castellano/products-api/internal/http/middleware"
	rl "github.com/rogerio-castellano/products-api/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Options tunes the middleware chain. A nil Limiter disables rate limiting.
type Options struct {
	Logger             *slog.Logger
	CORSAllowedOrigins []string
	Limiter            *rl.Limiter
}

func NewRouter(s *handlers.Server, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.Logging(opts.Logger))
	r.Use(mw.Recover(opts.Logger))
	r.Use(mw.CORS(opts.CORSAllowedOrigins))

	r.Get("/health", s.HealthHandler)
	r.Get("/db/health", s.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/products", func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Middleware)
		}
		r.Post("/", s.CreateProductHandler)
		r.Get("/", s.GetProductsHandler)
		r.Get("/{id}", s.GetProductByIDHandler)
		r.Put("/{id}", s.UpdateProductHandler)
		r.Delete("/{id}", s.DeleteProductHandler)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		mw.WriteError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		mw.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}
