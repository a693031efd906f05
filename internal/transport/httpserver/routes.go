package httpserver

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"chai-app-go/internal/config"
	"chai-app-go/internal/transport/httpserver/handler/api"
	"chai-app-go/internal/transport/httpserver/handler/pages"
	"chai-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/cors"
)

func NewRouter(cfg config.Config, site *pages.Handlers, apiHandlers *api.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestLogger(&chimw.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(log.Slog().Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.NotFound(site.NotFound)

	r.Get("/", site.Home)
	r.Get("/about/", site.About)
	r.Get("/contact/", site.Contact)

	r.Route("/chai", func(r chi.Router) {
		r.Get("/", site.AllChai)
		r.Get("/{chaiID:[0-9]+}/", site.ChaiDetail)
		r.Get("/chai_store/", site.ChaiStores)
	})

	if cfg.Media.Backend == config.MediaBackendLocal {
		prefix := mediaPrefix(cfg.Media.URL)
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Media.Root))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
		}).Handler)
		r.Use(httprate.Limit(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Window,
			httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
		))
		r.NotFound(apiHandlers.NotFound)

		r.Get("/health", apiHandlers.Health)

		r.Get("/varieties", apiHandlers.ListVarieties)
		r.Post("/varieties", apiHandlers.CreateVariety)
		r.Get("/varieties/{id}", apiHandlers.GetVariety)
		r.Put("/varieties/{id}", apiHandlers.UpdateVariety)
		r.Delete("/varieties/{id}", apiHandlers.DeleteVariety)

		r.Get("/varieties/{id}/reviews", apiHandlers.ListReviews)
		r.Post("/varieties/{id}/reviews", apiHandlers.CreateReview)
		r.Delete("/reviews/{id}", apiHandlers.DeleteReview)

		r.Put("/varieties/{id}/certificate", apiHandlers.IssueCertificate)
		r.Delete("/varieties/{id}/certificate", apiHandlers.RevokeCertificate)

		r.Get("/stores", apiHandlers.ListStores)
		r.Post("/stores", apiHandlers.CreateStore)
		r.Get("/stores/{id}", apiHandlers.GetStore)
		r.Delete("/stores/{id}", apiHandlers.DeleteStore)
		r.Put("/stores/{id}/varieties/{variety_id}", apiHandlers.AddStoreVariety)
		r.Delete("/stores/{id}/varieties/{variety_id}", apiHandlers.RemoveStoreVariety)

		r.Post("/users", apiHandlers.CreateUser)
		r.Get("/users/{id}", apiHandlers.GetUser)
		r.Delete("/users/{id}", apiHandlers.DeleteUser)
	})

	return r
}

func mediaPrefix(url string) string {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, "/") {
		url = "/media/"
	}
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return url
}
