package wire

import (
	"net/http"
	"strings"

	"planetarium-booking/internal/adaptor"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/dto/response"
	"planetarium-booking/internal/event"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/middleware"
	"planetarium-booking/pkg/redisx"
	"planetarium-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router. rdb may be nil, in which
// case caching and rate limiting are off.
func Wiring(repo *repository.Repository, rdb *redis.Client, publisher event.Publisher, config *utils.Config, logger *zap.Logger) *App {
	cache := redisx.NewCache(rdb, config.Redis.CacheTTL)
	service := usecase.NewService(repo, cache, publisher, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	var limiter middleware.Limiter
	if rdb != nil && config.RateLimit.Enabled {
		limiter = redisx.NewSlidingWindowLimiter(rdb, "reservations", config.RateLimit.Requests, config.RateLimit.Window)
	}

	router := setupRouter(handler, repo, limiter, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	limiter middleware.Limiter,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.App.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Retry-After", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})
	r.Handle("/metrics", promhttp.Handler())
	mountMedia(r, config.App.MediaPath)

	auth := middleware.AuthSession(repo.AuthSession, repo.User, logger)
	admin := middleware.Admin(logger)

	wireAuth(r, handler.Auth, auth)
	wireUser(r, handler.User, auth)

	r.Route("/api/planetarium", func(r chi.Router) {
		r.Use(auth)

		wireTheme(r, handler.Theme, admin)
		wireShow(r, handler.Show, admin)
		wireDome(r, handler.Dome, admin)
		wireSession(r, handler.Session, admin)
		wireReservation(r, handler.Reservation, limiter, logger)
	})

	return r
}

// mountMedia serves uploaded files under /media/.
func mountMedia(r chi.Router, root string) {
	if root == "" {
		return
	}
	prefix := strings.TrimSuffix(response.MediaURLPrefix, "/")
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(root)))
	r.Get(prefix+"/*", fs.ServeHTTP)
}
