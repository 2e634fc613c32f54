package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/accounthub/internal/account"
	"github.com/geocoder89/accounthub/internal/auth"
	"github.com/geocoder89/accounthub/internal/config"
	"github.com/geocoder89/accounthub/internal/http/handlers"
	"github.com/geocoder89/accounthub/internal/http/middlewares"
	"github.com/geocoder89/accounthub/internal/observability"
	"github.com/geocoder89/accounthub/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter wires repositories, the account service and all HTTP plumbing.
// counter may be nil; rate limiting then falls back to an in-process window.
func NewRouter(
	log *slog.Logger,
	pool *pgxpool.Pool,
	cfg config.Config,
	prom *observability.Prom,
	counter middlewares.WindowCounter,
) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(otelgin.Middleware("accounthub"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// wire up the account stack
	usersRepo := postgres.NewUsersRepo(pool, prom)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	svc := account.NewService(usersRepo, tokens)

	usersHandler := handlers.NewUsersHandler(svc, prom)
	authMW := middlewares.NewAuthMiddleware(tokens)

	if counter == nil {
		counter = middlewares.NewMemoryCounter()
	}
	credLimiter := middlewares.NewRateLimiter(counter, 20, time.Minute)

	api := r.Group("/api")
	api.Use(middlewares.RequireJSON())
	api.Use(middlewares.MaxBodyBytes(1 << 20))

	api.POST("/user/register", credLimiter.Middleware(middlewares.KeyByIP), usersHandler.Register)
	api.POST("/user/login", credLimiter.Middleware(middlewares.KeyByIP), usersHandler.Login)
	api.GET("/user/me", authMW.RequireAuth(), usersHandler.Me)
	api.PUT("/user/me", authMW.RequireAuth(), usersHandler.UpdateMe)
	api.GET("/user", usersHandler.List)

	return r
}
