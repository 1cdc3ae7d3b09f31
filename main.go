package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/siptrack/siptrack/backend/go-services/handlers"
	"github.com/siptrack/siptrack/backend/go-services/internal/config"
	"github.com/siptrack/siptrack/backend/go-services/internal/database"
	"github.com/siptrack/siptrack/backend/go-services/internal/oidc"
	"github.com/siptrack/siptrack/backend/go-services/internal/plans"
	"github.com/siptrack/siptrack/backend/go-services/internal/profiles"
	"github.com/siptrack/siptrack/backend/go-services/internal/tokens"
	"github.com/siptrack/siptrack/backend/go-services/pkg/logger"
	"github.com/siptrack/siptrack/backend/go-services/pkg/metrics"
	"github.com/siptrack/siptrack/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	// the frontend consumes amounts as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: db=%v jwt_secret_set=%v oidc=%v redis=%v",
		cfg.Database.DSN != "", cfg.JWT.Secret != "", cfg.OIDC.IssuerURL != "", cfg.Redis.Host != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery + request ids + metrics
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(metrics.GinMiddleware())

	// Connect to Redis early so the rate-limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional rate limiter, installed after auth on the protected routes so
	// it keys on the authenticated subject rather than the client IP
	var limiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			limiter = middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			limiter = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the SIP Tracker API"})
	})

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Connect to Postgres with retry/backoff to tolerate startup races
	ctx := context.Background()
	const maxAttempts = 5
	backoff := time.Second
	var db *sql.DB
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err = database.ConnectPostgres(ctx, cfg.Database.DSN, cfg.Database.Timeout)
		if err == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to Postgres: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if err != nil {
		logger.Fatalf("could not connect to Postgres after %d attempts: %v", maxAttempts, err)
	}
	defer db.Close()

	profileSvc := profiles.NewService(profiles.NewPostgresRepository(db))
	planSvc := plans.NewService(plans.NewPostgresRepository(db))

	// Token verifier: shared-secret HS256 when JWT_SECRET is set, otherwise
	// OIDC discovery when an issuer is configured.
	var verifier middleware.Verifier
	if cfg.JWT.Secret != "" {
		verifier = tokens.NewHSVerifier(cfg.JWT.Secret)
	} else if cfg.OIDC.IssuerURL != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.OIDC.IssuerURL, cfg.OIDC.ClientID)
		if err != nil {
			logger.Fatalf("failed to initialize OIDC verifier: %v", err)
		}
		verifier = ver
	} else {
		logger.Fatalf("no token verifier configured: set JWT_SECRET or OIDC_ISSUER_URL")
	}

	// readiness endpoint — return 200 only when critical dependencies are available
	probes := map[string]handlers.ReadinessProbe{
		"database": db.PingContext,
	}
	if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
		probes["redis"] = func(ctx context.Context) error {
			if redisClient == nil {
				return fmt.Errorf("redis client not connected")
			}
			return redisClient.Ping(ctx).Err()
		}
	}
	r.GET("/ready", handlers.Readiness(cfg.Database.Timeout, startTime, probes))

	mw := []gin.HandlerFunc{middleware.AuthMiddleware(verifier)}
	if limiter != nil {
		mw = append(mw, limiter)
	}
	handlers.NewUserHandler(cfg, profileSvc).Register(r.Group("/"))
	handlers.NewSIPHandler(cfg, profileSvc, planSvc).Register(r.Group("/"), mw...)
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting SIP tracker service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
