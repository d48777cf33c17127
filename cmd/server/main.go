package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/iliyamo/glassview/internal/config"
	"github.com/iliyamo/glassview/internal/database"
	"github.com/iliyamo/glassview/internal/handler"
	"github.com/iliyamo/glassview/internal/metrics"
	"github.com/iliyamo/glassview/internal/middleware"
	"github.com/iliyamo/glassview/internal/queue"
	"github.com/iliyamo/glassview/internal/repository"
	"github.com/iliyamo/glassview/internal/router"
	"github.com/iliyamo/glassview/internal/service"
	"github.com/iliyamo/glassview/internal/utils"
)

func setupLogger(env, level string) *logrus.Logger {
	logger := logrus.New()
	if env == "dev" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func main() {
	_ = godotenv.Load() // a missing .env is fine; real env wins anyway
	cfg := config.Load()
	log := setupLogger(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Relational store
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.WithError(err).Fatal("mysql: connect failed")
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		log.WithError(err).Fatal("mysql: migrations failed")
	}

	// Document store
	mongoClient, mongoDB, err := database.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.WithError(err).Fatal("mongodb: connect failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	if err := repository.EnsureMongoIndexes(ctx, mongoDB); err != nil {
		log.WithError(err).Warn("mongodb: index creation failed")
	}

	// Redis is optional: without it rate limiting and the read cache are off.
	var rdb *redis.Client
	if c, err := config.NewRedisClient(config.LoadRedisConfig()); err != nil {
		log.WithError(err).Warn("redis unavailable; rate limiting and caching disabled")
	} else {
		rdb = c
		defer rdb.Close()
	}

	users := repository.NewUserRepo(db)
	tokens := utils.NewTokenService(cfg.JWTSecret)
	guard := service.NewGuard(tokens, users)
	auth := service.NewAuthService(users, tokens, cfg.AccessTTL(), cfg.BcryptCost, log.WithField("component", "auth"))

	if cfg.HasAdmin() {
		if _, err := auth.BootstrapAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.WithError(err).Fatal("bootstrap admin failed")
		}
	}

	m := metrics.NewMetrics(prometheus.NewRegistry())

	var notifier service.Notifier
	if cfg.AMQPURL != "" {
		notifier = queue.NewPublisher(cfg.AMQPURL, log.WithField("component", "publisher"))
		go func() {
			err := queue.StartPartialWriteConsumer(ctx, cfg.AMQPURL, cfg.AuditLogDir, log.WithField("component", "audit-consumer"))
			if err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("audit consumer stopped")
			}
		}()
	} else {
		log.Info("RABBITMQ_URL not set; partial-write events disabled")
	}

	coord := service.NewCoordinator(service.Stores{
		RelationalInventory: repository.NewMySQLInventoryRepo(db),
		DocumentInventory:   repository.NewMongoInventoryRepo(mongoDB),
		RelationalLocations: repository.NewMySQLLocationRepo(db),
		DocumentLocations:   repository.NewMongoLocationRepo(mongoDB),
	}, log.WithField("component", "coordinator"), notifier, m)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler(log)
	router.UseCommon(e, log, m)

	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()
	limit := middleware.NewTokenBucket(rlCfg, rdb, log.WithField("component", "ratelimit"))

	ready := handler.NewReadyHandler(map[string]handler.Check{
		"mysql":   db.PingContext,
		"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) },
	})
	router.RegisterRoutes(e, ready, m.Handler())
	router.RegisterAuth(e, handler.NewAuthHandler(auth, cfg.CookieSecure), guard, limit)
	router.RegisterInventory(e, handler.NewInventoryHandler(coord), guard, limit)
	router.RegisterLocation(e, handler.NewLocationHandler(coord), guard, router.LocationMiddleware{
		Limit:      limit,
		Cache:      middleware.NewRedisCache(cacheCfg, rdb),
		Invalidate: middleware.InvalidateOnWrite(cacheCfg, rdb, log.WithField("component", "cache")),
	})

	addr := ":" + cfg.Port
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
}
