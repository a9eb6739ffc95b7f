package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/movie-rental-api/internal/config"
	"github.com/iliyamo/movie-rental-api/internal/database"
	"github.com/iliyamo/movie-rental-api/internal/handler"
	"github.com/iliyamo/movie-rental-api/internal/middleware"
	"github.com/iliyamo/movie-rental-api/internal/queue"
	"github.com/iliyamo/movie-rental-api/internal/repository"
	"github.com/iliyamo/movie-rental-api/internal/router"
	"github.com/iliyamo/movie-rental-api/internal/service"
	"github.com/iliyamo/movie-rental-api/internal/utils"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	setupLogger(log, cfg)

	tokens, err := utils.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.WithError(err).Fatal("token service")
	}

	db, err := database.Open(cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer db.Close()
	if cfg.DBMigrate {
		if err := database.Migrate(db); err != nil {
			log.WithError(err).Fatal("migrate database")
		}
	}

	var events queue.Publisher = queue.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		events = queue.NewAMQPPublisher(cfg.RabbitMQURL, cfg.EventsQueue)
		log.WithField("queue", cfg.EventsQueue).Info("publishing catalog events")
	}

	catalog := service.NewCatalog(repository.NewGenreRepo(db), repository.NewMovieRepo(db), events, log)
	accounts := service.NewAccounts(repository.NewUserRepo(db), tokens, cfg.BcryptCost)
	metrics := middleware.NewMetrics()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(metrics.Instrument())
	// Recover sits inside the logger and metrics so a panic is still
	// recorded as a 500.
	e.Use(echomw.Recover())
	// Identify resolves the caller before the limiter keys its bucket.
	e.Use(middleware.Identify(tokens))
	if cfg.Redis.Enabled && cfg.RateLimit.Enabled {
		rdb, err := config.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			log.WithError(err).Warn("rate limiting disabled")
		} else {
			defer rdb.Close()
			e.Use(middleware.RateLimit(cfg.RateLimit, rdb, log))
		}
	}

	router.RegisterRoutes(e, db, metrics)
	router.RegisterAuth(e, handler.NewAuthHandler(accounts, log), tokens)
	router.RegisterCustomers(e, handler.NewCustomerHandler(repository.NewCustomerRepo(db), log))
	router.RegisterCatalog(e, handler.NewGenreHandler(catalog, log), handler.NewMovieHandler(catalog, log), tokens)

	addr := ":" + cfg.Port
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}

func setupLogger(log *logrus.Logger, cfg config.Config) {
	if cfg.Env == "prod" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
}
