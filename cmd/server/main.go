package main

import (
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/filmstore/sakila-api/internal/config"
	"github.com/filmstore/sakila-api/internal/database"
	"github.com/filmstore/sakila-api/internal/handler"
	"github.com/filmstore/sakila-api/internal/logger"
	"github.com/filmstore/sakila-api/internal/queue"
	"github.com/filmstore/sakila-api/internal/repository"
	"github.com/filmstore/sakila-api/internal/router"
	"github.com/filmstore/sakila-api/internal/service/queue_publisher"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("configuration failed")
	}
	log := logger.New(cfg.Log.Level, cfg.Env)

	db, err := database.Open(cfg.DB.User, cfg.DB.Pass, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	locations := repository.NewLocationRepo(db)
	customers := repository.NewCustomerRepo(db, locations)
	films := repository.NewFilmRepo(db)
	actors := repository.NewActorRepo(db)

	var events handler.EventPublisher
	if cfg.AMQP.URL != "" {
		events = queue_publisher.New(cfg.AMQP.URL, log)
		go func() {
			_ = queue.StartCustomerConsumer(cfg.AMQP.URL, log)
		}()
	} else {
		log.Info().Msg("no broker configured, customer events disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(log)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Msg("request")
			return nil
		},
	}))

	router.RegisterRoutes(e,
		handler.NewFilmHandler(films, log),
		handler.NewActorHandler(actors, log),
		handler.NewCustomerHandler(customers, events, log),
	)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
