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

	"github.com/iliyamo/event-hotel-booking/internal/config"
	"github.com/iliyamo/event-hotel-booking/internal/database"
	"github.com/iliyamo/event-hotel-booking/internal/handler"
	"github.com/iliyamo/event-hotel-booking/internal/logger"
	"github.com/iliyamo/event-hotel-booking/internal/middleware"
	"github.com/iliyamo/event-hotel-booking/internal/queue"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
	"github.com/iliyamo/event-hotel-booking/internal/router"
	"github.com/iliyamo/event-hotel-booking/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.WithError(err).Fatal("migrate schema")
		}
		log.Info("schema applied")
	}

	bookings := repository.NewBookingRepo(db)
	rooms := repository.NewRoomRepo(db)
	tickets := repository.NewTicketRepo(db)
	sessions := repository.NewSessionRepo(db)

	// A nil interface, not a nil *Publisher, disables events.
	var events service.EventPublisher
	if cfg.Queue.URL != "" {
		events = queue.NewPublisher(cfg.Queue.URL, cfg.Queue.Name)
		if cfg.Queue.ConsumerEnabled {
			consumer := queue.NewAuditConsumer(cfg.Queue.URL, cfg.Queue.Name, cfg.Queue.AuditLogPath, log)
			go func() {
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.WithError(err).Error("audit consumer stopped")
				}
			}()
		}
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		log.WithField("addr", cfg.Redis.Addr).Warn("redis unavailable, rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	svc := service.NewBookingService(bookings, rooms, tickets, events, log)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))

	router.RegisterRoutes(e, db)
	router.RegisterBooking(e,
		handler.NewBookingHandler(svc, cfg.RequestTimeout),
		middleware.SessionAuth(cfg.JWTSecret, sessions),
		middleware.NewTokenBucket(cfg.RateLimit, rdb, log),
	)

	go func() {
		addr := ":" + cfg.Port
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
