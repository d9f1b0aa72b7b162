package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"venuehub/internal/config"
	"venuehub/internal/database"
	"venuehub/internal/domain/payment"
	"venuehub/internal/pkg/events"
	"venuehub/internal/pkg/logger"
	"venuehub/internal/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)
	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database connect")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("database migrate")
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		log.Warn("redis not configured or unreachable: rate limiting and listing cache disabled")
	} else {
		defer rdb.Close()
	}

	var pub events.Publisher = events.Nop{}
	if cfg.Events.RabbitURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.Events.RabbitURL, cfg.Events.Exchange)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable: domain events disabled")
		} else {
			pub = amqpPub
		}
	}
	defer pub.Close()

	var mail mailer.Mailer = mailer.NewConsoleMailer(log)
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	gateway := payment.NewRazorpayGateway(cfg.Payment.KeyID, cfg.Payment.KeySecret)
	r := newRouter(cfg, db, rdb, pub, mail, gateway, log)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("http server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("http server shutdown")
	}
	log.Info("http server stopped")
}
