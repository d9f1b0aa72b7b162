package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"venuehub/internal/config"
	"venuehub/internal/database"
	"venuehub/internal/domain/booking"
	"venuehub/internal/domain/notification"
	"venuehub/internal/pkg/events"
	"venuehub/internal/pkg/logger"
	"venuehub/internal/pkg/mailer"
)

// One-shot reminder run for cron, equivalent to POST /api/v1/internal/reminders/run.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("db connect failed")
	}

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

	notifs := notification.NewService(notification.NewRepository(db), nil, log)
	svc := booking.NewService(booking.NewRepository(db), notifs, events.Nop{}, mail, cfg.Booking, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sent, err := svc.RunReminders(ctx)
	if err != nil {
		log.WithError(err).Fatal("reminder run failed")
	}
	log.WithField("sent", sent).Info("reminder run completed")
}
