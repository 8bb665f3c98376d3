package logging

import (
	"time"

	"github.com/arnold/boardly-api/internal/config"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger and, when a DSN is present, Sentry.
func Setup(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.SentryDSN == "" {
		return nil
	}
	return sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.Environment,
	})
}

// Flush waits for buffered Sentry events to be delivered.
func Flush() {
	sentry.Flush(2 * time.Second)
}

// LogError logs an error with structured context and reports it to Sentry.
func LogError(errorType string, err error, fields map[string]interface{}) {
	log := logrus.WithFields(logrus.Fields{
		"error_type": errorType,
		"error":      err.Error(),
	})
	for k, v := range fields {
		log = log.WithField(k, v)
	}
	log.Error("Error occurred")

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("error_type", errorType)
		for k, v := range fields {
			scope.SetExtra(k, v)
		}
		sentry.CaptureException(err)
	})
}

// LogEvent logs a domain event and leaves a Sentry breadcrumb.
func LogEvent(eventType string, fields map[string]interface{}) {
	log := logrus.WithField("event_type", eventType)
	for k, v := range fields {
		log = log.WithField(k, v)
	}
	log.Info("Event occurred")

	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Type:      "info",
		Category:  eventType,
		Data:      fields,
		Timestamp: time.Now(),
	})
}
