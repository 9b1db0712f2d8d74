package config

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type ctxKey string

const userIDKey ctxKey = "log_user_id"

var Logger = logrus.New()

func Init() {
	s := Current()

	Logger.SetOutput(os.Stdout)
	if s.IsLocal() {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		Logger.WithError(err).Warnf("Unknown log level %q, falling back to info", s.LogLevel)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)
}

// WithUserID tags ctx so that WithContext adds a user_id field.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(Logger)
	if ctx == nil {
		return entry
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	if userID, ok := ctx.Value(userIDKey).(string); ok && userID != "" {
		entry = entry.WithField("user_id", userID)
	}
	return entry
}
