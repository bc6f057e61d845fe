package log

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

func init() {
	logger.SetOutput(os.Stdout)

	if os.Getenv("GO_ENV") == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	if hook := NewSentryHook(os.Getenv("GO_ENV"), os.Getenv("COMMIT_HASH")); hook != nil {
		logger.AddHook(hook)
	}
}

// SetOutput changes the log destination, used by tests to capture output
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func WithFields(fields map[string]any) *logrus.Entry {
	return logger.WithFields(fields)
}

func WithContext(ctx context.Context) *logrus.Entry {
	return logger.WithContext(ctx)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

func Fatalf(format string, args ...any) {
	logger.Fatalf(format, args...)
}
