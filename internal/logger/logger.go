// Package logger builds the application's structured zap logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production JSON logger, or a human-readable development
// logger outside production. The service name is attached as a standard field
// on every entry.
func New(service, env string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env != "production" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.Fields(
		zap.String("service", service),
		zap.String("env", env),
	))
	if err != nil {
		return nil, err
	}
	return l, nil
}
