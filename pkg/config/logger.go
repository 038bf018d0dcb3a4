package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a zap logger from the configured level. Local env gets
// the development encoder, everything else the production one.
func NewLogger(app AppConfig, lg LoggerConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(lg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", lg.Level, err)
	}

	var zc zap.Config
	if app.Env == "local" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
