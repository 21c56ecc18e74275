package config

import (
	"go.uber.org/zap"
)

// setLogger builds the zap logger for the given environment. Development and
// local keep debug output, production uses the sampled json encoder.
func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "development":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		return cfg.Build()
	case "production":
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		return cfg.Build()
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		return cfg.Build()
	}
}
