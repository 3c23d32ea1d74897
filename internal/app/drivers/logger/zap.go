package logger

import (
	"doctor-appointment-service/internal/app/config"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "doctor-appointment-service"

// NewZapLogger builds the JSON request logger. Production writes to the
// configured files and samples repeated entries; every other env logs to the
// console at full volume.
func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *zap.Logger {
	level, err := zapcore.ParseLevel(driverConfig.Logger.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "json",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	switch internalConfig.App.Env {
	case "production":
		cfg.OutputPaths = []string{driverConfig.Logger.OutputFileName}
		cfg.ErrorOutputPaths = []string{"stderr", driverConfig.Logger.OutputErrorFileName}
		cfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	case "development":
		cfg.Development = true
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		log.Fatalf("logger: cannot build %s logger: %v", internalConfig.App.Env, err)
	}
	return zapLogger.With(
		zap.String("service", serviceName),
		zap.String("env", internalConfig.App.Env),
		zap.String("version", internalConfig.App.Version),
	)
}
