// Package logger wraps Uber's Zap logger behind a small structured-logging
// interface shared by every StyleLens component.
//
// Components depend on the Logger interface rather than on zap directly, which
// keeps them mockable in tests and lets the wiring layer decide encoding and
// destinations in one place.
package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface injected into all components.
//
//go:generate mockgen -source=logger.go -destination=mock_logger.go -package=logger
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Client is the concrete Zap-backed Logger.
type Client struct {
	// Zap is the underlying zap.Logger. Exposed for the rare case where a
	// caller needs zap-specific functionality; normal logging should go
	// through the wrapper methods.
	Zap *zap.Logger
}

// NewClient builds a configured Zap logger from Config.
//
// The logger emits JSON with ISO8601 timestamps, capitalized levels, caller
// information, and the process ID and service name as initial fields. Output
// goes to stderr. Initialization failure is fatal: a service without logging
// is not worth starting.
func NewClient(cfg Config) *Client {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	logLevel := zap.InfoLevel
	switch cfg.Level {
	case Debug:
		logLevel = zap.DebugLevel
	case Info:
		logLevel = zap.InfoLevel
	case Warning:
		logLevel = zap.WarnLevel
	case Error:
		logLevel = zap.ErrorLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(logLevel),
		Encoding:         "json",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	zl, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		log.Fatal(err)
	}

	return &Client{Zap: zl}
}

func (l *Client) convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	var zapFields []zap.Field
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}
	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			zapFields = append(zapFields, zap.Any(key, value))
		}
	}
	return zapFields
}

// Debug logs a debug-level message with an optional error and structured fields.
func (l *Client) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, l.convertToZapFields(err, fields...)...)
}

// Info logs an informational message with an optional error and structured fields.
//
// Example:
//
//	log.Info("analysis dispatched", nil, map[string]interface{}{
//	    "analysis_id": id,
//	    "objects":     len(detections),
//	})
func (l *Client) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, l.convertToZapFields(err, fields...)...)
}

// Warn logs a warning: something off, but the current operation can continue.
func (l *Client) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, l.convertToZapFields(err, fields...)...)
}

// Error logs a failure of the current operation.
func (l *Client) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, l.convertToZapFields(err, fields...)...)
}
