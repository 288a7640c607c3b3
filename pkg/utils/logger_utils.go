package utils

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SystemUserID tags log lines that are not attributable to an authenticated user.
const SystemUserID = "SYSTEM"

// LoggerOptions controls InitLogger.
type LoggerOptions struct {
	Level  string // debug, info, warn, error
	Format string // console or json
	Dir    string // empty disables file output
}

// levelFilterWriter forwards only events at or above min.
type levelFilterWriter struct {
	io.Writer
	min zerolog.Level
}

func (w levelFilterWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < w.min {
		return len(p), nil
	}
	return w.Writer.Write(p)
}

// InitLogger initializes the global zerolog logger and returns the base
// logger that request loggers are derived from. The global logger is tagged
// user_id=SYSTEM; the returned one carries no user_id yet.
// With a Dir set, every event also goes to <dir>/app.log and errors to <dir>/errors.log.
func InitLogger(opts LoggerOptions) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var console io.Writer = os.Stdout
	if opts.Format != "json" {
		console = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	writers := []io.Writer{console}
	if opts.Dir != "" {
		writers = append(writers,
			rotatingFile(filepath.Join(opts.Dir, "app.log")),
			levelFilterWriter{Writer: rotatingFile(filepath.Join(opts.Dir, "errors.log")), min: zerolog.ErrorLevel},
		)
	}

	base := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	log.Logger = base.With().Str("user_id", SystemUserID).Logger()
	zerolog.DefaultContextLogger = &log.Logger

	log.Info().Str("level", level.String()).Msg("Logger initialized")
	return base
}

func rotatingFile(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 30,
		MaxAge:     30, // days
		LocalTime:  true,
	}
}

// ContextWithLogger stores in ctx a child of base tagged with userID.
// zerolog cannot replace a field, so callers always derive from an untagged base.
func ContextWithLogger(ctx context.Context, base zerolog.Logger, userID string) context.Context {
	logger := base.With().Str("user_id", userID).Logger()
	return logger.WithContext(ctx)
}

// GinLogger is a middleware for Gin that logs requests using the request-scoped logger.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		logger := zerolog.Ctx(c.Request.Context())

		var event *zerolog.Event
		if statusCode >= 500 {
			event = logger.Error()
		} else if statusCode >= 400 {
			event = logger.Warn()
		} else {
			event = logger.Info()
		}

		event.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", statusCode).
			Str("client_ip", c.ClientIP()).
			Str("latency", latency.String()).
			Str("user_agent", c.Request.UserAgent()).
			Msg("Request processed")
	}
}

// LogError is a helper to log an error through the logger carried by ctx.
func LogError(ctx context.Context, err error, message string, fields ...map[string]interface{}) {
	if err == nil {
		return
	}
	event := zerolog.Ctx(ctx).Error().Err(err)
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(message)
}

// LogInfo is a helper to log an informational message.
func LogInfo(ctx context.Context, message string, fields ...map[string]interface{}) {
	event := zerolog.Ctx(ctx).Info()
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(message)
}

// LogDebug is a helper to log a debug message.
func LogDebug(ctx context.Context, message string, fields ...map[string]interface{}) {
	event := zerolog.Ctx(ctx).Debug()
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(message)
}
