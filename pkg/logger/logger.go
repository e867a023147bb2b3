package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with booking-domain helpers
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development, JSON for production
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithIntentID adds intent correlation to the logger context
func (l *Logger) WithIntentID(intentID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("intent_id", intentID)),
	}
}

// WithBookingID adds booking correlation to the logger context
func (l *Logger) WithBookingID(bookingID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("booking_id", bookingID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
	)
}

// Business logic logging methods

// LogHoldCreated logs when a booking intent is created
func (l *Logger) LogHoldCreated(ctx context.Context, intentID, playerID string, expiresAt time.Time) {
	l.Logger.InfoContext(ctx,
		"Hold Created",
		slog.String("intent_id", intentID),
		slog.String("player_id", playerID),
		slog.Time("expires_at", expiresAt),
	)
}

// LogBookingConfirmed logs when an intent is confirmed into a booking
func (l *Logger) LogBookingConfirmed(ctx context.Context, bookingID, intentID, playerID string) {
	l.Logger.InfoContext(ctx,
		"Booking Confirmed",
		slog.String("booking_id", bookingID),
		slog.String("intent_id", intentID),
		slog.String("player_id", playerID),
	)
}

// LogHoldCancelled logs an explicit intent cancellation
func (l *Logger) LogHoldCancelled(ctx context.Context, intentID, playerID string) {
	l.Logger.InfoContext(ctx,
		"Hold Cancelled",
		slog.String("intent_id", intentID),
		slog.String("player_id", playerID),
	)
}

// LogSweepRun logs the outcome of an expiry sweep pass
func (l *Logger) LogSweepRun(ctx context.Context, expired int, duration time.Duration) {
	l.Logger.InfoContext(ctx,
		"Expiry Sweep",
		slog.Int("expired", expired),
		slog.Duration("duration", duration),
	)
}

// ErrorWithContext logs an error message with correlation fields
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
