package utils

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger sets up the global zerolog logger. Times are unix millis, the
// same unit as order timestamps.
func InitLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	// ConsoleWriter keeps the output readable on the till PC.
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	log.Info().Str("level", lvl.String()).Msg("Logger initialized")
}

const (
	// RequestIDHeader carries the id that ties a till request to its log line.
	RequestIDHeader = "X-Request-ID"

	logFieldsKey = "posLogFields"
)

// SetLogField attaches a field to the request's access log line, e.g. the
// order ref created by a checkout.
func SetLogField(c *gin.Context, key string, value interface{}) {
	fields, _ := c.Get(logFieldsKey)
	m, ok := fields.(map[string]interface{})
	if !ok {
		m = make(map[string]interface{})
		c.Set(logFieldsKey, m)
	}
	m[key] = value
}

// GinLogger logs one line per request with the fields the auth middleware and
// handlers attached (till user, order ref). 4xx lines are warnings, 5xx are errors.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event = event.Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Str("path", c.Request.URL.Path).
			Int("status_code", status).
			Dur("latency", time.Since(started)).
			Str("client_ip", c.ClientIP())
		if fields, ok := c.Get(logFieldsKey); ok {
			if m, ok := fields.(map[string]interface{}); ok {
				event = event.Fields(m)
			}
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.Msg("POS request")
	}
}

// LogError logs err with extra fields. A nil err is ignored.
func LogError(err error, message string, fields ...map[string]interface{}) {
	if err == nil {
		return
	}
	event := log.Error().Err(err)
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(message)
}

// LogWarn logs a recoverable problem, e.g. a collection that had to be reset.
func LogWarn(err error, message string, fields ...map[string]interface{}) {
	event := log.Warn()
	if err != nil {
		event = event.Err(err)
	}
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(message)
}

// LogInfo logs a till event, e.g. an order sent or a stock item saved.
func LogInfo(message string, fields ...map[string]interface{}) {
	event := log.Info()
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(message)
}

// LogDebug logs noise that is only useful at the till, like ignored items.
func LogDebug(message string, fields ...map[string]interface{}) {
	event := log.Debug()
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(message)
}
