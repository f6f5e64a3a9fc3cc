package middleware

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"userapi/internal/logging"
)

// ErrorLocalKey is where handlers stash an internal error for the access log.
const ErrorLocalKey = "internal_error"

// Logger logs each HTTP request as one JSON line on stdout.
func Logger(loc *time.Location) fiber.Handler {
	return LoggerWithWriter(os.Stdout, loc)
}

// LoggerWithWriter logs each HTTP request to w with the fields
// request_id, method, path, status and latency (milliseconds). Internal
// errors recorded by handlers are added under "error".
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	log := logging.New(w, loc)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		entry := log.WithFields(logging.Fields{
			"request_id": RequestIDFromContext(c.UserContext()),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     statusOf(c, err),
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		})

		level := logrus.InfoLevel
		if internal, ok := c.Locals(ErrorLocalKey).(error); ok && internal != nil {
			entry = entry.WithError(internal)
			level = logrus.ErrorLevel
		}
		entry.Log(level, "http_request")

		return err
	}
}

// statusOf reports the status the client will see, including errors that
// have not yet been rendered by the app's ErrorHandler.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if fe, ok := err.(*fiber.Error); ok {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
