package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	HeaderRequestID  = "X-Request-ID"
	CtxRequestIDKey  = "request_id"
	slowRequestAfter = time.Second
)

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(CtxRequestIDKey, rid)

		err := c.Next()

		dur := time.Since(start)
		status := c.Response().StatusCode()
		if err != nil {
			// the error middleware sits outside this one and has not written yet
			status, _, _ = normalizeError(err)
		}

		userID := "-"
		if id, ok := c.Locals(CtxUserIDKey).(uuid.UUID); ok {
			userID = id.String()
		}

		if m == nil || m.logger == nil {
			return err
		}

		m.logger.Printf(
			"[HTTP] access | rid=%s ip=%s method=%s path=%s status=%d latency=%s user_id=%s req_bytes=%d resp_bytes=%d ua=%q",
			rid, c.IP(), c.Method(), c.OriginalURL(), status, dur, userID,
			c.Request().Header.ContentLength(), len(c.Response().Body()), c.Get("User-Agent"),
		)
		if dur > slowRequestAfter {
			m.logger.Printf("[HTTP] slow request | rid=%s path=%s latency=%s", rid, c.OriginalURL(), dur)
		}
		return err
	}
}

// RequestID returns the id assigned by the access log middleware.
func RequestID(c fiber.Ctx) string {
	rid, _ := c.Locals(CtxRequestIDKey).(string)
	return rid
}
