package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/linkfeed/internal/common"
	"github.com/dmitrijs2005/linkfeed/internal/logging"
	"github.com/dmitrijs2005/linkfeed/internal/server/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
)

// requestLogger tags every request with an id, exposes a request-scoped
// logger to handlers and writes one access line when the request is done.
func (s *Server) requestLogger(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Header(requestIDHeader, id)

	l := s.logger.With("request_id", id)
	c.Set(loggerKey, l)

	start := time.Now()
	c.Next()

	l.Info(c.Request.Context(), "request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration", time.Since(start).String(),
	)
}

// sessionMiddleware derives the session from the Authorization header and
// stores it in the request context. It never rejects a request.
func (s *Server) sessionMiddleware(c *gin.Context) {
	sess, err := session.Derive(c.GetHeader(common.AuthorizationHeaderName), s.tokens)
	if err != nil && !errors.Is(err, common.ErrMissingToken) {
		loggerFrom(c).Debug(c.Request.Context(), "anonymous session", "reason", err.Error())
	}
	c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), sess))
	c.Next()
}

func (s *Server) recovery(c *gin.Context, recovered any) {
	writeError(c, fmt.Errorf("%w: panic: %v", common.ErrInternal, recovered))
}

func loggerFrom(c *gin.Context) logging.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(logging.Logger); ok {
			return l
		}
	}
	return logging.Nop()
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
