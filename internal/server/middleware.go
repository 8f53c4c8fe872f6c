package server

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smart-practice/backend/internal/identity"
	userdomain "github.com/smart-practice/backend/internal/user/domain"
	"go.uber.org/zap"
)

const (
	HeaderTelegramID = "X-Telegram-ID"
)

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if last := c.Errors.Last(); last != nil {
			fields = append(fields, zap.Error(last.Err))
		}
		if c.Writer.Status() >= 500 {
			log.Error("request", fields...)
			return
		}
		log.Info("request", fields...)
	}
}

// AuthRequired resolves the caller from the request credentials and stores
// the user on the request context for the handlers and services below.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID, err := identity.TelegramIDFromCredentials(
			c.GetHeader("Authorization"),
			c.GetHeader(HeaderTelegramID),
		)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		caller, err := s.userSvc.GetByTelegramID(c.Request.Context(), telegramID)
		if err != nil {
			if errors.Is(err, userdomain.ErrNotFound) {
				err = ErrUnauthorized
			}
			AbortWithError(c, err)
			return
		}

		c.Request = c.Request.WithContext(identity.WithUser(c.Request.Context(), caller))
		c.Next()
	}
}

// RequireRole gates a route to the given roles. Must run after AuthRequired.
func (s *Server) RequireRole(roles ...userdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := identity.Require(c.Request.Context())
		if err != nil {
			AbortWithError(c, err)
			return
		}
		for _, role := range roles {
			if caller.Role == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}
