package server

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/dashboard/internal/auth/session"
	"github.com/smallbiznis/dashboard/internal/notify"
	obscontext "github.com/smallbiznis/dashboard/internal/observability/context"
	"go.uber.org/zap"
)

const contextClaimsKey = "session_claims"

// AuthRequired rejects requests without a valid session cookie.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		claims, err := s.sessions.Parse(token)
		if err != nil {
			s.log.Debug("session rejected", zap.Error(err))
			s.sessions.Clear(c)
			AbortWithError(c, err)
			return
		}

		ctx := obscontext.WithUserID(c.Request.Context(), claims.Subject)
		c.Request = c.Request.WithContext(ctx)
		c.Set("user_id", claims.Subject)
		c.Set(contextClaimsKey, claims)
		c.Next()
	}
}

// SignalRecorder collects the signals emitted by mutations on this request.
func SignalRecorder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _ := notify.WithRecorder(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func claimsFromContext(c *gin.Context) *session.Claims {
	value, ok := c.Get(contextClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*session.Claims)
	return claims
}

// LoginRateLimit throttles login attempts per client address. Limiter
// failures let the request through.
func (s *Server) LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := s.limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			s.log.Warn("login rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}
