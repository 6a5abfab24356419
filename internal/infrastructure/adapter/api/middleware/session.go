package middleware

import (
	"errors"
	"strings"

	domainerr "github.com/amirhossein-jamali/payment-reconciler/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/session"
	"github.com/gin-gonic/gin"
)

const (
	SessionCookie    = "session_token"
	sessionUserIDKey = "session_user_id"
)

// Session resolves the caller's session token, if any. Unknown tokens are not
// rejected; handlers decide whether they need an authenticated caller.
func Session(store session.Store, log coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		userID, err := store.UserID(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(sessionUserIDKey, userID)
		case errors.Is(err, domainerr.ErrUnauthenticated):
		default:
			log.Warn("Session lookup failed", map[string]any{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
		}
		c.Next()
	}
}

// SessionUserID returns the authenticated caller resolved by Session
func SessionUserID(c *gin.Context) *uint64 {
	v, ok := c.Get(sessionUserIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(uint64)
	if !ok || id == 0 {
		return nil
	}
	return &id
}

func sessionToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}
