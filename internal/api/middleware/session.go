package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"subtitle-whisper/internal/app/session"
)

const (
	// SessionCookie names the cookie carrying the session ID
	SessionCookie = "subgen_session"
	// SessionKey is the gin context key holding *session.Session
	SessionKey = "session"
)

// Session attaches the caller's session, creating one on first contact
func Session(store *session.Store, secure bool, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(SessionCookie)

		sess, created := store.GetOrCreate(id)
		if created {
			logger.Debug("session started",
				zap.String("session_id", sess.ID),
				zap.String("request_id", c.GetString(RequestIDKey)),
			)
		}
		if created || id != sess.ID {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session attached by Session
func CurrentSession(c *gin.Context) *session.Session {
	return c.MustGet(SessionKey).(*session.Session)
}
