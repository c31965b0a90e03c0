package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Pranaysalavadhi/medic-connect-online/internal/config"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/session"
)

const (
	ContextUserID   = "userID"
	ContextUserName = "userName"
	ContextUserRole = "userRole"
	ContextSession  = "session"
)

// AuthMiddleware verifies the bearer token signature, then restores the
// server-side session behind it. A logged-out token is rejected even if
// the JWT itself has not expired yet.
func AuthMiddleware(cfg *config.Config, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {

			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		sess, err := sessions.Restore(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session_store_unavailable"})
			return
		}
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session_expired"})
			return
		}

		c.Set(ContextUserID, sess.UserID)
		c.Set(ContextUserName, sess.Name)
		c.Set(ContextUserRole, sess.Role)
		c.Set(ContextSession, sess)

		c.Next()
	}
}

// SessionFrom returns the restored session for the current request.
func SessionFrom(c *gin.Context) *session.Session {
	if v, ok := c.Get(ContextSession); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
