package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"connectfour/internal/service/session"
	"connectfour/pkg/httputil"
)

// Context keys set for handlers behind the auth middleware.
const (
	CtxUserID    = "user_id"
	CtxUsername  = "username"
	CtxSessionID = "session_id"
)

// AuthMiddleware validates the JWT from the cookie or Authorization
// header and the login session behind it.
func AuthMiddleware(authService *session.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			httputil.ClearAuthCookie(c.Writer)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxSessionID, claims.SessionID)
		c.Next()
	}
}
