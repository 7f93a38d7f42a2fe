package httputil

import (
	"errors"
	"net/http"
	"strings"

	"connectfour/internal/config"
)

const AuthCookieName = "auth_token"

// SetAuthCookie writes the JWT into an HttpOnly cookie. SameSite=None
// needs Secure, so development on plain http gets Lax instead.
func SetAuthCookie(w http.ResponseWriter, token string) {
	maxAge := config.AppConfig.JWTExpirationHours * 60 * 60
	isProduction := config.AppConfig.Environment == "production"

	cookie := &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isProduction,
	}
	if isProduction {
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, cookie)
}

func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// GetTokenFromRequest extracts the JWT from the auth cookie, falling
// back to the Authorization header for websocket upgrades and API
// clients.
func GetTokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		if strings.HasPrefix(authHeader, "Bearer ") {
			return strings.TrimPrefix(authHeader, "Bearer "), nil
		}
		return authHeader, nil
	}

	return "", errors.New("no auth token found in cookie or header")
}
