package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"connectfour/internal/config"
	"connectfour/internal/repository/postgres"
	"connectfour/internal/service/session"
	"connectfour/pkg/httputil"
	"connectfour/pkg/uid"
	"connectfour/pkg/useragent"
)

const oauthStateCookie = "oauth_state"
const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

type OAuthHandler struct {
	UserRepo    *postgres.UserRepo
	AuthService *session.AuthService
	OAuth       *config.OAuthConfig
}

func NewOAuthHandler(userRepo *postgres.UserRepo, authService *session.AuthService, oauth *config.OAuthConfig) *OAuthHandler {
	return &OAuthHandler{
		UserRepo:    userRepo,
		AuthService: authService,
		OAuth:       oauth,
	}
}

// GoogleLogin starts the OAuth flow with a random state nonce.
func (h *OAuthHandler) GoogleLogin(c *gin.Context) {
	state, err := uid.NewSessionID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.SetCookie(oauthStateCookie, state, int((10 * time.Minute).Seconds()), "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.OAuth.Google.AuthCodeURL(state))
}

// GoogleCallback exchanges the code, loads the Google profile and logs
// the user in, creating an account on first sight.
func (h *OAuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	token, err := h.OAuth.Google.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("oauth code exchange failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "OAuth exchange failed"})
		return
	}

	gUser, err := fetchGoogleUser(ctx, token.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch google profile")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch profile"})
		return
	}
	if !gUser.VerifiedEmail {
		c.JSON(http.StatusForbidden, gin.H{"error": "Google email not verified"})
		return
	}

	user, err := h.findOrCreateUser(gUser)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve oauth user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	jwtToken, err := h.AuthService.Login(user.ID, user.Username,
		useragent.Describe(c.GetHeader("User-Agent")), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	httputil.SetAuthCookie(c.Writer, jwtToken)
	c.Redirect(http.StatusTemporaryRedirect, config.AppConfig.FrontendURL)
}

func (h *OAuthHandler) findOrCreateUser(gUser *googleUser) (*postgres.User, error) {
	if user, err := h.UserRepo.GetUserByGoogleID(gUser.ID); err != nil {
		return nil, err
	} else if user != nil {
		return user, nil
	}

	// link by email when the user registered with a password first
	if user, err := h.UserRepo.GetUserByEmail(gUser.Email); err != nil {
		return nil, err
	} else if user != nil {
		if err := h.UserRepo.LinkGoogleID(gUser.Email, gUser.ID); err != nil {
			return nil, err
		}
		return user, nil
	}

	username := usernameFromEmail(gUser.Email)
	for i := 0; ; i++ {
		candidate := username
		if i > 0 {
			candidate = fmt.Sprintf("%s%d", username, i)
		}
		existing, err := h.UserRepo.GetUserByUsername(candidate)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			username = candidate
			break
		}
	}

	userID, err := h.UserRepo.CreateUser(username, "", gUser.Email, gUser.ID)
	if err != nil {
		return nil, err
	}
	return h.UserRepo.GetUserByID(userID)
}

func usernameFromEmail(email string) string {
	name := strings.SplitN(email, "@", 2)[0]
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, name)
	if len(name) < 3 {
		name = "player" + name
	}
	return name
}

func fetchGoogleUser(ctx context.Context, accessToken string) (*googleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var gUser googleUser
	if err := json.NewDecoder(resp.Body).Decode(&gUser); err != nil {
		return nil, err
	}
	return &gUser, nil
}
