package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"connectfour/internal/domain"
	"connectfour/internal/repository/postgres"
	"connectfour/internal/repository/redis"
	"connectfour/internal/service/session"
	"connectfour/internal/transport/http/middleware"
	"connectfour/pkg/auth"
	"connectfour/pkg/httputil"
	"connectfour/pkg/useragent"
)

type AuthHandler struct {
	UserRepo    *postgres.UserRepo
	SessionRepo *postgres.SessionRepo
	AuthService *session.AuthService
	Cache       *redis.Cache
}

func NewAuthHandler(userRepo *postgres.UserRepo, sessionRepo *postgres.SessionRepo, authService *session.AuthService, cache *redis.Cache) *AuthHandler {
	return &AuthHandler{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		AuthService: authService,
		Cache:       cache,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) < 3 || len(req.Username) > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be between 3 and 50 characters"})
		return
	}
	if domain.IsBotName(req.Username) || strings.EqualFold(req.Username, "BOT") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is reserved"})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if existing, _ := h.UserRepo.GetUserByIdentifier(req.Username); existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken"})
		return
	}
	if existing, _ := h.UserRepo.GetUserByEmail(req.Email); existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken"})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	userID, err := h.UserRepo.CreateUser(req.Username, hashed, req.Email, "")
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := h.AuthService.Login(userID, req.Username,
		useragent.Describe(c.GetHeader("User-Agent")), c.ClientIP())
	if err != nil {
		log.Error().Err(err).Msg("failed to create session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	httputil.SetAuthCookie(c.Writer, token)
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":       userID,
			"username": req.Username,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.UserRepo.GetUserByIdentifier(strings.TrimSpace(req.Identifier))
	if err != nil || user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.AuthService.Login(user.ID, user.Username,
		useragent.Describe(c.GetHeader("User-Agent")), c.ClientIP())
	if err != nil {
		log.Error().Err(err).Msg("failed to create session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	httputil.SetAuthCookie(c.Writer, token)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.Profile(),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)
	if err := h.AuthService.Logout(sessionID); err != nil {
		log.Error().Err(err).Msg("logout failed")
	}
	httputil.ClearAuthCookie(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)
	user, err := h.UserRepo.GetUserByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Profile()})
}

func (h *AuthHandler) Sessions(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)
	sessions, err := h.SessionRepo.GetUserSessions(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

const leaderboardCacheKey = "leaderboard"
const leaderboardCacheTTL = 30 * time.Second

func (h *AuthHandler) Leaderboard(c *gin.Context) {
	if cached, err := h.Cache.Get(c.Request.Context(), leaderboardCacheKey); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	leaderboard, err := h.UserRepo.GetLeaderboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}

	body, err := json.Marshal(gin.H{"leaderboard": leaderboard})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}
	if err := h.Cache.Set(c.Request.Context(), leaderboardCacheKey, body, leaderboardCacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache leaderboard")
	}
	c.Data(http.StatusOK, "application/json", body)
}
