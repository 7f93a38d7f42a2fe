package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"connectfour/internal/config"
	"connectfour/internal/domain"
	"connectfour/internal/repository/postgres"
	"connectfour/internal/repository/redis"
	"connectfour/internal/service/cleanup"
	"connectfour/internal/service/game"
	"connectfour/internal/service/matchmaking"
	"connectfour/internal/service/session"
	transportHttp "connectfour/internal/transport/http"
	"connectfour/internal/transport/http/middleware"
	"connectfour/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Info().Msg("no .env file found, using environment")
		}
	}

	cfg := config.LoadConfig()
	setupLogging(cfg)

	db, err := postgres.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	gameRepo := postgres.NewGameRepo(db)
	userRepo := postgres.NewUserRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)

	// nil cache means sessions are validated against postgres only
	cache := redis.Connect(cfg.RedisAddr, cfg.RedisPassword)
	defer cache.Close()

	authService := session.NewAuthService(sessionRepo, cache)
	sessionManager := game.NewSessionManager(gameRepo)
	connManager := websocket.NewConnectionManager()

	matchQueue := matchmaking.NewQueue(cfg.MatchmakingTimeout, func(userID int64) {
		connManager.Send(userID, domain.ServerMessage{Type: "queue_timeout"})
	})

	wsHandler := websocket.NewHandler(connManager, matchQueue, sessionManager, authService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go matchQueue.Run(ctx, wsHandler.OnMatch)
	go cleanup.NewWorker(sessionRepo).Run(ctx)

	authHandler := transportHttp.NewAuthHandler(userRepo, sessionRepo, authService, cache)
	historyHandler := transportHttp.NewHistoryHandler(gameRepo)
	oauthHandler := transportHttp.NewOAuthHandler(userRepo, authService, &cfg.OAuth)
	watchHandler := transportHttp.NewWatchHandler(sessionManager)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware())

	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)
	router.GET("/api/leaderboard", authHandler.Leaderboard)

	router.GET("/api/auth/google/login", oauthHandler.GoogleLogin)
	router.GET("/api/auth/google/callback", oauthHandler.GoogleCallback)

	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.POST("/api/auth/logout", authHandler.Logout)
		protected.GET("/api/auth/me", authHandler.Me)
		protected.GET("/api/sessions", authHandler.Sessions)

		protected.GET("/api/history", historyHandler.GetHistory)
		protected.GET("/api/history/:id", historyHandler.GetGameDetails)

		protected.GET("/api/watch", watchHandler.GetLiveGames)
	}

	// auth happens inside the ws handshake, not through the middleware
	router.GET("/ws", wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
