package app

import (
	"context"

	"auth-gateway/internal/auth/credentials"
	"auth-gateway/internal/auth/handler"
	"auth-gateway/internal/config"
	"auth-gateway/internal/mail"
	"auth-gateway/internal/middleware"
	"auth-gateway/internal/session"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	credentialStore := credentials.NewPostgresStore(infra.DB)
	hasher := credentials.NewHasher(cfg.BcryptCost)

	var notifier credentials.Notifier = mail.Disabled{}
	if cfg.MailHost != "" {
		mailer, err := mail.NewMailer(mail.Config{
			Host:       cfg.MailHost,
			Port:       cfg.MailPort,
			Username:   cfg.MailUsername,
			Password:   cfg.MailPassword,
			From:       cfg.MailFrom,
			Attachment: cfg.WelcomeAttachment,
		})
		if err != nil {
			return nil, nil, err
		}
		notifier = mailer
	}

	credentialService := credentials.NewService(credentialStore, hasher, notifier)

	stopPrune := make(chan struct{})

	var sessionStore session.Store
	switch cfg.SessionBackend {
	case "redis":
		sessionStore = session.NewRedisStore(infra.Redis.Client)
	default:
		pgStore := session.NewPostgresStore(infra.DB)
		go pruneSessions(pgStore, stopPrune)
		sessionStore = pgStore
	}

	sessions := session.NewManager(sessionStore, credentialStore, cfg.SessionTTL)

	authHandler := handler.NewHandler(credentialService, sessions)

	// unauthenticated page requests are sent to the login form
	authMiddleware := middleware.NewAuthMiddleware(sessions, "/login")

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/public", "./public")

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected Web Routes
	// ----------------------------

	web := router.Group("/")
	web.Use(middleware.GinRequireAuth(authMiddleware))

	web.GET("/secrets", authHandler.Secrets)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		close(stopPrune)
		if infra.Redis != nil {
			if err := infra.Redis.Close(); err != nil {
				return err
			}
		}
		return infra.DB.Close()
	}, nil
}
