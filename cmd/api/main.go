package main

import (
	"context"
	"embed"
	"io"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"core-nexus/internal/api/handler"
	"core-nexus/internal/api/middleware"
	"core-nexus/internal/api/websocket"
	"core-nexus/internal/assistant"
	"core-nexus/internal/auth"
	"core-nexus/internal/config"
	"core-nexus/internal/model"
	"core-nexus/internal/notify"
	"core-nexus/internal/stats"
	"core-nexus/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed static
var staticFiles embed.FS

func setupLogger() (*zap.SugaredLogger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func setupNotifier(s *store.Store, sugar *zap.SugaredLogger) *notify.Notifier {
	botToken, err := s.ConfigValue(model.ConfigKeyTelegramBotToken)
	if err != nil {
		sugar.Errorw("failed to read bot token from config", "error", err)
		return nil
	}
	if botToken == "" {
		sugar.Info("Telegram bot token not configured, feedback notifications disabled")
		return nil
	}

	siteURL, err := s.ConfigValue(model.ConfigKeySiteURL)
	if err != nil {
		sugar.Errorw("failed to read site URL from config", "error", err)
		siteURL = ""
	}

	notifier, err := notify.NewNotifier(botToken, siteURL, s, sugar)
	if err != nil {
		sugar.Errorw("failed to initialize Telegram notifier", "error", err)
		return nil
	}

	go notifier.Start()
	sugar.Info("Telegram feedback notifier started")
	return notifier
}

func setupRouter(s *store.Store, cfg config.Config, a *assistant.Assistant, notifier *notify.Notifier, sugar *zap.SugaredLogger) http.Handler {
	ginRouter := gin.Default()
	ginRouter.Use(middleware.CORSMiddleware())

	verifier := &auth.Verifier{
		Store:     s,
		MasterID:  cfg.MasterID,
		MasterKey: cfg.MasterKey,
	}

	var feedbackNotifier handler.FeedbackNotifier
	if notifier != nil {
		feedbackNotifier = notifier
	}

	public := ginRouter.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		public.POST("/login", handler.Login(verifier, cfg.JWTSecret))
		public.GET("/bots", handler.ListBots())
		public.GET("/bots/:id", handler.GetBot())
		public.POST("/feedback", handler.SubmitFeedback(s, feedbackNotifier))
		public.POST("/assistant/chat", handler.AssistantChat(a))
	}

	authed := ginRouter.Group("/api/v1")
	authed.Use(middleware.AuthMiddleware(s, cfg.JWTSecret))
	{
		authed.GET("/session", handler.GetSession())

		// Vault
		authed.GET("/resources", middleware.PermissionCheck(model.PermissionVaultView), handler.ListResources(s))
		authed.POST("/resources", middleware.PermissionCheck(model.PermissionVaultEdit), handler.CreateResource(s))
		authed.PUT("/resources/:id", middleware.PermissionCheck(model.PermissionVaultEdit), handler.UpdateResource(s))
		authed.DELETE("/resources/:id", middleware.PermissionCheck(model.PermissionVaultEdit), handler.DeleteResource(s))

		// Feedback inbox
		authed.GET("/feedback", middleware.PermissionCheck(model.PermissionFeedbackManage), handler.ListFeedback(s))
		authed.DELETE("/feedback/:id", middleware.PermissionCheck(model.PermissionFeedbackManage), handler.DeleteFeedback(s))

		// Self-service
		authed.PUT("/staff/change-password", handler.ChangePassword(s))

		// Master-only administration
		master := authed.Group("")
		master.Use(middleware.MasterOnly())
		{
			master.GET("/staff", handler.ListStaff(s))
			master.POST("/staff", handler.CreateStaff(s))
			master.PUT("/staff/:id", handler.UpdateStaff(s))
			master.DELETE("/staff/:id", handler.DeleteStaff(s))
			master.PUT("/staff/:id/reset-password", handler.ResetStaffPassword(s))

			master.GET("/config/notifier", handler.GetNotifierConfig(s))
			master.PUT("/config/notifier", handler.UpdateNotifierConfig(s))

			master.GET("/stats/history", handler.GetStatsHistory(s))
		}
	}

	// WebSocket chat widget
	ginRouter.GET("/ws/assistant", func(c *gin.Context) {
		websocket.ChatHandler(c, a, sugar)
	})

	// Static files and SPA routes
	staticFS, _ := fs.Sub(staticFiles, "static")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/ws/") {
			ginRouter.ServeHTTP(w, r)
			return
		}

		fsPath := strings.TrimPrefix(path, "/")
		f, err := staticFS.Open(fsPath)
		if err == nil {
			defer f.Close()
			setContentType(w, path)
			if _, err := io.Copy(w, f); err != nil {
				sugar.Errorw("failed to serve static file", "path", path, "error", err)
			}
			return
		}

		// SPA fallback: unknown paths get index.html
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		indexFile, err := staticFS.Open("index.html")
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		defer indexFile.Close()
		if _, err := io.Copy(w, indexFile); err != nil {
			sugar.Errorw("failed to serve index.html", "error", err)
		}
	})
}

func setContentType(w http.ResponseWriter, path string) {
	switch {
	case strings.HasSuffix(path, ".js"):
		w.Header().Set("Content-Type", "application/javascript")
	case strings.HasSuffix(path, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(path, ".html"):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	case strings.HasSuffix(path, ".svg"):
		w.Header().Set("Content-Type", "image/svg+xml")
	}
}

func main() {
	sugar, err := setupLogger()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer sugar.Sync()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalw("failed to load configuration", "error", err)
	}

	if cfg.MasterID == "" || cfg.MasterKey == "" {
		sugar.Warn("MASTER_ID/MASTER_KEY not set, master login disabled")
	}

	s, err := store.Open(cfg.DBPath)
	if err != nil {
		sugar.Fatalw("failed to open database", "error", err)
	}

	stats.StartCollector(s, sugar)

	a := assistant.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, sugar)
	notifier := setupNotifier(s, sugar)

	router := setupRouter(s, cfg, a, notifier, sugar)
	sugar.Infow("server listening", "addr", cfg.ListenAddr)

	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		sugar.Fatalw("server failed", "error", err)
	}
}
