package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"edintake/internal/api"
	"edintake/internal/config"
	"edintake/internal/mirror"
	"edintake/internal/model"
	"edintake/internal/service"
	"edintake/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if err := model.SeedSuperAdmin(context.Background(), repo, cfg); err != nil {
		logrus.WithError(err).Error("failed to seed super admin")
		return
	}

	var mirrorSink mirror.Sink
	sheetsSink, err := mirror.NewSheetsSink(context.Background(), cfg)
	switch {
	case err != nil:
		// Mirroring is best-effort even at startup; run without it.
		logrus.WithError(err).Warn("failed to initialise sheets mirror, mirroring disabled")
	case sheetsSink == nil:
		logrus.Warn("sheets mirror not configured, submissions will not be mirrored")
	default:
		mirrorSink = sheetsSink
	}
	forwarder := mirror.NewForwarder(mirrorSink, time.Duration(cfg.SheetTimeoutSeconds)*time.Second)

	archive, err := storage.NewArchive(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise export archive")
		return
	}

	submissions := service.NewSubmissionService(repo, forwarder)
	exports := service.NewExportService(repo, archive)

	httpHandler, err := api.NewHTTPHandler(cfg, repo, submissions, exports)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/signup", httpHandler.Signup)
	authGroup.POST("/login", httpHandler.Login)
	authGroup.POST("/logout", httpHandler.Logout)
	authGroup.GET("/me", httpHandler.AuthMiddleware(), httpHandler.Me)

	protected := apiGroup.Group("")
	protected.Use(httpHandler.AuthMiddleware())
	protected.GET("/applications/options", httpHandler.FormOptions)
	protected.POST("/applications", httpHandler.SubmitApplication)
	protected.GET("/applications", httpHandler.ListMyApplications)

	admin := protected.Group("/admin")
	admin.Use(httpHandler.RequireAdmin())
	admin.GET("/applications", httpHandler.AdminListApplications)
	admin.GET("/applications/export", httpHandler.AdminExportCSV)
	admin.GET("/applications/:id", httpHandler.AdminGetApplication)
	admin.PATCH("/applications/:id", httpHandler.AdminUpdateApplication)
	admin.GET("/stats", httpHandler.AdminStats)
	admin.GET("/users", httpHandler.ListUsers)
	admin.POST("/users/:id/approve", httpHandler.ApproveUser)
	admin.POST("/users", httpHandler.RequireSuperAdmin(), httpHandler.CreateAdmin)

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("server starting")
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("server failed")
	}
}

// CORSMiddleware allows the intake form to be served from another origin.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware emits one structured entry per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
