package api

import (
	"time"

	"edintake/internal/auth"
	"edintake/internal/config"
	"edintake/internal/model"
	"edintake/internal/service"
)

// HTTPHandler holds the wiring for all request handlers.
type HTTPHandler struct {
	cfg         config.Config
	repo        model.Repository
	authManager *auth.Manager

	submissions *service.SubmissionService
	exports     *service.ExportService
}

// NewHTTPHandler creates the handler set.
func NewHTTPHandler(cfg config.Config, repo model.Repository, submissions *service.SubmissionService, exports *service.ExportService) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:         cfg,
		repo:        repo,
		authManager: authManager,
		submissions: submissions,
		exports:     exports,
	}, nil
}
