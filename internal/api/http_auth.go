package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"edintake/internal/auth"
	"edintake/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Signup creates an unapproved collector account. The account cannot log in
// until an admin approves it.
func (h *HTTPHandler) Signup(c *gin.Context) {
	var req entity.AuthSignupRequest
	if err := c.ShouldBind(&req); err != nil {
		ValidationFailed(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	hash, err := auth.HashPassword(password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password during signup")
		InternalError(c, "failed to create account")
		return
	}

	user := &entity.DbUser{
		Email:        email,
		PasswordHash: hash,
		Role:         entity.UserRoleCollector,
		IsApproved:   false,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeEmailExists, "email already registered")
			return
		}
		logrus.WithError(err).Error("failed to create account")
		InternalError(c, "failed to create account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "account created, awaiting approval",
		"user":    makeUserSummary(user),
	})
}

// Login authenticates and issues a session token. Every failure mode looks
// the same from outside.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		ValidationFailed(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).WithField("email", email).Error("failed to load user during login")
		}
		InvalidCredentials(c)
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		logrus.WithField("email", email).Warn("password verification failed")
		InvalidCredentials(c)
		return
	}

	if !user.IsApproved {
		logrus.WithField("email", email).Warn("login attempt on unapproved account")
		InvalidCredentials(c)
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to generate session token")
		InternalError(c, "failed to create session")
		return
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      makeUserSummary(user),
	})
}

// Logout clears the session cookie. Tokens themselves simply expire.
func (h *HTTPHandler) Logout(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the current account summary.
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbUser, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load user profile")
		InternalError(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, makeUserSummary(dbUser))
}

func makeUserSummary(user *entity.DbUser) entity.UserSummary {
	if user == nil {
		return entity.UserSummary{}
	}
	return entity.UserSummary{
		ID:         user.ID,
		Email:      user.Email,
		Role:       user.Role,
		IsApproved: user.IsApproved,
		CreatedAt:  user.CreatedAt,
	}
}
