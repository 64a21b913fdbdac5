package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"edintake/internal/auth"
	"edintake/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListUsers returns all accounts, newest first.
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.repo.ListUsers(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list users")
		InternalError(c, "failed to load users")
		return
	}

	response := entity.UserListResponse{
		Users: make([]entity.UserSummary, 0, len(users)),
	}
	for idx := range users {
		response.Users = append(response.Users, makeUserSummary(&users[idx]))
	}

	c.JSON(http.StatusOK, response)
}

// ApproveUser marks a collector account approved. Idempotent.
func (h *HTTPHandler) ApproveUser(c *gin.Context) {
	idValue := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(idValue, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.ApproveUser(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user not found")
			return
		}
		logrus.WithError(err).WithField("user_id", id).Error("failed to approve user")
		InternalError(c, "failed to approve user")
		return
	}

	user, err := h.repo.GetUserByID(ctx, uint(id))
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("failed to reload user after approval")
		InternalError(c, "failed to load approved user")
		return
	}

	c.JSON(http.StatusOK, makeUserSummary(user))
}

// AdminStats returns the totals shown on the review dashboard.
func (h *HTTPHandler) AdminStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	userCount, err := h.repo.CountUsers(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to count users")
		InternalError(c, "failed to load stats")
		return
	}
	applicationCount, err := h.repo.CountApplications(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to count applications")
		InternalError(c, "failed to load stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":        userCount,
		"applications": applicationCount,
	})
}

// CreateAdmin adds an admin account. Only the super admin may do this; the
// new account is approved immediately.
func (h *HTTPHandler) CreateAdmin(c *gin.Context) {
	var req entity.AdminCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		ValidationFailed(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	hash, err := auth.HashPassword(strings.TrimSpace(req.Password))
	if err != nil {
		logrus.WithError(err).Error("failed to hash password for new admin")
		InternalError(c, "failed to create admin")
		return
	}

	user := &entity.DbUser{
		Email:        email,
		PasswordHash: hash,
		Role:         entity.UserRoleAdmin,
		IsApproved:   true,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeEmailExists, "email already registered")
			return
		}
		logrus.WithError(err).Error("failed to create admin")
		InternalError(c, "failed to create admin")
		return
	}

	c.JSON(http.StatusCreated, makeUserSummary(user))
}
