package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"edintake/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FormOptions returns the dropdown enumerations backing the intake form.
func (h *HTTPHandler) FormOptions(c *gin.Context) {
	c.JSON(http.StatusOK, entity.FormOptions{
		SexOptions:      entity.SexOptions,
		LicenseOptions:  entity.LicenseOptions,
		EnterpriseSizes: entity.EnterpriseSizeOptions,
		OwnershipTypes:  entity.OwnershipTypeOptions,
		BusinessSectors: entity.BusinessSectorOptions,
		PremiseTypes:    entity.PremiseOptions,
		FinanceModes:    entity.FinanceModeOptions,
	})
}

// SubmitApplication runs the intake workflow for the authenticated
// collector. All fields are validated before anything is persisted.
func (h *HTTPHandler) SubmitApplication(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.ApplicationSubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		ValidationFailed(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	application, err := h.submissions.Submit(ctx, user.Email, &req)
	if err != nil {
		logrus.WithError(err).WithField("collector", user.Email).Error("failed to submit application")
		InternalError(c, "failed to submit application")
		return
	}

	c.JSON(http.StatusCreated, application)
}

// ListMyApplications is the collector dashboard listing.
func (h *HTTPHandler) ListMyApplications(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	applications, err := h.repo.ListApplications(ctx, &entity.ApplicationQuery{CollectorEmail: user.Email})
	if err != nil {
		logrus.WithError(err).WithField("collector", user.Email).Error("failed to list applications")
		InternalError(c, "failed to load applications")
		return
	}

	c.JSON(http.StatusOK, entity.ApplicationListResponse{Applications: applications})
}

// AdminListApplications lists every application, optionally by status.
func (h *HTTPHandler) AdminListApplications(c *gin.Context) {
	var query entity.ApplicationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	// Admins see all collectors.
	query.CollectorEmail = strings.TrimSpace(query.CollectorEmail)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	applications, err := h.repo.ListApplications(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list applications")
		InternalError(c, "failed to load applications")
		return
	}

	c.JSON(http.StatusOK, entity.ApplicationListResponse{Applications: applications})
}

// AdminGetApplication fetches one application; an unknown id is a distinct
// 404, never an empty page.
func (h *HTTPHandler) AdminGetApplication(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		BadRequest(c, ErrCodeInvalidRequest, "invalid application id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	application, err := h.repo.GetApplication(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeApplicationNotFound, "application not found")
			return
		}
		logrus.WithError(err).WithField("application_id", id).Error("failed to load application")
		InternalError(c, "failed to load application")
		return
	}

	c.JSON(http.StatusOK, application)
}

// AdminUpdateApplication applies a sparse, allow-listed correction. The
// typed update request is the whole accepted field set; arbitrary column
// names never reach storage.
func (h *HTTPHandler) AdminUpdateApplication(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		BadRequest(c, ErrCodeInvalidRequest, "invalid application id")
		return
	}

	var req entity.ApplicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationFailed(c, err)
		return
	}

	updates := req.ToUpdates()
	if updates.IsEmpty() {
		BadRequest(c, ErrCodeInvalidRequest, "no updatable fields in request")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateApplication(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeApplicationNotFound, "application not found")
			return
		}
		logrus.WithError(err).WithField("application_id", id).Error("failed to update application")
		InternalError(c, "failed to update application")
		return
	}

	application, err := h.repo.GetApplication(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("application_id", id).Error("failed to reload application after update")
		InternalError(c, "failed to load updated application")
		return
	}

	c.JSON(http.StatusOK, application)
}

// AdminExportCSV streams the full listing as a CSV download.
func (h *HTTPHandler) AdminExportCSV(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	data, filename, err := h.exports.ExportCSV(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to export applications")
		InternalError(c, "failed to export applications")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
