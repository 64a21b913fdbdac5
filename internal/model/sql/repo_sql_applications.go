package sql

import (
	"context"
	"fmt"
	"strings"

	"edintake/internal/entity"

	"gorm.io/gorm"
)

// CreateApplication inserts a new application row. The id is assigned by the
// submission workflow before reaching here; a colliding id is a storage
// error, not something to retry.
func (r *GormRepository) CreateApplication(ctx context.Context, application *entity.DbApplication) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if application == nil {
		return fmt.Errorf("application is nil")
	}
	if strings.TrimSpace(application.ID) == "" {
		return fmt.Errorf("application id is empty")
	}
	return r.db.WithContext(ctx).Create(application).Error
}

// GetApplication loads one application by id.
func (r *GormRepository) GetApplication(ctx context.Context, id string) (*entity.DbApplication, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, fmt.Errorf("application id is empty")
	}
	var application entity.DbApplication
	if err := r.db.WithContext(ctx).Where("id = ?", trimmed).First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// ListApplications returns applications newest collection date first,
// optionally filtered by collector email and status.
func (r *GormRepository) ListApplications(ctx context.Context, params *entity.ApplicationQuery) ([]entity.DbApplication, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbApplication{})
	if params != nil {
		if trimmed := strings.TrimSpace(params.CollectorEmail); trimmed != "" {
			query = query.Where("collector_email = ?", strings.ToLower(trimmed))
		}
		if trimmed := strings.TrimSpace(params.Status); trimmed != "" {
			query = query.Where("status = ?", trimmed)
		}
	}

	var applications []entity.DbApplication
	if err := query.Order("collection_date DESC").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// UpdateApplication applies the allow-listed sparse overwrites. An unknown
// id reports gorm.ErrRecordNotFound rather than silently matching nothing.
func (r *GormRepository) UpdateApplication(ctx context.Context, id string, updates entity.ApplicationUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return fmt.Errorf("application id is empty")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbApplication{}).Where("id = ?", trimmed).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	values := updates.ToMap()
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbApplication{}).Where("id = ?", trimmed).Updates(values).Error
}

// CountApplications returns total application count.
func (r *GormRepository) CountApplications(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbApplication{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
