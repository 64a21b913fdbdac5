package model

import (
	"context"

	"edintake/internal/entity"
)

// Repository defines the persistence operations for users and applications.
type Repository interface {
	// Credential store
	CreateUser(ctx context.Context, user *entity.DbUser) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsers(ctx context.Context) ([]entity.DbUser, error)
	ApproveUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)

	// Application store
	CreateApplication(ctx context.Context, application *entity.DbApplication) error
	GetApplication(ctx context.Context, id string) (*entity.DbApplication, error)
	ListApplications(ctx context.Context, params *entity.ApplicationQuery) ([]entity.DbApplication, error)
	UpdateApplication(ctx context.Context, id string, updates entity.ApplicationUpdates) error
	CountApplications(ctx context.Context) (int64, error)
}
