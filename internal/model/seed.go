package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"edintake/internal/auth"
	"edintake/internal/config"
	"edintake/internal/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedSuperAdmin ensures the configured super admin account exists and is
// approved. An existing account under the same email is approved if needed
// but its role and password are never touched.
func SeedSuperAdmin(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.SuperAdminEmail))
	if email == "" {
		return errors.New("super admin email is not configured")
	}

	existing, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != entity.UserRoleSuperAdmin {
			logrus.WithFields(logrus.Fields{
				"email": email,
				"role":  existing.Role,
			}).Warn("account under the super admin email does not carry the super admin role")
		}
		if existing.IsApproved {
			return nil
		}
		logrus.WithField("email", email).Warn("super admin account was not approved; approving")
		return repo.ApproveUser(ctx, existing.ID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return createSuperAdmin(ctx, repo, email, cfg.SuperAdminPassword)
	default:
		return err
	}
}

func createSuperAdmin(ctx context.Context, repo Repository, email, password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("SUPER_ADMIN_PASSWORD must be set to create the super admin account %s", email)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash super admin password: %w", err)
	}

	user := &entity.DbUser{
		Email:        email,
		PasswordHash: hash,
		Role:         entity.UserRoleSuperAdmin,
		IsApproved:   true,
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another instance won the race; the account exists.
			return nil
		}
		return err
	}

	logrus.WithField("email", email).Info("seeded super admin account")
	return nil
}
