package bootstrap

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"backend/internal/config"
	"backend/internal/model"
	"backend/internal/repository"
)

// SeedSuperadmin creates the bootstrap superadmin account when the
// SUPERADMIN_* settings are present and no user with that username exists.
// It is a no-op otherwise, so restarts are safe.
func SeedSuperadmin(ctx context.Context, cfg *config.Config, users repository.UserRepository) error {
	if cfg.SuperadminUsername == "" || cfg.SuperadminEmail == "" || cfg.SuperadminPassword == "" {
		return nil
	}

	_, err := users.GetByUsername(ctx, cfg.SuperadminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperadminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: cfg.SuperadminUsername,
		Email:    cfg.SuperadminEmail,
		Password: string(hash),
		Role:     model.RoleSuperadmin,
	}
	if err := users.Create(ctx, user); err != nil {
		return err
	}
	log.Printf("seeded superadmin account %q", cfg.SuperadminUsername)
	return nil
}
