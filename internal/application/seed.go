package application

import (
	"context"
	"errors"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

// SeedAdmin creates an ADMIN account named "Admin" unless the email is taken.
// created is false when a user with that email already exists.
func SeedAdmin(ctx context.Context, users repository.UserRepository, email, password string) (created bool, err error) {
	_, err = users.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return false, err
	}
	name := "Admin"
	if err := users.Create(ctx, &entity.User{Email: email, Password: hash, Name: &name, Role: entity.RoleAdmin}); err != nil {
		return false, err
	}
	return true, nil
}
