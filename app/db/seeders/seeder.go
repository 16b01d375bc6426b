package seeders

import (
	"context"
	"fmt"

	"github.com/cherryshop/cherryshop-api/app/helpers"
	"github.com/cherryshop/cherryshop-api/app/models"
	"github.com/cherryshop/cherryshop-api/app/repositories"
	"go.uber.org/zap"
)

const DefaultPassword = "P@ssw0rd"

type SeedUser struct {
	Username string
	Email    string
	Role     string
}

var DefaultRoles = []string{models.RoleAdministrator, models.RoleStaff}

var DefaultUsers = []SeedUser{
	{Username: "admin", Email: "admin@test.com", Role: models.RoleAdministrator},
	{Username: "staff", Email: "staff@test.com", Role: models.RoleStaff},
}

// Seed creates the default roles and bootstrap accounts. Every item is
// checked for existence first, so running it again changes nothing.
func Seed(ctx context.Context, roles repositories.RoleRepositoryImpl, users repositories.UserRepositoryImpl, password string, logger *zap.Logger) error {
	location := helpers.Location("Seeder", "Seed")
	if password == "" {
		password = DefaultPassword
	}

	for _, name := range DefaultRoles {
		exists, err := roles.RoleExists(ctx, name)
		if err != nil {
			return fmt.Errorf("check role %s: %w", name, err)
		}
		if exists {
			continue
		}
		if err := roles.Create(ctx, &models.Role{Name: name}); err != nil {
			return fmt.Errorf("create role %s: %w", name, err)
		}
		logger.Info(location+": role created", zap.String("role", name))
	}

	for _, su := range DefaultUsers {
		user, err := users.FindByEmail(ctx, su.Email)
		if err != nil {
			return fmt.Errorf("find user %s: %w", su.Email, err)
		}
		if user == nil {
			user = &models.User{Username: su.Username, Email: su.Email, Password: password}
			if err := users.Create(ctx, user); err != nil {
				return fmt.Errorf("create user %s: %w", su.Email, err)
			}
			logger.Info(location+": user created", zap.String("username", su.Username))
		}
		if err := users.AddToRole(ctx, user, su.Role); err != nil {
			return fmt.Errorf("assign %s to %s: %w", su.Role, su.Email, err)
		}
	}

	return nil
}
