package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cherryshop/cherryshop-api/app/helpers"
	"github.com/cherryshop/cherryshop-api/app/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdentityError describes one reason an account could not be created.
type IdentityError struct {
	Code        string
	Description string
}

// IdentityErrors is returned by Create when the account violates a rule of
// the credential store. Nothing has been written when it is returned.
type IdentityErrors []IdentityError

func (e IdentityErrors) Error() string {
	codes := make([]string, 0, len(e))
	for _, ie := range e {
		codes = append(codes, ie.Code)
	}
	return "identity errors: " + strings.Join(codes, ", ")
}

type UserRepositoryImpl interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CheckPassword(ctx context.Context, username, password string) (*models.User, error)
	AddToRole(ctx context.Context, user *models.User, roleName string) error
	GetRoles(ctx context.Context, userID string) ([]string, error)
}

type userRepository struct {
	db      *gorm.DB
	compare func(hash string, password []byte) bool
}

func NewUserRepository(db *gorm.DB) UserRepositoryImpl {
	return &userRepository{db: db, compare: helpers.PasswordCompare}
}

// missingUserHash is compared against when the username is unknown, so a
// miss costs the same bcrypt work as a wrong password.
var missingUserHash = sync.OnceValue(func() string {
	hash, err := helpers.HashPassword(uuid.NewString())
	if err != nil {
		panic(err)
	}
	return hash
})

// Create hashes user.Password in place and inserts the account. Username
// and email must both be unused.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	var problems IdentityErrors
	if strings.TrimSpace(user.Username) == "" {
		problems = append(problems, IdentityError{Code: "InvalidUserName", Description: "User name is empty."})
	}
	if strings.TrimSpace(user.Email) == "" {
		problems = append(problems, IdentityError{Code: "InvalidEmail", Description: "Email is empty."})
	}
	if user.Password == "" {
		problems = append(problems, IdentityError{Code: "PasswordRequired", Description: "Password is empty."})
	}
	if len(problems) > 0 {
		return problems
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			problems = append(problems, IdentityError{
				Code:        "DuplicateUserName",
				Description: fmt.Sprintf("User name '%s' is already taken.", user.Username),
			})
		}
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			problems = append(problems, IdentityError{
				Code:        "DuplicateEmail",
				Description: fmt.Sprintf("Email '%s' is already taken.", user.Email),
			})
		}
		if len(problems) > 0 {
			return problems
		}

		hashPass, err := helpers.HashPassword(user.Password)
		if err != nil {
			return IdentityErrors{{Code: "PasswordHashFailed", Description: err.Error()}}
		}

		if user.ID == "" {
			user.ID = uuid.New().String()
		}
		user.Password = hashPass
		return tx.Omit("Roles").Create(user).Error
	})
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CheckPassword returns the account only when username and password match.
// Unknown users and wrong passwords both yield nil, nil.
func (r *userRepository) CheckPassword(ctx context.Context, username, password string) (*models.User, error) {
	user, err := r.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		r.compare(missingUserHash(), []byte(password))
		return nil, nil
	}
	if !r.compare(user.Password, []byte(password)) {
		return nil, nil
	}
	return user, nil
}

func (r *userRepository) AddToRole(ctx context.Context, user *models.User, roleName string) error {
	var role models.Role
	err := r.db.WithContext(ctx).Where("name = ?", roleName).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("role %q does not exist", roleName)
		}
		return err
	}
	return r.db.WithContext(ctx).Model(user).Association("Roles").Append(&role)
}

func (r *userRepository) GetRoles(ctx context.Context, userID string) ([]string, error) {
	var roles []models.Role
	if err := r.db.WithContext(ctx).Model(&models.User{ID: userID}).Association("Roles").Find(&roles); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	sort.Strings(names)
	return names, nil
}
