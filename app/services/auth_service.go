package services

import (
	"context"
	"errors"

	"github.com/cherryshop/cherryshop-api/app/helpers"
	"github.com/cherryshop/cherryshop-api/app/models"
	"github.com/cherryshop/cherryshop-api/app/repositories"
	"go.uber.org/zap"
)

type AuthService struct {
	userRepo repositories.UserRepositoryImpl
	tokens   *TokenIssuer
	limiter  LoginLimiter
	logger   *zap.Logger
}

// NewAuthService wires the credential store and token issuer. limiter may
// be nil, in which case logins are never throttled.
func NewAuthService(userRepo repositories.UserRepositoryImpl, tokens *TokenIssuer, limiter LoginLimiter, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		limiter:  limiter,
		logger:   logger,
	}
}

// Register creates an account. Every failure is logged in detail and
// reported to the caller as helpers.ErrRegistrationFailed.
func (s *AuthService) Register(ctx context.Context, email, username, password string) error {
	location := helpers.Location("UserService", "Register")
	s.logger.Info(location+": registration attempt", zap.String("email", email), zap.String("username", username))

	user := &models.User{
		Email:    email,
		Username: username,
		Password: password,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		var identityErrs repositories.IdentityErrors
		if errors.As(err, &identityErrs) {
			for _, ie := range identityErrs {
				s.logger.Error(location+": "+ie.Code+" - "+ie.Description, zap.String("email", email))
			}
		} else {
			s.logger.Error(location+": create account failed", zap.String("email", email), zap.Error(err))
		}
		return helpers.ErrRegistrationFailed
	}

	s.logger.Info(location+": registration successful", zap.String("email", email), zap.String("user_id", user.ID))
	return nil
}

// Login returns a signed access token for valid credentials. An unknown
// user and a wrong password both yield helpers.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	location := helpers.Location("UserService", "Login")
	s.logger.Info(location+": login attempt", zap.String("username", username))

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, username)
		if err != nil {
			s.logger.Warn(location+": login limiter unavailable", zap.Error(err))
		} else if !allowed {
			s.logger.Warn(location+": too many attempts", zap.String("username", username))
			return "", helpers.ErrTooManyAttempts
		}
	}

	user, err := s.userRepo.CheckPassword(ctx, username, password)
	if err != nil {
		s.logger.Error(location+": credential check failed", zap.String("username", username), zap.Error(err))
		return "", helpers.ErrInternal
	}
	if user == nil {
		s.logger.Info(location+": login failed", zap.String("username", username))
		return "", helpers.ErrUnauthorized
	}

	roles, err := s.userRepo.GetRoles(ctx, user.ID)
	if err != nil {
		s.logger.Error(location+": role lookup failed", zap.String("user_id", user.ID), zap.Error(err))
		return "", helpers.ErrInternal
	}

	token, _, err := s.tokens.Issue(user, roles)
	if err != nil {
		s.logger.Error(location+": token signing failed", zap.String("user_id", user.ID), zap.Error(err))
		return "", helpers.ErrInternal
	}

	s.logger.Info(location+": login successful", zap.String("username", username))
	return token, nil
}
