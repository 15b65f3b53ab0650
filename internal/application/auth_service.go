package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/pkg/apperror"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

const msgInvalidCredentials = "Invalid credentials"

type AuthService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

// Session is a signed-in user with the token to put in the cookie.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

type RegisterInput struct {
	Email    string
	Password string
	Name     *string
	Phone    *string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	// validation counts characters; bcrypt counts bytes
	if len(in.Password) > helpers.MaxPasswordBytes {
		return nil, apperror.Validation(msgInvalidInput, map[string]string{"password": "must be at most 72 bytes"})
	}
	_, err := s.Users.GetByEmail(ctx, in.Email)
	if err == nil {
		return nil, apperror.Conflict("Email already registered")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal("lookup email", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal("hash password", err)
	}
	u := &entity.User{Email: in.Email, Password: hash, Name: in.Name, Phone: in.Phone, Role: entity.RoleCustomer}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, apperror.Internal("create user", err)
	}
	return s.issue(u)
}

// Login fails with the same message whether the email is unknown or the
// password is wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, apperror.Internal("lookup user", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}
	return s.issue(u)
}

// Me loads the caller's profile with saved addresses.
func (s *AuthService) Me(ctx context.Context, id *entity.Identity) (*entity.User, error) {
	if id == nil {
		return nil, apperror.Unauthorized("Unauthorized")
	}
	u, err := s.Users.GetWithAddresses(ctx, id.UserID)
	if err != nil {
		return nil, repoError("load profile", "User not found", err)
	}
	return u, nil
}

// Identify resolves a session token; any failure yields nil.
func (s *AuthService) Identify(token string) *entity.Identity {
	if token == "" || s.JWT == nil {
		return nil
	}
	claims, err := s.JWT.ParseSessionToken(token)
	if err != nil {
		return nil
	}
	return &entity.Identity{UserID: claims.UserID, Email: claims.Email, Role: entity.Role(claims.Role)}
}

func (s *AuthService) issue(u *entity.User) (*Session, error) {
	token, exp, err := s.JWT.GenerateSessionToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, apperror.Internal("sign session token", err)
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}
