package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"tradeReportBackend/internal/apperr"
	"tradeReportBackend/internal/auth"
	"tradeReportBackend/models"
	"tradeReportBackend/repository"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// AccountService registers users and exchanges credentials for session tokens.
type AccountService struct {
	Users  repository.UserRepositoryI
	Hasher auth.Hasher
	Tokens *auth.TokenService
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with the default role.
func (s *AccountService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") || utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, apperr.Validation("Email and a password of at least 8 characters are required")
	}
	digest, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}
	u, err := s.Users.Create(ctx, email, digest)
	if err != nil {
		var cv *repository.ErrConstraintViolation
		if errors.As(err, &cv) {
			return nil, apperr.Conflict("Email already in use")
		}
		return nil, apperr.Internal("create user", err)
	}
	return u, nil
}

// Login verifies the credentials and issues a token. Unknown email and wrong
// password fail the same way.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", apperr.Validation("Email and password are required")
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return "", apperr.Internal("get user", err)
	}
	if u == nil {
		return "", apperr.Unauthorized("Invalid credentials")
	}
	if err := s.Hasher.Compare(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", apperr.Unauthorized("Invalid credentials")
		}
		return "", apperr.Internal("compare password", err)
	}
	tok, err := s.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		return "", apperr.Internal("issue token", err)
	}
	return tok, nil
}

// ListUsers returns every account ordered by id.
func (s *AccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, apperr.Internal("list users", err)
	}
	return users, nil
}

// SetRole changes a user's role. It is reachable from the operator CLI only.
func (s *AccountService) SetRole(ctx context.Context, email string, role models.Role) error {
	if !role.Valid() {
		return apperr.Validation("role must be user or admin")
	}
	err := s.Users.UpdateRoleByEmail(ctx, normalizeEmail(email), role)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("User not found")
	}
	if err != nil {
		return apperr.Internal("update role", err)
	}
	return nil
}
