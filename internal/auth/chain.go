package auth

import (
	"context"
	"strings"

	"tradeReportBackend/internal/apperr"
	"tradeReportBackend/models"
)

// Principal represents the authenticated caller from the session token.
type Principal struct {
	UserID int64
	Role   models.Role
}

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// Authenticator is the first stage of the request-gating chain.
type Authenticator struct {
	Tokens *TokenService
}

// Authenticate validates an Authorization header value of the form
// "Bearer <token>" and returns ctx extended with the caller's Principal.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (context.Context, error) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return ctx, apperr.Unauthorized("Unauthorized")
	}
	claims, err := a.Tokens.Verify(strings.TrimSpace(parts[1]))
	if err != nil {
		return ctx, err
	}
	if claims.Expired(a.Tokens.Now()) {
		return ctx, apperr.Unauthorized("Token expired")
	}
	return WithPrincipal(ctx, &Principal{UserID: claims.UserID, Role: claims.Role}), nil
}

// Authorize is the second stage: the principal in ctx must hold role.
// A missing principal means Authenticate did not run and is also Forbidden.
func Authorize(ctx context.Context, role models.Role) (*Principal, error) {
	p, ok := FromContext(ctx)
	if !ok || p.Role != role {
		return nil, apperr.Forbidden("Forbidden")
	}
	return p, nil
}

// RequirePrincipal ensures a principal is present in context.
func RequirePrincipal(ctx context.Context) (*Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return nil, apperr.Unauthorized("Unauthorized")
	}
	return p, nil
}
