package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/apperrors"
	"storefront/pkg/oidc"
	"storefront/pkg/redis"
)

const loginStateTTL = 10 * time.Minute

// SessionStore persists session ids and pending login states.
type SessionStore interface {
	SaveSession(ctx context.Context, sessionID, subject string, ttl time.Duration) error
	SessionSubject(ctx context.Context, sessionID string) (string, error)
	RevokeSession(ctx context.Context, sessionID string) error
	SaveLoginState(ctx context.Context, state string, ttl time.Duration) error
	ConsumeLoginState(ctx context.Context, state string) error
}

// IdentityProvider runs the authorization code flow against the external
// identity provider.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oidc.Identity, error)
}

type AuthConfig struct {
	Secret      string
	TTL         time.Duration
	AdminEmails []string
}

// AuthService handles login, session tokens and role checks.
type AuthService struct {
	users       repositories.UserRepository
	sessions    SessionStore
	provider    IdentityProvider
	secret      []byte
	ttl         time.Duration
	adminEmails map[string]bool
}

// NewAuthService creates a new AuthService. provider may be nil when no
// identity provider is configured; login is then unavailable but issued
// tokens still verify.
func NewAuthService(users repositories.UserRepository, sessions SessionStore, provider IdentityProvider, cfg AuthConfig) *AuthService {
	admins := make(map[string]bool, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
			admins[email] = true
		}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:       users,
		sessions:    sessions,
		provider:    provider,
		secret:      []byte(cfg.Secret),
		ttl:         ttl,
		adminEmails: admins,
	}
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.ttl
}

// BeginLogin records a fresh state value and returns the provider URL to
// redirect the browser to.
func (s *AuthService) BeginLogin(ctx context.Context) (string, error) {
	if s.provider == nil {
		return "", apperrors.New(apperrors.CodeUnavailable, "Login is not configured")
	}
	state := uuid.NewString()
	if err := s.sessions.SaveLoginState(ctx, state, loginStateTTL); err != nil {
		return "", fmt.Errorf("failed to save login state: %w", err)
	}
	return s.provider.AuthCodeURL(state), nil
}

// CompleteLogin finishes the provider callback: it checks state, exchanges
// the code, upserts the user and opens a session.
func (s *AuthService) CompleteLogin(ctx context.Context, state, code string) (string, *models.User, error) {
	if s.provider == nil {
		return "", nil, apperrors.New(apperrors.CodeUnavailable, "Login is not configured")
	}
	if state == "" || code == "" {
		return "", nil, apperrors.New(apperrors.CodeUnauthorized, "Unauthorized")
	}
	if err := s.sessions.ConsumeLoginState(ctx, state); err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return "", nil, apperrors.Wrap(apperrors.CodeUnauthorized, err, "Unauthorized")
		}
		return "", nil, fmt.Errorf("failed to check login state: %w", err)
	}

	identity, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return "", nil, apperrors.Wrap(apperrors.CodeUnauthorized, err, "Unauthorized")
	}

	user := &models.User{
		ID:              identity.Subject,
		FirstName:       identity.FirstName,
		LastName:        identity.LastName,
		ProfileImageURL: identity.ProfileImageURL,
	}
	if identity.Email != "" {
		email := identity.Email
		user.Email = &email
		user.IsAdmin = s.adminEmails[strings.ToLower(email)]
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.IssueToken(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken signs a session token for subject and registers its id in the
// session store.
func (s *AuthService) IssueToken(ctx context.Context, subject string) (string, error) {
	now := time.Now()
	sessionID := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"jti": sessionID,
		"exp": now.Add(s.ttl).Unix(),
		"iat": now.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	if err := s.sessions.SaveSession(ctx, sessionID, subject, s.ttl); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return signed, nil
}

// Authenticate verifies a session token and returns its subject.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	subject, sessionID, err := s.parse(token)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeUnauthorized, err, "Unauthorized")
	}
	stored, err := s.sessions.SessionSubject(ctx, sessionID)
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return "", apperrors.Wrap(apperrors.CodeUnauthorized, err, "Unauthorized")
		}
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	if stored != subject {
		return "", apperrors.New(apperrors.CodeUnauthorized, "Unauthorized")
	}
	return subject, nil
}

// Logout revokes the token's session. Invalid tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	_, sessionID, err := s.parse(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.RevokeSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// CurrentUser loads the user row for an authenticated subject.
func (s *AuthService) CurrentUser(ctx context.Context, subject string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, subject)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			return nil, apperrors.Wrap(apperrors.CodeUnauthorized, err, "Unauthorized")
		}
		return nil, err
	}
	return user, nil
}

// RequireAdmin re-reads the user and rejects non-admins.
func (s *AuthService) RequireAdmin(ctx context.Context, subject string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, subject)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			return nil, apperrors.Wrap(apperrors.CodeForbidden, err, "Admin access required")
		}
		return nil, err
	}
	if !user.IsAdmin {
		return nil, apperrors.New(apperrors.CodeForbidden, "Admin access required")
	}
	return user, nil
}

func (s *AuthService) parse(tokenString string) (subject, sessionID string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	subject, _ = claims["sub"].(string)
	sessionID, _ = claims["jti"].(string)
	if subject == "" || sessionID == "" {
		return "", "", errors.New("token is missing sub or jti")
	}
	return subject, sessionID, nil
}
