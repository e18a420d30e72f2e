package services_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/pkg/apperrors"
	"storefront/pkg/oidc"
)

const testSecret = "test_session_secret"

func newAuthService(users *MockUserRepository, sessions *memorySessions, provider services.IdentityProvider) *services.AuthService {
	return services.NewAuthService(users, sessions, provider, services.AuthConfig{
		Secret:      testSecret,
		TTL:         time.Hour,
		AdminEmails: []string{"Boss@Example.com"},
	})
}

func TestAuthService_IssueAndAuthenticate(t *testing.T) {
	sessions := newMemorySessions()
	service := newAuthService(new(MockUserRepository), sessions, nil)
	ctx := context.Background()

	token, err := service.IssueToken(ctx, "sub-1")
	require.NoError(t, err)

	subject, err := service.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", subject)

	require.NoError(t, service.Logout(ctx, token))
	_, err = service.Authenticate(ctx, token)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))
}

func TestAuthService_AuthenticateRejectsBadTokens(t *testing.T) {
	sessions := newMemorySessions()
	service := newAuthService(new(MockUserRepository), sessions, nil)
	ctx := context.Background()

	_, err := service.Authenticate(ctx, "not-a-token")
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "sub-1", "jti": "x", "exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = service.Authenticate(ctx, signed)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "sub-1", "jti": "y", "exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err = expired.SignedString([]byte(testSecret))
	require.NoError(t, err)
	require.NoError(t, sessions.SaveSession(ctx, "y", "sub-1", time.Hour))
	_, err = service.Authenticate(ctx, signed)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))

	assert.NoError(t, service.Logout(ctx, "garbage"))
}

func TestAuthService_LoginFlow(t *testing.T) {
	users := new(MockUserRepository)
	sessions := newMemorySessions()
	provider := &stubProvider{identity: &oidc.Identity{
		Subject: "sub-9", Email: "boss@example.com", FirstName: "Pat",
	}}
	service := newAuthService(users, sessions, provider)
	ctx := context.Background()

	redirect, err := service.BeginLogin(ctx)
	require.NoError(t, err)
	parsed, err := url.Parse(redirect)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)

	users.On("Upsert", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.ID == "sub-9" && u.IsAdmin && u.Email != nil && *u.Email == "boss@example.com"
	})).Return(nil).Once()

	token, user, err := service.CompleteLogin(ctx, state, "code")
	require.NoError(t, err)
	assert.Equal(t, "Pat", user.FirstName)

	subject, err := service.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "sub-9", subject)

	// State values are single use.
	_, _, err = service.CompleteLogin(ctx, state, "code")
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))
	users.AssertExpectations(t)
}

func TestAuthService_LoginUnavailableWithoutProvider(t *testing.T) {
	service := newAuthService(new(MockUserRepository), newMemorySessions(), nil)

	_, err := service.BeginLogin(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.CodeUnavailable))
}

func TestAuthService_RequireAdmin(t *testing.T) {
	users := new(MockUserRepository)
	service := newAuthService(users, newMemorySessions(), nil)
	ctx := context.Background()

	users.On("GetByID", ctx, "admin").Return(&models.User{ID: "admin", IsAdmin: true}, nil).Once()
	users.On("GetByID", ctx, "user").Return(&models.User{ID: "user"}, nil).Once()
	users.On("GetByID", ctx, "ghost").Return(nil, apperrors.New(apperrors.CodeNotFound, "User not found")).Once()

	_, err := service.RequireAdmin(ctx, "admin")
	assert.NoError(t, err)

	_, err = service.RequireAdmin(ctx, "user")
	require.Error(t, err)
	assert.Equal(t, "Admin access required", apperrors.As(err).Message())

	_, err = service.RequireAdmin(ctx, "ghost")
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
	users.AssertExpectations(t)
}
