package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/pkg/apperrors"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

type staticVerifier map[string]string

func (v staticVerifier) Authenticate(_ context.Context, token string) (string, error) {
	if subject, ok := v[token]; ok {
		return subject, nil
	}
	return "", apperrors.New(apperrors.CodeUnauthorized, "Unauthorized")
}

type staticUsers map[string]*models.User

func (u staticUsers) CurrentUser(_ context.Context, subject string) (*models.User, error) {
	if user, ok := u[subject]; ok {
		return user, nil
	}
	return nil, apperrors.New(apperrors.CodeUnauthorized, "Unauthorized")
}

func (u staticUsers) RequireAdmin(ctx context.Context, subject string) (*models.User, error) {
	user, err := u.CurrentUser(ctx, subject)
	if err != nil || !user.IsAdmin {
		return nil, apperrors.New(apperrors.CodeForbidden, "Admin access required")
	}
	return user, nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if appErr := apperrors.As(err); appErr != nil {
		status = apperrors.MetadataFor(appErr.Code()).HTTPStatus
	}
	return c.Status(status).JSON(fiber.Map{"message": err.Error()})
}

func newApp(buf *bytes.Buffer, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	verifier := staticVerifier{"good": "user-1", "boss": "admin-1"}
	users := staticUsers{
		"user-1":  {ID: "user-1"},
		"admin-1": {ID: "admin-1", IsAdmin: true},
	}

	app.Use(middleware.Metrics(m))
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(logg))

	auth := middleware.AuthRequired(verifier, "sid")
	app.Get("/me", auth, middleware.LoadUser(users), func(c *fiber.Ctx) error {
		return c.JSON(middleware.CurrentUser(c))
	})
	app.Post("/admin", auth, middleware.AdminRequired(users), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	app := newApp(&bytes.Buffer{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, "user-1", user.ID)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "good"})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer forged")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRequired(t *testing.T) {
	app := newApp(&bytes.Buffer{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer boss")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRequestLoggerRecordsErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "request.complete", line["message"])
	assert.Equal(t, float64(500), line["status"])
	assert.NotEmpty(t, line["request_id"])
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg, reg)
	app := newApp(&bytes.Buffer{}, m)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	_, err := app.Test(req, -1)
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, mf := range mfs {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "route" && label.GetValue() == "/me" {
					found = true
				}
			}
		}
	}
	assert.True(t, found)
}
