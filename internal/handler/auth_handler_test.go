package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ibplan-go-api/internal/dto"
	"github.com/noah-isme/ibplan-go-api/internal/handler"
	"github.com/noah-isme/ibplan-go-api/internal/models"
	"github.com/noah-isme/ibplan-go-api/internal/service"
)

type mockSessionService struct {
	current      *models.Identity
	lastSubjects []string
	lastProgress int
	loginErr     error
}

func (m *mockSessionService) Rehydrate(_ context.Context) error { return nil }

func (m *mockSessionService) Login(_ context.Context, email, password string) (dto.LoginResponse, error) {
	if m.loginErr != nil {
		return dto.LoginResponse{}, m.loginErr
	}
	identity := models.Identity{ID: "2", Name: "Talal", Email: email, Role: models.RoleStudent, Subjects: []string{}}
	m.current = &identity
	return dto.LoginResponse{Token: "token-123", User: identity}, nil
}

func (m *mockSessionService) Logout(_ context.Context) error {
	m.current = nil
	return nil
}

func (m *mockSessionService) Current() (models.Identity, bool) {
	if m.current == nil {
		return models.Identity{}, false
	}
	return *m.current, true
}

func (m *mockSessionService) Profile() (dto.ProfileResponse, bool) {
	if m.current == nil {
		return dto.ProfileResponse{}, false
	}
	return dto.ProfileResponse{User: *m.current, Subjects: []models.Subject{}}, true
}

func (m *mockSessionService) UpdateSelectedSubjects(_ context.Context, ids []string) error {
	m.lastSubjects = ids
	return nil
}

func (m *mockSessionService) UpdateProgress(_ context.Context, progress int) error {
	m.lastProgress = progress
	return nil
}

func newAuthApp(svc service.SessionService) *fiber.App {
	app := fiber.New()
	validate := validator.New(validator.WithRequiredStructEnabled())
	h := handler.NewAuthHandler(svc, validate, zerolog.Nop())
	group := app.Group("/api/v1/auth")
	h.RegisterPublic(group)
	h.RegisterProtected(group)
	return app
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	svc := &mockSessionService{}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"talal@gmail.com","password":"IloveIB!"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool              `json:"success"`
		Data    dto.LoginResponse `json:"data"`
		Message string            `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "token-123", body.Data.Token)
	require.Equal(t, "talal@gmail.com", body.Data.User.Email)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	svc := &mockSessionService{loginErr: service.ErrInvalidCredentials}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"talal@gmail.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandler_LoginMissingFields(t *testing.T) {
	svc := &mockSessionService{}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandler_MeWithoutSession(t *testing.T) {
	svc := &mockSessionService{}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandler_UpdateProgressValidation(t *testing.T) {
	svc := &mockSessionService{}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/progress",
		strings.NewReader(`{"progress":250}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPut, "/api/v1/auth/progress",
		strings.NewReader(`{"progress":60}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 60, svc.lastProgress)
}

func TestAuthHandler_UpdateSubjects(t *testing.T) {
	svc := &mockSessionService{current: &models.Identity{ID: "2", Email: "talal@gmail.com"}}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/subjects",
		strings.NewReader(`{"subjects":["physics-hl","chemistry-hl"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, []string{"physics-hl", "chemistry-hl"}, svc.lastSubjects)
}
