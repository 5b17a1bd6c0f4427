package router_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ibplan-go-api/internal/config"
	"github.com/noah-isme/ibplan-go-api/internal/observability"
	"github.com/noah-isme/ibplan-go-api/internal/router"
)

func TestMetricsEndpointServesScrapeOutput(t *testing.T) {
	app := fiber.New()
	router.Register(app, config.Config{AppName: "ibplan-test"}, router.Dependencies{})

	observability.LoginAttempts().WithLabelValues("success").Inc()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "ibplan_login_attempts_total")
}

func TestHealthEndpointIsPublic(t *testing.T) {
	app := fiber.New()
	router.Register(app, config.Config{AppName: "ibplan-test"}, router.Dependencies{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "ibplan-test", resp.Header.Get("X-Application"))
}
