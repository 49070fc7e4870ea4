package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/observability"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestApp(metrics *observability.Metrics) *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	return app
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestErrorMiddleware_MapsDomainSentinel(t *testing.T) {
	app := newTestApp(nil)
	app.Get("/fail", func(c *fiber.Ctx) error {
		return domain.ErrInvalidCredentials
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeError(t, resp)
	assert.Equal(t, "BAD_CREDENTIALS", body.Error.Code)
	assert.Equal(t, "User or password incorrect", body.Error.Message)
}

func TestErrorMiddleware_MapsFiberError(t *testing.T) {
	app := newTestApp(nil)
	app.Post("/parse", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/parse", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeError(t, resp)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)
	assert.Equal(t, "invalid payload", body.Error.Message)
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	app := newTestApp(nil)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRequestLogger_CountsMappedStatus(t *testing.T) {
	metrics := observability.NewMetrics()
	app := newTestApp(metrics)
	app.Get("/fail", func(c *fiber.Ctx) error {
		return domain.ErrInvalidCredentials
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	requests, errorsByCode := metrics.Snapshot()
	assert.Equal(t, int64(1), requests["/fail|GET|400"], "request counted under mapped status, got %v", requests)
	assert.Equal(t, int64(1), errorsByCode["/fail|GET|BAD_CREDENTIALS"])
}
