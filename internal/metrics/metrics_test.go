package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsClassifiedErrors(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperr.StatusOf(err))
		},
	})
	app.Use(Middleware())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing/:id", func(c *fiber.Ctx) error { return apperr.NotFound("no") })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/missing/:id", "404"))

	resp, err := app.Test(httptest.NewRequest("GET", "/missing/3", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/missing/:id", "404"))
	assert.Equal(t, before+1, after)
	assert.GreaterOrEqual(t, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/ok", "200")), 1.0)
}

func TestHandler_ExposesDomainMetrics(t *testing.T) {
	OrdersCreated.WithLabelValues("mesa").Inc()

	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `pos_orders_created_total{tipo="mesa"}`)
}
