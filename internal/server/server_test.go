package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/cache"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/config"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newClient(t *testing.T) *client {
	t.Helper()
	testutil.UseDB(t, testutil.NewDB(t))

	cfg := &config.Config{
		Env:                "development",
		JWTSecret:          strings.Repeat("s", 32),
		JWTExpirationHours: 1,
		CORSOrigins:        "*",
	}
	store, err := cache.New("", time.Minute)
	require.NoError(t, err)

	return &client{t: t, app: New(cfg, store)}
}

func (c *client) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)

	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(c.t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

// login crea el administrador inicial y guarda su token.
func (c *client) login() {
	c.t.Helper()
	status, _ := c.do(http.MethodPost, "/api/auth/registrar-admin", map[string]any{
		"username": "Caja", "password": "secreto123", "nombre": "Caja Principal",
	})
	require.Equal(c.t, http.StatusCreated, status)

	status, body := c.do(http.MethodPost, "/api/auth/login", map[string]any{
		"username": "caja", "password": "secreto123",
	})
	require.Equal(c.t, http.StatusOK, status)
	c.token = body["token"].(string)
	require.NotEmpty(c.t, c.token)
}

func id(body map[string]any) uint {
	return uint(body["id"].(float64))
}

func TestAuth(t *testing.T) {
	c := newClient(t)

	status, body := c.do(http.MethodGet, "/api/mesas", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotEmpty(t, body["message"])

	c.login()

	status, _ = c.do(http.MethodPost, "/api/auth/registrar-admin", map[string]any{
		"username": "otro", "password": "secreto123", "nombre": "Otro",
	})
	assert.Equal(t, http.StatusConflict, status, "only the first admin can be bootstrapped")

	status, body = c.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "caja", body["username"])

	c.token = ""
	status, _ = c.do(http.MethodPost, "/api/auth/login", map[string]any{
		"username": "caja", "password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthAndMetrics(t *testing.T) {
	c := newClient(t)

	status, body := c.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "http_requests_total")
}

func TestCategoryDeleteBlockedByProducts(t *testing.T) {
	c := newClient(t)
	c.login()

	status, cat := c.do(http.MethodPost, "/api/categorias", map[string]any{"nombre": "Bebidas"})
	require.Equal(t, http.StatusCreated, status)

	status, _ = c.do(http.MethodPost, "/api/categorias", map[string]any{"nombre": "bebidas"})
	assert.Equal(t, http.StatusConflict, status)

	status, prod := c.do(http.MethodPost, "/api/productos", map[string]any{
		"nombre": "Agua", "precio": "2.50", "categoria_id": id(cat),
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := c.do(http.MethodDelete, fmt.Sprintf("/api/categorias/%d", id(cat)), nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.NotEmpty(t, body["message"])

	status, _ = c.do(http.MethodDelete, fmt.Sprintf("/api/productos/%d", id(prod)), nil)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = c.do(http.MethodDelete, fmt.Sprintf("/api/categorias/%d", id(cat)), nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestOrderAndPayment(t *testing.T) {
	c := newClient(t)
	c.login()

	_, cat := c.do(http.MethodPost, "/api/categorias", map[string]any{"nombre": "Cocina"})
	_, a := c.do(http.MethodPost, "/api/productos", map[string]any{
		"nombre": "Milanesa", "precio": "5.00", "categoria_id": id(cat),
	})
	_, b := c.do(http.MethodPost, "/api/productos", map[string]any{
		"nombre": "Flan", "precio": "3.00", "categoria_id": id(cat),
	})

	status, order := c.do(http.MethodPost, "/api/pedidos", map[string]any{
		"cliente_nombre": "Ana",
		"tipo":           "mostrador",
		"metodo_pago":    "efectivo",
		"items": []map[string]any{
			{"producto_id": id(a), "cantidad": 2},
			{"producto_id": id(b), "cantidad": 1},
		},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, decimal.RequireFromString("13.00").Equal(decimal.RequireFromString(order["total"].(string))))
	assert.Equal(t, "pendiente", order["estado"])
	assert.Len(t, order["items"], 2)

	status, body := c.do(http.MethodPost, "/api/pagos", map[string]any{
		"pedido_id": id(order), "metodo": "efectivo", "monto": "12.99",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["message"])

	status, _ = c.do(http.MethodPost, "/api/pedidos", map[string]any{
		"cliente_nombre": "Ana",
		"tipo":           "mostrador",
		"metodo_pago":    "efectivo",
		"items":          []map[string]any{{"producto_id": 999, "cantidad": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, status, "unknown product is a client error")

	c.token = ""
	status, body = c.do(http.MethodPost, "/api/pedidos/autoservicio", map[string]any{
		"cliente_nombre": "Luis",
		"tipo":           "delivery",
		"metodo_pago":    "transferencia",
		"items":          []map[string]any{{"producto_id": id(b), "cantidad": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, status, "delivery needs an address")
	assert.NotEmpty(t, body["message"])

	status, self := c.do(http.MethodPost, "/api/pedidos/autoservicio", map[string]any{
		"cliente_nombre":    "Luis",
		"cliente_direccion": "Belgrano 120",
		"tipo":              "delivery",
		"metodo_pago":       "transferencia",
		"items":             []map[string]any{{"producto_id": id(b), "cantidad": 1}},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "por_confirmar", self["estado"])
	assert.Equal(t, "Belgrano 120", self["cliente_direccion"])
}
