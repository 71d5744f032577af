package gateway

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"cosmiccraft/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)

	return u
}

func TestPathPrefix(t *testing.T) {
	pred := PathPrefix("/api/cart", "/api/wishlist/")

	tests := []struct {
		path string
		want bool
	}{
		{"/api/cart", true},
		{"/api/cart/42/items", true},
		{"/api/cartoon", true},
		{"/api/wishlist/7", true},
		{"/api/wishlist", false},
		{"/api/orders", false},
		{"/", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, pred(httptest.NewRequest("GET", tt.path, nil)))
		})
	}
}

func TestTable_Register_Rejects(t *testing.T) {
	target := mustURL(t, "http://cart-service:8083")

	tests := []struct {
		name  string
		route Route
	}{
		{"empty name", Route{Prefixes: []string{"/api/cart"}, Target: target}},
		{"relative target", Route{Name: "cart", Prefixes: []string{"/api/cart"}, Target: mustURL(t, "cart-service:8083/x")}},
		{"nil target", Route{Name: "cart", Prefixes: []string{"/api/cart"}}},
		{"prefix without slash", Route{Name: "cart", Prefixes: []string{"api/cart"}, Target: target}},
		{"no predicate", Route{Name: "cart", Target: target}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, NewTable().Register(tt.route))
		})
	}
}

func TestTable_Register_DuplicateName(t *testing.T) {
	table := NewTable()
	route := Route{Name: "cart", Prefixes: []string{"/api/cart"}, Target: mustURL(t, "http://cart-service:8083")}

	require.NoError(t, table.Register(route))
	assert.Error(t, table.Register(route))
	assert.Len(t, table.Routes(), 1)
}

func TestTable_Match_FirstWins(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Register(Route{Name: "orders", Prefixes: []string{"/api/orders"}, Target: mustURL(t, "http://a")}))
	require.NoError(t, table.Register(Route{Name: "all-api", Prefixes: []string{"/api"}, Target: mustURL(t, "http://b")}))

	route, ok := table.Match(httptest.NewRequest("GET", "/api/orders/1", nil))
	require.True(t, ok)
	assert.Equal(t, "orders", route.Name)

	route, ok = table.Match(httptest.NewRequest("GET", "/api/products", nil))
	require.True(t, ok)
	assert.Equal(t, "all-api", route.Name)

	_, ok = table.Match(httptest.NewRequest("GET", "/static/logo.png", nil))
	assert.False(t, ok)
}

func TestTable_Overlaps(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Register(Route{Name: "users", Prefixes: []string{"/api/users", "/api/auth"}, Target: mustURL(t, "http://a")}))
	require.NoError(t, table.Register(Route{Name: "cart", Prefixes: []string{"/api/cart"}, Target: mustURL(t, "http://b")}))
	assert.Empty(t, table.Overlaps())

	require.NoError(t, table.Register(Route{Name: "auth-v2", Prefixes: []string{"/api/auth/v2"}, Target: mustURL(t, "http://c")}))
	assert.Equal(t, []string{"users(/api/auth) ~ auth-v2(/api/auth/v2)"}, table.Overlaps())
}

func TestNewTableFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Gateway.DefaultTimeout = 3 * time.Second
	cfg.Gateway.Routes = []config.RouteConfig{
		{Name: "user_service", Prefixes: []string{"/api/users", "/api/auth"}, Target: "http://user-service:8081"},
		{Name: "order_service", Prefixes: []string{"/api/orders"}, Target: "http://order-service:8084", Timeout: 15 * time.Second},
	}

	table, err := NewTableFromConfig(cfg, discardLogger())
	require.NoError(t, err)

	routes := table.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "user_service", routes[0].Name)
	assert.Equal(t, 3*time.Second, routes[0].Timeout)
	assert.Equal(t, 15*time.Second, routes[1].Timeout)
	assert.Equal(t, "order-service:8084", routes[1].Target.Host)
}

func TestNewTableFromConfig_InvalidRoute(t *testing.T) {
	cfg := &config.Config{}
	cfg.Gateway.Routes = []config.RouteConfig{
		{Name: "broken", Prefixes: []string{"/api/x"}, Target: "::not a url"},
	}

	_, err := NewTableFromConfig(cfg, discardLogger())
	assert.Error(t, err)
}
