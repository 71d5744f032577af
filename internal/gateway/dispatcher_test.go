package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"cosmiccraft/internal/delivery/middleware"
	"cosmiccraft/internal/delivery/response"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultPrefixes = map[string][]string{
	"user":         {"/api/users", "/api/auth"},
	"product":      {"/api/products", "/api/categories"},
	"cart":         {"/api/cart"},
	"wishlist":     {"/api/wishlist"},
	"order":        {"/api/orders"},
	"notification": {"/api/notifications"},
}

func newGatewayEcho(d *Dispatcher) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(discardLogger()).HandleHTTPError
	e.Any("/*", d.Handle)

	return e
}

func namedBackend(t *testing.T, name string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, name)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *response.ErrorInfo {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)

	return body.Error
}

func TestDispatcher_CartPathReachesCartForAnyRegistrationOrder(t *testing.T) {
	servers := make(map[string]*httptest.Server, len(defaultPrefixes))
	names := make([]string, 0, len(defaultPrefixes))
	for name := range defaultPrefixes {
		servers[name] = namedBackend(t, name)
		names = append(names, name)
	}

	rnd := rand.New(rand.NewPCG(1, 2))
	for round := range 20 {
		rnd.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

		table := NewTable()
		for _, name := range names {
			require.NoError(t, table.Register(Route{
				Name:     name,
				Prefixes: defaultPrefixes[name],
				Target:   mustURL(t, servers[name].URL),
				Timeout:  time.Second,
			}))
		}

		rec := serve(newGatewayEcho(NewDispatcher(table, discardLogger())), httptest.NewRequest(http.MethodGet, "/api/cart/42/items", nil))
		require.Equal(t, http.StatusOK, rec.Code, "round %d order %v", round, names)
		assert.Equal(t, "cart", rec.Body.String(), "round %d order %v", round, names)
	}
}

func TestDispatcher_ForwardsRequestAndResponseUnchanged(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Seen-Method", r.Method)
		w.Header().Set("X-Seen-Query", r.URL.RawQuery)
		w.Header().Set("X-Seen-Custom", r.Header.Get("X-Custom"))
		w.Header().Set("X-Seen-Path", r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write(append([]byte("echo:"), body...))
	}))
	defer backend.Close()

	table := NewTable()
	require.NoError(t, table.Register(Route{Name: "order", Prefixes: []string{"/api/orders"}, Target: mustURL(t, backend.URL)}))
	e := newGatewayEcho(NewDispatcher(table, discardLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/orders/create?userId=7&total=300", strings.NewReader(`[{"productId":10}]`))
	req.Header.Set("X-Custom", "kept")
	rec := serve(e, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, `echo:[{"productId":10}]`, rec.Body.String())
	assert.Equal(t, http.MethodPost, rec.Header().Get("X-Seen-Method"))
	assert.Equal(t, "userId=7&total=300", rec.Header().Get("X-Seen-Query"))
	assert.Equal(t, "kept", rec.Header().Get("X-Seen-Custom"))
	assert.Equal(t, "/api/orders/create", rec.Header().Get("X-Seen-Path"))
	assert.Empty(t, rec.Header().Get(HeaderGatewayError))
}

func TestDispatcher_NoMatchingRoute(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Register(Route{Name: "cart", Prefixes: []string{"/api/cart"}, Target: mustURL(t, namedBackend(t, "cart").URL)}))
	e := newGatewayEcho(NewDispatcher(table, discardLogger()))

	for _, path := range []string{"/api/unknown", "/api/car", "/"} {
		rec := serve(e, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "ROUTE_NOT_FOUND", decodeError(t, rec).Code, path)
	}
}

func TestDispatcher_UnreachableBackend(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	table := NewTable()
	require.NoError(t, table.Register(Route{Name: "wishlist", Prefixes: []string{"/api/wishlist"}, Target: mustURL(t, deadURL), Timeout: time.Second}))
	e := newGatewayEcho(NewDispatcher(table, discardLogger()))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/wishlist/7", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "unavailable", rec.Header().Get(HeaderGatewayError))
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", decodeError(t, rec).Code)
}

func TestDispatcher_HungBackendTimesOutWithoutAffectingOthers(t *testing.T) {
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer slow.Close()
	defer close(release)

	fast := namedBackend(t, "product")

	table := NewTable()
	require.NoError(t, table.Register(Route{Name: "order", Prefixes: []string{"/api/orders"}, Target: mustURL(t, slow.URL), Timeout: 100 * time.Millisecond}))
	require.NoError(t, table.Register(Route{Name: "product", Prefixes: []string{"/api/products"}, Target: mustURL(t, fast.URL), Timeout: time.Second}))
	e := newGatewayEcho(NewDispatcher(table, discardLogger()))

	var wg sync.WaitGroup
	var slowRec *httptest.ResponseRecorder
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowRec = serve(e, httptest.NewRequest(http.MethodGet, "/api/orders/all", nil))
	}()

	for i := range 5 {
		rec := serve(e, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/products/%d", i), nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "product", rec.Body.String())
	}

	wg.Wait()
	assert.Equal(t, http.StatusGatewayTimeout, slowRec.Code)
	assert.Equal(t, "timeout", slowRec.Header().Get(HeaderGatewayError))
	assert.Equal(t, "UPSTREAM_TIMEOUT", decodeError(t, slowRec).Code)
}

func TestDispatcher_MatchesLiteralPrefix(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Register(Route{Name: "cart", Prefixes: []string{"/api/cart"}, Target: mustURL(t, namedBackend(t, "cart").URL)}))
	e := newGatewayEcho(NewDispatcher(table, discardLogger()))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/cartoon", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cart", rec.Body.String())
}

func TestDispatcher_IgnoresRoutesRegisteredLater(t *testing.T) {
	table := NewTable()
	d := NewDispatcher(table, discardLogger())
	require.NoError(t, table.Register(Route{Name: "cart", Prefixes: []string{"/api/cart"}, Target: mustURL(t, namedBackend(t, "cart").URL)}))

	rec := serve(newGatewayEcho(d), httptest.NewRequest(http.MethodGet, "/api/cart/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
