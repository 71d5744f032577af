package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"cosmiccraft/config"
	"cosmiccraft/internal/errors"
)

// Table is the ordered list of routes. It is filled once at startup and only read afterwards.
type Table struct {
	routes []Route
	names  map[string]struct{}
}

func NewTable() *Table {
	return &Table{names: make(map[string]struct{})}
}

// Register appends route to the table. The first matching route wins on dispatch.
func (t *Table) Register(route Route) error {
	if route.Name == "" {
		return errors.New("route name must not be empty")
	}
	if _, dup := t.names[route.Name]; dup {
		return errors.Errorf("route %q is registered twice", route.Name)
	}
	if route.Target == nil || !route.Target.IsAbs() || route.Target.Host == "" {
		return errors.Errorf("route %q needs an absolute target URL", route.Name)
	}
	if route.Predicate == nil {
		if len(route.Prefixes) == 0 {
			return errors.Errorf("route %q has neither prefixes nor a predicate", route.Name)
		}
		route.Predicate = PathPrefix(route.Prefixes...)
	}
	for _, p := range route.Prefixes {
		if !strings.HasPrefix(p, "/") {
			return errors.Errorf("route %q: prefix %q must start with /", route.Name, p)
		}
	}

	t.names[route.Name] = struct{}{}
	t.routes = append(t.routes, route)

	return nil
}

// Match returns the first route whose predicate accepts r.
func (t *Table) Match(r *http.Request) (Route, bool) {
	for _, route := range t.routes {
		if route.Predicate(r) {
			return route, true
		}
	}

	return Route{}, false
}

// Routes returns a copy of the registered routes in registration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)

	return out
}

// Overlaps lists prefix pairs of different routes where one contains the other.
// With overlapping prefixes the registration order decides the winner.
func (t *Table) Overlaps() []string {
	var found []string
	for i, a := range t.routes {
		for _, b := range t.routes[i+1:] {
			for _, pa := range a.Prefixes {
				for _, pb := range b.Prefixes {
					if prefixesOverlap(pa, pb) {
						found = append(found, fmt.Sprintf("%s(%s) ~ %s(%s)", a.Name, pa, b.Name, pb))
					}
				}
			}
		}
	}

	return found
}

// NewTableFromConfig builds the table from gateway.routes in file order.
func NewTableFromConfig(cfg *config.Config, logger *slog.Logger) (*Table, error) {
	table := NewTable()
	for _, rc := range cfg.Gateway.Routes {
		target, err := url.Parse(rc.Target)
		if err != nil {
			return nil, errors.Wrapf(err, "route %q: invalid target", rc.Name)
		}

		timeout := rc.Timeout
		if timeout <= 0 {
			timeout = cfg.Gateway.DefaultTimeout
		}

		if err := table.Register(Route{
			Name:     rc.Name,
			Prefixes: rc.Prefixes,
			Target:   target,
			Timeout:  timeout,
		}); err != nil {
			return nil, err
		}
	}

	for _, overlap := range table.Overlaps() {
		logger.Warn("Gateway route prefixes overlap, registration order decides", slog.String("overlap", overlap))
	}

	return table, nil
}
