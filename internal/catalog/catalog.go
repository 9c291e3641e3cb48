package catalog

import (
	"errors"
	"fmt"
)

// ErrRouteNotFound is returned when a route id is not in the catalog.
var ErrRouteNotFound = errors.New("route not found")

// Catalog is an immutable, ordered set of routes. It is safe for concurrent
// reads.
type Catalog struct {
	routes []Route
	byID   map[string]int
}

// New builds a catalog from routes, rejecting duplicate ids and routes with
// out-of-range data.
func New(routes ...Route) (*Catalog, error) {
	c := &Catalog{
		routes: make([]Route, 0, len(routes)),
		byID:   make(map[string]int, len(routes)),
	}
	for _, r := range routes {
		if err := r.validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[r.ID]; exists {
			return nil, fmt.Errorf("route %q: duplicate id", r.ID)
		}
		c.byID[r.ID] = len(c.routes)
		c.routes = append(c.routes, r.clone())
	}
	return c, nil
}

// Len returns the number of routes.
func (c *Catalog) Len() int {
	return len(c.routes)
}

// Get returns the route with the given id.
func (c *Catalog) Get(id string) (Route, error) {
	i, ok := c.byID[id]
	if !ok {
		return Route{}, ErrRouteNotFound
	}
	return c.routes[i].clone(), nil
}

// Has reports whether id names a route in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// List returns every route in catalog order.
func (c *Catalog) List() []Route {
	out := make([]Route, len(c.routes))
	for i, r := range c.routes {
		out[i] = r.clone()
	}
	return out
}

// Labels returns the route picker entries in catalog order.
func (c *Catalog) Labels() []string {
	labels := make([]string, len(c.routes))
	for i, r := range c.routes {
		labels[i] = r.Label()
	}
	return labels
}

// AverageFareChangePercent is the mean fare change over routes whose current
// fare is known. Routes charging the standard fare count as 0%. ok is false
// when no route has a current fare.
func (c *Catalog) AverageFareChangePercent() (avg float64, ok bool) {
	var total float64
	var n int
	for _, r := range c.routes {
		if r.CurrentFare == nil {
			continue
		}
		n++
		if pct, changed := r.FareChangePercent(); changed {
			total += float64(pct)
		}
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}
