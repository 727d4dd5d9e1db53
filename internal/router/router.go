// Package router generates absolute URLs from named route patterns.
package router

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Router errors.
var (
	ErrRouteNotFound    = errors.New("route not found")
	ErrMissingParameter = errors.New("missing route parameter")
	ErrInvalidPattern   = errors.New("invalid route pattern")
	ErrInvalidBaseURL   = errors.New("invalid base url")
)

// Route names served by the catalog.
const (
	RouteCategoryList    = "category_list"
	RouteCategoryGet     = "category_get"
	RouteProductTypeList = "product_type_list"
	RouteProductTypeGet  = "product_type_get"
	RouteAttributeList   = "attribute_list"
	RouteAttributeGet    = "attribute_get"
	RouteProductList     = "product_list"
	RouteProductGet      = "product_get"
)

// DefaultRoutes maps route names to path patterns. A {name} segment is
// replaced by the parameter of that name.
var DefaultRoutes = map[string]string{
	RouteCategoryList:    "/api/rest/v1/categories",
	RouteCategoryGet:     "/api/rest/v1/categories/{code}",
	RouteProductTypeList: "/api/rest/v1/product-types",
	RouteProductTypeGet:  "/api/rest/v1/product-types/{code}",
	RouteAttributeList:   "/api/rest/v1/attributes",
	RouteAttributeGet:    "/api/rest/v1/attributes/{code}",
	RouteProductList:     "/api/rest/v1/products",
	RouteProductGet:      "/api/rest/v1/products/{identifier}",
}

var placeholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

type route struct {
	pattern string
	params  []string
}

// Router resolves named routes against a base URL. It is immutable after
// construction and safe for concurrent use.
type Router struct {
	base   string
	routes map[string]route
}

// New returns a router for routes rooted at baseURL, e.g.
// "http://localhost:8080". An empty baseURL yields relative URLs.
func New(baseURL string, routes map[string]string) (*Router, error) {
	base := strings.TrimRight(baseURL, "/")
	if base != "" {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
		}
	}

	r := &Router{base: base, routes: make(map[string]route, len(routes))}
	for name, pattern := range routes {
		if !strings.HasPrefix(pattern, "/") {
			return nil, fmt.Errorf("%w: route %q must start with /", ErrInvalidPattern, name)
		}
		var params []string
		for _, m := range placeholder.FindAllStringSubmatch(pattern, -1) {
			params = append(params, m[1])
		}
		r.routes[name] = route{pattern: pattern, params: params}
	}
	return r, nil
}

// Generate returns the URL of route with params substituted. Parameters not
// used by the pattern are appended as a query string sorted by key. Every
// placeholder needs a non-empty parameter.
func (r *Router) Generate(name string, params map[string]string) (string, error) {
	rt, ok := r.routes[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	used := make(map[string]bool, len(rt.params))
	for _, p := range rt.params {
		if params[p] == "" {
			return "", fmt.Errorf("%w: %q for route %q", ErrMissingParameter, p, name)
		}
		used[p] = true
	}

	path := placeholder.ReplaceAllStringFunc(rt.pattern, func(m string) string {
		return url.PathEscape(params[m[1:len(m)-1]])
	})

	query := url.Values{}
	for k, v := range params {
		if !used[k] {
			query.Set(k, v)
		}
	}

	u := r.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u, nil
}

// Has reports whether a route named name exists.
func (r *Router) Has(name string) bool {
	_, ok := r.routes[name]
	return ok
}
