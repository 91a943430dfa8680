// Package domain defines the core data model of the mock server: the
// endpoint descriptor with its policy envelope (methods, status, auth,
// delay, rate limit, dynamic variables), the rate-limit window description,
// and the wire envelopes used by the GraphQL and gRPC mock adapters.
//
// Values in this package are plain data. Descriptors are treated as
// immutable once installed in a registry; an update is a delete followed by
// an insert. All policy interpretation (auth checks, window accounting,
// projection) lives in the packages that consume these types.
package domain

import "strings"

// Endpoint is the descriptor stored per registered virtual endpoint.
//
// JSON field names mirror the admin wire format so that /list returns
// descriptors exactly as they were registered.
type Endpoint struct {
	// Methods lists the HTTP methods the endpoint answers to. Matching is
	// case-insensitive. An empty list accepts any method.
	Methods []string `json:"methods"`

	// File is the handle to the stored response body, a path inside the
	// uploads area. It must stay readable for the descriptor's lifetime.
	File string `json:"file"`

	// StatusCode is the response status. Nil means 200; values outside
	// [100,599] are served as 404.
	StatusCode *int `json:"status_code,omitempty"`

	// Authentication is the raw auth policy JSON ({username, password,
	// token_data}, all optional). Nil disables the auth gate.
	Authentication *string `json:"authentication,omitempty"`

	// DelayMS is an artificial processing delay in milliseconds.
	DelayMS *int64 `json:"delay,omitempty"`

	// RateLimit is the fixed-window budget for this endpoint, enforced per
	// (path, method).
	RateLimit *RateLimit `json:"rate_limit,omitempty"`

	// DynamicVars enables {{name}} substitution in the stored body.
	DynamicVars bool `json:"with_dynamic_vars,omitempty"`
}

// AllowsMethod reports whether the descriptor accepts the given HTTP
// method. An endpoint registered without methods accepts all of them.
func (e *Endpoint) AllowsMethod(method string) bool {
	if len(e.Methods) == 0 {
		return true
	}
	for _, m := range e.Methods {
		if strings.EqualFold(strings.TrimSpace(m), method) {
			return true
		}
	}
	return false
}

// EffectiveStatus resolves the stored status code: 200 when unset, 404 when
// the stored value is outside [100,599].
func (e *Endpoint) EffectiveStatus() int {
	if e.StatusCode == nil {
		return 200
	}
	if *e.StatusCode < 100 || *e.StatusCode > 599 {
		return 404
	}
	return *e.StatusCode
}

// Clone returns a deep copy of the descriptor. Registries hand out clones
// so the dispatch path never reads shared state after the guard is
// released.
func (e *Endpoint) Clone() *Endpoint {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Methods != nil {
		cp.Methods = append([]string(nil), e.Methods...)
	}
	if e.StatusCode != nil {
		v := *e.StatusCode
		cp.StatusCode = &v
	}
	if e.Authentication != nil {
		v := *e.Authentication
		cp.Authentication = &v
	}
	if e.DelayMS != nil {
		v := *e.DelayMS
		cp.DelayMS = &v
	}
	if e.RateLimit != nil {
		v := *e.RateLimit
		cp.RateLimit = &v
	}
	return &cp
}

// RateLimit is a fixed-window request budget: at most Requests admissions
// per WindowMS milliseconds for a given (path, method) pair.
type RateLimit struct {
	Requests int   `json:"requests"`
	WindowMS int64 `json:"window_ms"`
}
