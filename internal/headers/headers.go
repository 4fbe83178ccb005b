// Package headers carries the inbound request's header map through the
// lifetime of one tool invocation. The map rides the per-call
// context.Context, so concurrent invocations can never observe each
// other's headers.
package headers

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey struct{}

// WithHeaders returns a child context holding a normalized copy of h.
// Every header is stored under both its original key and a lowercase
// copy, so readers can look up keys case-insensitively. Only the first
// value of multi-valued headers is kept.
func WithHeaders(ctx context.Context, h http.Header) context.Context {
	m := make(map[string]string, len(h)*2)
	for k, vs := range h {
		if len(vs) == 0 {
			continue
		}
		m[k] = vs[0]
		m[strings.ToLower(k)] = vs[0]
	}
	return context.WithValue(ctx, ctxKey{}, m)
}

// WithMap is like WithHeaders but takes an already-flat map. Used by
// tests and by transports that do not expose http.Header.
func WithMap(ctx context.Context, h map[string]string) context.Context {
	m := make(map[string]string, len(h)*2)
	for k, v := range h {
		m[k] = v
		m[strings.ToLower(k)] = v
	}
	return context.WithValue(ctx, ctxKey{}, m)
}

// FromContext returns the header map captured for this invocation, or an
// empty map when no capture happened (stdio transport, tests).
func FromContext(ctx context.Context) map[string]string {
	if m, ok := ctx.Value(ctxKey{}).(map[string]string); ok {
		return m
	}
	return map[string]string{}
}

// HTTPContextFunc plugs header capture into the streamable HTTP
// transport. It matches mcp-go's server.HTTPContextFunc signature.
func HTTPContextFunc(ctx context.Context, r *http.Request) context.Context {
	return WithHeaders(ctx, r.Header)
}

// Keys returns the header names present in ctx with anything that looks
// credential-bearing removed. Safe to log.
func Keys(ctx context.Context) []string {
	m := FromContext(ctx)
	out := make([]string, 0, len(m))
	for k := range m {
		lk := strings.ToLower(k)
		if strings.Contains(lk, "token") || strings.Contains(lk, "authorization") ||
			strings.Contains(lk, "cookie") || strings.Contains(lk, "secret") || strings.Contains(lk, "key") {
			continue
		}
		out = append(out, k)
	}
	return out
}
