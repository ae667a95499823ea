package core

import "context"

type requestMetaKey struct{}

// RequestMeta describes who triggered a change. It is attached to audit
// log lines, not stored with the audit entry.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// WithRequestMeta returns a copy of ctx carrying m.
func WithRequestMeta(ctx context.Context, m RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, m)
}

// RequestMetaFrom returns the metadata stored in ctx, or the zero value.
func RequestMetaFrom(ctx context.Context) RequestMeta {
	m, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return m
}
