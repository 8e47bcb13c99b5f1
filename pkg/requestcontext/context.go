// Package requestcontext carries request-scoped values between middleware and
// handlers without tying either to net/http types.
package requestcontext

import "context"

type (
	requestIDKey struct{}
	localeKey    struct{}
)

// WithRequestID stores the request correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the correlation ID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithLocale stores the negotiated response locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// Locale returns the negotiated locale, or "".
func Locale(ctx context.Context) string {
	locale, _ := ctx.Value(localeKey{}).(string)
	return locale
}
