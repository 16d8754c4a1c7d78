package requestctx

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

const (
	textCodeTouchpointMissing = "TOUCHPOINT_MISSING"
	textCodeAPIURLMissing     = "API_URL_MISSING"
)

type contextKey string

const (
	touchpointKey    contextKey = "progressions.touchpoint"
	apiURLKey        contextKey = "progressions.api_url"
	correlationIDKey contextKey = "progressions.correlation_id"
)

// Info carries the per-request metadata commands need: the calling system's
// touchpoint id, the upstream API base URL used to build resource links, and
// an optional correlation id.
type Info struct {
	TouchpointID  string
	APIURL        string
	CorrelationID string
}

// WithInfo stores request metadata on the context. Transports call this from
// middleware after reading the inbound headers.
func WithInfo(ctx context.Context, info Info) context.Context {
	ctx = context.WithValue(ctx, touchpointKey, strings.TrimSpace(info.TouchpointID))
	ctx = context.WithValue(ctx, apiURLKey, strings.TrimSpace(info.APIURL))
	if correlation := strings.TrimSpace(info.CorrelationID); correlation != "" {
		ctx = context.WithValue(ctx, correlationIDKey, correlation)
	}
	return ctx
}

// Resolve returns the request metadata or a validation error when the
// required touchpoint or API URL is absent.
func Resolve(ctx context.Context) (Info, error) {
	if ctx == nil {
		return Info{}, errors.New("go-progressions: missing request context", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest).
			WithTextCode(textCodeTouchpointMissing)
	}
	info := Info{
		TouchpointID:  stringValue(ctx, touchpointKey),
		APIURL:        stringValue(ctx, apiURLKey),
		CorrelationID: stringValue(ctx, correlationIDKey),
	}
	if info.TouchpointID == "" {
		return Info{}, errors.New("go-progressions: touchpoint id not found on request", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest).
			WithTextCode(textCodeTouchpointMissing)
	}
	if info.APIURL == "" {
		return Info{}, errors.New("go-progressions: api base url not found on request", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest).
			WithTextCode(textCodeAPIURLMissing)
	}
	return info, nil
}

// ResolveFromRouter mirrors Resolve for router transports where middleware
// stores request metadata on the underlying context.
func ResolveFromRouter(ctx router.Context) (Info, error) {
	if ctx == nil {
		return Info{}, errors.New("go-progressions: missing router context", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest).
			WithTextCode(textCodeTouchpointMissing)
	}
	return Resolve(ctx.Context())
}

// CorrelationID returns the correlation id stored on the context, if any.
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	return stringValue(ctx, correlationIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	value, _ := ctx.Value(key).(string)
	return value
}
