package common

import (
	"context"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
	ContextKeyPoster    contextKey = "poster_path"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// WithPosterPath tags the context with the poster currently being processed
func WithPosterPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, ContextKeyPoster, path)
}

// PosterPathFromContext extracts the poster path from context
func PosterPathFromContext(ctx context.Context) string {
	if path, ok := ctx.Value(ContextKeyPoster).(string); ok {
		return path
	}
	return ""
}
