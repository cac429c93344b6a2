package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const (
	userIDKey      contextKey = "user_id"
	requestIDKey   contextKey = "request_id"
	requestInfoKey contextKey = "request_info"
)

// requestInfo lets inner middleware report values back to Logging.
type requestInfo struct {
	userID string
}

func SetUserID(ctx context.Context, userID string) context.Context {
	if info, ok := ctx.Value(requestInfoKey).(*requestInfo); ok {
		info.userID = userID
	}
	return context.WithValue(ctx, userIDKey, userID)
}

func GetUserID(r *http.Request) string {
	v, _ := r.Context().Value(userIDKey).(string)
	return v
}

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the id assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}
