package utils

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const ContextUserIDKey contextKey = "userID"

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID := ctx.Value(ContextUserIDKey)
	userIDStr, ok := userID.(string)
	return userIDStr, ok
}

// SessionData is the middleware-facing view of a stored session.
type SessionData struct {
	UserID    string
	ExpiresAt time.Time
}

func GenerateUUID() string {
	return uuid.NewString()
}
