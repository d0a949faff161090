package http

import "context"

type contextKey int

const (
	userIDKey contextKey = iota
	accessLogKey
)

// accessLogEntry is placed on the context by requestLogger so middleware further
// down can report the authenticated caller back up.
type accessLogEntry struct {
	userID int32
}

func withAccessLogEntry(ctx context.Context) (context.Context, *accessLogEntry) {
	entry := &accessLogEntry{}
	return context.WithValue(ctx, accessLogKey, entry), entry
}

func withUserID(ctx context.Context, userID int32) context.Context {
	if entry, ok := ctx.Value(accessLogKey).(*accessLogEntry); ok {
		entry.userID = userID
	}
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the caller set by the auth middleware.
func UserIDFromContext(ctx context.Context) (int32, bool) {
	id, ok := ctx.Value(userIDKey).(int32)
	return id, ok
}
