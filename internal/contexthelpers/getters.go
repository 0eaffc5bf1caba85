package contexthelpers

import (
	"context"
)

// ActorID returns the identifier of the coach behind the current request, or
// an empty string when the session has none.
func ActorID(ctx context.Context) string {
	actorID, ok := ctx.Value(ActorIDContextKey).(string)
	if !ok {
		return ""
	}

	return actorID
}

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(CurrentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}
