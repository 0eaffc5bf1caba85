package contexthelpers

import (
	"context"
	"net/http"
)

func SetActorID(r *http.Request, actorID string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, ActorIDContextKey, actorID)
	return r.WithContext(ctx)
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, CurrentPathContextKey, currentPath)
	return r.WithContext(ctx)
}
