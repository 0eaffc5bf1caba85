package contexthelpers

type contextKey string

const ActorIDContextKey = contextKey("actorID")
const CurrentPathContextKey = contextKey("currentPath")
