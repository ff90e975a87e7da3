// Package contexthelpers stores request scoped values in a [context.Context].
package contexthelpers

import "context"

type contextKey string

const actorContextKey = contextKey("actor")

// Role is the role of the person using the dashboard.
type Role string

const (
	RoleAthlete Role = "athlete"
	RoleCoach   Role = "coach"
)

// Actor identifies who performs an operation. Authentication happens outside this module.
type Actor struct {
	Name string
	Role Role
}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFrom returns the actor stored in ctx and whether one was present.
func ActorFrom(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(Actor)
	return actor, ok
}

// IsCoach reports whether ctx carries a coach.
func IsCoach(ctx context.Context) bool {
	actor, ok := ActorFrom(ctx)
	return ok && actor.Role == RoleCoach
}
