package contexthelpers_test

import (
	"testing"

	"github.com/myrjola/boxlevels/internal/contexthelpers"
)

func TestActor(t *testing.T) {
	ctx := t.Context()
	if _, ok := contexthelpers.ActorFrom(ctx); ok {
		t.Fatal("empty context must not carry an actor")
	}
	if contexthelpers.IsCoach(ctx) {
		t.Fatal("empty context must not be a coach")
	}

	coach := contexthelpers.Actor{Name: "Giulia", Role: contexthelpers.RoleCoach}
	ctx = contexthelpers.WithActor(ctx, coach)
	got, ok := contexthelpers.ActorFrom(ctx)
	if !ok || got != coach {
		t.Errorf("ActorFrom() = %v, %v, want %v, true", got, ok, coach)
	}
	if !contexthelpers.IsCoach(ctx) {
		t.Error("IsCoach() = false, want true")
	}
}
