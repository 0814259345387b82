package usermock

import (
	"context"
	"errors"
	"testing"

	domain "microcredx-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

func TestRepo_GetByEmail(t *testing.T) {
	ctx := context.Background()
	want := &domain.User{Email: "a@x.com", Role: domain.RoleManager}

	m := &Repo{GetByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
		if email != want.Email {
			t.Fatalf("email = %q", email)
		}
		return want, nil
	}}
	got, err := m.GetByEmail(ctx, "a@x.com")
	if err != nil || got != want {
		t.Fatalf("GetByEmail: got %v, %v", got, err)
	}

	m = &Repo{}
	if _, err := m.GetByEmail(ctx, "a@x.com"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByEmail default: want context.Canceled, got %v", err)
	}
	if _, err := m.UpdateRole(ctx, "id", domain.RoleAdmin); !errors.Is(err, context.Canceled) {
		t.Fatalf("UpdateRole default: want context.Canceled, got %v", err)
	}
}
