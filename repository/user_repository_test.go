package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"tradeReportBackend/internal/db"
	"tradeReportBackend/models"
)

func TestUserRepository_CRUDAndQueries(t *testing.T) {
	d, err := db.Open("file:userrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()

	// Create
	u, err := repo.Create(ctx, "alice@x.com", "digest")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.Email != "alice@x.com" || u.Role != models.RoleUser {
		t.Fatalf("unexpected created user: %+v", u)
	}

	// GetByEmail
	g2, err := repo.GetByEmail(ctx, "alice@x.com")
	if err != nil || g2 == nil || g2.ID != u.ID || g2.Role != models.RoleUser {
		t.Fatalf("get by email: %v %+v", err, g2)
	}

	// Missing email is not an error
	missing, err := repo.GetByEmail(ctx, "nobody@x.com")
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for unknown email; got %+v err=%v", missing, err)
	}

	// List
	if _, err := repo.Create(ctx, "bob@x.com", "digest2"); err != nil {
		t.Fatalf("create second: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
	if list[0].Email != "alice@x.com" || list[1].Email != "bob@x.com" || list[0].PasswordHash != "digest" {
		t.Fatalf("list not ordered by id: %+v", list)
	}

	// UpdateRoleByEmail
	if err := repo.UpdateRoleByEmail(ctx, "alice@x.com", models.RoleAdmin); err != nil {
		t.Fatalf("update role: %v", err)
	}
	g3, _ := repo.GetByEmail(ctx, "alice@x.com")
	if g3.Role != models.RoleAdmin {
		t.Fatalf("role not updated: %+v", g3)
	}
	if err := repo.UpdateRoleByEmail(ctx, "nobody@x.com", models.RoleAdmin); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for unknown email, got %v", err)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	d, err := db.Open("file:userdup?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()
	if _, err := repo.Create(ctx, "a@x.com", "h1"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err = repo.Create(ctx, "a@x.com", "h2")
	var cv *ErrConstraintViolation
	if !errors.As(err, &cv) {
		t.Fatalf("expected ErrConstraintViolation, got %T %v", err, err)
	}
	if cv.Table != "users" || cv.Field != "email" {
		t.Fatalf("unexpected violation detail: %+v", cv)
	}
}

func TestUserRepository_RejectsUnknownRole(t *testing.T) {
	d, err := db.Open("file:userrole?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()
	if _, err := repo.Create(ctx, "b@x.com", "h"); err != nil {
		t.Fatalf("create: %v", err)
	}
	// CHECK constraint on users.role
	if err := repo.UpdateRoleByEmail(ctx, "b@x.com", models.Role("superuser")); err == nil {
		t.Fatalf("expected CHECK constraint failure")
	}
}
