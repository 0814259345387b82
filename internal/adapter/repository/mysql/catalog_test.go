package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"microcredx-backend/internal/domain/apperr"
	"microcredx-backend/internal/domain/catalog"
)

func makeProduct(title, createdBy string, home bool) *catalog.Product {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &catalog.Product{
		Title:        title,
		ShortDesc:    "short",
		Category:     "personal",
		InterestRate: 5,
		MaxLimit:     10000,
		EMIPlans:     catalog.EMIPlans{{Months: 6, Label: "6 months"}, {Months: 12}},
		ShowOnHome:   home,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCatalog_CreateAndGetByID(t *testing.T) {
	repo := NewCatalogRepository(openTestDB(t))
	ctx := context.Background()

	p := makeProduct("Personal Loan", "m@x.com", true)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !validID(p.ID) {
		t.Fatalf("Create did not assign a hex32 id: %q", p.ID)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Personal Loan" || got.MaxLimit != 10000 || !got.ShowOnHome {
		t.Fatalf("unexpected product: %+v", got)
	}
	if len(got.EMIPlans) != 2 || got.EMIPlans[0].Months != 6 || got.EMIPlans[0].Label != "6 months" {
		t.Fatalf("emi plans not round-tripped: %+v", got.EMIPlans)
	}
	if !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Fatalf("createdAt %v != updatedAt %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestCatalog_GetByID_NotFoundAndMalformed(t *testing.T) {
	repo := NewCatalogRepository(openTestDB(t))
	ctx := context.Background()

	for _, id := range []string{"eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", "not-an-id", ""} {
		if _, err := repo.GetByID(ctx, id); !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("GetByID(%q): expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestCatalog_ListFilters(t *testing.T) {
	repo := NewCatalogRepository(openTestDB(t))
	ctx := context.Background()

	seed := []*catalog.Product{
		makeProduct("A", "m1@x.com", true),
		makeProduct("B", "m1@x.com", false),
		makeProduct("C", "m2@x.com", true),
		makeProduct("D", "m2@x.com", true),
	}
	for _, p := range seed {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := repo.List(ctx, catalog.Filter{})
	if err != nil || len(all) != 4 {
		t.Fatalf("List all: len=%d err=%v", len(all), err)
	}

	home, err := repo.List(ctx, catalog.Filter{ShowOnHome: true})
	if err != nil || len(home) != 3 {
		t.Fatalf("List home: len=%d err=%v", len(home), err)
	}

	capped, err := repo.List(ctx, catalog.Filter{ShowOnHome: true, Limit: 2})
	if err != nil || len(capped) != 2 {
		t.Fatalf("List home capped: len=%d err=%v", len(capped), err)
	}

	mine, err := repo.List(ctx, catalog.Filter{CreatedBy: "m1@x.com"})
	if err != nil || len(mine) != 2 {
		t.Fatalf("List by creator: len=%d err=%v", len(mine), err)
	}
	for _, p := range mine {
		if p.CreatedBy != "m1@x.com" {
			t.Fatalf("foreign product in creator listing: %+v", p)
		}
	}

	none, err := repo.List(ctx, catalog.Filter{CreatedBy: "nobody@x.com"})
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("List empty: %v err=%v", none, err)
	}
}

func TestCatalog_UpdateOnlyTouchesGivenFields(t *testing.T) {
	repo := NewCatalogRepository(openTestDB(t))
	ctx := context.Background()

	p := makeProduct("Old", "m@x.com", false)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "New"
	rate := 7.5
	later := p.UpdatedAt.Add(time.Second)
	n, err := repo.Update(ctx, p.ID, catalog.Patch{Title: &title, InterestRate: &rate, UpdatedAt: later})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if n != 1 {
		t.Fatalf("modified = %d, want 1", n)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "New" || got.InterestRate != 7.5 {
		t.Fatalf("fields not updated: %+v", got)
	}
	if got.MaxLimit != p.MaxLimit || got.ShortDesc != p.ShortDesc || got.Category != p.Category {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if !got.UpdatedAt.After(p.UpdatedAt) {
		t.Fatalf("updatedAt did not advance: %v -> %v", p.UpdatedAt, got.UpdatedAt)
	}
}

func TestCatalog_UpdateEMIPlans(t *testing.T) {
	repo := NewCatalogRepository(openTestDB(t))
	ctx := context.Background()

	p := makeProduct("EMI", "m@x.com", false)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	plans := catalog.EMIPlans{{Months: 24, Label: "2 years"}}
	home := true
	if _, err := repo.Update(ctx, p.ID, catalog.Patch{EMIPlans: &plans, ShowOnHome: &home, UpdatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := repo.GetByID(ctx, p.ID)
	if len(got.EMIPlans) != 1 || got.EMIPlans[0].Months != 24 || !got.ShowOnHome {
		t.Fatalf("unexpected product after update: %+v", got)
	}
}

func TestCatalog_UpdateMissing(t *testing.T) {
	repo := NewCatalogRepository(openTestDB(t))
	title := "x"
	_, err := repo.Update(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", catalog.Patch{Title: &title, UpdatedAt: time.Now()})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalog_DeleteIsIdempotent(t *testing.T) {
	repo := NewCatalogRepository(openTestDB(t))
	ctx := context.Background()

	p := makeProduct("Gone", "m@x.com", true)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	n, err := repo.Delete(ctx, p.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	if _, err := repo.GetByID(ctx, p.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	n, err = repo.Delete(ctx, p.ID)
	if err != nil || n != 0 {
		t.Fatalf("second Delete: n=%d err=%v", n, err)
	}
	n, err = repo.Delete(ctx, "garbage")
	if err != nil || n != 0 {
		t.Fatalf("malformed Delete: n=%d err=%v", n, err)
	}
}
