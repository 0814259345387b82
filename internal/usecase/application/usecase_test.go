package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	sqlrepo "microcredx-backend/internal/adapter/repository/mysql"
	"microcredx-backend/internal/domain/apperr"
	domain "microcredx-backend/internal/domain/application"
	"microcredx-backend/internal/infrastructure/db"
	"microcredx-backend/internal/testutil/applicationmock"
	"microcredx-backend/pkg/id"
)

func newSQLiteUsecase(t *testing.T) *Usecase {
	t.Helper()
	gdb, err := db.OpenSQLite("file:" + id.NewID32() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := gdb.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := sqlrepo.AutoMigrate(gdb); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return NewUsecase(sqlrepo.NewApplicationRepository(gdb))
}

func form(title string, amount float64) domain.Form {
	return domain.Form{LoanTitle: title, FirstName: "Ana", LoanAmount: amount, NationalID: "N-1"}
}

func TestSubmit_CreatesPendingUnpaid(t *testing.T) {
	var created *domain.Application
	uc := NewUsecase(&applicationmock.Repo{
		GetActiveByEmailFn: func(context.Context, string) (*domain.Application, error) { return nil, apperr.ErrNotFound },
		CreateFn: func(_ context.Context, a *domain.Application) error {
			a.ID = "a1"
			created = a
			return nil
		},
	})

	res, err := uc.Submit(context.Background(), SubmitInput{Email: "a@x.com", Form: form("Edu", 1000)})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !res.Created || res.Application != created {
		t.Fatalf("want created result, got %+v", res)
	}
	a := res.Application
	if a.Status != domain.StatusPending || a.ApplicationFeeStatus != domain.FeeUnpaid {
		t.Fatalf("status/fee: %s/%s", a.Status, a.ApplicationFeeStatus)
	}
	if a.ActiveEmail == nil || *a.ActiveEmail != "a@x.com" {
		t.Fatal("active email must be set on a Pending insert")
	}
	if a.CreatedAt.IsZero() || !a.CreatedAt.Equal(a.UpdatedAt) {
		t.Fatalf("timestamps: %v %v", a.CreatedAt, a.UpdatedAt)
	}
}

func TestSubmit_UpdatesExistingPending(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := &domain.Application{ID: "a1", Email: "a@x.com", Form: form("Old", 10), Status: domain.StatusPending,
		ApplicationFeeStatus: domain.FeePaid, CreatedAt: createdAt, UpdatedAt: createdAt}
	var gotForm domain.Form
	uc := NewUsecase(&applicationmock.Repo{
		GetActiveByEmailFn: func(context.Context, string) (*domain.Application, error) { return existing, nil },
		UpdateFormFn: func(_ context.Context, appID string, f domain.Form, _ time.Time) (domain.UpdateResult, error) {
			if appID != "a1" {
				t.Fatalf("updated wrong id %q", appID)
			}
			gotForm = f
			return domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
		CreateFn: func(context.Context, *domain.Application) error {
			t.Fatal("must not insert when a Pending application exists")
			return nil
		},
	})

	res, err := uc.Submit(context.Background(), SubmitInput{Email: "a@x.com", Form: form("New", 20)})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Created {
		t.Fatal("want update, got create")
	}
	if gotForm.LoanTitle != "New" || res.Application.LoanTitle != "New" {
		t.Fatalf("form not replaced: %+v", res.Application.Form)
	}
	if res.Application.ApplicationFeeStatus != domain.FeePaid || !res.Application.CreatedAt.Equal(createdAt) {
		t.Fatal("fee status and createdAt must be untouched")
	}
	if !res.Application.UpdatedAt.After(createdAt) {
		t.Fatal("updatedAt must be stamped")
	}
}

func TestSubmit_ConflictRetriesOnceAsUpdate(t *testing.T) {
	lookups := 0
	uc := NewUsecase(&applicationmock.Repo{
		GetActiveByEmailFn: func(context.Context, string) (*domain.Application, error) {
			lookups++
			if lookups == 1 {
				return nil, apperr.ErrNotFound
			}
			return &domain.Application{ID: "winner", Email: "a@x.com", Status: domain.StatusPending}, nil
		},
		CreateFn: func(context.Context, *domain.Application) error { return apperr.ErrConflict },
		UpdateFormFn: func(context.Context, string, domain.Form, time.Time) (domain.UpdateResult, error) {
			return domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	})

	res, err := uc.Submit(context.Background(), SubmitInput{Email: "a@x.com", Form: form("Mine", 5)})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Created || res.Application.ID != "winner" || res.Application.LoanTitle != "Mine" {
		t.Fatalf("want update of the winner's record, got %+v", res)
	}
	if lookups != 2 {
		t.Fatalf("want exactly one retry, lookups=%d", lookups)
	}
}

func TestSubmit_ConflictSurfacesWhenRetryFindsNothing(t *testing.T) {
	uc := NewUsecase(&applicationmock.Repo{
		GetActiveByEmailFn: func(context.Context, string) (*domain.Application, error) { return nil, apperr.ErrNotFound },
		CreateFn:           func(context.Context, *domain.Application) error { return apperr.ErrConflict },
	})
	_, err := uc.Submit(context.Background(), SubmitInput{Email: "a@x.com", Form: form("x", 1)})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestSubmit_RequiresEmail(t *testing.T) {
	uc := NewUsecase(&applicationmock.Repo{})
	if _, err := uc.Submit(context.Background(), SubmitInput{Form: form("x", 1)}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestSetStatus_Bogus(t *testing.T) {
	uc := NewUsecase(&applicationmock.Repo{
		UpdateStatusFn: func(context.Context, string, domain.Status, time.Time) (domain.UpdateResult, error) {
			t.Fatal("store must not be touched")
			return domain.UpdateResult{}, nil
		},
	})
	if _, err := uc.SetStatus(context.Background(), "a1", "bogus"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
	if _, err := uc.ListByStatus(context.Background(), "bogus"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("ListByStatus: want ErrInvalidArgument, got %v", err)
	}
}

func TestSubmit_SequentialSameEmail_SQLite(t *testing.T) {
	uc := newSQLiteUsecase(t)
	ctx := context.Background()

	first, err := uc.Submit(ctx, SubmitInput{Email: "a@x.com", Form: form("First", 100)})
	if err != nil || !first.Created {
		t.Fatalf("first: %+v, %v", first, err)
	}
	second, err := uc.Submit(ctx, SubmitInput{Email: "a@x.com", Form: form("Second", 200)})
	if err != nil || second.Created {
		t.Fatalf("second: %+v, %v", second, err)
	}

	all, err := uc.ListByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("want one record, got %d", len(all))
	}
	if all[0].ID != first.Application.ID || all[0].LoanTitle != "Second" || all[0].LoanAmount != 200 {
		t.Fatalf("second submission's fields should win: %+v", all[0])
	}
}

func TestSubmit_ConcurrentFirstTime_SQLite(t *testing.T) {
	uc := newSQLiteUsecase(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Submit(ctx, SubmitInput{Email: "race@x.com", Form: form("Edu", float64(100+i))})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil && !errors.Is(err, apperr.ErrConflict) {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	pending, err := uc.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("want exactly one Pending record, got %d", len(pending))
	}
}

func TestSetStatus_MovesBetweenListings_SQLite(t *testing.T) {
	uc := newSQLiteUsecase(t)
	ctx := context.Background()

	res, err := uc.Submit(ctx, SubmitInput{Email: "a@x.com", Form: form("Edu", 100)})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	appID := res.Application.ID

	if _, err := uc.SetStatus(ctx, appID, domain.StatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	pending, _ := uc.ListByStatus(ctx, domain.StatusPending)
	approved, _ := uc.ListByStatus(ctx, domain.StatusApproved)
	if len(pending) != 0 || len(approved) != 1 || approved[0].ID != appID {
		t.Fatalf("pending=%d approved=%+v", len(pending), approved)
	}
	if n, _ := uc.CountPending(ctx); n != 0 {
		t.Fatalf("CountPending = %d, want 0", n)
	}

	if _, err := uc.SetStatus(ctx, appID, "bogus"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("bogus: want ErrInvalidArgument, got %v", err)
	}
	got, err := uc.Get(ctx, appID)
	if err != nil || got.Status != domain.StatusApproved {
		t.Fatalf("status must be unchanged: %+v, %v", got, err)
	}

	// a fresh submission after approval starts a new Pending application
	again, err := uc.Submit(ctx, SubmitInput{Email: "a@x.com", Form: form("Edu 2", 50)})
	if err != nil || !again.Created || again.Application.ID == appID {
		t.Fatalf("resubmit after approval: %+v, %v", again, err)
	}
}
