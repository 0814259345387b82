package mysql

import (
	"context"
	"time"

	"microcredx-backend/internal/domain/apperr"
	"microcredx-backend/internal/domain/application"
	"microcredx-backend/pkg/id"

	"gorm.io/gorm"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) List(ctx context.Context, status application.Status, email string) ([]application.Application, error) {
	q := r.db.WithContext(ctx).Model(&application.Application{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if email != "" {
		q = q.Where("email = ?", email)
	}
	out := []application.Application{}
	if err := q.Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, wrapError(err, "list applications")
	}
	return out, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, appID string) (*application.Application, error) {
	if !validID(appID) {
		return nil, apperr.ErrNotFound
	}
	var out application.Application
	if err := r.db.WithContext(ctx).Where("id = ?", appID).First(&out).Error; err != nil {
		return nil, wrapError(err, "get application")
	}
	return &out, nil
}

func (r *ApplicationRepository) GetActiveByEmail(ctx context.Context, email string) (*application.Application, error) {
	var out application.Application
	err := r.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, application.StatusPending).
		First(&out).Error
	if err != nil {
		return nil, wrapError(err, "get active application")
	}
	return &out, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	a.ID = id.NewID32()
	if a.Status == application.StatusPending {
		email := a.Email
		a.ActiveEmail = &email
	} else {
		a.ActiveEmail = nil
	}
	return wrapError(r.db.WithContext(ctx).Create(a).Error, "create application")
}

func (r *ApplicationRepository) UpdateForm(ctx context.Context, appID string, f application.Form, at time.Time) (application.UpdateResult, error) {
	if !validID(appID) {
		return application.UpdateResult{}, apperr.ErrNotFound
	}
	values := map[string]any{
		"loan_title":     f.LoanTitle,
		"interest_rate":  f.InterestRate,
		"first_name":     f.FirstName,
		"last_name":      f.LastName,
		"contact_number": f.ContactNumber,
		"national_id":    f.NationalID,
		"income_source":  f.IncomeSource,
		"monthly_income": f.MonthlyIncome,
		"loan_amount":    f.LoanAmount,
		"reason":         f.Reason,
		"address":        f.Address,
		"extra_notes":    f.ExtraNotes,
		"updated_at":     at,
	}
	matched, modified, err := updateExisting(ctx, r.db, &application.Application{}, values,
		"id = ? AND status = ?", appID, application.StatusPending)
	if err != nil {
		return application.UpdateResult{}, wrapError(err, "update application form")
	}
	return application.UpdateResult{MatchedCount: matched, ModifiedCount: modified}, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, appID string, s application.Status, at time.Time) (application.UpdateResult, error) {
	if !validID(appID) {
		return application.UpdateResult{}, apperr.ErrNotFound
	}
	values := map[string]any{
		"status":       s,
		"updated_at":   at,
		"active_email": nil,
	}
	if s == application.StatusPending {
		values["active_email"] = gorm.Expr("email")
	}
	matched, modified, err := updateExisting(ctx, r.db, &application.Application{}, values, "id = ?", appID)
	if err != nil {
		return application.UpdateResult{}, wrapError(err, "update application status")
	}
	return application.UpdateResult{MatchedCount: matched, ModifiedCount: modified}, nil
}

func (r *ApplicationRepository) Count(ctx context.Context, status application.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&application.Application{}).Where("status = ?", status).Count(&n).Error
	if err != nil {
		return 0, wrapError(err, "count applications")
	}
	return n, nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, appID string) (int64, error) {
	if !validID(appID) {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id = ?", appID).Delete(&application.Application{})
	if res.Error != nil {
		return 0, wrapError(res.Error, "delete application")
	}
	return res.RowsAffected, nil
}
