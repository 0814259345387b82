package catalog

import (
	"time"

	domain "microcredx-backend/internal/domain/catalog"
)

type CreateProductInput struct {
	Title        string          `json:"title"`
	Image        string          `json:"image"`
	ShortDesc    string          `json:"shortDesc"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	InterestRate float64         `json:"interestRate"`
	MaxLimit     float64         `json:"maxLimit"`
	EMIPlans     domain.EMIPlans `json:"emiPlans"`
	ShowOnHome   bool            `json:"showOnHome"`
	CreatedBy    string          `json:"createdBy"`
	// Caller supplied timestamps are kept as-is.
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// UpdateProductInput lists the fields an update may touch; nil means unchanged.
type UpdateProductInput struct {
	Title        *string          `json:"title"`
	Image        *string          `json:"image"`
	ShortDesc    *string          `json:"shortDesc"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	InterestRate *float64         `json:"interestRate"`
	MaxLimit     *float64         `json:"maxLimit"`
	EMIPlans     *domain.EMIPlans `json:"emiPlans"`
	ShowOnHome   *bool            `json:"showOnHome"`
}
