package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type EMIPlan struct {
	Months int    `json:"months" bson:"months"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
}

// EMIPlans is stored as a JSON document in SQL stores.
type EMIPlans []EMIPlan

func (p EMIPlans) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	return string(b), err
}

func (p *EMIPlans) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("emi plans: unsupported column type")
	}
}

// Product is a loan offering listed on the marketplace.
type Product struct {
	ID           string    `gorm:"primaryKey;size:32;column:id" json:"_id"`
	Title        string    `gorm:"size:255" json:"title"`
	Image        string    `gorm:"type:text" json:"image"`
	ShortDesc    string    `gorm:"type:text" json:"shortDesc"`
	Description  string    `gorm:"type:text" json:"description"`
	Category     string    `gorm:"size:100" json:"category"`
	InterestRate float64   `json:"interestRate"`
	MaxLimit     float64   `json:"maxLimit"`
	EMIPlans     EMIPlans  `gorm:"type:text" json:"emiPlans"`
	ShowOnHome   bool      `gorm:"index" json:"showOnHome"`
	CreatedBy    string    `gorm:"size:255;index" json:"createdBy"`
	CreatedAt    time.Time `gorm:"precision:6" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"precision:6" json:"updatedAt"`
}

func (Product) TableName() string { return "loan_products" }

// Filter narrows a listing. Zero value lists everything.
type Filter struct {
	CreatedBy  string
	ShowOnHome bool
	// Limit <= 0 means unbounded.
	Limit int
}

// Patch carries the mutable fields of an update; nil fields are left untouched.
type Patch struct {
	Title        *string
	Image        *string
	ShortDesc    *string
	Description  *string
	Category     *string
	InterestRate *float64
	MaxLimit     *float64
	EMIPlans     *EMIPlans
	ShowOnHome   *bool
	UpdatedAt    time.Time
}
