package application

import "time"

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further review happens in this status.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

type FeeStatus string

const (
	FeeUnpaid FeeStatus = "unpaid"
	FeePaid   FeeStatus = "paid"
)

// Form is the part of an application the borrower fills in and may resubmit.
type Form struct {
	LoanTitle     string  `gorm:"size:255" json:"loanTitle" bson:"loanTitle"`
	InterestRate  float64 `json:"interestRate" bson:"interestRate"`
	FirstName     string  `gorm:"size:255" json:"firstName" bson:"firstName"`
	LastName      string  `gorm:"size:255" json:"lastName" bson:"lastName"`
	ContactNumber string  `gorm:"size:64" json:"contactNumber" bson:"contactNumber"`
	NationalID    string  `gorm:"size:64" json:"nationalId" bson:"nationalId"`
	IncomeSource  string  `gorm:"size:255" json:"incomeSource" bson:"incomeSource"`
	MonthlyIncome float64 `json:"monthlyIncome" bson:"monthlyIncome"`
	LoanAmount    float64 `json:"loanAmount" bson:"loanAmount"`
	Reason        string  `gorm:"type:text" json:"reason" bson:"reason"`
	Address       string  `gorm:"type:text" json:"address" bson:"address"`
	ExtraNotes    string  `gorm:"type:text" json:"extraNotes" bson:"extraNotes"`
}

type Application struct {
	ID    string `gorm:"primaryKey;size:32;column:id" json:"_id"`
	Email string `gorm:"size:255;index:idx_applications_email" json:"email"`
	// ActiveEmail equals Email while the application is Pending and is NULL
	// otherwise; its unique index allows one Pending application per email.
	ActiveEmail          *string `gorm:"size:255;uniqueIndex:ux_applications_active_email" json:"-"`
	Form                 `gorm:"embedded"`
	Status               Status    `gorm:"size:20;index:idx_applications_status" json:"status"`
	ApplicationFeeStatus FeeStatus `gorm:"size:20" json:"applicationFeeStatus"`
	CreatedAt            time.Time `gorm:"precision:6" json:"createdAt"`
	UpdatedAt            time.Time `gorm:"precision:6" json:"updatedAt"`
}

func (Application) TableName() string { return "loan_applications" }

type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}
