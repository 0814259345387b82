package user

import "time"

type Role string

const (
	RoleBorrower Role = "borrower"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBorrower, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        string    `gorm:"primaryKey;size:32;column:id" json:"_id"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex:ux_users_email" json:"email"`
	Role      Role      `gorm:"size:20;default:'borrower'" json:"role"`
	CreatedAt time.Time `gorm:"precision:6" json:"createdAt"`
}

func (User) TableName() string { return "users" }

// UpdateResult mirrors the matched/modified counters reported by the store.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}
