package models

import "time"

// Principal is an authenticated operator in the local registry. EmployeeID
// and Role are optional domain attributes surfaced in the login payload when
// present.
type Principal struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	Username     string  `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string  `gorm:"not null" json:"-"`
	FirstName    string  `gorm:"size:100" json:"first_name"`
	LastName     string  `gorm:"size:100" json:"last_name"`
	EmployeeID   *string `gorm:"size:50" json:"employee_id,omitempty"`
	Role         *string `gorm:"size:50" json:"role,omitempty"`
	IsAdmin      bool    `gorm:"default:false" json:"is_admin"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
