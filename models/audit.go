package models

import "time"

// AuditFields is embedded in every tracked entity. CreatedBy is written once
// when the row is created; UpdatedBy records the last writer. Request structs
// never expose these fields, so client-supplied values can't reach them.
type AuditFields struct {
	CreatedBy string    `gorm:"size:100;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy *string   `gorm:"size:100" json:"updated_by"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// StampCreate records the acting principal on a fresh row. UpdatedBy mirrors
// the creator so the last-writer field is never stale.
func (a *AuditFields) StampCreate(username string) {
	a.CreatedBy = username
	u := username
	a.UpdatedBy = &u
}

// StampUpdate records the acting principal of a mutation. CreatedBy is left
// untouched.
func (a *AuditFields) StampUpdate(username string) {
	u := username
	a.UpdatedBy = &u
}
