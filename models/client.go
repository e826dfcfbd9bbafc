package models

// Client statuses.
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusHot      = "hot"
)

// ClientStatuses is the fixed status vocabulary, used for validation and for
// zero-filled dashboard counts.
var ClientStatuses = []string{ClientStatusActive, ClientStatusInactive, ClientStatusHot}

// Client represents a customer the projects belong to.
type Client struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Status string `gorm:"size:20;default:'active'" json:"status"`

	AuditFields

	// Relations
	Projects []Project `gorm:"foreignKey:ClientID" json:"projects,omitempty"`
}
