package models

import "time"

// Project types.
const (
	ProjectTypeInternal  = "internal"
	ProjectTypeClient    = "client"
	ProjectTypeFreelance = "freelance"
)

// Project statuses.
const (
	ProjectStatusActive   = "active"
	ProjectStatusInactive = "inactive"
	ProjectStatusHot      = "hot"
	ProjectStatusDead     = "dead"
)

var (
	ProjectTypes    = []string{ProjectTypeInternal, ProjectTypeClient, ProjectTypeFreelance}
	ProjectStatuses = []string{ProjectStatusActive, ProjectStatusInactive, ProjectStatusHot, ProjectStatusDead}
)

// Project is the central entity: owned by a client, worked on by teams and
// assigned members, documented by credentials and activity logs.
type Project struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	Name            string     `gorm:"size:100;not null" json:"name"`
	ClientID        uint       `gorm:"not null;index" json:"client_id"`
	Client          *Client    `json:"client,omitempty"`
	Type            string     `gorm:"size:50;not null" json:"type"`
	Status          *string    `gorm:"size:50" json:"status"`
	StartDate       *time.Time `gorm:"type:date" json:"start_date"`
	EndDate         *time.Time `gorm:"type:date" json:"end_date"`
	HostingProvider *string    `gorm:"size:100" json:"hosting_provider"`
	GithubRepo      *string    `json:"github_repo"`
	LiveURL         *string    `json:"live_url"`
	Description     *string    `json:"description"`

	AuditFields

	// Relations
	Teams       []Team              `gorm:"many2many:project_teams" json:"teams,omitempty"`
	Credentials []ProjectCredential `gorm:"foreignKey:ProjectID" json:"credentials,omitempty"`
	Activities  []ProjectActivity   `gorm:"foreignKey:ProjectID" json:"activities,omitempty"`
}

// ProjectCredential holds access material for a project. Value is persisted
// unencrypted; known defect, tracked rather than papered over here.
type ProjectCredential struct {
	ID        uint     `gorm:"primarykey" json:"id"`
	ProjectID uint     `gorm:"not null;index" json:"project_id"`
	Project   *Project `json:"project,omitempty"`
	Key       string   `gorm:"size:100;not null" json:"key"`
	Value     string   `gorm:"not null" json:"value"`

	AuditFields
}

// Project activity statuses.
const (
	ActivityStatusStarted   = "started"
	ActivityStatusPaused    = "paused"
	ActivityStatusResumed   = "resumed"
	ActivityStatusCompleted = "completed"
	ActivityStatusOnHold    = "on-hold"
)

var ActivityStatuses = []string{
	ActivityStatusStarted,
	ActivityStatusPaused,
	ActivityStatusResumed,
	ActivityStatusCompleted,
	ActivityStatusOnHold,
}

// ProjectActivity is one entry in a project's activity log.
type ProjectActivity struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	ProjectID    uint       `gorm:"not null;index" json:"project_id"`
	Project      *Project   `json:"project,omitempty"`
	Status       *string    `gorm:"size:20" json:"status"`
	ActivityFrom *time.Time `gorm:"type:date" json:"activity_from"`
	ActivityTo   *time.Time `gorm:"type:date" json:"activity_to"`
	Remarks      *string    `json:"remarks"`

	AuditFields
}
