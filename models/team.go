package models

import "time"

// Team groups members under a free-text type label ("backend", "design", ...).
type Team struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	TeamType string `gorm:"size:50;not null" json:"team_type"`

	AuditFields

	// Relations
	Members  []Member  `gorm:"many2many:team_members" json:"members,omitempty"`
	Projects []Project `gorm:"many2many:project_teams" json:"projects,omitempty"`
}

// Member is a person; projects are reachable only through MemberAssigned.
type Member struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Role string `gorm:"size:50;not null" json:"role"`

	AuditFields

	// Relations
	Teams       []Team           `gorm:"many2many:team_members" json:"teams,omitempty"`
	Assignments []MemberAssigned `gorm:"foreignKey:MemberID" json:"assignments,omitempty"`
}

// MemberAssigned joins a member to a project with its own attributes.
type MemberAssigned struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	MemberID     uint       `gorm:"not null;index" json:"member_id"`
	Member       *Member    `json:"member,omitempty"`
	ProjectID    uint       `gorm:"not null;index" json:"project_id"`
	Project      *Project   `json:"project,omitempty"`
	AssignedFrom *time.Time `gorm:"type:date" json:"assigned_from"`
	AssignedTo   *time.Time `gorm:"type:date" json:"assigned_to"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`

	AuditFields
}

// TableName keeps the join table singular; the derived plural is awkward.
func (MemberAssigned) TableName() string {
	return "member_assigned"
}
