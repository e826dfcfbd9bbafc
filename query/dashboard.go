package query

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"pims/models"
)

// Overview is the dashboard aggregation: per-status counts, member partition
// sizes, active assignments on hot projects and the recent activity feed.
type Overview struct {
	ClientsCount     int64               `json:"clients_count"`
	ClientsByStatus  map[string]int64    `json:"clients_by_status"`
	ProjectsCount    int64               `json:"projects_count"`
	ProjectsByStatus map[string]int64    `json:"projects_by_status"`
	CurrentMembers   int                 `json:"current_members"`
	PastMembers      int                 `json:"past_members"`
	MemberProjects   []AssignmentSummary `json:"member_projects"`
	RecentActivities []ActivityEntry     `json:"recent_activities"`
}

// AssignmentSummary is one row of the hot-project assignment board. Projects
// and Clients are one-element lists; relations lost to cascade deletes show
// as "N/A".
type AssignmentSummary struct {
	ID       uint     `json:"id"`
	Member   string   `json:"member"`
	Projects []string `json:"projects"`
	Clients  []string `json:"clients"`
}

// ActivityEntry is one row of the recent activity feed, joined with its
// project and client names.
type ActivityEntry struct {
	ID        uint      `json:"id"`
	Project   string    `json:"project"`
	Client    string    `json:"client"`
	Status    string    `json:"status"`
	Remarks   string    `json:"remarks"`
	UpdatedAt time.Time `json:"updated_at"`
}

const recentActivityLimit = 10

// statusCounts groups rows of model by status, zero-filling every status in
// the fixed vocabulary so empty buckets still appear.
func statusCounts(db *gorm.DB, model interface{}, statuses []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(statuses))
	for _, status := range statuses {
		counts[status] = 0
	}

	var rows []struct {
		Status *string
		Count  int64
	}
	if err := db.Model(model).Select("status, count(*) as count").Group("status").Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.Status == nil {
			continue
		}
		if _, ok := counts[*row.Status]; ok {
			counts[*row.Status] = row.Count
		}
	}
	return counts, nil
}

// BuildOverview recomputes the whole dashboard from current store state.
func BuildOverview(db *gorm.DB) (*Overview, error) {
	overview := &Overview{}

	if err := db.Model(&models.Client{}).Count(&overview.ClientsCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).Count(&overview.ProjectsCount).Error; err != nil {
		return nil, err
	}

	var err error
	if overview.ClientsByStatus, err = statusCounts(db, &models.Client{}, models.ClientStatuses); err != nil {
		return nil, err
	}
	if overview.ProjectsByStatus, err = statusCounts(db, &models.Project{}, models.ProjectStatuses); err != nil {
		return nil, err
	}

	current, past, err := PartitionMembers(db)
	if err != nil {
		return nil, err
	}
	overview.CurrentMembers = len(current)
	overview.PastMembers = len(past)

	if overview.MemberProjects, err = hotAssignments(db); err != nil {
		return nil, err
	}
	if overview.RecentActivities, err = recentActivities(db); err != nil {
		return nil, err
	}

	return overview, nil
}

// hotAssignments lists the active assignments whose project is hot.
func hotAssignments(db *gorm.DB) ([]AssignmentSummary, error) {
	var assignments []models.MemberAssigned
	err := db.Preload("Member").Preload("Project").Preload("Project.Client").
		Joins("JOIN projects ON projects.id = member_assigned.project_id").
		Where("member_assigned.is_active = ?", true).
		Where("projects.status = ?", models.ProjectStatusHot).
		Order("member_assigned.id").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]AssignmentSummary, 0, len(assignments))
	for _, assignment := range assignments {
		memberName := "N/A"
		projectName := "N/A"
		projectStatus := "N/A"
		clientName := "N/A"

		if assignment.Member != nil {
			memberName = assignment.Member.Name
		}
		if assignment.Project != nil {
			projectName = assignment.Project.Name
			if assignment.Project.Status != nil {
				projectStatus = strings.ToUpper(*assignment.Project.Status)
			}
			if assignment.Project.Client != nil {
				clientName = assignment.Project.Client.Name
			}
		}

		summaries = append(summaries, AssignmentSummary{
			ID:       assignment.ID,
			Member:   memberName,
			Projects: []string{fmt.Sprintf("%s (%s)", projectName, projectStatus)},
			Clients:  []string{clientName},
		})
	}
	return summaries, nil
}

func recentActivities(db *gorm.DB) ([]ActivityEntry, error) {
	var activities []models.ProjectActivity
	err := db.Preload("Project").Preload("Project.Client").
		Order("updated_at DESC").
		Limit(recentActivityLimit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, 0, len(activities))
	for _, activity := range activities {
		entry := ActivityEntry{
			ID:        activity.ID,
			Project:   "N/A",
			Client:    "N/A",
			UpdatedAt: activity.UpdatedAt,
		}
		if activity.Status != nil {
			entry.Status = *activity.Status
		}
		if activity.Remarks != nil {
			entry.Remarks = *activity.Remarks
		}
		if activity.Project != nil {
			entry.Project = activity.Project.Name
			if activity.Project.Client != nil {
				entry.Client = activity.Project.Client.Name
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
