package query

import (
	"strings"
	"time"

	"pims/models"
)

// ProjectFilter holds the composable project list filters. Zero-valued fields
// impose no constraint; every set field must match (logical AND).
type ProjectFilter struct {
	Status        string     // exact match on status
	Type          string     // exact match on type
	StartYear     *int       // year equality on start_date
	Client        string     // case-insensitive substring on the client name
	Hosting       string     // case-insensitive substring on hosting_provider
	Github        *bool      // presence/absence of github_repo
	Deployed      *bool      // presence/absence of live_url
	StartDateFrom *time.Time // inclusive lower bound on start_date
	EndDateUntil  *time.Time // inclusive upper bound on end_date
}

// present reports whether an optional URL field counts as set: non-null and
// non-empty.
func present(s *string) bool {
	return s != nil && *s != ""
}

func containsFold(s *string, substr string) bool {
	if s == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*s), strings.ToLower(substr))
}

// Match reports whether a single project passes every set filter. Projects
// with a null field never match a constraint on that field.
func (f ProjectFilter) Match(p *models.Project) bool {
	if f.Status != "" && (p.Status == nil || *p.Status != f.Status) {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.StartYear != nil && (p.StartDate == nil || p.StartDate.Year() != *f.StartYear) {
		return false
	}
	if f.Client != "" {
		if p.Client == nil || !strings.Contains(strings.ToLower(p.Client.Name), strings.ToLower(f.Client)) {
			return false
		}
	}
	if f.Hosting != "" && !containsFold(p.HostingProvider, f.Hosting) {
		return false
	}
	if f.Github != nil && present(p.GithubRepo) != *f.Github {
		return false
	}
	if f.Deployed != nil && present(p.LiveURL) != *f.Deployed {
		return false
	}
	if f.StartDateFrom != nil && (p.StartDate == nil || p.StartDate.Before(*f.StartDateFrom)) {
		return false
	}
	if f.EndDateUntil != nil && (p.EndDate == nil || p.EndDate.After(*f.EndDateUntil)) {
		return false
	}
	return true
}

// Apply filters a materialized project slice. The client relation must be
// preloaded for the Client filter to see names.
func (f ProjectFilter) Apply(projects []models.Project) []models.Project {
	filtered := make([]models.Project, 0, len(projects))
	for i := range projects {
		if f.Match(&projects[i]) {
			filtered = append(filtered, projects[i])
		}
	}
	return filtered
}
