package controller_test

import (
	"net/http"
	"testing"

	"gorm.io/gorm"

	"pims/models"
	"pims/utils"
)

func seedProjects(t *testing.T, db *gorm.DB) {
	t.Helper()
	client := &models.Client{Name: "Acme", Status: models.ClientStatusActive}
	client.StampCreate("seeder")
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}

	p1 := &models.Project{
		Name:     "P1",
		ClientID: client.ID,
		Type:     models.ProjectTypeClient,
	}
	p1.Status = utils.Pointer(models.ProjectStatusActive)
	p1.StartDate, _ = utils.ParseDate("2024-01-01")
	p1.GithubRepo = utils.Pointer("https://github.com/acme/p1")
	p1.StampCreate("seeder")

	p2 := &models.Project{
		Name:     "P2",
		ClientID: client.ID,
		Type:     models.ProjectTypeInternal,
	}
	p2.Status = utils.Pointer(models.ProjectStatusHot)
	p2.StartDate, _ = utils.ParseDate("2023-06-01")
	p2.GithubRepo = utils.Pointer("")
	p2.StampCreate("seeder")

	for _, p := range []*models.Project{p1, p2} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("failed to seed project %s: %v", p.Name, err)
		}
	}
}

func TestProjectListFilters(t *testing.T) {
	app, db := setupApp(t)
	seedProjects(t, db)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"status and type", "?status=active&type=client", []string{"P1"}},
		{"start year", "?start_year=2023", []string{"P2"}},
		{"github present", "?github=true", []string{"P1"}},
		{"github absent includes empty string", "?github=false", []string{"P2"}},
		{"client substring", "?client=acm", []string{"P1", "P2"}},
		{"no filters", "", []string{"P1", "P2"}},
		{"conjunction with no match", "?status=active&type=internal", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodGet, "/api/v1/projects"+tt.query, "", nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("list status = %d, want 200", resp.StatusCode)
			}
			var projects []models.Project
			decodeData(t, resp, &projects)
			if len(projects) != len(tt.want) {
				t.Fatalf("got %d projects, want %d", len(projects), len(tt.want))
			}
			for i, p := range projects {
				if p.Name != tt.want[i] {
					t.Fatalf("project[%d] = %q, want %q", i, p.Name, tt.want[i])
				}
			}
		})
	}
}

func TestProjectListRejectsMalformedFilter(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/projects?start_year=soon", "", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	code, _ := decodeError(t, resp)
	if code != "validation_error" {
		t.Fatalf("code = %q, want validation_error", code)
	}
}

func TestCreateProjectUnknownClient(t *testing.T) {
	app, db := setupApp(t)
	principal := seedPrincipal(t, db, "ops", "pw")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/projects", accessTokenFor(t, principal), map[string]interface{}{
		"name":      "Orphan",
		"client_id": 99,
		"type":      "internal",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if n := countRows(t, db, &models.Project{}); n != 0 {
		t.Fatalf("rejected create persisted %d rows", n)
	}
}

func TestCreateProjectWithInlineCredentials(t *testing.T) {
	app, db := setupApp(t)
	principal := seedPrincipal(t, db, "ops", "pw")
	token := accessTokenFor(t, principal)

	client := &models.Client{Name: "Acme", Status: models.ClientStatusActive}
	client.StampCreate("seeder")
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/v1/projects", token, map[string]interface{}{
		"name":      "With Creds",
		"client_id": client.ID,
		"type":      "client",
		"status":    "active",
		"credentials": []map[string]string{
			{"key": "ssh", "value": "hunter2"},
			{"key": "  ", "value": "ignored"}, // blank key: skipped
			{"key": "api", "value": ""},      // blank value: skipped
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}

	var credentials []models.ProjectCredential
	if err := db.Find(&credentials).Error; err != nil {
		t.Fatalf("failed to load credentials: %v", err)
	}
	if len(credentials) != 1 {
		t.Fatalf("credential rows = %d, want 1", len(credentials))
	}
	if credentials[0].Key != "ssh" || credentials[0].CreatedBy != "ops" {
		t.Fatalf("credential = %+v", credentials[0])
	}
}

func TestProjectValidationErrors(t *testing.T) {
	app, db := setupApp(t)
	principal := seedPrincipal(t, db, "ops", "pw")
	token := accessTokenFor(t, principal)

	// unknown type value
	resp := doJSON(t, app, http.MethodPost, "/api/v1/projects", token, map[string]interface{}{
		"name":      "Bad Type",
		"client_id": 1,
		"type":      "sideproject",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad type status = %d, want 400", resp.StatusCode)
	}

	// malformed date
	resp = doJSON(t, app, http.MethodPost, "/api/v1/projects", token, map[string]interface{}{
		"name":       "Bad Date",
		"client_id":  1,
		"type":       "internal",
		"start_date": "January 1st",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad date status = %d, want 400", resp.StatusCode)
	}
}
