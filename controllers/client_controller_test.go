package controller_test

import (
	"net/http"
	"testing"

	"pims/models"
	"pims/utils"
)

func TestClientReadsOpenWritesProtected(t *testing.T) {
	app, db := setupApp(t)

	// list without any authentication header
	resp := doJSON(t, app, http.MethodGet, "/api/v1/clients", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unauthenticated list status = %d, want 200", resp.StatusCode)
	}

	// unauthenticated create is a permission failure, not a 401 challenge
	resp = doJSON(t, app, http.MethodPost, "/api/v1/clients", "", map[string]string{"name": "Acme"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unauthenticated create status = %d, want 403", resp.StatusCode)
	}
	code, _ := decodeError(t, resp)
	if code != "permission_denied" {
		t.Fatalf("code = %q, want permission_denied", code)
	}
	if n := countRows(t, db, &models.Client{}); n != 0 {
		t.Fatalf("rejected create persisted %d rows", n)
	}

	// a syntactically valid but garbage token is still a permission failure
	resp = doJSON(t, app, http.MethodPost, "/api/v1/clients", "garbage", map[string]string{"name": "Acme"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("bad-token create status = %d, want 403", resp.StatusCode)
	}
}

func TestClientAuditStamping(t *testing.T) {
	app, db := setupApp(t)
	alice := seedPrincipal(t, db, "alice", "pw")
	bob := seedPrincipal(t, db, "bob", "pw")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/clients", accessTokenFor(t, alice), map[string]string{
		"name":       "Acme",
		"status":     "hot",
		"created_by": "mallory", // must be ignored; audit fields are not client-writable
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var created models.Client
	decodeData(t, resp, &created)
	if created.CreatedBy != "alice" {
		t.Fatalf("created_by = %q, want alice", created.CreatedBy)
	}
	if created.UpdatedBy == nil || *created.UpdatedBy != "alice" {
		t.Fatalf("updated_by after create = %v, want alice", created.UpdatedBy)
	}
	if created.Status != "hot" {
		t.Fatalf("status = %q, want hot", created.Status)
	}

	resp = doJSON(t, app, http.MethodPut, "/api/v1/clients/1", accessTokenFor(t, bob), map[string]string{
		"name":   "Acme Corp",
		"status": "inactive",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want 200", resp.StatusCode)
	}
	var updated models.Client
	decodeData(t, resp, &updated)
	if updated.CreatedBy != "alice" {
		t.Fatalf("created_by changed on update: %q", updated.CreatedBy)
	}
	if updated.UpdatedBy == nil || *updated.UpdatedBy != "bob" {
		t.Fatalf("updated_by = %v, want bob", updated.UpdatedBy)
	}
}

func TestClientStatusDefaultAndFilter(t *testing.T) {
	app, db := setupApp(t)
	principal := seedPrincipal(t, db, "ops", "pw")
	token := accessTokenFor(t, principal)

	doJSON(t, app, http.MethodPost, "/api/v1/clients", token, map[string]string{"name": "Defaulted"})
	doJSON(t, app, http.MethodPost, "/api/v1/clients", token, map[string]string{"name": "Hot One", "status": "hot"})

	resp := doJSON(t, app, http.MethodGet, "/api/v1/clients?status=active", "", nil)
	var active []models.Client
	decodeData(t, resp, &active)
	if len(active) != 1 || active[0].Name != "Defaulted" {
		t.Fatalf("status=active returned %+v", active)
	}
	if active[0].Status != models.ClientStatusActive {
		t.Fatalf("default status = %q, want active", active[0].Status)
	}
}

func TestDeleteClientCascades(t *testing.T) {
	app, db := setupApp(t)
	principal := seedPrincipal(t, db, "ops", "pw")
	token := accessTokenFor(t, principal)

	client := &models.Client{Name: "Doomed", Status: models.ClientStatusActive}
	client.StampCreate("seeder")
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}

	project := &models.Project{
		Name:     "Doomed Project",
		ClientID: client.ID,
		Type:     models.ProjectTypeClient,
		Status:   utils.Pointer(models.ProjectStatusActive),
	}
	project.StampCreate("seeder")
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}

	credential := &models.ProjectCredential{ProjectID: project.ID, Key: "ssh", Value: "hunter2"}
	credential.StampCreate("seeder")
	activity := &models.ProjectActivity{ProjectID: project.ID, Status: utils.Pointer(models.ActivityStatusStarted)}
	activity.StampCreate("seeder")
	member := &models.Member{Name: "Alice", Role: "dev"}
	member.StampCreate("seeder")
	for _, v := range []interface{}{credential, activity, member} {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("failed to seed %T: %v", v, err)
		}
	}
	assignment := &models.MemberAssigned{MemberID: member.ID, ProjectID: project.ID, IsActive: true}
	assignment.StampCreate("seeder")
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}

	resp := doJSON(t, app, http.MethodDelete, "/api/v1/clients/1", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}

	for model, name := range map[interface{}]string{
		&models.Client{}:            "clients",
		&models.Project{}:           "projects",
		&models.ProjectCredential{}: "credentials",
		&models.ProjectActivity{}:   "activities",
		&models.MemberAssigned{}:    "assignments",
	} {
		if n := countRows(t, db, model); n != 0 {
			t.Fatalf("%s not cascaded: %d rows remain", name, n)
		}
	}

	// the member itself survives the cascade
	if n := countRows(t, db, &models.Member{}); n != 1 {
		t.Fatalf("member rows = %d, want 1", n)
	}
}
