package controller_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"pims/models"
)

func TestLoginIssuesTokenPairAndPayload(t *testing.T) {
	app, db := setupApp(t)
	principal := seedPrincipal(t, db, "ops", "s3cret")
	employeeID := "E-042"
	role := "manager"
	db.Model(principal).Updates(models.Principal{EmployeeID: &employeeID, Role: &role})

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "ops",
		"password": "s3cret",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		Principal    struct {
			Username   string  `json:"username"`
			FirstName  string  `json:"first_name"`
			EmployeeID *string `json:"employee_id"`
			Role       *string `json:"role"`
		} `json:"principal"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if body.AccessToken == "" || body.RefreshToken == "" {
		t.Fatal("expected both access and refresh tokens")
	}
	if body.Principal.Username != "ops" {
		t.Fatalf("payload username = %q, want ops", body.Principal.Username)
	}
	if body.Principal.EmployeeID == nil || *body.Principal.EmployeeID != "E-042" {
		t.Fatalf("payload employee_id = %v, want E-042", body.Principal.EmployeeID)
	}
	if body.Principal.Role == nil || *body.Principal.Role != "manager" {
		t.Fatalf("payload role = %v, want manager", body.Principal.Role)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app, db := setupApp(t)
	seedPrincipal(t, db, "ops", "s3cret")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "ops",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("login status = %d, want 401", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := body["access_token"]; ok {
		t.Fatal("failed login must not return a token")
	}
	if body["code"] != "authentication_failed" {
		t.Fatalf("code = %v, want authentication_failed", body["code"])
	}
}

func TestRefreshExchangesForNewAccessToken(t *testing.T) {
	app, db := setupApp(t)
	seedPrincipal(t, db, "ops", "s3cret")

	loginResp := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "ops",
		"password": "s3cret",
	})
	var login struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(loginResp.Body).Decode(&login); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/token/refresh", "", map[string]string{
		"refresh_token": login.RefreshToken,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh status = %d, want 200", resp.StatusCode)
	}
	var refreshed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&refreshed); err != nil {
		t.Fatalf("failed to decode refresh response: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatal("expected a new access token")
	}

	// the refreshed token must authorize writes
	createResp := doJSON(t, app, http.MethodPost, "/api/v1/clients", refreshed.AccessToken, map[string]string{
		"name": "Acme",
	})
	if createResp.StatusCode != http.StatusCreated {
		t.Fatalf("create with refreshed token status = %d, want 201", createResp.StatusCode)
	}
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/token/refresh", "", map[string]string{
		"refresh_token": "not-a-token",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("refresh status = %d, want 401", resp.StatusCode)
	}
}
