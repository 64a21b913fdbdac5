package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"edintake/internal/entity"
)

// validSubmitPayload fills every required intake field.
func validSubmitPayload() map[string]any {
	return map[string]any{
		"region": "Oromia",
		"zone":   "East Shewa",
		"woreda": "Adama",
		"kebele": "05",
		"batch":  "2024-B1",
		"edi_id": "EDI-0042",

		"first_name":       "Abebe",
		"father_name":      "Kebede",
		"grandfather_name": "Tesfaye",
		"dob":              "1990-04-12",
		"sex":              "M",
		"address":          "Adama, Kebele 05",

		"has_license":       "Yes",
		"trade_license_num": "TL-1234",
		"trade_reg_num":     "TR-5678",
		"tin_number":        "0011223344",
		"license_date":      "2021-06-01",

		"enterprise_size":    "Micro",
		"ownership_type":     "Sole Proprietorship",
		"business_sector":    "Manufacturing",
		"owners_count":       1,
		"owners_names":       "Abebe Kebede",
		"registered_address": "Adama",
		"business_premise":   "Rented",

		"male_employees":   3,
		"female_employees": 2,

		"capital":          10000.0,
		"monthly_revenue":  2500.0,
		"annual_revenue":   30000.0,
		"net_profit":       4000.0,
		"requested_amount": 50000.0,

		"purpose":          "Buy equipment",
		"repayment_source": "Business income",

		"guaranter_first_name":       "Mulu",
		"guaranter_father_name":      "Alem",
		"guaranter_grandfather_name": "Bekele",
		"guaranter_phone":            "+251911000000",
		"guaranter_salary":           8000.0,

		"cbe_account":  "1000123456789",
		"branch_name":  "Adama Main",
		"city":         "Adama",
		"finance_mode": "Conventional",
	}
}

func seedApplication(t *testing.T, repo *fakeRepo, id, collector, status string) *entity.DbApplication {
	t.Helper()
	application := &entity.DbApplication{
		ID:             id,
		CollectorEmail: collector,
		CollectionDate: time.Now().UTC(),
		Region:         "Oromia",
		FirstName:      "Abebe",
		FatherName:     "Kebede",
		Status:         status,
	}
	if err := repo.CreateApplication(context.Background(), application); err != nil {
		t.Fatalf("failed to seed application: %v", err)
	}
	return application
}

func TestFormOptions(t *testing.T) {
	r, handler, repo := newTestServer(t)
	user := addUser(t, repo, "collector@example.com", "secret-pass", entity.UserRoleCollector, true)
	token := tokenFor(t, handler, user)

	w := doJSON(t, r, http.MethodGet, "/api/applications/options", token, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var options entity.FormOptions
	if err := json.Unmarshal(w.Body.Bytes(), &options); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(options.SexOptions) != 2 || len(options.BusinessSectors) != 6 {
		t.Errorf("unexpected option sets: %+v", options)
	}
}

func TestSubmitApplication(t *testing.T) {
	r, handler, repo := newTestServer(t)
	user := addUser(t, repo, "Collector@Example.com", "secret-pass", entity.UserRoleCollector, true)
	token := tokenFor(t, handler, user)

	w := doJSON(t, r, http.MethodPost, "/api/applications", token, validSubmitPayload())

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var created entity.DbApplication
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated application id")
	}
	if created.Status != entity.StatusPending {
		t.Errorf("expected status %q, got %q", entity.StatusPending, created.Status)
	}
	if created.CollectorEmail != strings.ToLower(user.Email) {
		t.Errorf("collector must come from the session, got %q", created.CollectorEmail)
	}
}

func TestSubmitApplicationValidation(t *testing.T) {
	r, handler, repo := newTestServer(t)
	user := addUser(t, repo, "collector@example.com", "secret-pass", entity.UserRoleCollector, true)
	token := tokenFor(t, handler, user)

	tests := []struct {
		name   string
		mutate func(payload map[string]any)
	}{
		{name: "missing first name", mutate: func(p map[string]any) { delete(p, "first_name") }},
		{name: "invalid sex", mutate: func(p map[string]any) { p["sex"] = "X" }},
		{name: "invalid ownership type", mutate: func(p map[string]any) { p["ownership_type"] = "Cooperative" }},
		{name: "invalid premise", mutate: func(p map[string]any) { p["business_premise"] = "Owned" }},
		{name: "negative employees", mutate: func(p map[string]any) { p["male_employees"] = -1 }},
		{name: "missing capital", mutate: func(p map[string]any) { delete(p, "capital") }},
		{name: "invalid finance mode", mutate: func(p map[string]any) { p["finance_mode"] = "Islamic" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validSubmitPayload()
			tt.mutate(payload)

			w := doJSON(t, r, http.MethodPost, "/api/applications", token, payload)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
			}

			var response APIError
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if response.Code != ErrCodeValidation {
				t.Errorf("expected code %s, got %s", ErrCodeValidation, response.Code)
			}
		})
	}

	count, err := repo.CountApplications(context.Background())
	if err != nil {
		t.Fatalf("failed to count applications: %v", err)
	}
	if count != 0 {
		t.Errorf("rejected submissions must not be persisted, found %d", count)
	}
}

func TestSubmitZeroValuesAreValid(t *testing.T) {
	r, handler, repo := newTestServer(t)
	user := addUser(t, repo, "collector@example.com", "secret-pass", entity.UserRoleCollector, true)
	token := tokenFor(t, handler, user)

	payload := validSubmitPayload()
	payload["male_employees"] = 0
	payload["female_employees"] = 0
	payload["net_profit"] = 0.0

	w := doJSON(t, r, http.MethodPost, "/api/applications", token, payload)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
}

func TestListMyApplicationsScopesToCollector(t *testing.T) {
	r, handler, repo := newTestServer(t)
	mine := addUser(t, repo, "mine@example.com", "secret-pass", entity.UserRoleCollector, true)
	token := tokenFor(t, handler, mine)

	seedApplication(t, repo, "app-1", "mine@example.com", entity.StatusPending)
	seedApplication(t, repo, "app-2", "other@example.com", entity.StatusPending)

	w := doJSON(t, r, http.MethodGet, "/api/applications", token, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response entity.ApplicationListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(response.Applications) != 1 || response.Applications[0].ID != "app-1" {
		t.Errorf("expected only the collector's own records, got %+v", response.Applications)
	}
}

func TestAdminListApplications(t *testing.T) {
	r, handler, repo := newTestServer(t)
	admin := addUser(t, repo, "admin@example.com", "secret-pass", entity.UserRoleAdmin, true)
	token := tokenFor(t, handler, admin)

	seedApplication(t, repo, "app-1", "a@example.com", entity.StatusPending)
	seedApplication(t, repo, "app-2", "b@example.com", "Approved")

	t.Run("all records", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/admin/applications", token, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		var response entity.ApplicationListResponse
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if len(response.Applications) != 2 {
			t.Errorf("expected 2 records, got %d", len(response.Applications))
		}
	})

	t.Run("status filter", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/admin/applications?status=Approved", token, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		var response entity.ApplicationListResponse
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if len(response.Applications) != 1 || response.Applications[0].ID != "app-2" {
			t.Errorf("expected only the approved record, got %+v", response.Applications)
		}
	})
}

func TestAdminGetApplication(t *testing.T) {
	r, handler, repo := newTestServer(t)
	admin := addUser(t, repo, "admin@example.com", "secret-pass", entity.UserRoleAdmin, true)
	token := tokenFor(t, handler, admin)

	seedApplication(t, repo, "app-1", "a@example.com", entity.StatusPending)

	t.Run("found", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/admin/applications/app-1", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/admin/applications/no-such-id", token, nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}

		var response APIError
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if response.Code != ErrCodeApplicationNotFound {
			t.Errorf("expected code %s, got %s", ErrCodeApplicationNotFound, response.Code)
		}
	})
}

func TestAdminUpdateApplication(t *testing.T) {
	r, handler, repo := newTestServer(t)
	admin := addUser(t, repo, "admin@example.com", "secret-pass", entity.UserRoleAdmin, true)
	token := tokenFor(t, handler, admin)

	seedApplication(t, repo, "app-1", "a@example.com", entity.StatusPending)

	t.Run("status correction", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/admin/applications/app-1", token, map[string]any{
			"status": "Approved",
		})

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var updated entity.DbApplication
		if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if updated.Status != "Approved" {
			t.Errorf("expected status Approved, got %q", updated.Status)
		}
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/admin/applications/no-such-id", token, map[string]any{
			"status": "Approved",
		})

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d: %s", http.StatusNotFound, w.Code, w.Body.String())
		}
	})

	t.Run("empty payload rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/admin/applications/app-1", token, map[string]any{})

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
		}
	})

	t.Run("invalid enum rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/admin/applications/app-1", token, map[string]any{
			"sex": "X",
		})

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
		}
	})
}

func TestAdminExportCSV(t *testing.T) {
	r, handler, repo := newTestServer(t)
	admin := addUser(t, repo, "admin@example.com", "secret-pass", entity.UserRoleAdmin, true)
	token := tokenFor(t, handler, admin)

	seedApplication(t, repo, "app-1", "a@example.com", entity.StatusPending)

	w := doJSON(t, r, http.MethodGet, "/api/admin/applications/export", token, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Errorf("expected text/csv content type, got %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "attachment") {
		t.Errorf("expected attachment disposition, got %q", got)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "app-1") {
		t.Errorf("expected exported row to carry the record id, got %q", lines[1])
	}
}
