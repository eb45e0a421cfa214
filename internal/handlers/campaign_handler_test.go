package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"adpulse/internal/models"
	"adpulse/internal/storage"
)

func campaignRouter(store *storage.MemoryStore) *chi.Mux {
	h := NewCampaignHandler(store, nil)
	r := chi.NewRouter()
	r.Get("/campaigns", h.ListCampaigns)
	r.Post("/campaigns", h.CreateCampaign)
	r.Get("/campaigns/{id}", h.GetCampaign)
	r.Put("/campaigns/{id}", h.UpdateCampaign)
	r.Delete("/campaigns/{id}", h.DeleteCampaign)
	return r
}

func createTestCampaign(t *testing.T, store *storage.MemoryStore, userID string) *models.Campaign {
	t.Helper()
	c := &models.Campaign{
		UserID:      userID,
		Name:        "test campaign",
		Objective:   models.ObjectiveTraffic,
		Platforms:   []string{"facebook"},
		Status:      models.CampaignStatusActive,
		DailyBudget: 50,
		Duration:    30,
	}
	if err := store.CreateCampaign(context.Background(), c); err != nil {
		t.Fatalf("seeding campaign: %v", err)
	}
	return c
}

func TestCreateCampaignReturnsCreated(t *testing.T) {
	store := storage.NewMemoryStore()
	r := campaignRouter(store)

	body := `{
		"name": "spring push",
		"objective": "traffic",
		"platforms": ["facebook", "instagram"],
		"daily_budget": 40,
		"duration": 14,
		"target_audience": {"age_min": 21, "age_max": 45, "locations": ["NYC"]}
	}`
	req := httptest.NewRequest(http.MethodPost, "/campaigns", bytes.NewBufferString(body))
	req.Header.Set("X-User-ID", "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	var c models.Campaign
	if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if c.ID == "" {
		t.Fatal("expected generated id")
	}
	if c.UserID != "u1" {
		t.Fatalf("expected owner u1, got %q", c.UserID)
	}
	if c.Status != models.CampaignStatusDraft {
		t.Fatalf("new campaigns start as draft, got %q", c.Status)
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	store := storage.NewMemoryStore()
	r := campaignRouter(store)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"objective":"traffic","platforms":["facebook"],"daily_budget":40,"duration":14,"target_audience":{}}`},
		{"bad objective", `{"name":"x","objective":"world-domination","platforms":["facebook"],"daily_budget":40,"duration":14,"target_audience":{}}`},
		{"bad platform", `{"name":"x","objective":"traffic","platforms":["myspace"],"daily_budget":40,"duration":14,"target_audience":{}}`},
		{"zero budget", `{"name":"x","objective":"traffic","platforms":["facebook"],"daily_budget":0,"duration":14,"target_audience":{}}`},
		{"not json", `{{{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/campaigns", bytes.NewBufferString(tc.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
			}
			var resp map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp["error"] == nil {
				t.Fatalf("expected error field, got %v", resp)
			}
		})
	}
}

func TestGetCampaignNotFoundReturnsJSON(t *testing.T) {
	r := campaignRouter(storage.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/campaigns/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json got %q", ct)
	}
}

func TestListCampaignsScopedToRequestUser(t *testing.T) {
	store := storage.NewMemoryStore()
	createTestCampaign(t, store, "u1")
	createTestCampaign(t, store, "u2")
	r := campaignRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/campaigns", nil)
	req.Header.Set("X-User-ID", "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var campaigns []models.Campaign
	if err := json.Unmarshal(w.Body.Bytes(), &campaigns); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(campaigns) != 1 {
		t.Fatalf("expected 1 campaign, got %d", len(campaigns))
	}
}

func TestUpdateCampaignPartial(t *testing.T) {
	store := storage.NewMemoryStore()
	c := createTestCampaign(t, store, "u1")
	r := campaignRouter(store)

	req := httptest.NewRequest(http.MethodPut, "/campaigns/"+c.ID, bytes.NewBufferString(`{"daily_budget": 90}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var updated models.Campaign
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if updated.DailyBudget != 90 {
		t.Fatalf("expected budget 90, got %v", updated.DailyBudget)
	}
	if updated.Name != c.Name {
		t.Fatalf("untouched field changed: %q", updated.Name)
	}
}

func TestUpdateCampaignRejectsBadStatus(t *testing.T) {
	store := storage.NewMemoryStore()
	c := createTestCampaign(t, store, "u1")
	r := campaignRouter(store)

	req := httptest.NewRequest(http.MethodPut, "/campaigns/"+c.ID, bytes.NewBufferString(`{"status": "hibernating"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestDeleteCampaign(t *testing.T) {
	store := storage.NewMemoryStore()
	c := createTestCampaign(t, store, "u1")
	r := campaignRouter(store)

	req := httptest.NewRequest(http.MethodDelete, "/campaigns/"+c.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/campaigns/"+c.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}
}
