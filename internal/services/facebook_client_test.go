package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

func testCampaign() *models.Campaign {
	return &models.Campaign{
		ID:          "c1",
		Name:        "spring push",
		Objective:   models.ObjectiveTraffic,
		DailyBudget: 42.50,
		Status:      models.CampaignStatusDraft,
	}
}

func TestPublishCampaign(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if auth := r.Header.Get("Authorization"); auth != "Bearer token" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "fb-99"})
	}))
	defer srv.Close()

	c := NewFacebookClient(srv.URL, "token", "act_123", time.Second)
	id, err := c.PublishCampaign(context.Background(), testCampaign())
	if err != nil {
		t.Fatalf("PublishCampaign: %v", err)
	}
	if id != "fb-99" {
		t.Fatalf("expected fb-99, got %q", id)
	}
	if gotPath != "/act_123/campaigns" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotPayload["objective"] != "LINK_CLICKS" {
		t.Fatalf("expected LINK_CLICKS objective, got %v", gotPayload["objective"])
	}
	if gotPayload["status"] != "PAUSED" {
		t.Fatalf("campaigns must be created paused, got %v", gotPayload["status"])
	}
	// $42.50 a day is 4250 cents on the wire.
	if gotPayload["daily_budget"] != float64(4250) {
		t.Fatalf("expected budget in cents, got %v", gotPayload["daily_budget"])
	}
}

func TestPublishCampaignCreatesAdSet(t *testing.T) {
	var paths []string
	var adSetPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/act_123/adsets" {
			if err := json.NewDecoder(r.Body).Decode(&adSetPayload); err != nil {
				t.Errorf("decoding ad set payload: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]string{"id": "as-1"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "fb-99"})
	}))
	defer srv.Close()

	campaign := testCampaign()
	campaign.TargetAudience = &models.TargetAudience{
		AgeMin:    25,
		AgeMax:    45,
		Locations: []string{"US", "CA"},
		Interests: []string{"running"},
	}

	c := NewFacebookClient(srv.URL, "token", "act_123", time.Second)
	id, err := c.PublishCampaign(context.Background(), campaign)
	if err != nil {
		t.Fatalf("PublishCampaign: %v", err)
	}
	if id != "fb-99" {
		t.Fatalf("expected fb-99, got %q", id)
	}
	if len(paths) != 2 || paths[1] != "/act_123/adsets" {
		t.Fatalf("expected campaign then ad set request, got %v", paths)
	}
	if adSetPayload["campaign_id"] != "fb-99" {
		t.Fatalf("ad set not linked to campaign: %v", adSetPayload["campaign_id"])
	}
	targeting, ok := adSetPayload["targeting"].(map[string]any)
	if !ok {
		t.Fatalf("missing targeting block: %+v", adSetPayload)
	}
	if targeting["age_min"] != float64(25) || targeting["age_max"] != float64(45) {
		t.Fatalf("unexpected age targeting %+v", targeting)
	}
}

func TestPublishCampaignPlatformError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid parameter"}}`))
	}))
	defer srv.Close()

	c := NewFacebookClient(srv.URL, "token", "act_123", time.Second)
	_, err := c.PublishCampaign(context.Background(), testCampaign())
	if err == nil {
		t.Fatal("expected error on 400 response")
	}
	var extErr *interfaces.ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExternalServiceError, got %T", err)
	}
	if extErr.Service != "facebook" {
		t.Fatalf("unexpected service %q", extErr.Service)
	}
}

func TestPublishCampaignRequiresCredentials(t *testing.T) {
	c := NewFacebookClient("http://example.invalid", "", "act_123", time.Second)
	if _, err := c.PublishCampaign(context.Background(), testCampaign()); err == nil {
		t.Fatal("expected error without access token")
	}

	c = NewFacebookClient("http://example.invalid", "token", "", time.Second)
	if _, err := c.PublishCampaign(context.Background(), testCampaign()); err == nil {
		t.Fatal("expected error without ad account id")
	}
}

func TestPauseCampaign(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewFacebookClient(srv.URL, "token", "act_123", time.Second)
	if err := c.PauseCampaign(context.Background(), "fb-99"); err != nil {
		t.Fatalf("PauseCampaign: %v", err)
	}
	if gotPath != "/fb-99" {
		t.Fatalf("unexpected path %q", gotPath)
	}

	if err := c.PauseCampaign(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty external id")
	}
}

func TestPlatformObjectiveFallback(t *testing.T) {
	if got := platformObjective(models.ObjectiveSales); got != "CONVERSIONS" {
		t.Fatalf("expected CONVERSIONS for sales, got %q", got)
	}
	if got := platformObjective(models.CampaignObjective("mystery")); got != "REACH" {
		t.Fatalf("expected REACH fallback, got %q", got)
	}
}
