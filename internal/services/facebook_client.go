// internal/services/facebook_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

// FacebookClient publishes campaigns to the Facebook Marketing API. Only the
// thin publishing surface the dashboard needs is implemented.
type FacebookClient struct {
	baseURL     string
	accessToken string
	adAccountID string
	httpClient  *http.Client
}

func NewFacebookClient(baseURL, accessToken, adAccountID string, timeout time.Duration) *FacebookClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &FacebookClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		adAccountID: adAccountID,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (c *FacebookClient) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

// objectiveMap translates campaign objectives to the platform's enum values.
var objectiveMap = map[models.CampaignObjective]string{
	models.ObjectiveBrandAwareness: "BRAND_AWARENESS",
	models.ObjectiveTraffic:        "LINK_CLICKS",
	models.ObjectiveConversions:    "CONVERSIONS",
	models.ObjectiveLeadGeneration: "LEAD_GENERATION",
	models.ObjectiveSales:          "CONVERSIONS",
	models.ObjectiveAppInstalls:    "APP_INSTALLS",
}

func platformObjective(objective models.CampaignObjective) string {
	if v, ok := objectiveMap[objective]; ok {
		return v
	}
	return "REACH"
}

// PublishCampaign creates the campaign on the ads platform and returns the
// platform-side campaign id. Campaigns are created paused so delivery only
// starts after review on the platform.
func (c *FacebookClient) PublishCampaign(ctx context.Context, campaign *models.Campaign) (string, error) {
	if strings.TrimSpace(c.accessToken) == "" {
		return "", &interfaces.ExternalServiceError{
			Service: "facebook", Op: "publish campaign",
			Err: errors.New("access token is not configured"),
		}
	}
	if strings.TrimSpace(c.adAccountID) == "" {
		return "", &interfaces.ExternalServiceError{
			Service: "facebook", Op: "publish campaign",
			Err: errors.New("ad account id is not configured"),
		}
	}

	payload := map[string]any{
		"name":                  campaign.Name,
		"objective":             platformObjective(campaign.Objective),
		"status":                "PAUSED",
		"daily_budget":          int(campaign.DailyBudget * 100), // cents
		"special_ad_categories": []string{},
	}
	var out struct {
		ID string `json:"id"`
	}
	path := fmt.Sprintf("/%s/campaigns", c.adAccountID)
	if err := c.post(ctx, path, payload, &out); err != nil {
		return "", &interfaces.ExternalServiceError{Service: "facebook", Op: "publish campaign", Err: err}
	}
	if out.ID == "" {
		return "", &interfaces.ExternalServiceError{
			Service: "facebook", Op: "publish campaign",
			Err: errors.New("response did not include campaign id"),
		}
	}

	if campaign.TargetAudience != nil {
		if err := c.createAdSet(ctx, out.ID, campaign); err != nil {
			return "", &interfaces.ExternalServiceError{Service: "facebook", Op: "create ad set", Err: err}
		}
	}
	return out.ID, nil
}

// createAdSet attaches a default ad set carrying the campaign's targeting to
// a freshly created platform campaign.
func (c *FacebookClient) createAdSet(ctx context.Context, platformCampaignID string, campaign *models.Campaign) error {
	targeting := map[string]any{}
	a := campaign.TargetAudience
	if a.AgeMin > 0 {
		targeting["age_min"] = a.AgeMin
	}
	if a.AgeMax > 0 {
		targeting["age_max"] = a.AgeMax
	}
	if len(a.Locations) > 0 {
		targeting["geo_locations"] = map[string]any{"countries": a.Locations}
	}
	if len(a.Interests) > 0 {
		targeting["flexible_spec"] = []map[string]any{{"interests": a.Interests}}
	}

	payload := map[string]any{
		"name":              campaign.Name + " - Ad Set",
		"campaign_id":       platformCampaignID,
		"daily_budget":      int(campaign.DailyBudget * 100), // cents
		"billing_event":     "IMPRESSIONS",
		"optimization_goal": "REACH",
		"status":            "PAUSED",
		"targeting":         targeting,
	}
	var out struct {
		ID string `json:"id"`
	}
	return c.post(ctx, fmt.Sprintf("/%s/adsets", c.adAccountID), payload, &out)
}

// PauseCampaign pauses a previously published campaign on the platform.
func (c *FacebookClient) PauseCampaign(ctx context.Context, externalID string) error {
	if strings.TrimSpace(externalID) == "" {
		return &interfaces.ExternalServiceError{
			Service: "facebook", Op: "pause campaign",
			Err: errors.New("external campaign id is empty"),
		}
	}
	payload := map[string]any{"status": "PAUSED"}
	if err := c.post(ctx, "/"+externalID, payload, nil); err != nil {
		return &interfaces.ExternalServiceError{Service: "facebook", Op: "pause campaign", Err: err}
	}
	return nil
}

func (c *FacebookClient) post(ctx context.Context, path string, payload any, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}
