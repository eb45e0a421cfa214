// internal/services/copy_client.go
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
)

// CopyClient generates and improves ad copy through a chat-completions API.
type CopyClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewCopyClient(baseURL, apiKey, model string, timeout time.Duration) *CopyClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if model == "" {
		model = "gpt-4o"
	}
	return &CopyClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *CopyClient) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

// AdCopy is a set of generated copy variants for one campaign brief.
type AdCopy struct {
	Headlines     []string `json:"headlines"`
	Descriptions  []string `json:"descriptions"`
	CallToActions []string `json:"call_to_actions"`
	Hashtags      []string `json:"hashtags"`
}

// CopySuggestions is the result of reworking existing ad copy.
type CopySuggestions struct {
	OptimizedCopy string   `json:"optimized_copy"`
	Suggestions   []string `json:"suggestions"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const copySystemPrompt = "You are an advertising copywriter. Respond only with JSON matching the requested schema."

// GenerateAdCopy produces headline, description, call-to-action and hashtag
// variants for the given product brief and target audience.
func (c *CopyClient) GenerateAdCopy(ctx context.Context, product, audience, tone string) (*AdCopy, error) {
	prompt := fmt.Sprintf(
		`Write ad copy for the product %q aimed at %q in a %s tone. Return JSON with keys "headlines" (5 strings), "descriptions" (3 strings), "call_to_actions" (3 strings) and "hashtags" (5 strings).`,
		product, audience, tone,
	)
	content, err := c.complete(ctx, "generate ad copy", prompt)
	if err != nil {
		return nil, err
	}

	var copySet AdCopy
	if err := json.Unmarshal([]byte(content), &copySet); err != nil {
		return nil, &interfaces.ExternalServiceError{
			Service: "copygen", Op: "generate ad copy",
			Err: fmt.Errorf("invalid json in completion: %w", err),
		}
	}
	return &copySet, nil
}

// OptimizeAdCopy rewrites existing copy and explains what was changed.
func (c *CopyClient) OptimizeAdCopy(ctx context.Context, existing, goal string) (*CopySuggestions, error) {
	prompt := fmt.Sprintf(
		`Improve this ad copy for the goal %q: %q. Return JSON with keys "optimized_copy" (string) and "suggestions" (3 strings describing the changes).`,
		goal, existing,
	)
	content, err := c.complete(ctx, "optimize ad copy", prompt)
	if err != nil {
		return nil, err
	}

	var suggestions CopySuggestions
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, &interfaces.ExternalServiceError{
			Service: "copygen", Op: "optimize ad copy",
			Err: fmt.Errorf("invalid json in completion: %w", err),
		}
	}
	return &suggestions, nil
}

func (c *CopyClient) complete(ctx context.Context, op, prompt string) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", &interfaces.ExternalServiceError{
			Service: "copygen", Op: op,
			Err: errors.New("api key is not configured"),
		}
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: copySystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		ResponseFormat: &struct {
			Type string `json:"type"`
		}{Type: "json_object"},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", &interfaces.ExternalServiceError{Service: "copygen", Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", &interfaces.ExternalServiceError{Service: "copygen", Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &interfaces.ExternalServiceError{Service: "copygen", Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &interfaces.ExternalServiceError{
			Service: "copygen", Op: op,
			Err: fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", &interfaces.ExternalServiceError{
			Service: "copygen", Op: op,
			Err: fmt.Errorf("invalid json: %w", err),
		}
	}
	if len(cr.Choices) == 0 {
		return "", &interfaces.ExternalServiceError{
			Service: "copygen", Op: op,
			Err: errors.New("completion returned no choices"),
		}
	}
	return cr.Choices[0].Message.Content, nil
}
