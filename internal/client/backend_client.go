// Package client holds the outbound HTTP collaborator for the sync backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-legalassist-core/internal/dto"
	"ai-legalassist-core/internal/entity"
)

// ConflictError is returned when the backend rejects a preferences update
// with its own newer copy. The sync layer hands it to the conflict resolver.
type ConflictError struct {
	ServerPayload   []byte
	ServerUpdatedAt time.Time
}

func (e *ConflictError) Error() string {
	return "preferences update conflicted with server state"
}

// BackendClient talks to the assistant backend. Request and response bodies
// are opaque JSON from the queue's perspective; network and server errors
// are both retryable failures for the sync layer.
type BackendClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewBackendClient(baseURL, apiKey string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *BackendClient) SyncExecution(ctx context.Context, record dto.ExecutionRecord) error {
	return c.send(ctx, http.MethodPost, "/executions", record, nil)
}

func (c *BackendClient) SyncFavorite(ctx context.Context, toggle dto.FavoriteToggle) error {
	method := http.MethodPost
	if !toggle.Favorite {
		method = http.MethodDelete
	}
	return c.send(ctx, method, fmt.Sprintf("/tools/%s/favorite", toggle.ToolId), nil, nil)
}

func (c *BackendClient) SyncPreferences(ctx context.Context, update dto.PreferencesUpdate) error {
	return c.send(ctx, http.MethodPut, "/users/preferences", update, nil)
}

func (c *BackendClient) SyncUsage(ctx context.Context, usage dto.UsageLog) error {
	return c.send(ctx, http.MethodPost, "/usage/log", usage, nil)
}

func (c *BackendClient) FetchTools(ctx context.Context) ([]entity.Tool, error) {
	var tools []entity.Tool
	if err := c.send(ctx, http.MethodGet, "/tools", nil, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

func (c *BackendClient) send(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		payload, _ := io.ReadAll(resp.Body)
		conflict := &ConflictError{ServerPayload: payload}
		var envelope struct {
			UpdatedAt time.Time `json:"updated_at"`
		}
		if json.Unmarshal(payload, &envelope) == nil {
			conflict.ServerUpdatedAt = envelope.UpdatedAt
		}
		return conflict
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, string(snippet))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}
