package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prajwalun/agentbay/internal/domain"
)

const defaultTimeout = 60 * time.Second

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Agent string    `json:"agent"`
	Input ChatInput `json:"input"`
}

// ChatInput carries the user's message and attachment references.
type ChatInput struct {
	Message string   `json:"message"`
	Files   []string `json:"files,omitempty"`
}

// HTTPClient talks to a chat backend over HTTP.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the backend at baseURL. A zero
// timeout uses 60 seconds.
func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SendMessage posts the message to {baseURL}/chat.
func (c *HTTPClient) SendMessage(ctx context.Context, agentID, text string, attachments []string) (*domain.ChatResponse, error) {
	body, err := json.Marshal(ChatRequest{
		Agent: AgentName(agentID),
		Input: ChatInput{Message: text, Files: attachments},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call chat backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("chat backend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var out domain.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	return &out, nil
}
