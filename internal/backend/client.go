// Package backend sends routed messages to the chat backend.
package backend

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prajwalun/agentbay/internal/domain"
)

// ModeMock selects the canned in-process backend.
const ModeMock = "MOCK"

// Client sends one message to one agent and returns its reply.
type Client interface {
	SendMessage(ctx context.Context, agentID, text string, attachments []string) (*domain.ChatResponse, error)
}

// Config selects and configures a Client.
type Config struct {
	Mode    string
	BaseURL string
	Token   string
	Timeout time.Duration
}

// NewClient returns a MockClient when cfg.Mode is MOCK or no base URL is
// set, and an HTTPClient otherwise.
func NewClient(cfg Config, logger *zap.Logger) Client {
	if strings.EqualFold(cfg.Mode, ModeMock) || cfg.BaseURL == "" || strings.EqualFold(cfg.BaseURL, ModeMock) {
		logger.Info("Using mock chat backend", zap.String("mode", cfg.Mode))
		return NewMockClient()
	}

	logger.Info("Using HTTP chat backend", zap.String("base_url", cfg.BaseURL))
	return NewHTTPClient(cfg.BaseURL, cfg.Token, cfg.Timeout)
}

var agentNames = map[string]string{
	domain.AgentYouTube: "YouTubeAgent",
	domain.AgentTravel:  "TravelAgent",
	domain.AgentFinance: "FinanceAgent",
	domain.AgentNews:    "NewsAgent",
	domain.AgentMusic:   "MusicAgent",
	domain.AgentData:    "DataAgent",
}

// AgentName maps an agent id to the backend's agent name. Unknown ids go
// to the travel agent.
func AgentName(agentID string) string {
	if name, ok := agentNames[agentID]; ok {
		return name
	}
	return "TravelAgent"
}
