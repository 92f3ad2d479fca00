package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prajwalun/agentbay/internal/catalog"
	"github.com/prajwalun/agentbay/internal/domain"
)

// MockClient answers with canned per-agent replies and never touches the
// network.
type MockClient struct {
	delay   time.Duration
	catalog *catalog.Catalog
}

var _ Client = (*MockClient)(nil)

// MockOption configures a MockClient.
type MockOption func(*MockClient)

// WithDelay makes every reply wait d, or until the context is done.
func WithDelay(d time.Duration) MockOption {
	return func(m *MockClient) { m.delay = d }
}

// NewMockClient creates a mock backend.
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{catalog: catalog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SendMessage returns the canned reply for agentID.
func (m *MockClient) SendMessage(ctx context.Context, agentID, text string, _ []string) (*domain.ChatResponse, error) {
	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.delay):
		}
	}

	lower := strings.ToLower(text)
	source := AgentName(agentID)

	reply := func(kind, message string) *domain.ChatResponse {
		return &domain.ChatResponse{Message: message, Type: kind, Source: source}
	}

	switch agentID {
	case domain.AgentYouTube:
		if strings.Contains(text, "youtube.com") || strings.Contains(text, "youtu.be") {
			return reply("video_summary", videoSummaryReply), nil
		}
		return reply("need_video", needVideoReply), nil
	case domain.AgentFinance:
		if strings.Contains(lower, "stock") || strings.Contains(lower, "price") {
			return reply("stock_price", stockPriceReply), nil
		}
		return reply("help", financeHelpReply), nil
	case domain.AgentNews:
		if strings.Contains(lower, "news") {
			return reply("tech_news", techNewsReply), nil
		}
		return reply("help", newsHelpReply), nil
	case domain.AgentMusic:
		if strings.Contains(lower, "generate") || strings.Contains(lower, "music") {
			return reply("music_generation", fmt.Sprintf(musicGenerationReply, text)), nil
		}
		return reply("help", musicHelpReply), nil
	case domain.AgentData:
		if strings.Contains(lower, "analyze") || strings.Contains(lower, "data") {
			return reply("help", dataReadyReply), nil
		}
		return reply("help", dataHelpReply), nil
	case domain.AgentTravel:
		if strings.Contains(lower, "trip") || strings.Contains(lower, "travel") {
			return reply("itinerary", itineraryReply), nil
		}
		return reply("need_destination", needDestinationReply), nil
	}

	return &domain.ChatResponse{
		Message: fmt.Sprintf("Hello! I'm %s. How can I help you today?", m.catalog.DisplayName(agentID)),
	}, nil
}
