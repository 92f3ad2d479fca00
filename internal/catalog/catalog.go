// Package catalog lists the built-in agents.
package catalog

import "github.com/prajwalun/agentbay/internal/domain"

// DefaultDisplayName is shown for agent ids outside the catalog.
const DefaultDisplayName = "AI Assistant"

// Catalog is an ordered, read-only set of agents.
type Catalog struct {
	agents []domain.Agent
	byID   map[string]domain.Agent
}

// New builds a catalog from agents, keeping their order.
func New(agents []domain.Agent) *Catalog {
	c := &Catalog{byID: make(map[string]domain.Agent, len(agents))}
	for _, a := range agents {
		if _, dup := c.byID[a.ID]; dup {
			continue
		}
		c.agents = append(c.agents, a)
		c.byID[a.ID] = a
	}
	return c
}

// Default returns the six built-in agents.
func Default() *Catalog {
	return New([]domain.Agent{
		{
			ID:          domain.AgentYouTube,
			Name:        "YouTube Assistant",
			Description: "Analyzes YouTube videos, provides summaries, generates quizzes, and answers questions about video content",
			Tools:       []string{"video_analysis", "quiz_generation", "question_answering", "doubt_clarification"},
		},
		{
			ID:          domain.AgentTravel,
			Name:        "Travel Planner",
			Description: "Creates personalized travel itineraries, researches destinations, and provides travel advice",
			Tools:       []string{"destination_research", "itinerary_planning", "budget_estimation", "travel_tips"},
		},
		{
			ID:          domain.AgentFinance,
			Name:        "Finance Assistant",
			Description: "Provides stock prices, market analysis, crypto data, and financial insights",
			Tools:       []string{"stock_prices", "market_analysis", "crypto_data", "portfolio_analysis"},
		},
		{
			ID:          domain.AgentNews,
			Name:        "News Assistant",
			Description: "Searches for news articles, breaking news, and current events across various topics",
			Tools:       []string{"news_search", "breaking_news", "topic_analysis", "news_summary"},
		},
		{
			ID:          domain.AgentMusic,
			Name:        "Music Generator",
			Description: "Generates custom music using AI, creates compositions in various genres and styles",
			Tools:       []string{"music_generation", "composition", "genre_creation", "audio_processing"},
		},
		{
			ID:          domain.AgentData,
			Name:        "Data Analyst",
			Description: "Analyzes data, processes CSV files, provides statistical insights and data visualizations",
			Tools:       []string{"data_analysis", "csv_processing", "statistics", "data_insights"},
		},
	})
}

// List returns a copy of the agents in catalog order.
func (c *Catalog) List() []domain.Agent {
	return append([]domain.Agent(nil), c.agents...)
}

// Get looks up an agent by id.
func (c *Catalog) Get(id string) (domain.Agent, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// DisplayName returns the agent's name, or DefaultDisplayName.
func (c *Catalog) DisplayName(id string) string {
	if a, ok := c.byID[id]; ok {
		return a.Name
	}
	return DefaultDisplayName
}
