// Package tracker owns the per-conversation routing context: recent
// messages, extracted entities and the per-domain sub-contexts.
package tracker

// MaxRecentMessages bounds the recent message ring.
const MaxRecentMessages = 5

// RecentMessage is one entry of the recent message ring.
type RecentMessage struct {
	Content   string `json:"content"`
	AgentUsed string `json:"agent_used,omitempty"`
}

// VideoContext becomes active when a YouTube link is seen.
type VideoContext struct {
	HasVideo       bool   `json:"has_video"`
	VideoURL       string `json:"video_url,omitempty"`
	VideoProcessed bool   `json:"video_processed"`
	Title          string `json:"title,omitempty"`
	Summary        string `json:"summary,omitempty"`
}

// TravelContext becomes active once travel planning starts.
type TravelContext struct {
	HasDestination bool     `json:"has_destination"`
	Destinations   []string `json:"destinations"`
	PlanningActive bool     `json:"planning_active"`
}

// FinanceContext holds the tickers of the most recent finance turn.
type FinanceContext struct {
	HasStockSymbols bool     `json:"has_stock_symbols"`
	Symbols         []string `json:"symbols"`
	PortfolioActive bool     `json:"portfolio_active"`
}

// DataContext becomes active after the data agent has been used.
type DataContext struct {
	HasData        bool `json:"has_data"`
	AnalysisActive bool `json:"analysis_active"`
}

// ConversationContext is a point-in-time copy of a Tracker's state.
type ConversationContext struct {
	RecentMessages     []RecentMessage `json:"recent_messages"`
	YouTubeURLs        []string        `json:"youtube_urls"`
	TravelDestinations []string        `json:"travel_destinations"`
	Video              VideoContext    `json:"video"`
	Travel             TravelContext   `json:"travel"`
	Finance            FinanceContext  `json:"finance"`
	Data               DataContext     `json:"data"`
	CurrentTopic       string          `json:"current_topic,omitempty"`
	LastAgentUsed      string          `json:"last_agent_used,omitempty"`
}
