package tracker

import (
	"strings"

	"github.com/prajwalun/agentbay/internal/domain"
	"github.com/prajwalun/agentbay/internal/intent"
)

// Tracker is the mutable context of one conversation. It is not safe for
// concurrent use.
type Tracker struct {
	recent       []RecentMessage
	youtubeURLs  []string
	destinations []string

	video   VideoContext
	travel  travelState
	finance FinanceContext
	data    DataContext

	topic     string
	lastAgent string
}

// While planning is active the travel context reports the running
// destination set rather than a copy taken at activation time.
type travelState struct {
	hasDestination bool
	planningActive bool
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{}
}

// Update records a completed turn. It must only be called after the
// backend produced a response for userMessage.
func (t *Tracker) Update(userMessage, agentUsed string, resp *domain.ChatResponse) {
	t.recent = append(t.recent, RecentMessage{Content: userMessage, AgentUsed: agentUsed})
	if len(t.recent) > MaxRecentMessages {
		t.recent = append([]RecentMessage(nil), t.recent[len(t.recent)-MaxRecentMessages:]...)
	}
	t.lastAgent = agentUsed

	lower := intent.Normalize(userMessage)

	switch agentUsed {
	case domain.AgentYouTube:
		if t.video.HasVideo {
			t.video.VideoProcessed = true
			if resp != nil {
				if resp.Title != "" {
					t.video.Title = resp.Title
				}
				if resp.Content != "" {
					t.video.Summary = resp.Content
				}
			}
		}
	case domain.AgentFinance:
		if symbols := intent.Symbols(userMessage); len(symbols) > 0 {
			t.finance = FinanceContext{HasStockSymbols: true, Symbols: symbols, PortfolioActive: true}
		}
	case domain.AgentTravel:
		if intent.IsTravel(lower) {
			t.ActivateTravel(userMessage)
		}
	case domain.AgentData:
		t.data = DataContext{HasData: true, AnalysisActive: true}
	}

	t.addYouTubeURLs(intent.YouTubeURLs(userMessage))
	t.addDestinations(intent.Destinations(userMessage))
	t.updateTopic(lower, agentUsed)
}

// ActivateVideo marks a freshly linked video as pending analysis.
func (t *Tracker) ActivateVideo(message string) {
	urls := intent.YouTubeURLs(message)
	t.addYouTubeURLs(urls)
	t.video = VideoContext{HasVideo: true, VideoProcessed: false}
	if len(urls) > 0 {
		t.video.VideoURL = urls[0]
	}
}

// ActivateTravel merges the destinations found in message and marks
// travel planning active, even when no destination was found.
func (t *Tracker) ActivateTravel(message string) {
	t.addDestinations(intent.Destinations(message))
	t.travel = travelState{hasDestination: true, planningActive: true}
}

// Clear resets every field.
func (t *Tracker) Clear() {
	*t = Tracker{}
}

// Replay rebuilds the context from a saved transcript. Each assistant reply
// that names an agent is paired with the user message before it.
func (t *Tracker) Replay(messages []domain.Message) {
	t.Clear()
	var pending *domain.Message
	for i := range messages {
		msg := &messages[i]
		switch msg.Role {
		case domain.RoleUser:
			pending = msg
		case domain.RoleAssistant:
			if pending == nil || msg.AgentUsed == "" {
				continue
			}
			if msg.AgentUsed == domain.AgentYouTube && intent.ContainsYouTubeURL(pending.Content) {
				t.ActivateVideo(pending.Content)
			}
			t.Update(pending.Content, msg.AgentUsed, nil)
			pending = nil
		}
	}
}

// Clone returns an independent copy of t.
func (t *Tracker) Clone() *Tracker {
	c := *t
	c.recent = append([]RecentMessage(nil), t.recent...)
	c.youtubeURLs = append([]string(nil), t.youtubeURLs...)
	c.destinations = append([]string(nil), t.destinations...)
	c.finance.Symbols = append([]string(nil), t.finance.Symbols...)
	return &c
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() ConversationContext {
	c := t.Clone()
	ctx := ConversationContext{
		RecentMessages:     c.recent,
		YouTubeURLs:        c.youtubeURLs,
		TravelDestinations: c.destinations,
		Video:              c.video,
		Finance:            c.finance,
		Data:               c.data,
		CurrentTopic:       c.topic,
		LastAgentUsed:      c.lastAgent,
	}
	ctx.Travel = t.travelContext()
	return ctx
}

func (t *Tracker) HasVideoContext() bool   { return t.video.HasVideo }
func (t *Tracker) HasTravelContext() bool  { return t.travel.hasDestination }
func (t *Tracker) HasFinanceContext() bool { return t.finance.HasStockSymbols }
func (t *Tracker) HasDataContext() bool    { return t.data.HasData }

// LastAgentUsed returns the agent of the previous completed turn.
func (t *Tracker) LastAgentUsed() string { return t.lastAgent }

// Summary renders a pipe-joined digest for debugging displays.
func (t *Tracker) Summary() string {
	var parts []string

	if t.video.HasVideo {
		status := "pending"
		if t.video.VideoProcessed {
			status = "analyzed"
		}
		parts = append(parts, "Video: "+status)
	}
	if travel := t.travelContext(); travel.HasDestination && len(travel.Destinations) > 0 {
		parts = append(parts, "Travel: "+strings.Join(travel.Destinations, ", "))
	}
	if t.finance.HasStockSymbols && len(t.finance.Symbols) > 0 {
		parts = append(parts, "Stocks: "+strings.Join(t.finance.Symbols, ", "))
	}
	if t.data.HasData {
		parts = append(parts, "Data: analysis active")
	}
	if t.topic != "" {
		parts = append(parts, "Topic: "+t.topic)
	}
	if t.lastAgent != "" {
		parts = append(parts, "Last agent: "+t.lastAgent)
	}

	if len(parts) == 0 {
		return NoActiveContext
	}
	return strings.Join(parts, " | ")
}

// NoActiveContext is the summary of an empty tracker.
const NoActiveContext = "No active context"

func (t *Tracker) travelContext() TravelContext {
	tc := TravelContext{
		HasDestination: t.travel.hasDestination,
		PlanningActive: t.travel.planningActive,
		Destinations:   []string{},
	}
	if t.travel.hasDestination {
		tc.Destinations = append(tc.Destinations, t.destinations...)
	}
	return tc
}

var topicLabels = map[string]string{
	domain.AgentYouTube: "YouTube Analysis",
	domain.AgentFinance: "Finance & Markets",
	domain.AgentNews:    "News & Current Events",
	domain.AgentMusic:   "Music Generation",
	domain.AgentData:    "Data Analysis",
}

func (t *Tracker) updateTopic(lower, agentUsed string) {
	if agentUsed == domain.AgentTravel && intent.IsTravel(lower) {
		t.topic = "Travel Planning"
		return
	}
	if label, ok := topicLabels[agentUsed]; ok {
		t.topic = label
		return
	}
	if intent.IsMath(lower) {
		t.topic = "Calculations"
	}
}

func (t *Tracker) addYouTubeURLs(urls []string) {
	t.youtubeURLs = appendUnique(t.youtubeURLs, urls)
}

func (t *Tracker) addDestinations(dests []string) {
	t.destinations = appendUnique(t.destinations, dests)
}

func appendUnique(set, items []string) []string {
	for _, item := range items {
		found := false
		for _, existing := range set {
			if existing == item {
				found = true
				break
			}
		}
		if !found {
			set = append(set, item)
		}
	}
	return set
}
