package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajwalun/agentbay/internal/catalog"
	"github.com/prajwalun/agentbay/internal/domain"
	"github.com/prajwalun/agentbay/internal/tracker"
)

var agents = catalog.Default().List()

func TestRuleOrder(t *testing.T) {
	assert.Equal(t, []string{
		"youtube-url", "finance", "news", "music", "data",
		"video-context", "travel-context", "travel-intent", "math",
	}, New().RuleNames())
}

func TestYouTubeURLWinsOverEverything(t *testing.T) {
	r := New()
	tr := tracker.New()

	res := r.Route(tr, "what is the stock price news in this song https://www.youtube.com/watch?v=dQw4w9WgXcQ", agents)

	assert.Equal(t, domain.AgentYouTube, res.AgentID)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, domain.ContextVideo, res.ContextType)

	snap := tr.Snapshot()
	assert.True(t, snap.Video.HasVideo)
	assert.False(t, snap.Video.VideoProcessed)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", snap.Video.VideoURL)
}

func TestYouTubeURLResetsProcessedFlag(t *testing.T) {
	r := New()
	tr := tracker.New()
	r.Route(tr, "youtu.be/aaaaaaaaaaa", agents)
	tr.Update("youtu.be/aaaaaaaaaaa", domain.AgentYouTube, nil)
	require.True(t, tr.Snapshot().Video.VideoProcessed)

	r.Route(tr, "now this one youtu.be/bbbbbbbbbbb", agents)
	assert.False(t, tr.Snapshot().Video.VideoProcessed)
	assert.Equal(t, "youtu.be/bbbbbbbbbbb", tr.Snapshot().Video.VideoURL)
}

func TestKeywordRules(t *testing.T) {
	cases := []struct {
		msg     string
		agent   string
		context domain.ContextType
	}{
		{"What's the price of AAPL?", domain.AgentFinance, domain.ContextFinance},
		{"tell me about nvda", domain.AgentFinance, domain.ContextFinance},
		{"bitcoin today", domain.AgentFinance, domain.ContextFinance},
		{"show me the latest headlines", domain.AgentNews, domain.ContextNews},
		{"compose a melody for my film", domain.AgentMusic, domain.ContextMusic},
		{"analyze this spreadsheet", domain.AgentData, domain.ContextData},
		{"Plan a trip to Kyoto for 5 days", domain.AgentTravel, domain.ContextTravel},
	}

	r := New()
	for _, tc := range cases {
		res := r.Route(tracker.New(), tc.msg, agents)
		assert.Equal(t, tc.agent, res.AgentID, tc.msg)
		assert.Equal(t, 0.9, res.Confidence, tc.msg)
		assert.Equal(t, tc.context, res.ContextType, tc.msg)
	}
}

func TestFinanceBeatsNewsAndMusic(t *testing.T) {
	res := New().Route(tracker.New(), "latest news about the stock market and a song", agents)
	assert.Equal(t, domain.AgentFinance, res.AgentID)
}

func TestVideoContextClassifier(t *testing.T) {
	r := New()
	tr := tracker.New()
	r.Route(tr, "https://youtu.be/dQw4w9WgXcQ", agents)

	res := r.Route(tr, "who is the speaker in the clip", agents)
	assert.Equal(t, domain.AgentYouTube, res.AgentID)
	assert.Equal(t, 0.85, res.Confidence)
	assert.Equal(t, domain.ContextVideo, res.ContextType)

	res = r.Route(tr, "how old is the host and when was he born", agents)
	assert.Equal(t, domain.AgentYouTube, res.AgentID)
	assert.Equal(t, 0.6, res.Confidence)
	assert.Equal(t, domain.ContextOutOfScope, res.ContextType)

	res = r.Route(tr, "ok cool", agents)
	assert.Equal(t, domain.AgentYouTube, res.AgentID)
	assert.Equal(t, 0.7, res.Confidence)
	assert.Equal(t, "Follow-up question in video context", res.Reason)
}

func TestVideoContextFallsThrough(t *testing.T) {
	r := New()
	tr := tracker.New()
	r.Route(tr, "https://youtu.be/dQw4w9WgXcQ", agents)

	// long, no question word, no video vocabulary, no follow-up marker
	res := r.Route(tr, "I would really like to book a vacation somewhere warm this coming winter", agents)
	assert.Equal(t, domain.AgentTravel, res.AgentID)
	assert.Equal(t, 0.9, res.Confidence)
}

func TestTravelContextFollowUps(t *testing.T) {
	r := New()
	tr := tracker.New()
	res := r.Route(tr, "Plan a trip to Kyoto for 5 days", agents)
	require.Equal(t, domain.AgentTravel, res.AgentID)
	require.True(t, tr.HasTravelContext())
	assert.Equal(t, []string{"Kyoto"}, tr.Snapshot().Travel.Destinations)

	res = r.Route(tr, "where should we eat", agents)
	assert.Equal(t, domain.AgentTravel, res.AgentID)
	assert.Equal(t, 0.8, res.Confidence)
	assert.Equal(t, "Travel-related question", res.Reason)

	// keyword rules still take priority over an active travel context
	res = r.Route(tr, "hotel price", agents)
	assert.Equal(t, domain.AgentFinance, res.AgentID)
}

// Short messages count as follow-ups, so a topic change inside an active
// travel conversation stays with the travel agent. This is a known false
// positive of the length heuristic.
func TestShortTopicChangeStaysInTravelContext(t *testing.T) {
	r := New()
	tr := tracker.New()
	r.Route(tr, "Plan a trip to Kyoto for 5 days", agents)

	res := r.Route(tr, "recommend a good novel", agents)
	assert.Equal(t, domain.AgentTravel, res.AgentID)
	assert.Equal(t, 0.8, res.Confidence)
}

func TestMathAndFallback(t *testing.T) {
	r := New()

	res := r.Route(tracker.New(), "what is 12 * 7", agents)
	assert.Equal(t, DefaultGeneralAgent, res.AgentID)
	assert.Equal(t, 0.7, res.Confidence)
	assert.Equal(t, domain.ContextGeneral, res.ContextType)

	res = r.Route(tracker.New(), "tell me a joke", agents)
	assert.Equal(t, DefaultGeneralAgent, res.AgentID)
	assert.Equal(t, 0.5, res.Confidence)
	assert.Equal(t, "General assistance request", res.Reason)
}

func TestWithGeneralAgent(t *testing.T) {
	r := New(WithGeneralAgent("assistant"))

	assert.Equal(t, "assistant", r.Route(tracker.New(), "solve x", nil).AgentID)
	assert.Equal(t, "assistant", r.Route(tracker.New(), "hello", nil).AgentID)
}

func TestRouteDoesNotTouchTrackerForPlainRules(t *testing.T) {
	tr := tracker.New()
	New().Route(tr, "bitcoin today", agents)
	assert.Equal(t, tracker.NoActiveContext, tr.Summary())
}
