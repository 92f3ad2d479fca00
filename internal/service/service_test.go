package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prajwalun/agentbay/internal/domain"
	"github.com/prajwalun/agentbay/internal/history"
	"github.com/prajwalun/agentbay/internal/kv"
	"github.com/prajwalun/agentbay/internal/notify"
	"github.com/prajwalun/agentbay/internal/policy"
)

type backendCall struct {
	agentID     string
	text        string
	attachments []string
}

type fakeBackend struct {
	mu    sync.Mutex
	calls []backendCall
	resp  *domain.ChatResponse
	err   error

	// empty makes SendMessage return no response and no error.
	empty bool
}

func (f *fakeBackend) SendMessage(_ context.Context, agentID, text string, attachments []string) (*domain.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, backendCall{agentID: agentID, text: text, attachments: attachments})
	if f.err != nil || f.empty {
		return nil, f.err
	}
	if f.resp != nil {
		resp := *f.resp
		return &resp, nil
	}
	return &domain.ChatResponse{Message: "reply to " + text, Type: "text", Source: agentID}, nil
}

func (f *fakeBackend) Calls() []backendCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]backendCall(nil), f.calls...)
}

type fixture struct {
	svc      *Service
	backend  *fakeBackend
	notes    *notify.Recorder
	history  *history.Store
	clockNow time.Time
}

func newFixture(t *testing.T, mutate ...func(*Deps)) *fixture {
	t.Helper()

	f := &fixture{
		backend:  &fakeBackend{},
		notes:    &notify.Recorder{},
		clockNow: time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC),
	}
	f.history = history.NewStore(kv.NewMemoryStore(), zap.NewNop(), history.WithClock(func() time.Time {
		f.clockNow = f.clockNow.Add(time.Second)
		return f.clockNow
	}))

	deps := Deps{
		History:  f.history,
		Backend:  f.backend,
		Notifier: f.notes,
		Logger:   zap.NewNop(),
	}
	for _, m := range mutate {
		m(&deps)
	}

	svc, err := New(deps)
	require.NoError(t, err)

	var n int
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	f.svc = svc
	return f
}

func TestNewRequiresHistoryAndBackend(t *testing.T) {
	_, err := New(Deps{Backend: &fakeBackend{}})
	assert.Error(t, err)

	_, err = New(Deps{History: history.NewStore(kv.NewMemoryStore(), zap.NewNop())})
	assert.Error(t, err)
}

func TestStartConversation(t *testing.T) {
	f := newFixture(t)

	view := f.svc.StartConversation(context.Background())
	require.Len(t, view.Messages, 1)
	assert.Equal(t, WelcomeMessageID, view.Messages[0].ID)
	assert.Equal(t, domain.RoleAssistant, view.Messages[0].Role)
	assert.Equal(t, "No active context", view.ContextSummary)

	got, err := f.svc.Conversation(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.ID, got.ID)
}

func TestSendMessage_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	conv := f.svc.StartConversation(ctx)

	result, err := f.svc.SendMessage(ctx, conv.ID, "Plan a trip to Kyoto", []string{"mock://notes.txt"})
	require.NoError(t, err)

	assert.Equal(t, domain.AgentTravel, result.Routing.AgentID)
	assert.Equal(t, 0.9, result.Routing.Confidence)
	assert.Equal(t, "Travel Planner", result.AgentName)
	assert.Equal(t, "reply to Plan a trip to Kyoto", result.Reply.Content)
	assert.Equal(t, domain.AgentTravel, result.Reply.AgentUsed)
	assert.Equal(t, "text", result.Reply.Type)

	calls := f.backend.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"mock://notes.txt"}, calls[0].attachments)

	notes := f.notes.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "Travel Planner selected", notes[0].Title)
	assert.Equal(t, "Travel planning request detected (90% confidence)", notes[0].Description)
	assert.Equal(t, domain.VariantDefault, notes[0].Variant)
	assert.Equal(t, conv.ID, notes[0].ConversationID)

	view, err := f.svc.Conversation(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, view.Messages, 3)
	assert.Equal(t, domain.RoleUser, view.Messages[1].Role)
	assert.True(t, view.Context.Travel.PlanningActive)
	assert.Equal(t, []string{"Kyoto"}, view.Context.Travel.Destinations)
	assert.Equal(t, domain.AgentTravel, view.Context.LastAgentUsed)
}

func TestSendMessage_BackendFailureLeavesContextUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	conv := f.svc.StartConversation(ctx)
	f.backend.err = errors.New("connection refused")

	_, err := f.svc.SendMessage(ctx, conv.ID, "summarize https://youtu.be/dQw4w9WgXcQ", nil)
	require.ErrorIs(t, err, ErrBackendFailed)

	view, err := f.svc.Conversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.False(t, view.Context.Video.HasVideo, "the URL rule's write must not survive a failed turn")
	assert.Empty(t, view.Context.YouTubeURLs)
	assert.Empty(t, view.Context.RecentMessages)
	require.Len(t, view.Messages, 2, "the user message stays in the transcript")

	var destructive []domain.Notification
	for _, n := range f.notes.Notifications() {
		if n.Variant == domain.VariantDestructive {
			destructive = append(destructive, n)
		}
	}
	require.Len(t, destructive, 1)
	assert.Equal(t, "Error", destructive[0].Title)
	assert.Equal(t, "Failed to send message. Please try again.", destructive[0].Description)
	assert.Len(t, f.backend.Calls(), 1, "no retries")
	assert.Empty(t, f.history.All(ctx))
}

func TestSendMessage_EmptyBackendResponse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.backend.empty = true
	conv := f.svc.StartConversation(ctx)

	_, err := f.svc.SendMessage(ctx, conv.ID, "Plan a trip to Kyoto", nil)
	require.ErrorIs(t, err, ErrBackendFailed)

	notes := f.notes.Notifications()
	require.NotEmpty(t, notes)
	last := notes[len(notes)-1]
	assert.Equal(t, "Error", last.Title)
	assert.Equal(t, domain.VariantDestructive, last.Variant)

	view, err := f.svc.Conversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Len(t, view.Messages, 2)
	assert.Empty(t, view.Context.RecentMessages)
}

func TestSendMessage_VideoThenFollowUp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	conv := f.svc.StartConversation(ctx)
	f.backend.resp = &domain.ChatResponse{Message: "summary", Type: "video_summary", Title: "Go talk"}

	first, err := f.svc.SendMessage(ctx, conv.ID, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.AgentYouTube, first.Routing.AgentID)

	second, err := f.svc.SendMessage(ctx, conv.ID, "what is the main point of the video?", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.AgentYouTube, second.Routing.AgentID)
	assert.Equal(t, 0.85, second.Routing.Confidence)

	view, err := f.svc.Conversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.True(t, view.Context.Video.VideoProcessed)
	assert.Equal(t, "Go talk", view.Context.Video.Title)
}

func TestSendMessage_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	conv := f.svc.StartConversation(ctx)

	_, err := f.svc.SendMessage(ctx, conv.ID, "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = f.svc.SendMessage(ctx, "missing", "hello", nil)
	assert.ErrorIs(t, err, ErrConversationNotFound)

	assert.Empty(t, f.backend.Calls())
	assert.Empty(t, f.notes.Notifications())
}

func TestSendMessage_PolicyBlock(t *testing.T) {
	ctx := context.Background()
	engine, err := policy.NewEngine(ctx, policy.DefaultPolicy, []string{domain.AgentFinance})
	require.NoError(t, err)

	f := newFixture(t, func(d *Deps) { d.Policy = engine })
	conv := f.svc.StartConversation(ctx)

	_, err = f.svc.SendMessage(ctx, conv.ID, "what is the AAPL stock price?", nil)
	require.ErrorIs(t, err, ErrAgentBlocked)
	assert.Empty(t, f.backend.Calls())

	notes := f.notes.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "Agent unavailable", notes[0].Title)
	assert.Equal(t, domain.VariantDestructive, notes[0].Variant)

	_, err = f.svc.SendMessage(ctx, conv.ID, "plan a trip to Rome", nil)
	assert.NoError(t, err)
}

func TestPreviewRouteDoesNotCommit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	conv := f.svc.StartConversation(ctx)

	result, err := f.svc.PreviewRoute(ctx, conv.ID, "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, domain.AgentYouTube, result.AgentID)

	summary, err := f.svc.ContextSummary(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "No active context", summary)
	assert.Empty(t, f.backend.Calls())
}

func TestNewChat(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	conv := f.svc.StartConversation(ctx)

	id, err := f.svc.NewChat(ctx, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, id, "a welcome-only transcript is not saved")

	_, err = f.svc.SendMessage(ctx, conv.ID, "Plan a trip to Kyoto", nil)
	require.NoError(t, err)
	f.notes.Reset()

	id, err = f.svc.NewChat(ctx, conv.ID)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	saved := f.history.Get(ctx, id)
	require.NotNil(t, saved)
	assert.Len(t, saved.Messages, 3)
	assert.Equal(t, "Plan a trip to Kyoto", saved.Title)

	notes := f.notes.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "Previous chat saved", notes[0].Title)

	view, err := f.svc.Conversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Len(t, view.Messages, 1)
	assert.Equal(t, "No active context", view.ContextSummary)
}

func TestCloseConversation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	conv := f.svc.StartConversation(ctx)

	_, err := f.svc.SendMessage(ctx, conv.ID, "latest news please", nil)
	require.NoError(t, err)
	f.notes.Reset()

	id, err := f.svc.CloseConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	notes := f.notes.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "Chat saved", notes[0].Title)

	_, err = f.svc.Conversation(ctx, conv.ID)
	assert.ErrorIs(t, err, ErrConversationNotFound)

	_, err = f.svc.CloseConversation(ctx, conv.ID)
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestCloseConversationRejectsLateTurns(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	conv := f.svc.StartConversation(ctx)

	_, err := f.svc.SendMessage(ctx, conv.ID, "latest news please", nil)
	require.NoError(t, err)

	// Held before the close, as a concurrent SendMessage would be.
	held, err := f.svc.lookup(conv.ID)
	require.NoError(t, err)

	_, err = f.svc.CloseConversation(ctx, conv.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, held.lock(), ErrConversationNotFound)

	_, err = f.svc.SendMessage(ctx, conv.ID, "and sports?", nil)
	assert.ErrorIs(t, err, ErrConversationNotFound)
	assert.Len(t, f.backend.Calls(), 1)
	assert.Len(t, f.history.All(ctx), 1)
}

func TestLoadSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.svc.StartConversation(ctx)
	_, err := f.svc.SendMessage(ctx, first.ID, "Plan a trip to Kyoto", nil)
	require.NoError(t, err)
	sessionID, err := f.svc.CloseConversation(ctx, first.ID)
	require.NoError(t, err)

	conv := f.svc.StartConversation(ctx)
	_, err = f.svc.SendMessage(ctx, conv.ID, "what is AAPL trading at?", nil)
	require.NoError(t, err)
	f.notes.Reset()

	view, err := f.svc.LoadSession(ctx, conv.ID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, sessionID, view.LoadedSessionID)
	assert.Len(t, view.Messages, 3)
	assert.True(t, view.Context.Travel.PlanningActive, "context is rebuilt from the transcript")
	assert.False(t, view.Context.Finance.HasStockSymbols, "previous context is cleared")

	assert.Len(t, f.history.All(ctx), 2, "the unsaved transcript was saved before loading")

	notes := f.notes.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "Chat loaded", notes[0].Title)
	assert.Equal(t, "Loaded: Plan a trip to Kyoto", notes[0].Description)

	// A loaded transcript is not saved again when another session is loaded.
	_, err = f.svc.LoadSession(ctx, conv.ID, sessionID)
	require.NoError(t, err)
	assert.Len(t, f.history.All(ctx), 2)

	_, err = f.svc.LoadSession(ctx, conv.ID, "chat_missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionPassThroughs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	conv := f.svc.StartConversation(ctx)
	_, err := f.svc.SendMessage(ctx, conv.ID, "Plan a trip to Tokyo", nil)
	require.NoError(t, err)
	id, err := f.svc.CloseConversation(ctx, conv.ID)
	require.NoError(t, err)

	list := f.svc.ListSessions(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, 3, list[0].MessageCount)

	assert.Len(t, f.svc.SearchSessions(ctx, "tokyo"), 1)
	assert.Empty(t, f.svc.SearchSessions(ctx, "paris"))

	groups := f.svc.GroupedSessions(ctx)
	require.NotEmpty(t, groups)

	session, err := f.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, session.ID)

	_, err = f.svc.GetSession(ctx, "chat_missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.True(t, f.svc.DeleteSession(ctx, id))
	assert.Empty(t, f.svc.ListSessions(ctx))
	assert.True(t, f.svc.ClearSessions(ctx))
}

func TestConversationCacheEviction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(d *Deps) { d.CacheSize = 1 })

	first := f.svc.StartConversation(ctx)
	second := f.svc.StartConversation(ctx)

	_, err := f.svc.Conversation(ctx, first.ID)
	assert.ErrorIs(t, err, ErrConversationNotFound)
	_, err = f.svc.Conversation(ctx, second.ID)
	assert.NoError(t, err)
}

func TestListAgents(t *testing.T) {
	f := newFixture(t)
	assert.Len(t, f.svc.ListAgents(), 6)
}
