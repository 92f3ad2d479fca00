package history

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prajwalun/agentbay/internal/domain"
)

func TestTitle(t *testing.T) {
	long := strings.Repeat("a", 60)

	tests := []struct {
		name     string
		messages []domain.Message
		want     string
	}{
		{"no user message", []domain.Message{{Content: "Welcome", Role: domain.RoleAssistant}}, "New Chat"},
		{"empty user message", []domain.Message{{Content: "   ", Role: domain.RoleUser}}, "New Chat"},
		{"capitalized", []domain.Message{{Content: "hello there", Role: domain.RoleUser}}, "Hello there"},
		{"url replaced", []domain.Message{{Content: "summarize https://youtu.be/dQw4w9WgXcQ please", Role: domain.RoleUser}}, "Summarize YouTube Video please"},
		{"truncated", []domain.Message{{Content: long, Role: domain.RoleUser}}, "A" + strings.Repeat("a", 46) + "..."},
		{"first user message wins", []domain.Message{
			{Content: "Welcome", Role: domain.RoleAssistant},
			{Content: "first", Role: domain.RoleUser},
			{Content: "second", Role: domain.RoleUser},
		}, "First"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.messages))
		})
	}
}

func TestTitle_ExactlyFiftyIsKept(t *testing.T) {
	content := strings.Repeat("b", 50)
	title := Title([]domain.Message{{Content: content, Role: domain.RoleUser}})
	assert.Len(t, title, 50)
	assert.False(t, strings.HasSuffix(title, "..."))
}

func TestTopics(t *testing.T) {
	msgs := []domain.Message{
		{Content: "Watch this video", Role: domain.RoleUser},
		{Content: "Nice", Role: domain.RoleAssistant, AgentUsed: domain.AgentYouTube},
		{Content: "Plan a trip", Role: domain.RoleUser},
		{Content: "calculate 2+2", Role: domain.RoleUser},
		{Content: "another video", Role: domain.RoleUser},
	}
	assert.Equal(t, []string{"YouTube", "Travel", "Math"}, Topics(msgs))
	assert.Empty(t, Topics(nil))
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "Empty conversation", Summarize([]domain.Message{{Content: "hi", Role: domain.RoleAssistant}}))
	assert.Equal(t, "Single question about: What is AAPL?...", Summarize([]domain.Message{{Content: "What is AAPL?", Role: domain.RoleUser}}))
	assert.Equal(t, "2 messages covering various topics", Summarize([]domain.Message{
		{Content: "a", Role: domain.RoleUser},
		{Content: "b", Role: domain.RoleUser},
	}))
}

func TestDescribe(t *testing.T) {
	session := domain.ChatSession{
		ID:    "chat_1_abc",
		Title: "Plan a trip",
		Messages: []domain.Message{
			{Content: "Plan a trip", Role: domain.RoleUser},
			{Content: "Sure", Role: domain.RoleAssistant, AgentUsed: domain.AgentTravel},
		},
	}

	o := Describe(session)
	assert.Equal(t, "chat_1_abc", o.ID)
	assert.Equal(t, 2, o.MessageCount)
	assert.Equal(t, []string{"Travel"}, o.Topics)
	assert.Equal(t, "Single question about: Plan a trip...", o.Summary)

	assert.Equal(t, []string{}, Describe(domain.ChatSession{}).Topics)
	assert.Len(t, DescribeAll([]domain.ChatSession{session, session}), 2)
}
