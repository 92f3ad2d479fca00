package history

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/prajwalun/agentbay/internal/domain"
)

const (
	defaultTitle   = "New Chat"
	maxTitleLength = 50
	urlPlaceholder = "YouTube Video"
)

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// Title derives a session title from the first user message.
func Title(messages []domain.Message) string {
	for _, msg := range messages {
		if msg.Role == domain.RoleUser {
			return titleFrom(msg.Content)
		}
	}
	return defaultTitle
}

func titleFrom(content string) string {
	title := strings.TrimSpace(content)
	title = urlPattern.ReplaceAllString(title, urlPlaceholder)

	if utf8.RuneCountInString(title) > maxTitleLength {
		runes := []rune(title)
		title = string(runes[:maxTitleLength-3]) + "..."
	}

	if title == "" {
		return defaultTitle
	}
	r, size := utf8.DecodeRuneInString(title)
	return string(unicode.ToUpper(r)) + title[size:]
}

// Topics lists the broad topics a transcript touched, in first-seen order.
func Topics(messages []domain.Message) []string {
	var topics []string
	add := func(topic string) {
		for _, t := range topics {
			if t == topic {
				return
			}
		}
		topics = append(topics, topic)
	}

	for _, msg := range messages {
		content := strings.ToLower(msg.Content)
		if strings.Contains(content, "youtube") || strings.Contains(content, "video") || msg.AgentUsed == domain.AgentYouTube {
			add("YouTube")
		}
		if strings.Contains(content, "travel") || strings.Contains(content, "trip") || msg.AgentUsed == domain.AgentTravel {
			add("Travel")
		}
		if strings.Contains(content, "calculate") || strings.Contains(content, "math") {
			add("Math")
		}
	}
	return topics
}

// Summarize describes a transcript in one line.
func Summarize(messages []domain.Message) string {
	var user []domain.Message
	for _, msg := range messages {
		if msg.Role == domain.RoleUser {
			user = append(user, msg)
		}
	}

	switch len(user) {
	case 0:
		return "Empty conversation"
	case 1:
		content := user[0].Content
		if runes := []rune(content); len(runes) > maxTitleLength {
			content = string(runes[:maxTitleLength])
		}
		return fmt.Sprintf("Single question about: %s...", content)
	default:
		return fmt.Sprintf("%d messages covering various topics", len(user))
	}
}
