package history

import (
	"context"
	"time"

	"github.com/prajwalun/agentbay/internal/domain"
)

// DateGroup is a labelled bucket of sessions.
type DateGroup struct {
	Label    string               `json:"label"`
	Sessions []domain.ChatSession `json:"sessions"`
}

// ByDate buckets sessions by last update relative to now: "Today",
// "Yesterday", "Last 7 days", then one bucket per month ("January 2026").
// Groups appear in the order their first session does.
func (s *Store) ByDate(ctx context.Context, now time.Time) []DateGroup {
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)

	var groups []DateGroup
	index := map[string]int{}

	for _, session := range s.All(ctx) {
		updated := session.UpdatedAt.In(now.Location())

		var label string
		switch {
		case sameDay(updated, now):
			label = "Today"
		case sameDay(updated, yesterday):
			label = "Yesterday"
		case updated.After(lastWeek):
			label = "Last 7 days"
		default:
			label = updated.Format("January 2006")
		}

		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, DateGroup{Label: label})
		}
		groups[i].Sessions = append(groups[i].Sessions, session)
	}
	return groups
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
