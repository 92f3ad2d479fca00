// Package router picks the agent for a message with an ordered list of
// keyword and regex rules. The first matching rule wins.
package router

import (
	"github.com/prajwalun/agentbay/internal/domain"
	"github.com/prajwalun/agentbay/internal/intent"
	"github.com/prajwalun/agentbay/internal/tracker"
)

// DefaultGeneralAgent handles math and anything no other rule claims.
const DefaultGeneralAgent = domain.AgentTravel

// Router is safe for concurrent use; all per-conversation state lives in
// the tracker passed to Route.
type Router struct {
	rules        []rule
	generalAgent string
}

// Option configures a Router.
type Option func(*Router)

// WithGeneralAgent overrides the agent used for math and fallback routing.
func WithGeneralAgent(agentID string) Option {
	return func(r *Router) {
		if agentID != "" {
			r.generalAgent = agentID
		}
	}
}

// New creates a router with the built-in rule order.
func New(opts ...Option) *Router {
	r := &Router{generalAgent: DefaultGeneralAgent}
	for _, opt := range opts {
		opt(r)
	}
	r.rules = defaultRules(r.generalAgent)
	return r
}

// Route selects an agent for message. It never fails. The YouTube URL and
// travel intent rules record what they found in t; callers that must not
// see those writes before the turn completes should pass a clone.
//
// agents is the catalog shown to the user. The rules use fixed agent ids
// and do not consult it.
func (r *Router) Route(t *tracker.Tracker, message string, agents []domain.Agent) domain.RoutingResult {
	in := input{raw: message, lower: intent.Normalize(message), tracker: t}

	for _, rl := range r.rules {
		result, ok := rl.Match(in)
		if !ok {
			continue
		}
		if rl.Apply != nil {
			rl.Apply(t, message)
		}
		return result
	}

	return domain.RoutingResult{
		AgentID:     r.generalAgent,
		Confidence:  0.5,
		Reason:      "General assistance request",
		ContextType: domain.ContextGeneral,
	}
}

// RuleNames lists the rules in evaluation order.
func (r *Router) RuleNames() []string {
	names := make([]string, len(r.rules))
	for i, rl := range r.rules {
		names[i] = rl.Name
	}
	return names
}
