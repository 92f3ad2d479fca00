package router

import (
	"github.com/prajwalun/agentbay/internal/domain"
	"github.com/prajwalun/agentbay/internal/intent"
	"github.com/prajwalun/agentbay/internal/tracker"
)

// input is what every rule sees for one message.
type input struct {
	raw     string
	lower   string
	tracker *tracker.Tracker
}

// rule is one entry of the ordered decision list. Match returns the
// decision, or false to fall through to the next rule. Apply, when set,
// runs only for the rule that won.
type rule struct {
	Name  string
	Match func(in input) (domain.RoutingResult, bool)
	Apply func(t *tracker.Tracker, message string)
}

// keywordRule builds a fixed-outcome rule around a detector.
func keywordRule(name string, detect func(string) bool, result domain.RoutingResult) rule {
	return rule{
		Name: name,
		Match: func(in input) (domain.RoutingResult, bool) {
			return result, detect(in.lower)
		},
	}
}

func defaultRules(generalAgent string) []rule {
	return []rule{
		{
			Name: "youtube-url",
			Match: func(in input) (domain.RoutingResult, bool) {
				return domain.RoutingResult{
					AgentID:     domain.AgentYouTube,
					Confidence:  1.0,
					Reason:      "YouTube URL detected",
					ContextType: domain.ContextVideo,
				}, intent.ContainsYouTubeURL(in.raw)
			},
			Apply: func(t *tracker.Tracker, message string) { t.ActivateVideo(message) },
		},
		keywordRule("finance", intent.IsFinance, domain.RoutingResult{
			AgentID:     domain.AgentFinance,
			Confidence:  0.9,
			Reason:      "Finance/stock market request detected",
			ContextType: domain.ContextFinance,
		}),
		keywordRule("news", intent.IsNews, domain.RoutingResult{
			AgentID:     domain.AgentNews,
			Confidence:  0.9,
			Reason:      "News/current events request detected",
			ContextType: domain.ContextNews,
		}),
		keywordRule("music", intent.IsMusic, domain.RoutingResult{
			AgentID:     domain.AgentMusic,
			Confidence:  0.9,
			Reason:      "Music generation request detected",
			ContextType: domain.ContextMusic,
		}),
		keywordRule("data", intent.IsData, domain.RoutingResult{
			AgentID:     domain.AgentData,
			Confidence:  0.9,
			Reason:      "Data analysis request detected",
			ContextType: domain.ContextData,
		}),
		{Name: "video-context", Match: matchVideoContext},
		{Name: "travel-context", Match: matchTravelContext},
		{
			Name: "travel-intent",
			Match: func(in input) (domain.RoutingResult, bool) {
				return domain.RoutingResult{
					AgentID:     domain.AgentTravel,
					Confidence:  0.9,
					Reason:      "Travel planning request detected",
					ContextType: domain.ContextTravel,
				}, intent.IsTravel(in.lower)
			},
			Apply: func(t *tracker.Tracker, message string) { t.ActivateTravel(message) },
		},
		keywordRule("math", intent.IsMath, domain.RoutingResult{
			AgentID:     generalAgent,
			Confidence:  0.7,
			Reason:      "Mathematical calculation request",
			ContextType: domain.ContextGeneral,
		}),
	}
}

// matchVideoContext separates questions about the linked video from
// biographical questions the video probably cannot answer.
func matchVideoContext(in input) (domain.RoutingResult, bool) {
	if !in.tracker.HasVideoContext() {
		return domain.RoutingResult{}, false
	}

	question := intent.HasQuestionWord(in.lower)
	personal := intent.HasPersonalTerms(in.lower)

	switch {
	case intent.HasVideoTerms(in.lower) || (question && !personal):
		return domain.RoutingResult{
			AgentID:     domain.AgentYouTube,
			Confidence:  0.85,
			Reason:      "Question about video content",
			ContextType: domain.ContextVideo,
		}, true
	case personal && question:
		return domain.RoutingResult{
			AgentID:     domain.AgentYouTube,
			Confidence:  0.6,
			Reason:      "Personal question - may not be in video content",
			ContextType: domain.ContextOutOfScope,
		}, true
	case intent.IsFollowUp(in.lower):
		return domain.RoutingResult{
			AgentID:     domain.AgentYouTube,
			Confidence:  0.7,
			Reason:      "Follow-up question in video context",
			ContextType: domain.ContextVideo,
		}, true
	}
	return domain.RoutingResult{}, false
}

func matchTravelContext(in input) (domain.RoutingResult, bool) {
	if !in.tracker.HasTravelContext() {
		return domain.RoutingResult{}, false
	}
	if intent.HasTravelTerms(in.lower) || intent.IsFollowUp(in.lower) {
		return domain.RoutingResult{
			AgentID:     domain.AgentTravel,
			Confidence:  0.8,
			Reason:      "Travel-related question",
			ContextType: domain.ContextTravel,
		}, true
	}
	return domain.RoutingResult{}, false
}
