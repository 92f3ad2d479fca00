package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/prajwalun/agentbay/internal/domain"
	"github.com/prajwalun/agentbay/internal/policy"
)

// TurnResult is the outcome of a successful SendMessage.
type TurnResult struct {
	Routing   domain.RoutingResult `json:"routing"`
	AgentName string               `json:"agent_name"`
	Reply     domain.Message       `json:"reply"`
	Response  domain.ChatResponse  `json:"response"`
}

// SendMessage runs one chat turn. The user message is always kept in the
// transcript; the context only changes when the backend succeeds.
func (s *Service) SendMessage(ctx context.Context, convID, content string, attachments []string) (*TurnResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}

	conv, err := s.acquire(convID)
	if err != nil {
		return nil, err
	}
	defer conv.mu.Unlock()

	conv.messages = append(conv.messages, domain.Message{
		ID:        s.newID(),
		Content:   content,
		Role:      domain.RoleUser,
		Timestamp: s.now(),
	})

	work := conv.tracker.Clone()
	routing := s.router.Route(work, content, s.catalog.List())
	agentName := s.catalog.DisplayName(routing.AgentID)

	log := s.logger.With(
		zap.String("conversation_id", convID),
		zap.String("agent_id", routing.AgentID),
	)
	log.Debug("Message routed",
		zap.Float64("confidence", routing.Confidence),
		zap.String("reason", routing.Reason),
		zap.String("context_type", string(routing.ContextType)))

	if err := s.checkPolicy(ctx, convID, routing, agentName, log); err != nil {
		return nil, err
	}

	s.notify(ctx, convID,
		fmt.Sprintf("%s selected", agentName),
		fmt.Sprintf("%s (%d%% confidence)", routing.Reason, int(math.Round(routing.Confidence*100))),
		domain.VariantDefault)

	resp, err := s.backend.SendMessage(ctx, routing.AgentID, content, attachments)
	if err != nil {
		log.Error("Chat backend call failed", zap.Error(err))
		s.notify(ctx, convID, "Error", "Failed to send message. Please try again.", domain.VariantDestructive)
		return nil, fmt.Errorf("%w: %v", ErrBackendFailed, err)
	}
	if resp == nil {
		log.Error("Chat backend returned no response")
		s.notify(ctx, convID, "Error", "Failed to send message. Please try again.", domain.VariantDestructive)
		return nil, fmt.Errorf("%w: empty response", ErrBackendFailed)
	}

	work.Update(content, routing.AgentID, resp)
	conv.tracker = work

	reply := domain.Message{
		ID:        s.newID(),
		Content:   resp.Message,
		Role:      domain.RoleAssistant,
		Timestamp: s.now(),
		AgentUsed: routing.AgentID,
		Type:      resp.Type,
	}
	conv.messages = append(conv.messages, reply)

	return &TurnResult{
		Routing:   routing,
		AgentName: agentName,
		Reply:     reply,
		Response:  *resp,
	}, nil
}

// checkPolicy returns ErrAgentBlocked when the policy refuses the routed
// agent. Evaluation errors are logged and the call goes ahead.
func (s *Service) checkPolicy(ctx context.Context, convID string, routing domain.RoutingResult, agentName string, log *zap.Logger) error {
	if s.policyEngine == nil {
		return nil
	}

	decision, err := s.policyEngine.Evaluate(ctx, policy.Input{
		AgentID:     routing.AgentID,
		Confidence:  routing.Confidence,
		ContextType: string(routing.ContextType),
	})
	if err != nil {
		log.Error("Policy evaluation failed", zap.Error(err))
		return nil
	}
	if decision.Allowed() {
		return nil
	}

	log.Warn("Agent blocked by policy", zap.String("reason", decision.Reason))
	description := fmt.Sprintf("%s is not available right now.", agentName)
	if decision.Reason != "" {
		description = fmt.Sprintf("%s is not available: %s", agentName, decision.Reason)
	}
	s.notify(ctx, convID, "Agent unavailable", description, domain.VariantDestructive)
	return fmt.Errorf("%w: %s", ErrAgentBlocked, routing.AgentID)
}
