// Package policy decides whether a routed agent may be called.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

const (
	DecisionAllow = "allow"
	DecisionBlock = "block"
)

// Input is the document the dispatch policy is evaluated against.
type Input struct {
	AgentID     string   `json:"agent_id"`
	Confidence  float64  `json:"confidence"`
	ContextType string   `json:"context_type"`
	Disabled    []string `json:"disabled"`
}

// Decision is the outcome of one evaluation.
type Decision struct {
	Decision string
	Reason   string
}

// Allowed reports whether the agent may be called.
func (d Decision) Allowed() bool { return d.Decision != DecisionBlock }

// Engine is the OPA policy engine.
type Engine struct {
	query    rego.PreparedEvalQuery
	disabled []string
}

// NewEngine prepares policyContent, which must define
// data.agent_policy.decision and data.agent_policy.reason. disabled is
// passed to every evaluation as input.disabled.
func NewEngine(ctx context.Context, policyContent string, disabled []string) (*Engine, error) {
	r := rego.New(
		rego.Query("decision = data.agent_policy.decision; reason = data.agent_policy.reason"),
		rego.Module("agent_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query, disabled: append([]string(nil), disabled...)}, nil
}

// Evaluate checks whether in.AgentID may be dispatched to. in.Disabled is
// filled from the engine when empty.
func (e *Engine) Evaluate(ctx context.Context, in Input) (Decision, error) {
	if in.Disabled == nil {
		in.Disabled = e.disabled
	}
	if in.Disabled == nil {
		in.Disabled = []string{}
	}

	results, err := e.query.Eval(ctx, rego.EvalInput(in))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 {
		return Decision{Decision: DecisionAllow, Reason: "default"}, nil
	}

	d := Decision{Decision: DecisionAllow}
	if s, ok := results[0].Bindings["decision"].(string); ok {
		d.Decision = s
	}
	if s, ok := results[0].Bindings["reason"].(string); ok {
		d.Reason = s
	}
	return d, nil
}

// DefaultPolicy blocks agents listed in input.disabled.
const DefaultPolicy = `
package agent_policy

default decision = "allow"

decision = "block" {
	input.agent_id == input.disabled[_]
}

default reason = ""

reason = "agent is disabled" {
	decision == "block"
}
`
