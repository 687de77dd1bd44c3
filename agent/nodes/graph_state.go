// Package convnode holds the per-step nodes of the message-handling
// pipeline. Each node takes the accumulated GraphState and returns it
// advanced by one step; the orchestrator wires them into a compiled graph.
package convnode

import (
	"fmt"
	"time"

	contractx "github.com/pharmesol/pharmline/agent/contract"
	statex "github.com/pharmesol/pharmline/agent/state"
)

type GraphInput struct {
	Session *statex.SessionState
	Text    string
}

type GraphOutput struct {
	Reply string
}

type GraphState struct {
	Session *statex.SessionState
	Text    string
	Now     time.Time

	Analysis contractx.AnalysisResult
	Decision contractx.ResponseStrategy
	Reply    string
}

// ValidateRequest guards the caller contract: a session must exist, hold
// its invariant, and still be open. The text itself may be empty; the
// classifier reports that as an unclear intent rather than an error.
func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	if in.Session == nil {
		return nil, fmt.Errorf("%w: no conversation started", contractx.ErrSessionNotActive)
	}
	if err := in.Session.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}
	if in.Session.Status == statex.StatusCompleted {
		return nil, fmt.Errorf("%w: conversation already completed", contractx.ErrSessionNotActive)
	}

	return &GraphState{
		Session: in.Session,
		Text:    in.Text,
		Now:     nowFn().UTC(),
	}, nil
}
