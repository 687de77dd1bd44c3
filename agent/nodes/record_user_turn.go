package convnode

import (
	"fmt"

	contractx "github.com/pharmesol/pharmline/agent/contract"
	statex "github.com/pharmesol/pharmline/agent/state"
)

// RecordUserTurn appends the caller's message before analysis so prompts
// that depend on conversation length see the current turn. The turn is
// appended exactly once regardless of which path dispatch later takes.
func RecordUserTurn(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}
	if err := in.Session.AddMessage(statex.RoleUser, in.Text, nil, in.Now); err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}
	return in, nil
}
