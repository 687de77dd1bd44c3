package convnode

import (
	"context"
	"fmt"

	contractx "github.com/pharmesol/pharmline/agent/contract"
	dispatchx "github.com/pharmesol/pharmline/agent/dispatch"
)

// DispatchResponse executes the decided strategy. Dispatch converts every
// collaborator failure into conversational text, so this node cannot fail
// for runtime reasons.
func DispatchResponse(ctx context.Context, in *GraphState, dispatcher *dispatchx.Dispatcher) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}
	in.Reply = dispatcher.Dispatch(ctx, in.Decision, in.Analysis, in.Session)
	return in, nil
}
