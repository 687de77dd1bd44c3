package convnode

import (
	"fmt"

	contractx "github.com/pharmesol/pharmline/agent/contract"
	strategyx "github.com/pharmesol/pharmline/agent/strategy"
)

// DecideStrategy turns the analysis plus session context into the
// response decision dispatch will execute.
func DecideStrategy(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}
	in.Decision = strategyx.Decide(in.Analysis, in.Session)
	return in, nil
}
