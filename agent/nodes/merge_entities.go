package convnode

import (
	"fmt"

	contractx "github.com/pharmesol/pharmline/agent/contract"
)

// MergeEntities folds extracted entities into the lead record. Sessions
// matched in the directory are untouched; their data is immutable.
func MergeEntities(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}
	in.Session.MergeEntities(in.Analysis.Entities)
	return in, nil
}
