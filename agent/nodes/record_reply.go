package convnode

import (
	"fmt"

	contractx "github.com/pharmesol/pharmline/agent/contract"
	statex "github.com/pharmesol/pharmline/agent/state"
)

// RecordReply appends the assistant turn produced by dispatch and emits the
// graph output. Metadata carries the classified intent and chosen response
// type so transcripts stay auditable.
func RecordReply(in *GraphState) (GraphOutput, error) {
	if in == nil || in.Session == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}
	meta := map[string]string{
		"intent":        string(in.Analysis.Intent),
		"response_type": string(in.Decision.ResponseType),
	}
	if err := in.Session.AddMessage(statex.RoleAssistant, in.Reply, meta, in.Now); err != nil {
		return GraphOutput{}, err
	}
	return GraphOutput{Reply: in.Reply}, nil
}
