package convnode

import (
	"context"
	"fmt"

	contractx "github.com/pharmesol/pharmline/agent/contract"
)

// AnalyzeMessage runs intent classification and entity extraction. The
// analyzer contract is total: it cannot fail, only default.
func AnalyzeMessage(ctx context.Context, in *GraphState, analyzer contractx.Analyzer) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	in.Analysis = analyzer.Analyze(ctx, in.Text)
	return in, nil
}
