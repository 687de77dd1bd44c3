package analysis

import (
	"context"
	"strings"

	contractx "github.com/pharmesol/pharmline/agent/contract"
)

// RuleAnalyzer is the deterministic analyzer: keyword intent rules plus
// pattern extraction, no external calls. It is the correctness baseline
// every other analyzer falls back to.
type RuleAnalyzer struct{}

var _ contractx.Analyzer = RuleAnalyzer{}

func NewRuleAnalyzer() RuleAnalyzer {
	return RuleAnalyzer{}
}

func (RuleAnalyzer) Analyze(_ context.Context, message string) contractx.AnalysisResult {
	if strings.TrimSpace(message) == "" {
		return contractx.AnalysisResult{
			Intent:     contractx.IntentUnclear,
			Confidence: 0.0,
		}
	}

	intent, confidence := ClassifyIntent(message)
	entities := ExtractEntities(message)

	result := contractx.AnalysisResult{
		Intent:     intent,
		Entities:   entities,
		Confidence: confidence,
	}

	switch intent {
	case contractx.IntentRequestEmail:
		if entities.Email == "" {
			result.SuggestedActions = append(result.SuggestedActions, contractx.ActionCollectEmail)
		}
	case contractx.IntentPharmacyIntroduction:
		if entities.PharmacyName != "" || entities.Location != "" {
			result.SuggestedActions = append(result.SuggestedActions, contractx.ActionUpdateLeadData)
		}
	}
	return result
}
