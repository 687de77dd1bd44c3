package analysis

import (
	"context"
	"testing"

	contractx "github.com/pharmesol/pharmline/agent/contract"
)

func TestRuleAnalyzerExtractsRegardlessOfIntent(t *testing.T) {
	t.Parallel()

	// An email request still carries the introduction's entities; nothing
	// in the message may be lost to the intent decision.
	result := RuleAnalyzer{}.Analyze(context.Background(),
		"Hi, I'm calling from MedCare Pharmacy, we fill about 8,000 prescriptions. Email me at ops@medcare.com")

	if result.Intent != contractx.IntentRequestEmail {
		t.Fatalf("intent = %q", result.Intent)
	}
	if result.Entities.Email != "ops@medcare.com" {
		t.Fatalf("email = %q", result.Entities.Email)
	}
	if result.Entities.RxVolume == nil || *result.Entities.RxVolume != 8000 {
		t.Fatalf("rx volume = %v", result.Entities.RxVolume)
	}
	if result.Entities.PharmacyName == "" {
		t.Fatal("expected pharmacy name")
	}
}

func TestRuleAnalyzerEmptyMessage(t *testing.T) {
	t.Parallel()

	result := RuleAnalyzer{}.Analyze(context.Background(), "  ")
	if result.Intent != contractx.IntentUnclear || result.Confidence != 0.0 {
		t.Fatalf("result = %+v", result)
	}
	if !result.Entities.IsEmpty() {
		t.Fatalf("entities = %+v", result.Entities)
	}
}

func TestRuleAnalyzerSuggestsCollectingEmail(t *testing.T) {
	t.Parallel()

	result := RuleAnalyzer{}.Analyze(context.Background(), "Can you send me some information?")
	if result.Intent != contractx.IntentRequestEmail {
		t.Fatalf("intent = %q", result.Intent)
	}
	if len(result.SuggestedActions) != 1 || result.SuggestedActions[0] != contractx.ActionCollectEmail {
		t.Fatalf("suggested actions = %v", result.SuggestedActions)
	}
}
