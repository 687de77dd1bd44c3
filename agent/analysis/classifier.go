package analysis

import (
	"strings"

	contractx "github.com/pharmesol/pharmline/agent/contract"
)

// intentRule matches case-insensitive substrings against the full message.
type intentRule struct {
	intent     contractx.Intent
	confidence float64
	keywords   []string
}

// intentRules is an ordered decision list: the first matching rule wins
// and later rules are not evaluated. Email requests deliberately outrank
// callback requests when a message plausibly matches both.
var intentRules = []intentRule{
	{
		intent:     contractx.IntentRequestEmail,
		confidence: 0.8,
		keywords:   []string{"email", "send me", "mail me", "information", "details", "send"},
	},
	{
		intent:     contractx.IntentRequestCallback,
		confidence: 0.8,
		keywords:   []string{"callback", "call back", "call me", "schedule", "call", "phone"},
	},
	{
		intent:     contractx.IntentPharmacyIntroduction,
		confidence: 0.9,
		keywords:   []string{"pharmacy", "calling from", "i'm from", "located", "we fill", "prescriptions"},
	},
	{
		intent:     contractx.IntentPricingInquiry,
		confidence: 0.7,
		keywords:   []string{"pricing", "price", "cost", "rates", "volume", "discount", "competitive"},
	},
	{
		intent:     contractx.IntentGreeting,
		confidence: 0.6,
		keywords:   []string{"hello", "hi", "hey", "good morning", "good afternoon"},
	},
}

// ClassifyIntent maps one message to an intent tag and confidence score.
// An empty message short-circuits to unclear with zero confidence.
func ClassifyIntent(message string) (contractx.Intent, float64) {
	if strings.TrimSpace(message) == "" {
		return contractx.IntentUnclear, 0.0
	}

	lower := strings.ToLower(message)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.intent, rule.confidence
			}
		}
	}
	return contractx.IntentGeneralInquiry, 0.5
}
