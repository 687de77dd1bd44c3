// Package strategy decides the shape of the next response from the
// analyzed message and the accumulated session state. Decisions are pure:
// no I/O, no mutation.
package strategy

import (
	"fmt"

	contractx "github.com/pharmesol/pharmline/agent/contract"
	statex "github.com/pharmesol/pharmline/agent/state"
)

// Decide maps intent plus session context to a response strategy. The
// intent-specific rule runs first; session-kind context hints are appended
// after it regardless of intent.
func Decide(analysis contractx.AnalysisResult, session *statex.SessionState) contractx.ResponseStrategy {
	decision := contractx.ResponseStrategy{
		ResponseType:    contractx.ResponseConversational,
		Personalization: contractx.PersonalizationMedium,
	}

	switch analysis.Intent {
	case contractx.IntentRequestEmail:
		// Email is known if any source has it: the current message entity,
		// the lead, or the directory record.
		if analysis.Entities.Email == "" && !session.HasEmail() {
			decision.ResponseType = contractx.ResponseAskForEmail
			decision.PriorityActions = []string{contractx.ActionCollectEmail}
		} else {
			decision.ResponseType = contractx.ResponseSendEmail
			decision.PriorityActions = []string{contractx.ActionSendEmail}
		}

	case contractx.IntentRequestCallback:
		decision.ResponseType = contractx.ResponseScheduleCallback
		decision.PriorityActions = []string{contractx.ActionScheduleCallback}
		if analysis.Entities.PreferredTime != "" {
			decision.ContextHints = append(decision.ContextHints,
				"preferred_time: "+analysis.Entities.PreferredTime)
		}

	case contractx.IntentPharmacyIntroduction:
		decision.ResponseType = contractx.ResponseAcknowledgeIntro
		decision.PriorityActions = []string{contractx.ActionUpdateLeadData, contractx.ActionAssessFit}
		decision.Personalization = contractx.PersonalizationHigh

	case contractx.IntentPricingInquiry:
		decision.ResponseType = contractx.ResponsePricingDiscussion
		decision.PriorityActions = []string{contractx.ActionAssessVolume, contractx.ActionPresentValueProp}
		if session.IsKnownPharmacy() {
			decision.Personalization = contractx.PersonalizationHigh
		}
	}

	decision.ContextHints = append(decision.ContextHints, sessionHints(session)...)
	return decision
}

func sessionHints(session *statex.SessionState) []string {
	if session == nil {
		return nil
	}
	if session.IsKnownPharmacy() {
		return []string{
			"known_pharmacy",
			fmt.Sprintf("pharmacy_type: %s", session.Pharmacy.Tier()),
		}
	}
	return []string{
		"new_lead",
		fmt.Sprintf("lead_completeness: %d%%", session.Lead.CompletionPercentage()),
	}
}
