package contract

import (
	"time"

	statex "github.com/pharmesol/pharmline/agent/state"
)

// Intent is the closed set of caller intents the analyzer can report.
type Intent string

const (
	IntentRequestEmail         Intent = "request_email"
	IntentRequestCallback      Intent = "request_callback"
	IntentPharmacyIntroduction Intent = "pharmacy_introduction"
	IntentPricingInquiry       Intent = "pricing_inquiry"
	IntentGreeting             Intent = "greeting"
	IntentGeneralInquiry       Intent = "general_inquiry"
	IntentUnclear              Intent = "unclear"
)

// Valid reports whether the intent is one of the known tags. Used to
// reject free-form intents coming back from an LLM.
func (i Intent) Valid() bool {
	switch i {
	case IntentRequestEmail, IntentRequestCallback, IntentPharmacyIntroduction,
		IntentPricingInquiry, IntentGreeting, IntentGeneralInquiry, IntentUnclear:
		return true
	}
	return false
}

// AnalysisResult is produced fresh per message and never persisted or
// merged with prior results; only lead data accumulates across turns.
type AnalysisResult struct {
	Intent           Intent          `json:"intent"`
	Entities         statex.Entities `json:"entities"`
	Confidence       float64         `json:"confidence"`
	SuggestedActions []string        `json:"suggested_actions,omitempty"`
}

// ResponseType is the closed set of response shapes the dispatcher can
// execute. Dispatch switches over it exhaustively; there is no string-keyed
// action map and therefore no unknown-action runtime path.
type ResponseType string

const (
	ResponseAskForEmail       ResponseType = "ask_for_email"
	ResponseSendEmail         ResponseType = "send_email"
	ResponseScheduleCallback  ResponseType = "schedule_callback"
	ResponseAcknowledgeIntro  ResponseType = "acknowledge_intro"
	ResponsePricingDiscussion ResponseType = "pricing_discussion"
	ResponseConversational    ResponseType = "conversational"
)

type PersonalizationLevel string

const (
	PersonalizationLow    PersonalizationLevel = "low"
	PersonalizationMedium PersonalizationLevel = "medium"
	PersonalizationHigh   PersonalizationLevel = "high"
)

// ResponseStrategy is the decided shape of the next response: which
// deterministic action to take, or whether to fall back to generative text.
// Transient; recomputed per message.
type ResponseStrategy struct {
	ResponseType    ResponseType         `json:"response_type"`
	PriorityActions []string             `json:"priority_actions,omitempty"`
	ContextHints    []string             `json:"context_hints,omitempty"`
	Personalization PersonalizationLevel `json:"personalization_level"`
}

// Action names recorded in the session's action history and suggested by
// strategies.
const (
	ActionSendEmail        = "send_email"
	ActionAskForEmail      = "ask_for_email"
	ActionCollectEmail     = "collect_email"
	ActionScheduleCallback = "schedule_callback"
	ActionLogLead          = "log_lead"
	ActionCreateFollowUp   = "create_follow_up"
	ActionUpdateLeadData   = "update_lead_data"
	ActionAssessFit        = "assess_fit"
	ActionAssessVolume     = "assess_volume"
	ActionPresentValueProp = "present_value_prop"
)

// SearchFilters narrows a directory search. Zero fields do not filter.
type SearchFilters struct {
	City      string
	State     string
	MinVolume int
}

// CallbackRequest carries everything the scheduling collaborator needs.
type CallbackRequest struct {
	Phone         string `json:"phone"`
	PreferredTime string `json:"preferred_time"`
	DisplayName   string `json:"display_name"`
	Notes         string `json:"notes,omitempty"`
}

// CallbackConfirmation is the scheduler's record of a booked callback.
type CallbackConfirmation struct {
	ID            string    `json:"id"`
	Phone         string    `json:"phone"`
	DisplayName   string    `json:"display_name"`
	PreferredTime string    `json:"preferred_time"`
	ScheduledFor  time.Time `json:"scheduled_for"`
	Notes         string    `json:"notes,omitempty"`
}

// LeadFields is the flattened lead snapshot handed to the lead logger.
type LeadFields struct {
	PharmacyName  string   `json:"pharmacy_name"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email,omitempty"`
	Location      string   `json:"location,omitempty"`
	ContactPerson string   `json:"contact_person,omitempty"`
	RxVolume      int      `json:"rx_volume,omitempty"`
	CompletionPct int      `json:"completion_percentage"`
	Interests     []string `json:"interests,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// FollowUpRequest asks the task collaborator for an internal follow-up.
type FollowUpRequest struct {
	PharmacyName string `json:"pharmacy_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	TaskType     string `json:"task_type"`
}

// FollowUpTask is the task collaborator's created record.
type FollowUpTask struct {
	ID           string    `json:"id"`
	PharmacyName string    `json:"pharmacy_name"`
	TaskType     string    `json:"task_type"`
	DueDate      time.Time `json:"due_date"`
	Priority     string    `json:"priority"`
}
