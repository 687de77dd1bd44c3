package contract

import (
	"context"

	statex "github.com/pharmesol/pharmline/agent/state"
)

// Directory looks up pharmacies by caller phone number or search filters.
// Implementations may fail with transport errors; the engine treats any
// failure as "not found" and proceeds as a new lead.
type Directory interface {
	FindByPhone(ctx context.Context, phone string) (*statex.PharmacyRecord, error)
	Search(ctx context.Context, filters SearchFilters) ([]statex.PharmacyRecord, error)
}

// Analyzer turns one caller message into an intent and extracted entities.
// Implementations never fail: unparseable text yields defaults.
type Analyzer interface {
	Analyze(ctx context.Context, message string) AnalysisResult
}

// EmailSender delivers a follow-up email to the caller.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// CallbackScheduler books a voice callback for the caller.
type CallbackScheduler interface {
	Schedule(ctx context.Context, req CallbackRequest) (CallbackConfirmation, error)
}

// LeadLogger records collected lead information in the CRM.
type LeadLogger interface {
	Log(ctx context.Context, lead LeadFields) error
}

// TaskCreator opens an internal follow-up task.
type TaskCreator interface {
	Create(ctx context.Context, req FollowUpRequest) (FollowUpTask, error)
}

// Responder produces generative reply text. It may fail; callers must
// degrade to a deterministic fallback and never surface the error.
type Responder interface {
	Complete(ctx context.Context, systemPrompt, contextSummary string, recent []statex.ConversationMessage) (string, error)
}
