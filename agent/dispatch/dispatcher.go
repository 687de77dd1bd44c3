// Package dispatch executes a decided response strategy against the action
// collaborators and the session, converting every collaborator failure into
// a plausible conversational continuation. Nothing on this path raises to
// the caller, and side effects are strictly additive: no recorded action or
// stored lead field is ever removed.
package dispatch

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/pharmesol/pharmline/agent/contract"
	statex "github.com/pharmesol/pharmline/agent/state"
)

const taskTypeCallbackFollowUp = "callback_follow_up"

// recentMessageWindow bounds how much history is handed to the responder.
const recentMessageWindow = 6

type Dispatcher struct {
	email     contractx.EmailSender
	callbacks contractx.CallbackScheduler
	leads     contractx.LeadLogger
	tasks     contractx.TaskCreator
	responder contractx.Responder
	persona   string
}

// New wires the dispatcher. The responder may be nil; the generative path
// then always uses the deterministic fallback. The action collaborators
// are required.
func New(
	email contractx.EmailSender,
	callbacks contractx.CallbackScheduler,
	leads contractx.LeadLogger,
	tasks contractx.TaskCreator,
	responder contractx.Responder,
	persona string,
) (*Dispatcher, error) {
	if email == nil {
		return nil, errors.New("email sender is required")
	}
	if callbacks == nil {
		return nil, errors.New("callback scheduler is required")
	}
	if leads == nil {
		return nil, errors.New("lead logger is required")
	}
	if tasks == nil {
		return nil, errors.New("task creator is required")
	}
	return &Dispatcher{
		email:     email,
		callbacks: callbacks,
		leads:     leads,
		tasks:     tasks,
		responder: responder,
		persona:   strings.TrimSpace(persona),
	}, nil
}

// Dispatch runs one strategy to completion and returns the assistant's
// reply text. The switch over response types is exhaustive; introduction
// and pricing strategies share the generative path with their strategy
// context attached.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	decision contractx.ResponseStrategy,
	analysis contractx.AnalysisResult,
	session *statex.SessionState,
) string {
	switch decision.ResponseType {
	case contractx.ResponseAskForEmail:
		return d.askForEmail(session)
	case contractx.ResponseSendEmail:
		return d.sendEmail(ctx, analysis, session)
	case contractx.ResponseScheduleCallback:
		return d.scheduleCallback(ctx, analysis, session)
	case contractx.ResponseAcknowledgeIntro,
		contractx.ResponsePricingDiscussion,
		contractx.ResponseConversational:
		return d.conversational(ctx, decision, session)
	}
	// Unreachable for strategies produced by this module; kept total so a
	// future response type cannot silently drop a turn.
	return d.conversational(ctx, decision, session)
}

func (d *Dispatcher) askForEmail(session *statex.SessionState) string {
	session.AddAction(contractx.ActionAskForEmail)
	session.Status = statex.StatusPendingEmail
	return askForEmailPrompt(session)
}

func (d *Dispatcher) sendEmail(ctx context.Context, analysis contractx.AnalysisResult, session *statex.SessionState) string {
	// Recipient precedence: address in the current message, then whatever
	// is already on file. With neither, degrade to asking instead of failing.
	to := analysis.Entities.Email
	if to == "" {
		to = session.EmailAddress()
	}
	if to == "" {
		return d.askForEmail(session)
	}

	subject, body := emailContent(session)
	if err := d.email.Send(ctx, to, subject, body); err != nil {
		log.Warn().Err(err).Str("to", to).Msg("email send failed")
		return emailSendFailureApology
	}

	session.AddAction(contractx.ActionSendEmail)
	session.Status = statex.StatusActive

	if !session.IsKnownPharmacy() {
		if err := d.leads.Log(ctx, leadFields(session.Lead)); err != nil {
			log.Warn().Err(err).Msg("lead logging failed")
		} else {
			session.AddAction(contractx.ActionLogLead)
		}
	}

	return emailConfirmation(to)
}

func (d *Dispatcher) scheduleCallback(ctx context.Context, analysis contractx.AnalysisResult, session *statex.SessionState) string {
	preferredTime := analysis.Entities.PreferredTime
	if preferredTime == "" {
		preferredTime = "during business hours"
	}

	confirmation, err := d.callbacks.Schedule(ctx, contractx.CallbackRequest{
		Phone:         session.Phone,
		PreferredTime: preferredTime,
		DisplayName:   session.DisplayName(),
		Notes:         callbackNotes(session),
	})
	if err != nil {
		log.Warn().Err(err).Str("phone", session.Phone).Msg("callback scheduling failed")
		return callbackFailureApology
	}

	session.AddAction(contractx.ActionScheduleCallback)
	session.Status = statex.StatusPendingCallback
	log.Info().Str("callback_id", confirmation.ID).Str("preferred_time", preferredTime).Msg("callback scheduled")

	if _, err := d.tasks.Create(ctx, contractx.FollowUpRequest{
		PharmacyName: session.DisplayName(),
		Phone:        session.Phone,
		Email:        session.EmailAddress(),
		TaskType:     taskTypeCallbackFollowUp,
	}); err != nil {
		// The callback itself is booked; a missing internal task is not
		// the caller's problem.
		log.Warn().Err(err).Msg("follow-up task creation failed")
	} else {
		session.AddAction(contractx.ActionCreateFollowUp)
	}

	return callbackConfirmation(session.Phone, preferredTime)
}

func (d *Dispatcher) conversational(ctx context.Context, decision contractx.ResponseStrategy, session *statex.SessionState) string {
	if d.responder == nil {
		return fallbackResponse(session)
	}

	summary := ContextSummary(session)
	if len(decision.ContextHints) > 0 {
		summary += " | HINTS: " + strings.Join(decision.ContextHints, ", ")
	}
	if len(decision.PriorityActions) > 0 {
		summary += " | PRIORITY ACTIONS: " + strings.Join(decision.PriorityActions, ", ")
	}
	summary += " | PERSONALIZATION: " + string(decision.Personalization)

	reply, err := d.responder.Complete(ctx, d.persona, summary, recentMessages(session))
	if err != nil || strings.TrimSpace(reply) == "" {
		log.Warn().Err(err).Msg("generative responder failed, using deterministic fallback")
		return fallbackResponse(session)
	}
	return strings.TrimSpace(reply)
}

func recentMessages(session *statex.SessionState) []statex.ConversationMessage {
	msgs := session.Messages
	if len(msgs) <= recentMessageWindow {
		return msgs
	}
	return msgs[len(msgs)-recentMessageWindow:]
}

func leadFields(lead *statex.LeadData) contractx.LeadFields {
	name := lead.PharmacyName
	if name == "" {
		name = "Unknown"
	}
	return contractx.LeadFields{
		PharmacyName:  name,
		Phone:         lead.Phone,
		Email:         lead.Email,
		Location:      lead.Location,
		ContactPerson: lead.ContactPerson,
		RxVolume:      lead.RxVolume,
		CompletionPct: lead.CompletionPercentage(),
		Interests:     lead.Interests,
		Notes:         lead.Notes,
	}
}
