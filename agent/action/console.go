// Package action ships stand-in collaborator implementations that log what
// a real integration would do. They satisfy the contract interfaces so the
// engine can run end-to-end without a mail gateway, scheduler, or CRM.
package action

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/pharmesol/pharmline/agent/contract"
)

// ConsoleEmailSender prints the outbound email instead of delivering it.
type ConsoleEmailSender struct {
	From string
}

var _ contractx.EmailSender = ConsoleEmailSender{}

func (s ConsoleEmailSender) Send(_ context.Context, to, subject, body string) error {
	from := s.From
	if from == "" {
		from = "sales@pharmesol.com"
	}
	log.Info().
		Str("from", from).
		Str("to", to).
		Str("subject", subject).
		Int("body_bytes", len(body)).
		Msg("email sent")
	return nil
}

// ConsoleCallbackScheduler books callbacks into the log, defaulting the
// slot to 24 hours out.
type ConsoleCallbackScheduler struct {
	Now func() time.Time
}

var _ contractx.CallbackScheduler = ConsoleCallbackScheduler{}

func (s ConsoleCallbackScheduler) Schedule(_ context.Context, req contractx.CallbackRequest) (contractx.CallbackConfirmation, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	confirmation := contractx.CallbackConfirmation{
		ID:            "CB-" + shortID(),
		Phone:         req.Phone,
		DisplayName:   req.DisplayName,
		PreferredTime: req.PreferredTime,
		ScheduledFor:  now().Add(24 * time.Hour).UTC(),
		Notes:         req.Notes,
	}
	log.Info().
		Str("callback_id", confirmation.ID).
		Str("phone", confirmation.Phone).
		Str("contact", confirmation.DisplayName).
		Str("preferred_time", confirmation.PreferredTime).
		Time("scheduled_for", confirmation.ScheduledFor).
		Msg("callback scheduled")
	return confirmation, nil
}

// ConsoleLeadLogger writes the collected lead to the log in place of a CRM.
type ConsoleLeadLogger struct{}

var _ contractx.LeadLogger = ConsoleLeadLogger{}

func (ConsoleLeadLogger) Log(_ context.Context, lead contractx.LeadFields) error {
	log.Info().
		Str("lead_id", "LEAD-"+shortID()).
		Str("pharmacy_name", lead.PharmacyName).
		Str("phone", lead.Phone).
		Str("email", lead.Email).
		Str("location", lead.Location).
		Int("rx_volume", lead.RxVolume).
		Int("completion_pct", lead.CompletionPct).
		Msg("new lead logged")
	return nil
}

// ConsoleTaskCreator opens follow-up tasks due in three days.
type ConsoleTaskCreator struct {
	Now func() time.Time
}

var _ contractx.TaskCreator = ConsoleTaskCreator{}

func (c ConsoleTaskCreator) Create(_ context.Context, req contractx.FollowUpRequest) (contractx.FollowUpTask, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	task := contractx.FollowUpTask{
		ID:           "TASK-" + shortID(),
		PharmacyName: req.PharmacyName,
		TaskType:     req.TaskType,
		DueDate:      now().Add(72 * time.Hour).UTC(),
		Priority:     "medium",
	}
	log.Info().
		Str("task_id", task.ID).
		Str("pharmacy_name", task.PharmacyName).
		Str("task_type", task.TaskType).
		Time("due_date", task.DueDate).
		Msg("follow-up task created")
	return task, nil
}

func shortID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
