// Package orchestrator runs the call lifecycle: it opens a session from a
// caller's phone number, pipes each utterance through the compiled
// message-handling graph, and closes the call with a summary.
package orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/pharmesol/pharmline/agent/contract"
	dispatchx "github.com/pharmesol/pharmline/agent/dispatch"
	convnode "github.com/pharmesol/pharmline/agent/nodes"
	statex "github.com/pharmesol/pharmline/agent/state"
)

type Engine struct {
	directory  contractx.Directory
	analyzer   contractx.Analyzer
	dispatcher *dispatchx.Dispatcher

	graphRunner compose.Runnable[convnode.GraphInput, convnode.GraphOutput]

	now func() time.Time
}

func New(
	directory contractx.Directory,
	analyzer contractx.Analyzer,
	dispatcher *dispatchx.Dispatcher,
) (*Engine, error) {
	if directory == nil {
		return nil, errors.New("pharmacy directory is required")
	}
	if analyzer == nil {
		return nil, errors.New("message analyzer is required")
	}
	if dispatcher == nil {
		return nil, errors.New("action dispatcher is required")
	}

	e := &Engine{
		directory:  directory,
		analyzer:   analyzer,
		dispatcher: dispatcher,
		now:        time.Now,
	}

	graphRunner, err := e.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	e.graphRunner = graphRunner

	return e, nil
}

// StartConversation opens a session for the caller and returns it with the
// opening greeting. A directory miss or outage downgrades the caller to a
// new-lead session; it never fails the call.
func (e *Engine) StartConversation(ctx context.Context, phone string) (*statex.SessionState, string, error) {
	record, err := e.directory.FindByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, contractx.ErrNotFound) {
			log.Warn().Err(err).Str("phone", phone).
				Msg("directory lookup failed, continuing as new lead")
		}
		record = nil
	}

	session, err := statex.NewSession(phone, record, e.now().UTC())
	if err != nil {
		return nil, "", err
	}

	greeting := dispatchx.Greeting(record)
	meta := map[string]string{"response_type": "greeting"}
	if err := session.AddMessage(statex.RoleAssistant, greeting, meta, e.now().UTC()); err != nil {
		return nil, "", err
	}

	return session, greeting, nil
}

// HandleMessage runs one caller utterance through the pipeline and returns
// the assistant's reply. It only errors on caller-contract violations; every
// collaborator failure surfaces as conversational text instead.
func (e *Engine) HandleMessage(ctx context.Context, session *statex.SessionState, text string) (string, error) {
	out, err := e.graphRunner.Invoke(ctx, convnode.GraphInput{
		Session: session,
		Text:    text,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}

// EndConversation closes the session and returns the parting line.
func (e *Engine) EndConversation(session *statex.SessionState) string {
	if session == nil {
		return ""
	}
	closing := dispatchx.Closing(session)
	meta := map[string]string{"response_type": "closing"}
	if err := session.AddMessage(statex.RoleAssistant, closing, meta, e.now().UTC()); err == nil {
		session.Status = statex.StatusCompleted
	}
	return closing
}

// CallSummary is the end-of-call report handed to whoever reviews the call.
type CallSummary struct {
	SessionID    string
	Phone        string
	CallerName   string
	Known        bool
	Status       string
	MessageCount int
	ActionsTaken []string
	LeadComplete int
	Duration     time.Duration
}

func (e *Engine) Summary(session *statex.SessionState) CallSummary {
	if session == nil {
		return CallSummary{}
	}
	summary := CallSummary{
		SessionID:    session.ID,
		Phone:        session.Phone,
		CallerName:   session.DisplayName(),
		Known:        session.IsKnownPharmacy(),
		Status:       string(session.Status),
		MessageCount: len(session.Messages),
		ActionsTaken: append([]string(nil), session.ActionsTaken...),
		Duration:     e.now().UTC().Sub(session.StartedAt),
	}
	if session.Lead != nil {
		summary.LeadComplete = session.Lead.CompletionPercentage()
	}
	return summary
}

func (s CallSummary) String() string {
	var b strings.Builder
	b.WriteString("Call " + s.SessionID + " (" + s.Phone + "): " + s.Status)
	if len(s.ActionsTaken) > 0 {
		b.WriteString(", actions: " + strings.Join(s.ActionsTaken, ", "))
	}
	return b.String()
}
