package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/pharmesol/pharmline/agent/contract"
	statex "github.com/pharmesol/pharmline/agent/state"
	openrouterx "github.com/pharmesol/pharmline/pkg/openrouter"
)

// Responder generates reply text with a chat model. Failures are returned
// to the dispatcher, which owns the deterministic fallback; this type never
// fabricates a reply itself.
type Responder struct {
	model model.ToolCallingChatModel
}

var _ contractx.Responder = (*Responder)(nil)

func NewResponder(ctx context.Context, builder openrouterx.LLMBuilder) (*Responder, error) {
	if builder == nil {
		return nil, errors.New("llm builder is required")
	}
	m, err := builder.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create responder model: %w", err)
	}
	return &Responder{model: m}, nil
}

func (r *Responder) Complete(
	ctx context.Context,
	systemPrompt string,
	contextSummary string,
	recent []statex.ConversationMessage,
) (string, error) {
	system := strings.TrimSpace(systemPrompt)
	if summary := strings.TrimSpace(contextSummary); summary != "" {
		system += "\n\nCURRENT CONTEXT:\n" + summary
	}

	messages := make([]*schema.Message, 0, len(recent)+1)
	messages = append(messages, schema.SystemMessage(system))
	for _, msg := range recent {
		switch msg.Role {
		case statex.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(msg.Content, nil))
		default:
			messages = append(messages, schema.UserMessage(msg.Content))
		}
	}

	out, err := r.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("responder generate: %w", err)
	}
	reply := strings.TrimSpace(out.Content)
	if reply == "" {
		return "", errors.New("responder returned empty reply")
	}
	return reply, nil
}
