package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	convnode "github.com/pharmesol/pharmline/agent/nodes"
)

func (e *Engine) compileHandleMessageGraph(
	ctx context.Context,
) (compose.Runnable[convnode.GraphInput, convnode.GraphOutput], error) {
	graph := compose.NewGraph[convnode.GraphInput, convnode.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in convnode.GraphInput) (*convnode.GraphState, error) {
			return convnode.ValidateRequest(in, e.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("record_user_turn",
		compose.InvokableLambda(func(ctx context.Context, in *convnode.GraphState) (*convnode.GraphState, error) {
			return convnode.RecordUserTurn(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node record_user_turn: %w", err)
	}

	if err := graph.AddLambdaNode("analyze_message",
		compose.InvokableLambda(func(ctx context.Context, in *convnode.GraphState) (*convnode.GraphState, error) {
			return convnode.AnalyzeMessage(ctx, in, e.analyzer)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node analyze_message: %w", err)
	}

	if err := graph.AddLambdaNode("merge_entities",
		compose.InvokableLambda(func(ctx context.Context, in *convnode.GraphState) (*convnode.GraphState, error) {
			return convnode.MergeEntities(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node merge_entities: %w", err)
	}

	if err := graph.AddLambdaNode("decide_strategy",
		compose.InvokableLambda(func(ctx context.Context, in *convnode.GraphState) (*convnode.GraphState, error) {
			return convnode.DecideStrategy(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node decide_strategy: %w", err)
	}

	if err := graph.AddLambdaNode("dispatch_response",
		compose.InvokableLambda(func(ctx context.Context, in *convnode.GraphState) (*convnode.GraphState, error) {
			return convnode.DispatchResponse(ctx, in, e.dispatcher)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node dispatch_response: %w", err)
	}

	if err := graph.AddLambdaNode("record_reply",
		compose.InvokableLambda(func(ctx context.Context, in *convnode.GraphState) (convnode.GraphOutput, error) {
			return convnode.RecordReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node record_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "record_user_turn"},
		{"record_user_turn", "analyze_message"},
		{"analyze_message", "merge_entities"},
		{"merge_entities", "decide_strategy"},
		{"decide_strategy", "dispatch_response"},
		{"dispatch_response", "record_reply"},
		{"record_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("pharmline.handle_message"))
	if err != nil {
		return nil, fmt.Errorf("compile conversation graph: %w", err)
	}
	return runner, nil
}
