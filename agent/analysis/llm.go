package analysis

import (
	"context"
	"encoding/json"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/rs/zerolog/log"

	contractx "github.com/pharmesol/pharmline/agent/contract"
)

const llmAnalyzerPrompt = `You analyze one message from a pharmacy caller.
Respond with JSON only: {"intent": "...", "confidence": 0.0,
"entities": {"email": "", "pharmacy_name": "", "location": "",
"rx_volume": null, "preferred_time": ""}}.
Intent must be one of: request_email, request_callback,
pharmacy_introduction, pricing_inquiry, greeting, general_inquiry, unclear.
Omit entity fields the message does not state.`

// LLMAnalyzer asks a chat model for a structured reading of the message
// and falls back to the deterministic rule analyzer on any transport
// failure, malformed payload, or unknown intent. The model can only add
// precision, never change what the rules would have gotten right: rule
// entities always win over model entities.
type LLMAnalyzer struct {
	client *openaisdk.Client
	model  string
	rules  RuleAnalyzer
}

var _ contractx.Analyzer = (*LLMAnalyzer)(nil)

func NewLLMAnalyzer(client *openaisdk.Client, model string) *LLMAnalyzer {
	return &LLMAnalyzer{
		client: client,
		model:  strings.TrimSpace(model),
		rules:  NewRuleAnalyzer(),
	}
}

type llmAnalysisPayload struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Entities   struct {
		Email         string `json:"email"`
		PharmacyName  string `json:"pharmacy_name"`
		Location      string `json:"location"`
		RxVolume      *int   `json:"rx_volume"`
		PreferredTime string `json:"preferred_time"`
	} `json:"entities"`
}

func (a *LLMAnalyzer) Analyze(ctx context.Context, message string) contractx.AnalysisResult {
	baseline := a.rules.Analyze(ctx, message)
	if a.client == nil || a.model == "" || strings.TrimSpace(message) == "" {
		return baseline
	}

	resp, err := a.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(a.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(llmAnalyzerPrompt),
			openaisdk.UserMessage(message),
		},
		MaxTokens:   openaisdk.Int(300),
		Temperature: openaisdk.Float(0),
	})
	if err != nil {
		log.Warn().Err(err).Msg("llm analysis failed, using rule analyzer")
		return baseline
	}
	if len(resp.Choices) == 0 {
		return baseline
	}

	payload, ok := parseAnalysisPayload(resp.Choices[0].Message.Content)
	if !ok {
		log.Warn().Msg("llm analysis returned malformed payload, using rule analyzer")
		return baseline
	}

	intent := contractx.Intent(payload.Intent)
	if !intent.Valid() {
		return baseline
	}

	result := baseline
	result.Intent = intent
	if payload.Confidence > 0 && payload.Confidence <= 1 {
		result.Confidence = payload.Confidence
	}

	// Fill only the gaps the deterministic pass left open.
	if result.Entities.Email == "" {
		result.Entities.Email = strings.TrimSpace(payload.Entities.Email)
	}
	if result.Entities.PharmacyName == "" {
		result.Entities.PharmacyName = strings.TrimSpace(payload.Entities.PharmacyName)
	}
	if result.Entities.Location == "" {
		result.Entities.Location = strings.TrimSpace(payload.Entities.Location)
	}
	if result.Entities.RxVolume == nil && payload.Entities.RxVolume != nil && *payload.Entities.RxVolume > 0 {
		result.Entities.RxVolume = payload.Entities.RxVolume
	}
	if result.Entities.PreferredTime == "" {
		result.Entities.PreferredTime = strings.TrimSpace(payload.Entities.PreferredTime)
	}
	return result
}

// parseAnalysisPayload tolerates prose around the JSON object, since not
// every model honors a JSON-only instruction.
func parseAnalysisPayload(content string) (llmAnalysisPayload, bool) {
	var payload llmAnalysisPayload

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return payload, false
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return payload, false
	}
	return payload, true
}
