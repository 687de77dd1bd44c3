package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/pharmesol/pharmline/agent/contract"
	openrouterx "github.com/pharmesol/pharmline/pkg/openrouter"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"500"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	// AnalyzerModel optionally points message analysis at a cheaper model
	// than the one generating replies.
	AnalyzerModel       string  `envconfig:"ANALYZER_MODEL" split_words:"true"`
	AnalyzerTemperature float32 `envconfig:"ANALYZER_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: llm api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: llm model is required", contractx.ErrValidation)
	}
	return nil
}

// ResponderModel maps this config onto the chat-model builder used for
// generative replies.
func (c Config) ResponderModel() openrouterx.Config {
	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              strings.TrimSpace(c.Model),
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        c.Temperature,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}

// AnalysisModelName resolves which model the LLM analyzer should use.
func (c Config) AnalysisModelName() string {
	if v := strings.TrimSpace(c.AnalyzerModel); v != "" {
		return v
	}
	return strings.TrimSpace(c.Model)
}
