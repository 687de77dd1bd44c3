package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	actionx "github.com/pharmesol/pharmline/agent/action"
	"github.com/pharmesol/pharmline/agent/agents/orchestrator"
	analysisx "github.com/pharmesol/pharmline/agent/analysis"
	contractx "github.com/pharmesol/pharmline/agent/contract"
	dispatchx "github.com/pharmesol/pharmline/agent/dispatch"
	llmx "github.com/pharmesol/pharmline/agent/llm"
	promptx "github.com/pharmesol/pharmline/agent/prompt"
	statex "github.com/pharmesol/pharmline/agent/state"
	configx "github.com/pharmesol/pharmline/pkg/config"
	directoryx "github.com/pharmesol/pharmline/pkg/directory"
	leadstorex "github.com/pharmesol/pharmline/pkg/leadstore"
	logx "github.com/pharmesol/pharmline/pkg/logger"
	openrouterx "github.com/pharmesol/pharmline/pkg/openrouter"
)

type AppConfig struct {
	Debug  bool `envconfig:"DEBUG" split_words:"true" default:"false"`
	Pretty bool `envconfig:"PRETTY" split_words:"true" default:"true"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("APP")
	logx.Init(logx.Config{Debug: appCfg.Debug, PrettyFormat: appCfg.Pretty})

	ctx := context.Background()

	directory := buildDirectory()
	analyzer, responder := buildAnalysis(ctx)
	leads, closeLeads := buildLeadLogger(ctx)
	defer closeLeads()

	dispatcher, err := dispatchx.New(
		actionx.ConsoleEmailSender{},
		actionx.ConsoleCallbackScheduler{},
		leads,
		actionx.ConsoleTaskCreator{},
		responder,
		promptx.Persona(),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("dispatcher init failed")
	}

	engine, err := orchestrator.New(directory, analyzer, dispatcher)
	if err != nil {
		log.Fatal().Err(err).Msg("engine init failed")
	}

	runConsole(ctx, engine)
}

// buildDirectory wires the pharmacy directory, or a permanently-unavailable
// stand-in when no DIRECTORY_URL is configured. Callers on the stand-in are
// treated as new leads, so the demo still runs end-to-end.
func buildDirectory() contractx.Directory {
	cfg, err := configx.New[directoryx.Config]("DIRECTORY")
	if err != nil {
		log.Warn().Err(err).Msg("directory not configured, every caller becomes a lead")
		return unavailableDirectory{}
	}
	client, err := directoryx.NewClient(*cfg)
	if err != nil {
		log.Warn().Err(err).Msg("directory client init failed, every caller becomes a lead")
		return unavailableDirectory{}
	}
	if !client.HealthCheck(context.Background()) {
		log.Warn().Str("url", cfg.URL).Msg("directory unreachable at startup")
	}
	return client
}

// buildAnalysis wires the message analyzer and reply generator. Without a
// usable LLM config the rule baseline alone classifies, and the dispatcher's
// deterministic fallbacks replace generative replies.
func buildAnalysis(ctx context.Context) (contractx.Analyzer, contractx.Responder) {
	cfg, err := configx.New[llmx.Config]("LLM")
	if err != nil || cfg.Validate() != nil {
		log.Warn().Msg("llm not configured, using rule-based analysis and template replies")
		return analysisx.RuleAnalyzer{}, nil
	}

	var analyzer contractx.Analyzer = analysisx.RuleAnalyzer{}
	if client := openrouterx.NewClient(cfg.ResponderModel()); client != nil {
		analyzer = analysisx.NewLLMAnalyzer(client, cfg.AnalysisModelName())
	}

	responderCfg := cfg.ResponderModel()
	responder, err := llmx.NewResponder(ctx, &responderCfg)
	if err != nil {
		log.Warn().Err(err).Msg("responder init failed, using template replies")
		return analyzer, nil
	}
	return analyzer, responder
}

func buildLeadLogger(ctx context.Context) (contractx.LeadLogger, func()) {
	cfg, err := configx.New[leadstorex.Config]("LEADS")
	if err != nil {
		log.Info().Msg("lead database not configured, logging leads to console")
		return actionx.ConsoleLeadLogger{}, func() {}
	}
	store, err := leadstorex.New(*cfg)
	if err != nil {
		log.Warn().Err(err).Msg("lead store init failed, logging leads to console")
		return actionx.ConsoleLeadLogger{}, func() {}
	}
	if err := store.EnsureSchema(ctx); err != nil {
		log.Warn().Err(err).Msg("lead schema setup failed, logging leads to console")
		_ = store.Close()
		return actionx.ConsoleLeadLogger{}, func() {}
	}
	return store, func() { _ = store.Close() }
}

func runConsole(ctx context.Context, engine *orchestrator.Engine) {
	reader := bufio.NewScanner(os.Stdin)

	fmt.Print("Caller phone number: ")
	if !reader.Scan() {
		return
	}
	phone := strings.TrimSpace(reader.Text())

	session, greeting, err := engine.StartConversation(ctx, phone)
	if err != nil {
		log.Fatal().Err(err).Msg("could not start conversation")
	}
	fmt.Println("\nAssistant:", greeting)

	for {
		fmt.Print("\nCaller: ")
		if !reader.Scan() {
			break
		}
		text := strings.TrimSpace(reader.Text())
		if text == "bye" || text == "exit" || text == "quit" {
			break
		}

		reply, err := engine.HandleMessage(ctx, session, text)
		if err != nil {
			log.Error().Err(err).Msg("message rejected")
			continue
		}
		fmt.Println("\nAssistant:", reply)
	}

	fmt.Println("\nAssistant:", engine.EndConversation(session))
	fmt.Println("\n" + engine.Summary(session).String())
}

// unavailableDirectory satisfies the directory contract when none is
// configured. Lookups report an outage, which the engine degrades to a
// new-lead session.
type unavailableDirectory struct{}

func (unavailableDirectory) FindByPhone(context.Context, string) (*statex.PharmacyRecord, error) {
	return nil, contractx.ErrDirectoryUnavailable
}

func (unavailableDirectory) Search(context.Context, contractx.SearchFilters) ([]statex.PharmacyRecord, error) {
	return nil, contractx.ErrDirectoryUnavailable
}
