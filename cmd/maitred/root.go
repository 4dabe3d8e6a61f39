package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maitredhq/maitred/internal/catalog"
	"github.com/maitredhq/maitred/internal/checkpoint"
	"github.com/maitredhq/maitred/internal/config"
	"github.com/maitredhq/maitred/internal/executor"
	"github.com/maitredhq/maitred/internal/intent"
	"github.com/maitredhq/maitred/internal/llm"
	"github.com/maitredhq/maitred/internal/logging"
	"github.com/maitredhq/maitred/internal/persona"
	"github.com/maitredhq/maitred/internal/pipeline"
	"github.com/maitredhq/maitred/internal/planner"
	"github.com/maitredhq/maitred/internal/respond"
	"github.com/maitredhq/maitred/memory"
	"github.com/maitredhq/maitred/tools"
)

var (
	flagConfig string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:           "maitred",
	Short:         "Conversational assistant for restaurant staff and guests",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to maitred.yaml")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(newChatCmd(persona.Internal), newChatCmd(persona.External), newSeedCmd())
}

// app bundles the composed process dependencies.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	cat    *catalog.Catalog
	mem    *memory.Store
	cp     checkpoint.Store
	pipe   *pipeline.Pipeline
}

func newApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDebug {
		cfg.Debug = true
	}
	logger := logging.New(cfg.Debug)

	cat, err := catalog.Open(filepath.Join(cfg.DataDir, "catalog.sqlite"))
	if err != nil {
		return nil, err
	}
	mem, err := memory.Open(filepath.Join(cfg.DataDir, "memories.sqlite"))
	if err != nil {
		cat.Close()
		return nil, err
	}
	cp := checkpoint.Open(filepath.Join(cfg.DataDir, "checkpoints.sqlite"), logger)

	model := cfg.Model
	if model == "" {
		model = llm.DefaultModel
	}
	client := llm.NewAnthropic(model, cfg.RequestTimeout)

	executors := map[persona.Persona]*executor.Executor{
		persona.Internal: executor.New(tools.Registry(persona.Internal, cat, mem), logger),
		persona.External: executor.New(tools.Registry(persona.External, cat, mem), logger),
	}

	pipe := pipeline.New(pipeline.Options{
		Classifier:    intent.New(client),
		Planner:       planner.New(client),
		Executors:     executors,
		Responder:     respond.NewResponder(client, cfg.Suggestions),
		Summarizer:    respond.NewSummarizer(client),
		Checkpoints:   cp,
		Memories:      mem,
		HistoryWindow: cfg.HistoryWindow,
		StepLimit:     cfg.StepLimit,
		Logger:        logger,
	})

	return &app{cfg: cfg, logger: logger, cat: cat, mem: mem, cp: cp, pipe: pipe}, nil
}

func (a *app) close() {
	a.cp.Close()
	a.mem.Close()
	a.cat.Close()
	a.logger.Sync()
}

// requireAPIKey fails fast before opening an interactive session.
func requireAPIKey() error {
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		return fmt.Errorf("missing ANTHROPIC_API_KEY; export it before running")
	}
	return nil
}
