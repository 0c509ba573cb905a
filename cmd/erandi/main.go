package main

import (
	"context"
	"log"
	"os"

	"github.com/Rosseoko/erandi/internal/agent"
	"github.com/Rosseoko/erandi/internal/api"
	"github.com/Rosseoko/erandi/internal/config"
	"github.com/Rosseoko/erandi/internal/engine"
	"github.com/Rosseoko/erandi/internal/store"
	"github.com/Rosseoko/erandi/internal/template"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	logger.Info("erandi: starting",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"model", cfg.Model,
	)

	db, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	registry := template.DefaultRegistry()

	// Reasoning-heavy agents use the default model; profiling and
	// standards alignment use the fast one. Without an API key the
	// server still serves, with every agent on its fallback path.
	var client, fastClient agent.Client
	if cfg.GeminiAPIKey != "" {
		c, err := agent.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.Model)
		if err != nil {
			log.Fatalf("failed to create model client: %v", err)
		}
		fc, err := agent.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.FastModel)
		if err != nil {
			log.Fatalf("failed to create fast model client: %v", err)
		}
		client, fastClient = c, fc
	} else {
		logger.Warn("GEMINI_API_KEY not set, agents will serve fallback results")
		client, fastClient = agent.UnavailableClient{}, agent.UnavailableClient{}
	}

	profiler := agent.NewProfiler(fastClient, logger)
	aligner := agent.NewAligner(fastClient, logger)
	enricher := agent.NewEnricher(client, logger)
	designer := agent.NewDesigner(client, registry, logger)
	developer := agent.NewDeveloper(client, logger)
	assembler := agent.NewAssembler(client, logger)
	refiner := agent.NewRefiner(client, logger)

	eng := engine.NewEngine(db, engine.Agents{
		Profiler:  profiler,
		Aligner:   aligner,
		Enricher:  enricher,
		Designer:  designer,
		Developer: developer,
		Assembler: assembler,
	}, cfg.RunTimeout, logger)

	srv := api.NewServer(cfg.ListenAddr, db, registry, eng, api.StageAgents{
		Profiler: profiler,
		Aligner:  aligner,
		Enricher: enricher,
		Designer: designer,
		Refiner:  refiner,
	}, logger)

	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}

	// Let in-flight runs finish their current segment before exit.
	eng.Wait()
}
