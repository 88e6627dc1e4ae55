package main

import (
	"time"

	"cbx/internal/analyze"
	"cbx/internal/config"
	"cbx/internal/export"
	"cbx/internal/llm"
	"cbx/internal/loader"
	"cbx/internal/logging"
	"cbx/internal/session"
	"cbx/internal/token"
)

// app bundles the wired components for one process lifetime. Constructed
// on command start, garbage-collected on exit; the session cache lives
// exactly as long as the process.
type app struct {
	cfg        *config.Config
	logger     *logging.Logger
	loader     *loader.Loader
	cache      *session.Cache
	dispatcher *analyze.Dispatcher
	exporter   *export.Exporter
}

// newApp loads configuration and wires the components. Logs go to stderr
// in every mode; in MCP mode stdout belongs to the protocol.
func newApp() (*app, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewLogger(logging.Config{
		Format: logging.ParseFormat(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})

	estimator := token.NewEstimator()
	if estimator.Approximate() {
		logger.Warn("Exact tokenizer unavailable, falling back to length heuristic", map[string]interface{}{
			"bytesPerToken": token.BytesPerToken,
		})
	}

	cache := session.New(time.Duration(cfg.Cache.TtlSeconds) * time.Second)
	ld := loader.New(cfg.Loader, estimator, logger.With(map[string]interface{}{"component": "loader"}))
	model := llm.NewClient(cfg.Model, cfg.APIKey())
	dispatcher := analyze.New(cache, model, logger.With(map[string]interface{}{"component": "analyze"}))
	exporter := export.New(cache, logger.With(map[string]interface{}{"component": "export"}))

	return &app{
		cfg:        cfg,
		logger:     logger,
		loader:     ld,
		cache:      cache,
		dispatcher: dispatcher,
		exporter:   exporter,
	}, nil
}
