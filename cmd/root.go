package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/credaudit/internal/catalogue"
	"github.com/abhisek/credaudit/internal/config"
	"github.com/abhisek/credaudit/internal/logging"
	"github.com/abhisek/credaudit/internal/metrics"
	"github.com/abhisek/credaudit/internal/predict"
	"github.com/abhisek/credaudit/internal/report"
	"github.com/abhisek/credaudit/internal/store"
	"github.com/abhisek/credaudit/internal/tracker"
)

// runtime holds what PersistentPreRunE resolved for the running command.
type runtime struct {
	cfg       *config.Config
	logger    *zap.Logger
	metrics   *metrics.Recorder
	catalogue *catalogue.Catalogue
	renderer  *report.Renderer
}

var (
	v  = config.New()
	rt *runtime
)

var rootCmd = &cobra.Command{
	Use:   "credaudit",
	Short: "Credit eligibility and graduation risk auditor",
	Long: "credaudit evaluates earned credits against term-gated degree requirements,\n" +
		"classifies academic risk and predicts graduation eligibility.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rt == nil {
			return nil
		}
		_ = rt.logger.Sync()
		if rt.cfg.MetricsFile != "" {
			if err := rt.metrics.WriteFile(rt.cfg.MetricsFile); err != nil {
				return fmt.Errorf("write metrics: %w", err)
			}
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default ./credaudit.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides CREDAUDIT_DB env var)")
	pf.String("catalogue", "", "Path to a YAML or JSON degree catalogue (default built-in)")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")
	pf.String("log-format", "console", "Log format: console or json")
	pf.String("log-file", "", "Write logs to this file with rotation instead of stderr")
	pf.String("metrics-file", "", "Write Prometheus metrics to this file on exit")
	pf.Bool("no-color", false, "Disable colored output")
	pf.String("model-url", "", "Base URL of an eligibility inference service (predict commands)")
	pf.Duration("model-timeout", 0, "Timeout for each inference request (predict commands)")

	_ = v.BindPFlag("db", pf.Lookup("db"))
	_ = v.BindPFlag("catalogue", pf.Lookup("catalogue"))
	_ = v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = v.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = v.BindPFlag("log.file", pf.Lookup("log-file"))
	_ = v.BindPFlag("metrics_file", pf.Lookup("metrics-file"))
	_ = v.BindPFlag("model.url", pf.Lookup("model-url"))
	_ = v.BindPFlag("model.timeout", pf.Lookup("model-timeout"))

	rootCmd.AddCommand(programsCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(studentCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup resolves configuration, logging and the catalogue.
func setup(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}

	logOpts := logging.DefaultOptions()
	logOpts.Level = cfg.Log.Level
	logOpts.Format = cfg.Log.Format
	logOpts.File = cfg.Log.File
	logger, err := logging.New(logOpts)
	if err != nil {
		return err
	}

	cat := catalogue.Default()
	if cfg.Catalogue != "" {
		cat, err = catalogue.LoadFile(cfg.Catalogue)
		if err != nil {
			return err
		}
		logger.Debug("catalogue loaded", zap.String("path", cfg.Catalogue), zap.Int("programs", len(cat.Programs())))
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	if os.Getenv("NO_COLOR") != "" {
		noColor = true
	}

	rt = &runtime{
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics.New(),
		catalogue: cat,
		renderer:  report.New(!noColor),
	}
	return nil
}

// predictor returns the configured classifier, or nil for the built-in
// requirements model.
func (r *runtime) predictor() predict.Predictor {
	if r.cfg.Model.URL == "" {
		return nil
	}
	var p predict.Predictor = predict.NewHTTPPredictor(r.cfg.Model.URL, r.cfg.Model.APIKey, r.cfg.Model.Timeout)
	p = predict.WithRetry(p, predict.DefaultRetryConfig())
	return predict.WithLogging(p, r.logger, r.metrics)
}

// service builds a tracker without storage for ad hoc commands.
func (r *runtime) service() *tracker.Service {
	svc := tracker.NewService(r.catalogue, nil, nil, r.logger).WithMetrics(r.metrics)
	if p := r.predictor(); p != nil {
		svc.WithPredictor(p)
	}
	return svc
}

// openService opens the store and builds a tracker backed by it. The
// returned function closes the store.
func (r *runtime) openService() (*tracker.Service, func(), error) {
	dbPath, err := resolveDBPath(r.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	r.logger.Debug("store opened", zap.String("path", dbPath))

	svc := tracker.NewService(r.catalogue, st.StudentRepo(), st.EvaluationRepo(), r.logger).WithMetrics(r.metrics)
	if p := r.predictor(); p != nil {
		svc.WithPredictor(p)
	}
	return svc, func() { st.Close() }, nil
}

// resolveDBPath returns the database path using --db flag or config
// (highest priority), then CREDAUDIT_DB env var, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
