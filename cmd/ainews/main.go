package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/ainews/pkg/analyzer"
	"github.com/umputun/ainews/pkg/archive"
	"github.com/umputun/ainews/pkg/config"
	"github.com/umputun/ainews/pkg/content"
	"github.com/umputun/ainews/pkg/pipeline"
	"github.com/umputun/ainews/pkg/report"
	"github.com/umputun/ainews/pkg/scheduler"
	"github.com/umputun/ainews/pkg/source"
	"github.com/umputun/ainews/pkg/storage"
	"github.com/umputun/ainews/server"
)

// Opts with all CLI options
type Opts struct {
	Config        string        `short:"c" long:"config" env:"AINEWS_CONFIG" description:"path to YAML config file"`
	Endpoint      string        `long:"endpoint" env:"TIANAPI_ENDPOINT" description:"news API endpoint"`
	Key           string        `long:"key" env:"TIANAPI_KEY" description:"news API key"`
	Max           int           `long:"max" env:"MAX_TOPICS" description:"number of news items to request"`
	SourceTimeout time.Duration `long:"source-timeout" env:"SOURCE_TIMEOUT" description:"news API request timeout"`
	Provider      string        `long:"provider" env:"LLM_PROVIDER" description:"analyzer backend (heuristic, openai, zhipu, gemini)"`
	LLMKey        string        `long:"llm-key" env:"LLM_API_KEY" description:"LLM API key"`
	Reports       string        `long:"reports" env:"REPORTS_DIR" description:"directory for raw, analyzed and report files"`
	FromLatest    bool          `long:"from-latest" description:"re-render the latest analyzed file without fetching"`
	Serve         string        `long:"serve" env:"SERVE" description:"serve reports on this address after the run"`
	Every         time.Duration `long:"every" env:"RUN_EVERY" description:"re-run the pipeline on this interval while serving"`
	EnvFile       string        `long:"env-file" default:".env" description:"dotenv file with environment variables"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	opts, err := parseOpts(os.Args[1:])
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)
	log.Printf("[DEBUG] starting ainews version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err = run(ctx, opts)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// parseOpts parses command line and environment. The dotenv file is loaded first and the
// options are parsed again, so values from the file act as env defaults.
func parseOpts(args []string) (Opts, error) {
	var opts Opts
	if _, err := flags.NewParser(&opts, flags.Default).ParseArgs(args); err != nil {
		return opts, err
	}
	if opts.EnvFile == "" {
		return opts, nil
	}

	if err := godotenv.Load(opts.EnvFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return opts, nil
		}
		return opts, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
	}

	var reparsed Opts
	if _, err := flags.NewParser(&reparsed, flags.Default).ParseArgs(args); err != nil {
		return reparsed, err
	}
	return reparsed, nil
}

// run loads and validates configuration, executes the pipeline and optionally serves reports
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("%w: failed to load config: %w", config.ErrConfig, err)
	}
	applyOverrides(cfg, opts)
	setupLog(opts.Debug, secrets(cfg)...)

	// re-rendering needs neither the news source nor the analyzer
	if !opts.FromLatest {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	renderer, err := report.NewRenderer(cfg.Report.Title)
	if err != nil {
		return err
	}
	store := storage.NewStore(cfg.Report.Dir)
	params := pipeline.Params{Store: store, Renderer: renderer}

	var history server.History
	if cfg.Archive.DSN != "" {
		arch, err := archive.Open(ctx, cfg.Archive.DSN)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer func() {
			if err := arch.Close(); err != nil {
				log.Printf("[WARN] failed to close archive: %v", err)
			}
		}()
		params.Archive = arch
		history = arch
	}

	var res *pipeline.Result
	var runner *pipeline.Runner
	if opts.FromLatest {
		if res, err = pipeline.New(params).RenderLatest(ctx); err != nil {
			return err
		}
	} else {
		src, err := source.New(cfg.Source)
		if err != nil {
			return err
		}
		an, err := analyzer.New(ctx, cfg.LLM, analyzer.KeywordsFromConfig(cfg.Scoring))
		if err != nil {
			return err
		}
		if closer, ok := an.(io.Closer); ok {
			defer func() {
				if err := closer.Close(); err != nil {
					log.Printf("[WARN] failed to close llm client: %v", err)
				}
			}()
		}
		params.Source, params.Analyzer = src, an
		if cfg.Extraction.Enabled {
			params.Extractor = content.NewHTTPExtractor(cfg.Extraction)
		}
		runner = pipeline.New(params)
		if res, err = runner.Run(ctx); err != nil {
			return err
		}
	}
	printSummary(os.Stdout, res)

	if opts.Serve == "" {
		return nil
	}

	if runner != nil && opts.Every > 0 {
		sched := scheduler.New(scheduler.Params{Runner: runner, Interval: opts.Every,
			OnResult: func(res *pipeline.Result) { printSummary(os.Stdout, res) }})
		sched.Start(ctx)
		defer sched.Stop()
	}

	srv := server.New(cfg, store, history, revision, opts.Debug)
	return srv.Run(ctx)
}

// applyOverrides puts CLI and env values on top of the config file
func applyOverrides(cfg *config.Config, opts Opts) {
	if opts.Endpoint != "" {
		cfg.Source.APIEndpoint = opts.Endpoint
	}
	if opts.Key != "" {
		cfg.Source.APIKey = opts.Key
	}
	if opts.Max > 0 {
		cfg.Source.MaxTopics = opts.Max
	}
	if opts.SourceTimeout > 0 {
		cfg.Source.APITimeout = opts.SourceTimeout
	}
	if opts.Provider != "" && opts.Provider != cfg.LLM.Provider {
		// model and endpoint defaults belong to the previous provider
		cfg.LLM.Provider = opts.Provider
		cfg.LLM.Model, cfg.LLM.Endpoint = "", ""
		cfg.SetDefaults()
	}
	if key := llmKey(cfg.LLM.Provider, opts.LLMKey); key != "" {
		cfg.LLM.APIKey = key
	}
	if opts.Reports != "" {
		cfg.Report.Dir = opts.Reports
	}
	if opts.Serve != "" {
		cfg.Server.Listen = opts.Serve
	}
}

// llmKey picks the explicit key or the provider specific env variable
func llmKey(provider, explicit string) string {
	if explicit != "" {
		return explicit
	}
	switch provider {
	case config.ProviderOpenAI:
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return key
		}
		return os.Getenv("ZHIPU_API_KEY")
	case config.ProviderZhipu:
		return os.Getenv("ZHIPU_API_KEY")
	case config.ProviderGemini:
		return os.Getenv("GEMINI_API_KEY")
	}
	return ""
}

// secrets lists api keys to be masked in logs
func secrets(cfg *config.Config) []string {
	var res []string
	for _, s := range []string{cfg.Source.APIKey, cfg.LLM.APIKey} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

// printSummary writes run statistics and the five best topics
func printSummary(w io.Writer, res *pipeline.Result) {
	line := strings.Repeat("━", 80)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "📊 报告统计:")
	fmt.Fprintf(w, "   总话题数: %d\n", res.Stats.Total)
	fmt.Fprintf(w, "   优秀 (>80分): %d\n", res.Stats.Excellent)
	fmt.Fprintf(w, "   良好 (60-80分): %d\n", res.Stats.Good)
	fmt.Fprintf(w, "   普通 (<60分): %d\n", res.Stats.Normal)
	fmt.Fprintf(w, "   平均分: %.1f\n\n", res.Stats.AvgScore)

	if top := report.Top(res.Topics, 5); len(top) > 0 {
		fmt.Fprintln(w, "🏆 Top 5 高分话题:")
		for i, t := range top {
			fmt.Fprintf(w, "   %d. [%d分] %s\n", i+1, t.TotalScore, t.Title)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "📄 报告已保存到:")
	fmt.Fprintf(w, "   %s\n", res.ReportPath)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
