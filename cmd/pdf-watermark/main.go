package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/phambaophuc/pdf-watermark/internal/config"
	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/phambaophuc/pdf-watermark/internal/services/processor"
	"github.com/phambaophuc/pdf-watermark/internal/services/queue"
	"github.com/phambaophuc/pdf-watermark/internal/services/storage"
	"github.com/phambaophuc/pdf-watermark/internal/services/watermark"
	"go.uber.org/zap"
)

const (
	exitOK = iota
	exitFailed
	exitConfig
)

// Args are the command line flags. Flags that are not given keep the value
// from the environment.
type Args struct {
	Source      string   `arg:"-s,--source" help:"folder with the source PDFs [env SOURCE_DIR]"`
	Output      string   `arg:"-o,--output" help:"folder receiving one sub-folder per recipient [env OUTPUT_DIR]"`
	Recipients  string   `arg:"-r,--recipients" help:"file with one email address per line [env RECIPIENTS_FILE]"`
	Layers      string   `arg:"-l,--layers" help:"YAML file describing the watermark layers [env LAYERS_FILE]"`
	Workers     int      `arg:"-w,--workers" help:"recipients processed in parallel, 1 runs sequentially [env WORKERS]"`
	Supersample int      `arg:"--supersample" help:"pixels per PDF point of the watermark image [env SUPERSAMPLE]"`
	Quality     int      `arg:"-q,--quality" help:"JPEG quality of the watermark image [env JPEG_QUALITY]"`
	FontDirs    []string `arg:"--font-dir,separate" help:"extra folder searched for fonts [env FONT_DIRS]"`
	Font        string   `arg:"--font" help:"font family of the default layers [env FONT_FAMILY]"`
	Mismatch    string   `arg:"--mismatch" help:"layer size mismatch policy: skip or abort [env MISMATCH_POLICY]"`
	LogLevel    string   `arg:"--log-level" help:"debug, info, warn or error [env LOG_LEVEL]"`
	LogFormat   string   `arg:"--log-format" help:"json or console [env LOG_FORMAT]"`
}

func (Args) Description() string {
	return "Stamps a per-recipient text watermark on every page of every PDF in a folder."
}

func main() {
	os.Exit(run())
}

func run() int {
	var args Args
	arg.MustParse(&args)

	cfg, err := config.Load()
	if err != nil {
		log.Println("Failed to load configuration:", err)
		return exitConfig
	}
	args.apply(cfg)

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Println("Failed to initialize logger:", err)
		return exitConfig
	}
	defer logger.Sync()

	svc, recipients, err := setup(cfg, logger)
	if err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		return exitConfig
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	progress := queue.NewProgress(os.Stderr, "watermarks", logger)
	results, err := svc.Run(ctx, recipients, progress)
	if err != nil {
		logger.Error("Run failed", zap.Error(err))
		if errors.Is(err, models.ErrConfiguration) {
			return exitConfig
		}
		return exitFailed
	}

	stats, runErr := queue.Summarize(results)
	printSummary(os.Stdout, results)
	logger.Info("Run finished",
		zap.Int("recipients", stats.Total),
		zap.Int("completed", stats.Completed),
		zap.Int("failed", stats.Failed),
		zap.Int64("renders", svc.Renders()),
		zap.Duration("elapsed", time.Since(start)),
	)

	if runErr != nil {
		logger.Error("Some recipients failed", zap.Error(runErr))
		return exitFailed
	}
	return exitOK
}

// setup validates everything that can be checked before a job starts. Any
// error returned here is a configuration error.
func setup(cfg *config.Config, logger *zap.Logger) (*watermark.Service, []models.Recipient, error) {
	if err := cfg.LoadLayers(); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	policy, err := processor.ParseMismatchPolicy(cfg.Render.MismatchPolicy)
	if err != nil {
		return nil, nil, err
	}

	fonts := processor.NewFontRegistry(cfg.Render.FontDirs...)
	if err := processor.ValidateLayers(cfg.Layers, fonts); err != nil {
		return nil, nil, err
	}

	store := storage.NewFileStore(cfg.Paths.SourceDir, cfg.Paths.OutputDir, logger)
	if err := store.HealthCheck(); err != nil {
		return nil, nil, err
	}

	recipients, warnings, err := storage.LoadRecipients(cfg.Paths.RecipientsFile, logger)
	if err != nil {
		return nil, nil, err
	}
	if len(warnings) > 0 {
		logger.Warn("Recipient list has skipped lines", zap.Int("skipped", len(warnings)))
	}
	if len(recipients) == 0 {
		return nil, nil, models.NewConfigError("recipients_file", "no usable recipients")
	}

	svc := watermark.NewService(store, fonts, cfg.Layers, watermark.Options{
		Supersample: cfg.Render.Supersample,
		JPEGQuality: cfg.Render.JPEGQuality,
		Policy:      policy,
		Workers:     cfg.Workers,
	}, logger)

	logger.Info("Configuration loaded",
		zap.String("source_dir", cfg.Paths.SourceDir),
		zap.String("output_dir", cfg.Paths.OutputDir),
		zap.Int("recipients", len(recipients)),
		zap.Int("layers", len(cfg.Layers)),
		zap.Int("workers", cfg.Workers),
	)
	return svc, recipients, nil
}

func (a *Args) apply(cfg *config.Config) {
	if a.Source != "" {
		cfg.Paths.SourceDir = a.Source
	}
	if a.Output != "" {
		cfg.Paths.OutputDir = a.Output
	}
	if a.Recipients != "" {
		cfg.Paths.RecipientsFile = a.Recipients
	}
	if a.Layers != "" {
		cfg.Paths.LayersFile = a.Layers
	}
	if a.Workers != 0 {
		cfg.Workers = a.Workers
	}
	if a.Supersample != 0 {
		cfg.Render.Supersample = a.Supersample
	}
	if a.Quality != 0 {
		cfg.Render.JPEGQuality = a.Quality
	}
	if len(a.FontDirs) > 0 {
		cfg.Render.FontDirs = append(cfg.Render.FontDirs, a.FontDirs...)
	}
	if a.Font != "" {
		cfg.Render.FontFamily = a.Font
	}
	if a.Mismatch != "" {
		cfg.Render.MismatchPolicy = a.Mismatch
	}
	if a.LogLevel != "" {
		cfg.Log.Level = a.LogLevel
	}
	if a.LogFormat != "" {
		cfg.Log.Format = a.LogFormat
	}
}

func printSummary(w io.Writer, results []queue.Result[*models.RecipientResult]) {
	for _, r := range results {
		docs, failed, warnings, rendered, reused := 0, 0, 0, 0, 0
		if r.Value != nil {
			docs = len(r.Value.Documents)
			failed = r.Value.Failed()
			warnings = r.Value.Warnings()
			for _, d := range r.Value.Documents {
				rendered += d.Rendered
				reused += d.Reused
			}
		}
		fmt.Fprintf(w, "%-9s %-40s documents %d ok / %d failed, images %d rendered / %d reused, %d warnings, %s\n",
			r.Status, r.Name, docs-failed, failed, rendered, reused, warnings, r.Duration.Round(time.Millisecond))
	}
}
