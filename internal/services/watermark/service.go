package watermark

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/phambaophuc/pdf-watermark/internal/config"
	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/phambaophuc/pdf-watermark/internal/services/processor"
	"github.com/phambaophuc/pdf-watermark/internal/services/queue"
	"github.com/phambaophuc/pdf-watermark/internal/services/storage"
	"github.com/phambaophuc/pdf-watermark/pkg/utils"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Options struct {
	Supersample int
	JPEGQuality int
	Policy      processor.MismatchPolicy
	Workers     int
}

// Service watermarks every source document for every recipient.
type Service struct {
	store   *storage.FileStore
	fonts   *processor.FontRegistry
	layers  []models.LayerConfig
	opts    Options
	logger  *zap.Logger
	renders atomic.Int64
}

func NewService(store *storage.FileStore, fonts *processor.FontRegistry, layers []models.LayerConfig, opts Options, logger *zap.Logger) *Service {
	if opts.Supersample <= 0 {
		opts.Supersample = 4
	}
	return &Service{
		store:  store,
		fonts:  fonts,
		layers: layers,
		opts:   opts,
		logger: logger,
	}
}

// Renders is the number of watermark images generated so far. Pages that
// reuse a cached image are not counted.
func (s *Service) Renders() int64 {
	return s.renders.Load()
}

// Run processes all recipients on the worker pool and returns one result per
// recipient in input order.
func (s *Service) Run(ctx context.Context, recipients []models.Recipient, progress queue.Progress) ([]queue.Result[*models.RecipientResult], error) {
	sources, err := s.store.ListPDFs()
	if err != nil {
		return nil, models.NewConfigError("source_dir", err.Error())
	}
	if len(sources) == 0 {
		s.logger.Warn("No PDF files found", zap.String("source_dir", s.store.SourceDir()))
	}

	jobs := make([]queue.Job[*models.RecipientResult], len(recipients))
	for i, r := range recipients {
		id := utils.NewJobID()
		jobs[i] = queue.Job[*models.RecipientResult]{
			ID:   id,
			Name: r.Email,
			Run: func(ctx context.Context) (*models.RecipientResult, error) {
				return s.ProcessRecipient(ctx, id, r, sources)
			},
		}
	}

	pool := queue.NewPool[*models.RecipientResult](s.opts.Workers, s.logger).WithProgress(progress)
	return pool.Run(ctx, jobs), nil
}

// ProcessRecipient writes the watermarked copy of every source into the
// recipient's folder. A failing document does not stop the others; the
// returned error combines all document failures.
func (s *Service) ProcessRecipient(ctx context.Context, jobID string, r models.Recipient, sources []string) (*models.RecipientResult, error) {
	start := time.Now()
	logger := s.logger.With(zap.String("job_id", jobID), zap.String("recipient", r.Email))
	result := &models.RecipientResult{JobID: jobID, Recipient: r}

	dir, err := s.store.RecipientDir(r.UserID)
	if err != nil {
		return result, err
	}

	gen := processor.NewGenerator(s.fonts, s.opts.JPEGQuality, s.opts.Policy, logger)
	defer gen.Close()
	layers := config.ExpandLayers(s.layers, r)

	var errs error
	for _, src := range sources {
		dst := storage.OutputPath(dir, src)
		doc, err := s.processDocument(gen, layers, src, dst, logger)
		if err != nil {
			doc.Error = err.Error()
			errs = multierr.Append(errs, err)
			logger.Error("Failed to watermark document", zap.String("document", src), zap.Error(err))
		}
		result.Documents = append(result.Documents, doc)
	}

	result.Duration = time.Since(start)
	if errs != nil {
		return result, fmt.Errorf("%d of %d documents failed: %w", result.Failed(), len(sources), errs)
	}
	return result, nil
}
