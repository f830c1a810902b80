package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/finhealth/internal/analytics"
	"fjacquet/finhealth/internal/diagnostics"
	"fjacquet/finhealth/internal/fileutils"
	"fjacquet/finhealth/internal/logging"
	"fjacquet/finhealth/internal/models"
	"fjacquet/finhealth/internal/report"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Job outcomes
const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// SummaryName is the base name of the summary file written next to the
// per-user reports.
const SummaryName = "summary"

// Pipeline loads and scores the data of one user.
type Pipeline interface {
	LoadDataset(transactionsPath, accountsPath string) (models.Dataset, error)
	LoadProfile(path string) (*models.UserProfile, error)
	Diagnose(ds models.Dataset, profile *models.UserProfile) *diagnostics.Report
	Analyze(ds models.Dataset, profile *models.UserProfile) *analytics.Report
}

// Options controls a batch run.
type Options struct {
	Workers int
	Format  report.Format
	// WithTrends writes the analytics report of every user next to its
	// diagnostic report.
	WithTrends bool
}

// Result is the outcome of one user run.
type Result struct {
	User         string  `json:"user"`
	Status       string  `json:"status"`
	OverallScore float64 `json:"overall_score,omitempty"`
	Grade        string  `json:"grade,omitempty"`
	Output       string  `json:"output,omitempty"`
	Trends       string  `json:"trends,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// Summary is the outcome of a batch run.
type Summary struct {
	RunID     string   `json:"run_id"`
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Skipped   int      `json:"skipped"`
	Results   []Result `json:"results"`
}

// Runner scores user directories in parallel.
type Runner struct {
	pipeline  Pipeline
	generator *report.Generator
	opts      Options
	logger    logging.Logger
}

// NewRunner creates a Runner. Fewer than one worker means one.
func NewRunner(pipeline Pipeline, generator *report.Generator, opts Options, logger logging.Logger) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Format == "" {
		opts.Format = report.FormatJSON
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{pipeline: pipeline, generator: generator, opts: opts, logger: logger}
}

// Run processes every user directory under inputDir and writes one report
// per user, plus a summary, to outputDir. A failing user does not stop the
// others; only a cancelled context or an unusable output directory aborts
// the run.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string) (*Summary, error) {
	runID := uuid.NewString()
	log := r.logger.WithFields(logging.F(logging.FieldRunID, runID))
	start := time.Now()

	jobs, err := DiscoverJobs(inputDir)
	if err != nil {
		return nil, err
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return nil, err
	}

	log.Info("Batch run started",
		logging.F(logging.FieldCount, len(jobs)),
		logging.F(logging.FieldWorkers, r.opts.Workers))

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i, job := range jobs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.process(job, outputDir, log.WithFields(logging.F(logging.FieldUser, job.User)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &Summary{RunID: runID, Results: results}
	for _, res := range results {
		switch res.Status {
		case StatusOK:
			summary.Processed++
		case StatusFailed:
			summary.Failed++
		case StatusSkipped:
			summary.Skipped++
		}
	}

	summaryPath := filepath.Join(outputDir, SummaryName+"."+r.opts.Format.Extension())
	if err := r.generator.WriteFile(summaryPath, summary, r.opts.Format); err != nil {
		return summary, err
	}

	log.Info("Batch run complete",
		logging.F("processed", summary.Processed),
		logging.F("failed", summary.Failed),
		logging.F("skipped", summary.Skipped),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return summary, nil
}

func (r *Runner) process(job Job, outputDir string, log logging.Logger) Result {
	res := Result{User: job.User}

	if !job.Ready() {
		res.Status = StatusSkipped
		res.Error = "no transactions table"
		log.Warn("Skipping user without transactions table")
		return res
	}

	fail := func(err error) Result {
		res.Status = StatusFailed
		res.Error = err.Error()
		log.WithError(err).Error("User run failed")
		return res
	}

	if job.Conflict != "" {
		return fail(fmt.Errorf("report name %q collides with %s", job.User, job.Conflict))
	}

	ds, err := r.pipeline.LoadDataset(job.Transactions, job.Accounts)
	if err != nil {
		return fail(err)
	}
	profile, err := r.pipeline.LoadProfile(job.Profile)
	if err != nil {
		return fail(err)
	}

	diag := r.pipeline.Diagnose(ds, profile)
	out := filepath.Join(outputDir, job.User+"."+r.opts.Format.Extension())
	if err := r.generator.WriteFile(out, diag, r.opts.Format); err != nil {
		return fail(err)
	}

	if r.opts.WithTrends {
		trends := filepath.Join(outputDir, job.User+TrendsSuffix+"."+r.opts.Format.Extension())
		if err := r.generator.WriteFile(trends, r.pipeline.Analyze(ds, profile), r.opts.Format); err != nil {
			return fail(fmt.Errorf("writing trends report: %w", err))
		}
		res.Trends = trends
	}

	res.Status = StatusOK
	res.OverallScore = diag.OverallScore
	res.Grade = diag.Grade
	res.Output = out
	log.Info("User scored",
		logging.F(logging.FieldScore, diag.OverallScore),
		logging.F(logging.FieldGrade, diag.Grade),
		logging.F(logging.FieldOutputFile, out))
	return res
}
