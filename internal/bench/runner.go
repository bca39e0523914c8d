package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/topic-engine/backend/internal/config"
	"github.com/topic-engine/backend/internal/engine"
	"github.com/topic-engine/backend/internal/metrics"
)

// Runner executes the pipeline repeatedly over bootstrap sample datasets,
// recording per-step resource metrics. Dataset directories follow the
// layout <root>/N_<size>/sample_<j>.
type Runner struct {
	Config  *config.Config
	Logger  *logrus.Entry
	Engine  *engine.Engine
	Tracker *metrics.Tracker
}

// NewRunner creates a batch harness around an engine
func NewRunner(cfg *config.Config, logger *logrus.Entry, eng *engine.Engine) (*Runner, error) {
	tracker, err := metrics.NewTracker()
	if err != nil {
		return nil, err
	}
	return &Runner{
		Config:  cfg,
		Logger:  logger,
		Engine:  eng,
		Tracker: tracker,
	}, nil
}

// Run iterates sample sizes x iterations x datasets, writing one metrics
// file per sample size. Missing dataset directories are skipped when
// SkipMissing is set, and fail the run otherwise.
func (r *Runner) Run() error {
	cfg := r.Config.Bench
	if err := os.MkdirAll(cfg.MetricsDir, 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}

	for _, size := range cfg.SampleSizes {
		path := filepath.Join(cfg.MetricsDir, fmt.Sprintf("N%d_metrics.csv", size))
		writer, err := metrics.NewWriter(path)
		if err != nil {
			return err
		}

		if err := r.runSampleSize(size, writer); err != nil {
			writer.Close()
			return err
		}
		if err := writer.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runSampleSize(size int, writer *metrics.Writer) error {
	cfg := r.Config.Bench

	for iteration := 1; iteration <= cfg.Iterations; iteration++ {
		for dataset := 1; dataset <= cfg.Datasets; dataset++ {
			dir := filepath.Join(cfg.SamplesRoot, fmt.Sprintf("N_%d", size), fmt.Sprintf("sample_%d", dataset))
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if !cfg.SkipMissing {
					return fmt.Errorf("dataset directory %s does not exist", dir)
				}
				r.Logger.WithField("dir", dir).Warn("Dataset directory missing, skipping")
				continue
			}

			r.Logger.WithFields(logrus.Fields{
				"size":      size,
				"iteration": iteration,
				"dataset":   dataset,
			}).Info("Running pipeline")

			if err := r.runDataset(iteration, dataset, dir, writer); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) runDataset(iteration, dataset int, dir string, writer *metrics.Writer) error {
	preprocess, err := r.Tracker.Measure("preprocessing", func() error {
		_, err := r.Engine.Preprocess(dir)
		return err
	})
	if err != nil {
		return err
	}
	if err := writer.WriteStep(iteration, dataset, preprocess, "N/A"); err != nil {
		return err
	}

	var topics []string
	modeling, err := r.Tracker.Measure("modeling", func() error {
		var err error
		topics, err = r.Engine.Model()
		return err
	})
	if err != nil {
		return err
	}
	return writer.WriteStep(iteration, dataset, modeling, strings.Join(topics, " | "))
}
