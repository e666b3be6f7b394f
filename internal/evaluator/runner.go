package evaluator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lamim/dataset-eval-bench/internal/config"
	"github.com/lamim/dataset-eval-bench/internal/coverage"
	"github.com/lamim/dataset-eval-bench/internal/debug"
	"github.com/lamim/dataset-eval-bench/internal/evidence"
	"github.com/lamim/dataset-eval-bench/internal/liveness"
	"github.com/lamim/dataset-eval-bench/internal/metrics"
	"github.com/lamim/dataset-eval-bench/internal/progress"
	"github.com/lamim/dataset-eval-bench/internal/tableio"
)

// Runner drives the evaluation of all input files
type Runner struct {
	config       *config.Config
	collector    *metrics.Collector
	showProgress bool
	checker      liveness.Checker
	debug        *debug.Logger
	log          zerolog.Logger
}

// SetDebugLogger attaches an entity dump logger to the run.
func (r *Runner) SetDebugLogger(l *debug.Logger) {
	r.debug = l
}

// NewRunner creates a new evaluation runner. The checker may be nil when
// live URL checking is disabled. The progress bar total is only known
// after input expansion, so the runner owns the progress manager.
func NewRunner(cfg *config.Config, showProgress bool, checker liveness.Checker, log zerolog.Logger) *Runner {
	return &Runner{
		config:       cfg,
		collector:    metrics.NewCollector(),
		showProgress: showProgress,
		checker:      checker,
		log:          log,
	}
}

// GetCollector returns the metrics collector
func (r *Runner) GetCollector() *metrics.Collector {
	return r.collector
}

// EnsureOutputDir creates the output directory if needed
func (r *Runner) EnsureOutputDir() error {
	if err := os.MkdirAll(r.config.General.OutputDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Run evaluates every input file and fills the collector.
func (r *Runner) Run(ctx context.Context) error {
	files, err := tableio.ExpandInputs(r.config.General.InputDir, r.config.General.Pattern)
	if err != nil {
		return fmt.Errorf("expand inputs: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files found in %s", r.config.General.InputDir)
	}

	globalGold, err := r.resolveGold()
	if err != nil {
		return err
	}
	perWorkbookGold := map[string][]string{}
	if len(globalGold) == 0 {
		perWorkbookGold = r.surveyGold(files)
		if len(perWorkbookGold) > 0 {
			r.log.Info().Int("workbooks", len(perWorkbookGold)).
				Msg("using per-workbook survey sheets as gold")
		}
	}
	usePerWorkbook := len(perWorkbookGold) > 0

	baseline, err := r.loadBaseline()
	if err != nil {
		return err
	}

	hosts := evidence.NewHostSet(r.config.Evidence.TrustHosts)
	probe := r.prober(ctx)

	// Survey sheets act as gold, not as evaluated files.
	var work []string
	for _, f := range files {
		if usePerWorkbook && tableio.IsSurveyInput(f) {
			continue
		}
		work = append(work, f)
	}

	prog := progress.NewManager(len(work), r.showProgress)

	sem := make(chan struct{}, r.config.General.Concurrency)
	var wg sync.WaitGroup
	for _, f := range work {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			gold := globalGold
			if usePerWorkbook {
				if base := tableio.WorkbookBase(path); base != "" {
					gold = perWorkbookGold[base]
				}
			}

			prog.StartFile(filepath.Base(path))
			rec, err := EvaluateFile(path, r.config, Inputs{
				Gold:      gold,
				Baseline:  baseline,
				Hosts:     hosts,
				Threshold: r.config.Matching.FuzzyThreshold,
				Probe:     probe,
				Debug:     r.debug,
			})
			if err != nil {
				r.log.Error().Err(err).Str("file", path).Msg("evaluation failed")
				prog.CompleteFile(filepath.Base(path), false)
				return
			}
			r.collector.Add(rec)
			prog.CompleteFile(filepath.Base(path), true)
			r.log.Debug().Str("file", rec.File).Str("method", rec.Method).
				Int("mentions", rec.Mentions).Int("entities_norm", rec.Norm.Entities).
				Msg("evaluated")
		}(f)
	}
	wg.Wait()

	prog.Finish()
	return nil
}

// resolveGold loads the configured gold file, falling back to gold.csv in
// the input directory. An empty return means survey-as-gold may apply.
func (r *Runner) resolveGold() ([]string, error) {
	if r.config.Gold.File != "" {
		names, err := tableio.LoadNameList(r.config.Gold.File, r.config.Gold.Column)
		if err != nil {
			return nil, fmt.Errorf("load gold file: %w", err)
		}
		r.log.Info().Str("file", filepath.Base(r.config.Gold.File)).Msg("using explicit gold file")
		return names, nil
	}
	candidate := filepath.Join(r.config.General.InputDir, "gold.csv")
	if _, err := os.Stat(candidate); err == nil {
		names, err := tableio.LoadNameList(candidate, r.config.Gold.Column)
		if err != nil {
			return nil, fmt.Errorf("load gold.csv: %w", err)
		}
		r.log.Info().Str("file", "gold.csv").Msg("found gold file in input directory")
		return names, nil
	}
	return nil, nil
}

// surveyGold extracts a per-workbook gold list from each workbook's survey
// sheet. Workbooks without a survey sheet get no gold.
func (r *Runner) surveyGold(files []string) map[string][]string {
	perGold := make(map[string][]string)
	for _, f := range files {
		base := tableio.WorkbookBase(f)
		if base == "" || !tableio.IsSurveyInput(f) {
			continue
		}
		rows, headers, err := tableio.ReadTable(f)
		if err != nil {
			r.log.Warn().Err(err).Str("sheet", f).Msg("failed to read survey sheet")
			continue
		}
		col, ok := tableio.PickFirstColumn(r.config.Columns.Name, headers)
		if !ok {
			perGold[base] = nil
			continue
		}
		var names []string
		for _, row := range rows {
			if nm := strings.TrimSpace(row[col]); nm != "" {
				names = append(names, nm)
			}
		}
		perGold[base] = names
	}
	// Only meaningful when at least one survey sheet produced names.
	for _, names := range perGold {
		if len(names) > 0 {
			return perGold
		}
	}
	return nil
}

func (r *Runner) loadBaseline() ([]string, error) {
	seen := make(map[string]struct{})
	var baseline []string
	for _, f := range r.config.Baseline.Files {
		names, err := tableio.LoadNameList(f, r.config.Baseline.Column)
		if err != nil {
			return nil, fmt.Errorf("load baseline %s: %w", f, err)
		}
		for _, n := range names {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			baseline = append(baseline, n)
		}
	}
	return baseline, nil
}

func (r *Runner) prober(ctx context.Context) coverage.Prober {
	if !r.config.Liveness.CheckURLs || r.checker == nil {
		return nil
	}
	return func(url string) bool {
		return r.checker.Check(ctx, url)
	}
}
