// Package main provides the entry point for the dataset evaluation tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/lamim/dataset-eval-bench/internal/config"
	"github.com/lamim/dataset-eval-bench/internal/debug"
	"github.com/lamim/dataset-eval-bench/internal/evaluator"
	"github.com/lamim/dataset-eval-bench/internal/liveness"
	"github.com/lamim/dataset-eval-bench/internal/report"
)

const defaultConfigPath = "config.toml"

type cliFlags struct {
	configPath     *string
	inputDir       *string
	pattern        *string
	outputDir      *string
	goldFile       *string
	goldColumn     *string
	baseline       *string
	baselineColumn *string
	threshold      *float64
	checkURLs      *bool
	format         *string
	noProgress     *bool
	verbose        *bool
	debugMode      *bool
}

func parseFlags() *cliFlags {
	return &cliFlags{
		configPath:     flag.String("config", defaultConfigPath, "Path to configuration file"),
		inputDir:       flag.String("input", "", "Input directory or single file (overrides config)"),
		pattern:        flag.String("pattern", "", "Glob pattern for input files; workbooks are always included (overrides config)"),
		outputDir:      flag.String("output", "", "Output directory for reports (overrides config)"),
		goldFile:       flag.String("gold", "", "Gold name list file (overrides config)"),
		goldColumn:     flag.String("gold-column", "", "Column name in the gold file (overrides config)"),
		baseline:       flag.String("baseline", "", "Comma-separated baseline files for novelty (overrides config)"),
		baselineColumn: flag.String("baseline-column", "", "Column name in baseline files (overrides config)"),
		threshold:      flag.Float64("threshold", 0, "Fuzzy matching threshold in (0,1] (overrides config)"),
		checkURLs:      flag.Bool("check-urls", false, "Enable live checking of dataset URLs"),
		format:         flag.String("format", "all", "Report format: all, tsv, md, json"),
		noProgress:     flag.Bool("no-progress", false, "Disable progress bar (useful for CI)"),
		verbose:        flag.Bool("verbose", false, "Enable debug logging"),
		debugMode:      flag.Bool("debug", false, "Dump entity clusters as JSON for inspection"),
	}
}

// loadConfig reads the configured TOML file. A missing file is only an
// error when the path was given explicitly; the default path falls back
// to built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if path == defaultConfigPath && errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, err
}

func applyOverrides(cfg *config.Config, flags *cliFlags) {
	if *flags.inputDir != "" {
		cfg.General.InputDir = *flags.inputDir
	}
	if *flags.pattern != "" {
		cfg.General.Pattern = *flags.pattern
	}
	if *flags.outputDir != "" {
		cfg.General.OutputDir = *flags.outputDir
	}
	if *flags.goldFile != "" {
		cfg.Gold.File = *flags.goldFile
	}
	if *flags.goldColumn != "" {
		cfg.Gold.Column = *flags.goldColumn
	}
	if *flags.baseline != "" {
		cfg.Baseline.Files = splitList(*flags.baseline)
	}
	if *flags.baselineColumn != "" {
		cfg.Baseline.Column = *flags.baselineColumn
	}
	if *flags.threshold > 0 {
		cfg.Matching.FuzzyThreshold = *flags.threshold
	}
	if *flags.checkURLs {
		cfg.Liveness.CheckURLs = true
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFormats(s string) []string {
	if s == "all" {
		return []string{"all"}
	}
	return strings.Split(s, ",")
}

// runName derives the report file prefix from the input path.
func runName(input string) string {
	base := filepath.Base(filepath.Clean(input))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "evaluation"
	}
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func main() {
	flags := parseFlags()
	flag.Parse()

	_ = godotenv.Load()

	log := newLogger(*flags.verbose)

	cfg, err := loadConfig(*flags.configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	applyOverrides(cfg, flags)

	var checker liveness.Checker
	if cfg.Liveness.CheckURLs {
		checker = liveness.NewHTTPChecker(cfg.Liveness.TimeoutDuration())
		log.Info().Str("timeout", cfg.Liveness.TimeoutDuration().String()).
			Msg("live URL checking enabled")
	}

	runner := evaluator.NewRunner(cfg, !*flags.noProgress, checker, log)
	if err := runner.EnsureOutputDir(); err != nil {
		log.Fatal().Err(err).Msg("failed to create output directory")
	}

	debugLogger := debug.NewLogger(*flags.debugMode, cfg.General.OutputDir)
	runner.SetDebugLogger(debugLogger)

	log.Info().Str("input", cfg.General.InputDir).
		Str("pattern", cfg.General.Pattern).
		Float64("threshold", cfg.Matching.FuzzyThreshold).
		Msg("starting evaluation")

	if err := runner.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}

	collector := runner.GetCollector()
	log.Info().Int("files", collector.Len()).Msg("evaluation completed")

	if debugLogger.IsEnabled() {
		if err := debugLogger.Finalize(); err != nil {
			log.Warn().Err(err).Msg("failed to write debug dump")
		} else {
			log.Info().Str("path", debugLogger.OutputPath()).Msg("wrote entity cluster dump")
		}
	}

	gen := report.NewGenerator(collector, cfg.General.OutputDir, runName(cfg.General.InputDir))
	for _, f := range parseFormats(*flags.format) {
		switch f {
		case "tsv":
			if err := gen.GenerateTSV(); err != nil {
				log.Error().Err(err).Msg("failed to generate TSV reports")
			} else {
				log.Info().Str("path", gen.PerFilePath()).Msg("wrote per-file report")
				log.Info().Str("path", gen.AggregatePath()).Msg("wrote aggregate report")
			}
		case "md":
			if err := gen.GenerateMarkdown(); err != nil {
				log.Error().Err(err).Msg("failed to generate Markdown report")
			} else {
				log.Info().Str("path", filepath.Join(cfg.General.OutputDir, "report.md")).Msg("wrote Markdown report")
			}
		case "json":
			if err := gen.GenerateJSON(); err != nil {
				log.Error().Err(err).Msg("failed to generate JSON report")
			} else {
				log.Info().Str("path", filepath.Join(cfg.General.OutputDir, "report.json")).Msg("wrote JSON report")
			}
		case "all":
			if err := gen.GenerateAll(); err != nil {
				log.Error().Err(err).Msg("failed to generate reports")
			} else {
				log.Info().Str("dir", cfg.General.OutputDir).Msg("wrote all reports")
			}
		default:
			fmt.Fprintf(os.Stderr, "unknown report format: %s\n", f)
		}
	}
}
