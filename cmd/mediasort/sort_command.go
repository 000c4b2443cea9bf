package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mediasort/internal/checkpoint"
	"mediasort/internal/classify"
	"mediasort/internal/config"
	"mediasort/internal/logging"
	"mediasort/internal/mediadate"
	"mediasort/internal/placement"
	"mediasort/internal/preflight"
	"mediasort/internal/registry"
	"mediasort/internal/scan"
)

type sortOptions struct {
	inputDir   string
	outputDir  string
	inputList  string
	limit      int
	dryRun     bool
	deleteDups bool
	dedupeOnly bool
	verbose    bool
}

func newSortCommand(ctx *commandContext) *cobra.Command {
	var opts sortOptions

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Scan, deduplicate, and sort a media tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runSort(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.inputDir, "input-dir", "i", "", "Directory tree to scan for media files")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "Root of the sorted output tree")
	cmd.Flags().StringVar(&opts.inputList, "input-list", "", "File listing explicit paths to process instead of walking the input tree")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Process at most this many files (0 means no limit)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Decide every file without moving anything or persisting state")
	cmd.Flags().BoolVar(&opts.deleteDups, "delete", false, "Delete duplicates in place instead of archiving them")
	cmd.Flags().BoolVar(&opts.dedupeOnly, "dedupe-only", false, "Register and archive duplicates but leave unique files where they are")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every decision to the terminal")
	_ = cmd.MarkFlagRequired("input-dir")

	return cmd
}

func runSort(cmd *cobra.Command, cfg *config.Config, opts sortOptions) error {
	opts, err := resolveSortOptions(opts)
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg, opts.verbose)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	runID := uuid.NewString()
	logger = logger.With(logging.String(logging.FieldRunID, runID))

	if failed := preflight.Failures(preflight.Run(cfg, opts.inputDir, opts.outputDir)); len(failed) > 0 {
		for _, result := range failed {
			fmt.Fprintf(cmd.ErrOrStderr(), "preflight: %s: %s\n", result.Name, result.Detail)
		}
		return errors.New("preflight checks failed")
	}

	files, err := collectFiles(cfg, logger, opts)
	if err != nil {
		return err
	}
	logger.Info("sort run starting",
		logging.String("input", opts.inputDir),
		logging.String("output", opts.outputDir),
		logging.Int("file_count", len(files)),
		logging.Bool("dry_run", opts.dryRun))

	engine := classify.NewEngine(classify.Dependencies{
		Registry:    registry.Load(cfg.RegistryPath(), logger),
		Checkpoints: checkpoint.Load(cfg.CheckpointPath(), logger),
		Planner:     placement.NewPlanner(opts.outputDir, cfg.Sorter.DuplicatesDir, cfg.Sorter.NoDateDir),
		Dates:       mediadate.NewResolver(cfg.Extensions.EXIF, logger),
	}, classify.Options{
		DryRun:           opts.dryRun,
		DeleteDuplicates: opts.deleteDups,
		DedupeOnly:       opts.dedupeOnly,
	}, logger)

	bar := newProgressBar(len(files), opts.verbose)
	var failures []classify.Result
	summary := engine.Run(files, func(result classify.Result) {
		if result.Err != nil {
			failures = append(failures, result)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	})
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(cmd.ErrOrStderr())
	}

	if !opts.dryRun {
		if err := engine.SaveState(); err != nil {
			return fmt.Errorf("persist run state: %w", err)
		}
	}

	if len(failures) > 0 {
		if path, err := writeErrorLog(cfg, runID, failures); err != nil {
			logger.Warn("failure log could not be written", logging.Error(err))
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d failures; details in %s\n", len(failures), path)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary, opts.dryRun))
	logger.Info("sort run finished",
		logging.Int("total", summary.Total),
		logging.Int("unique", summary.Unique),
		logging.Int("duplicate", summary.Duplicate),
		logging.Int("hash_failures", summary.HashFailures),
		logging.Int("move_failures", summary.MoveFailures),
		logging.Int("delete_failures", summary.DeleteFailures),
		logging.Int("skipped", summary.Skipped))
	return nil
}

// resolveSortOptions validates flag combinations and absolutizes paths.
// Without --output-dir, dedupe-only runs archive duplicates under the
// input tree itself; the excluded directory names keep later scans from
// re-ingesting that archive.
func resolveSortOptions(opts sortOptions) (sortOptions, error) {
	if opts.outputDir == "" {
		if !opts.dedupeOnly {
			return opts, errors.New("--output-dir is required unless --dedupe-only is set")
		}
		opts.outputDir = opts.inputDir
	}

	var err error
	if opts.inputDir, err = config.ExpandPath(opts.inputDir); err != nil {
		return opts, fmt.Errorf("resolve input dir: %w", err)
	}
	if opts.outputDir, err = config.ExpandPath(opts.outputDir); err != nil {
		return opts, fmt.Errorf("resolve output dir: %w", err)
	}
	if opts.inputDir == opts.outputDir && !opts.dedupeOnly {
		return opts, errors.New("input and output directories must differ (use --dedupe-only to work in place)")
	}
	if opts.limit < 0 {
		return opts, errors.New("--limit must be zero or positive")
	}
	return opts, nil
}

func collectFiles(cfg *config.Config, logger *slog.Logger, opts sortOptions) ([]string, error) {
	scanner := scan.NewScanner(cfg.MediaExtensions(), cfg.Sorter.ExcludeParts, logger)

	var files []string
	var err error
	if opts.inputList != "" {
		files, err = scanner.FromList(opts.inputList)
	} else {
		files, err = scanner.Walk(opts.inputDir)
	}
	if err != nil {
		return nil, err
	}
	if opts.limit > 0 && len(files) > opts.limit {
		files = files[:opts.limit]
	}
	return files, nil
}

// newProgressBar returns a bar for interactive runs, or nil when output
// is piped or verbose logging would interleave with it.
func newProgressBar(total int, verbose bool) *progressbar.ProgressBar {
	if verbose || !stdoutIsTerminal() {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("sorting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(65),
		progressbar.OptionShowCount(),
	)
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// writeErrorLog records every failed file for the run, one line each, and
// returns the log path.
func writeErrorLog(cfg *config.Config, runID string, failures []classify.Result) (string, error) {
	path := cfg.ErrorLogPath(runID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, failure := range failures {
		fmt.Fprintf(&b, "%s\t%s\t%v\n", failure.Outcome, failure.Path, failure.Err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func renderSummary(summary classify.Summary, dryRun bool) string {
	printer := message.NewPrinter(language.English)
	count := func(n int) string { return printer.Sprintf("%d", n) }

	if !stdoutIsTerminal() {
		return fmt.Sprintf("total=%d unique=%d duplicate=%d hash_failures=%d move_failures=%d delete_failures=%d skipped=%d dry_run=%t",
			summary.Total, summary.Unique, summary.Duplicate,
			summary.HashFailures, summary.MoveFailures, summary.DeleteFailures,
			summary.Skipped, dryRun)
	}

	rows := [][]string{
		{"Processed", count(summary.Total)},
		{"Unique", count(summary.Unique)},
		{"Duplicate", count(summary.Duplicate)},
		{"Hash failures", count(summary.HashFailures)},
		{"Move failures", count(summary.MoveFailures)},
		{"Delete failures", count(summary.DeleteFailures)},
		{"Skipped (already done)", count(summary.Skipped)},
	}
	title := "Result"
	if dryRun {
		title = "Result (dry run)"
	}
	return renderTable([]string{title, "Files"}, rows)
}
