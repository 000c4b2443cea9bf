package classify

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"mediasort/internal/checkpoint"
	"mediasort/internal/contentid"
	"mediasort/internal/fileutil"
	"mediasort/internal/logging"
	"mediasort/internal/placement"
	"mediasort/internal/registry"
)

// Options selects the engine's processing mode.
type Options struct {
	// DryRun decides every file without touching the filesystem or
	// persisting state.
	DryRun bool
	// DeleteDuplicates removes duplicate source files in place instead of
	// archiving them.
	DeleteDuplicates bool
	// DedupeOnly registers unique files without moving them.
	DedupeOnly bool
}

// DateResolver supplies best-effort capture dates.
type DateResolver interface {
	Resolve(path string) (time.Time, bool)
}

// Dependencies holds the engine's collaborators. Hash, Move, Remove and
// Now default to the production implementations when nil (overridable in
// tests).
type Dependencies struct {
	Registry    *registry.Registry
	Checkpoints *checkpoint.Store
	Planner     *placement.Planner
	Dates       DateResolver
	Hash        func(path string) (contentid.Fingerprint, error)
	Move        func(src, dst string) error
	Remove      func(path string) error
	Now         func() time.Time
}

// Engine classifies files one at a time, strictly sequentially.
type Engine struct {
	deps   Dependencies
	opts   Options
	logger *slog.Logger
}

// NewEngine constructs the classification engine.
func NewEngine(deps Dependencies, opts Options, logger *slog.Logger) *Engine {
	if deps.Hash == nil {
		deps.Hash = contentid.HashFile
	}
	if deps.Move == nil {
		deps.Move = fileutil.MoveFile
	}
	if deps.Remove == nil {
		deps.Remove = os.Remove
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Engine{
		deps:   deps,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "classify"),
	}
}

// Run processes the files in order and returns the aggregated summary.
// observe, when non-nil, is invoked once per file after its outcome is
// decided. Per-file failures never abort the run.
func (e *Engine) Run(files []string, observe func(Result)) Summary {
	var summary Summary
	for _, path := range files {
		result := e.Process(path)
		summary.add(result.Outcome)
		if observe != nil {
			observe(result)
		}
	}
	return summary
}

// Process decides and applies the outcome for a single file.
func (e *Engine) Process(path string) Result {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if e.deps.Checkpoints.IsDone(path) {
		e.logger.Debug("skipping checkpointed path", logging.String("path", path))
		return Result{Path: path, Outcome: OutcomeSkipped}
	}

	fp, err := e.deps.Hash(path)
	if err != nil {
		// Checkpointed despite the failure so the path is not retried
		// verbatim on the next run.
		e.deps.Checkpoints.MarkDone(path)
		wrapped := Wrap(ErrHash, "hash", path, err)
		e.logger.Warn("hashing failed, file left in place",
			logging.String("path", path),
			logging.Error(err))
		return Result{Path: path, Outcome: OutcomeHashFailure, Err: wrapped}
	}

	// Checkpoint before any move: the crash-recovery contract (see doc.go).
	e.deps.Checkpoints.MarkDone(path)

	if first, found := e.deps.Registry.Lookup(fp); found {
		return e.handleDuplicate(path, first)
	}

	e.deps.Registry.Record(fp, path, e.deps.Now())
	return e.handleUnique(path)
}

func (e *Engine) handleDuplicate(path string, first registry.Entry) Result {
	if e.opts.DryRun {
		e.logger.Info("duplicate (simulated)",
			logging.String("path", path),
			logging.String("first_seen", first.Path))
		return Result{Path: path, Outcome: OutcomeDuplicate}
	}

	if e.opts.DeleteDuplicates {
		if err := e.deps.Remove(path); err != nil {
			wrapped := Wrap(ErrDelete, "delete duplicate", path, err)
			e.logger.Warn("duplicate deletion failed, source file remains",
				logging.String("path", path),
				logging.Error(err))
			return Result{Path: path, Outcome: OutcomeDeleteFailure, Err: wrapped}
		}
		e.logger.Info("duplicate deleted",
			logging.String("path", path),
			logging.String("first_seen", first.Path))
		return Result{Path: path, Outcome: OutcomeDuplicate}
	}

	date, hasDate := e.deps.Dates.Resolve(path)
	dest := e.deps.Planner.Plan(path, date, hasDate, placement.RoleDuplicate)
	if err := e.deps.Move(path, dest); err != nil {
		wrapped := Wrap(ErrMove, "archive duplicate", path, err)
		e.logger.Warn("duplicate archive failed",
			logging.String("path", path),
			logging.String("destination", dest),
			logging.Error(err))
		return Result{Path: path, Outcome: OutcomeMoveFailure, Err: wrapped}
	}
	e.logger.Info("duplicate archived",
		logging.String("path", path),
		logging.String("destination", dest),
		logging.String("first_seen", first.Path))
	return Result{Path: path, Outcome: OutcomeDuplicate, Destination: dest}
}

func (e *Engine) handleUnique(path string) Result {
	if e.opts.DedupeOnly {
		e.logger.Info("unique registered, left in place", logging.String("path", path))
		return Result{Path: path, Outcome: OutcomeUnique}
	}
	if e.opts.DryRun {
		e.logger.Info("unique (simulated)", logging.String("path", path))
		return Result{Path: path, Outcome: OutcomeUnique}
	}

	date, hasDate := e.deps.Dates.Resolve(path)
	dest := e.deps.Planner.Plan(path, date, hasDate, placement.RoleUnique)
	if err := e.deps.Move(path, dest); err != nil {
		wrapped := Wrap(ErrMove, "place unique", path, err)
		e.logger.Warn("unique placement failed",
			logging.String("path", path),
			logging.String("destination", dest),
			logging.Error(err))
		return Result{Path: path, Outcome: OutcomeMoveFailure, Err: wrapped}
	}
	e.logger.Info("unique placed",
		logging.String("path", path),
		logging.String("destination", dest))
	return Result{Path: path, Outcome: OutcomeUnique, Destination: dest}
}

// SaveState flushes the registry and checkpoint set to disk. Callers skip
// this for dry runs; a failure here is the only error a run reports.
func (e *Engine) SaveState() error {
	if err := e.deps.Registry.Save(); err != nil {
		return err
	}
	return e.deps.Checkpoints.Save()
}
