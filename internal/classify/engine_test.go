package classify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mediasort/internal/checkpoint"
	"mediasort/internal/placement"
	"mediasort/internal/registry"
)

// fixedDates resolves capture dates by file basename; absent entries
// report no date, steering files into the date-less bucket.
type fixedDates map[string]time.Time

func (f fixedDates) Resolve(path string) (time.Time, bool) {
	date, ok := f[filepath.Base(path)]
	return date, ok
}

type harness struct {
	engine *Engine
	reg    *registry.Registry
	cps    *checkpoint.Store
	input  string
	output string
	state  string
}

func newHarness(t *testing.T, dates fixedDates, opts Options) *harness {
	t.Helper()
	root := t.TempDir()
	input := filepath.Join(root, "input")
	output := filepath.Join(root, "output")
	state := filepath.Join(root, "state")
	for _, dir := range []string{input, output, state} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	reg := registry.Load(filepath.Join(state, "hashes.json"), nil)
	cps := checkpoint.Load(filepath.Join(state, "checkpoint.json"), nil)
	engine := NewEngine(Dependencies{
		Registry:    reg,
		Checkpoints: cps,
		Planner:     placement.NewPlanner(output, "_duplicates", "_no_date"),
		Dates:       dates,
	}, opts, nil)

	return &harness{engine: engine, reg: reg, cps: cps, input: input, output: output, state: state}
}

func (h *harness) writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.input, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func listTree(t *testing.T, root string) []string {
	t.Helper()
	var paths []string
	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			rel, _ := filepath.Rel(root, path)
			paths = append(paths, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return paths
}

var may2021 = time.Date(2021, 5, 14, 9, 0, 0, 0, time.UTC)

// The end-to-end scenario: a.jpg (content X, dated), b.jpg (content X, no
// date), c.png (content Y, dated). Then a second run over identical state
// performs zero file operations.
func TestRunScenarioAndIdempotentResume(t *testing.T) {
	dates := fixedDates{"a.jpg": may2021, "c.png": may2021}
	h := newHarness(t, dates, Options{})

	a := h.writeInput(t, "a.jpg", "content X")
	b := h.writeInput(t, "b.jpg", "content X")
	c := h.writeInput(t, "c.png", "content Y")

	summary := h.engine.Run([]string{a, b, c}, nil)
	if summary.Total != 3 || summary.Unique != 2 || summary.Duplicate != 1 {
		t.Fatalf("first run summary: %+v", summary)
	}
	if summary.Failures() != 0 {
		t.Fatalf("unexpected failures: %+v", summary)
	}

	want := []string{
		"2021/05/a.jpg",
		"2021/05/c.png",
		"_duplicates/_no_date/b.jpg",
	}
	got := listTree(t, h.output)
	for _, path := range want {
		found := false
		for _, g := range got {
			if g == path {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %s in output tree, got %v", path, got)
		}
	}
	if err := h.engine.SaveState(); err != nil {
		t.Fatal(err)
	}

	// Second run: re-create the inputs (as if the move never happened on
	// a mirrored source) and verify everything is skipped via checkpoint.
	a2 := h.writeInput(t, "a.jpg", "content X")
	b2 := h.writeInput(t, "b.jpg", "content X")
	c2 := h.writeInput(t, "c.png", "content Y")

	before := listTree(t, h.output)
	resumed := h.engine.Run([]string{a2, b2, c2}, nil)
	if resumed.Skipped != 3 || resumed.Unique != 0 || resumed.Duplicate != 0 {
		t.Fatalf("resume summary: %+v", resumed)
	}
	after := listTree(t, h.output)
	if len(after) != len(before) {
		t.Fatalf("resume mutated output tree: before %v, after %v", before, after)
	}
}

// Identical content under different names: first is unique, second is a
// duplicate, regardless of which name comes first.
func TestDedupWithinSingleRun(t *testing.T) {
	for _, order := range [][]string{{"x.jpg", "y.jpg"}, {"y.jpg", "x.jpg"}} {
		h := newHarness(t, fixedDates{}, Options{})
		first := h.writeInput(t, order[0], "same bytes")
		second := h.writeInput(t, order[1], "same bytes")

		results := make(map[string]Outcome)
		h.engine.Run([]string{first, second}, func(r Result) {
			results[filepath.Base(r.Path)] = r.Outcome
		})

		if results[order[0]] != OutcomeUnique {
			t.Fatalf("order %v: first file outcome %s", order, results[order[0]])
		}
		if results[order[1]] != OutcomeDuplicate {
			t.Fatalf("order %v: second file outcome %s", order, results[order[1]])
		}
	}
}

// The registry keeps the first-seen path across runs and never
// overwrites it.
func TestRegistryKeepsFirstSeenPathAcrossRuns(t *testing.T) {
	h := newHarness(t, fixedDates{}, Options{DedupeOnly: true})

	original := h.writeInput(t, "original.jpg", "payload")
	h.engine.Run([]string{original}, nil)

	later := h.writeInput(t, "later.jpg", "payload")
	var got Result
	h.engine.Run([]string{later}, func(r Result) { got = r })

	if got.Outcome != OutcomeDuplicate {
		t.Fatalf("outcome: %s", got.Outcome)
	}
	if h.reg.Len() != 1 {
		t.Fatalf("registry entries: %d", h.reg.Len())
	}
}

func TestDryRunTouchesNothing(t *testing.T) {
	dates := fixedDates{"a.jpg": may2021}
	h := newHarness(t, dates, Options{DryRun: true})

	a := h.writeInput(t, "a.jpg", "content X")
	b := h.writeInput(t, "b.jpg", "content X")

	summary := h.engine.Run([]string{a, b}, nil)
	if summary.Unique != 1 || summary.Duplicate != 1 {
		t.Fatalf("dry-run summary: %+v", summary)
	}

	// Sources untouched, output tree empty.
	for _, path := range []string{a, b} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("dry run moved source %s: %v", path, err)
		}
	}
	if tree := listTree(t, h.output); len(tree) != 0 {
		t.Fatalf("dry run created output files: %v", tree)
	}

	// State files never written: the caller skips SaveState on dry runs.
	if _, err := os.Stat(filepath.Join(h.state, "hashes.json")); !os.IsNotExist(err) {
		t.Fatalf("dry run persisted registry: %v", err)
	}
	if _, err := os.Stat(filepath.Join(h.state, "checkpoint.json")); !os.IsNotExist(err) {
		t.Fatalf("dry run persisted checkpoint: %v", err)
	}
}

func TestDeleteModeRemovesDuplicateInPlace(t *testing.T) {
	h := newHarness(t, fixedDates{}, Options{DeleteDuplicates: true})

	keeper := h.writeInput(t, "keeper.jpg", "payload")
	doomed := h.writeInput(t, "doomed.jpg", "payload")

	var outcomes []Outcome
	h.engine.Run([]string{keeper, doomed}, func(r Result) { outcomes = append(outcomes, r.Outcome) })

	if outcomes[1] != OutcomeDuplicate {
		t.Fatalf("duplicate outcome: %s", outcomes[1])
	}
	if _, err := os.Stat(doomed); !os.IsNotExist(err) {
		t.Fatalf("duplicate source still present: %v", err)
	}
	// No archive copy is kept in delete mode.
	if tree := listTree(t, filepath.Join(h.output, "_duplicates")); len(tree) != 0 {
		t.Fatalf("delete mode archived a copy: %v", tree)
	}
}

func TestDedupeOnlyLeavesUniquesInPlace(t *testing.T) {
	h := newHarness(t, fixedDates{}, Options{DedupeOnly: true})

	a := h.writeInput(t, "a.jpg", "unique bytes")
	var got Result
	h.engine.Run([]string{a}, func(r Result) { got = r })

	if got.Outcome != OutcomeUnique {
		t.Fatalf("outcome: %s", got.Outcome)
	}
	if _, err := os.Stat(a); err != nil {
		t.Fatalf("dedupe-only moved the source: %v", err)
	}
	if h.reg.Len() != 1 {
		t.Fatalf("registry entries: %d", h.reg.Len())
	}
}

func TestHashFailureIsCheckpointedAndNonFatal(t *testing.T) {
	h := newHarness(t, fixedDates{}, Options{})

	missing := filepath.Join(h.input, "vanished.jpg")
	ok := h.writeInput(t, "fine.jpg", "bytes")

	var results []Result
	summary := h.engine.Run([]string{missing, ok}, func(r Result) { results = append(results, r) })

	if summary.HashFailures != 1 || summary.Unique != 1 {
		t.Fatalf("summary: %+v", summary)
	}
	if !errors.Is(results[0].Err, ErrHash) {
		t.Fatalf("expected ErrHash marker, got %v", results[0].Err)
	}
	if !h.cps.IsDone(missing) {
		t.Fatal("hash failure must still checkpoint the path")
	}

	// A re-run skips the failed path instead of retrying it.
	var retry Result
	h.engine.Run([]string{missing}, func(r Result) { retry = r })
	if retry.Outcome != OutcomeSkipped {
		t.Fatalf("retry outcome: %s", retry.Outcome)
	}
}

func TestMoveFailureCountedAndRegistryKept(t *testing.T) {
	h := newHarness(t, fixedDates{}, Options{})
	h.engine.deps.Move = func(src, dst string) error {
		return errors.New("disk full")
	}

	a := h.writeInput(t, "a.jpg", "bytes")
	var got Result
	summary := h.engine.Run([]string{a}, func(r Result) { got = r })

	if summary.MoveFailures != 1 {
		t.Fatalf("summary: %+v", summary)
	}
	if !errors.Is(got.Err, ErrMove) {
		t.Fatalf("expected ErrMove marker, got %v", got.Err)
	}
	// Registry update precedes the move, so the fingerprint is kept even
	// though placement failed.
	if h.reg.Len() != 1 {
		t.Fatalf("registry entries after move failure: %d", h.reg.Len())
	}
	if !h.cps.IsDone(a) {
		t.Fatal("path must be checkpointed before the move attempt")
	}
}

func TestDeleteFailureLeavesSource(t *testing.T) {
	h := newHarness(t, fixedDates{}, Options{DeleteDuplicates: true})
	h.engine.deps.Remove = func(path string) error {
		return errors.New("permission denied")
	}

	keeper := h.writeInput(t, "keeper.jpg", "payload")
	doomed := h.writeInput(t, "doomed.jpg", "payload")

	var last Result
	summary := h.engine.Run([]string{keeper, doomed}, func(r Result) { last = r })

	if summary.DeleteFailures != 1 {
		t.Fatalf("summary: %+v", summary)
	}
	if !errors.Is(last.Err, ErrDelete) {
		t.Fatalf("expected ErrDelete marker, got %v", last.Err)
	}
	if _, err := os.Stat(doomed); err != nil {
		t.Fatalf("source should remain after delete failure: %v", err)
	}
}

func TestCollisionSafePlacement(t *testing.T) {
	dates := fixedDates{"pic.png": may2021}
	h := newHarness(t, dates, Options{})

	first := filepath.Join(h.input, "one", "pic.png")
	second := filepath.Join(h.input, "two", "pic.png")
	for i, path := range []string{first, second} {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte{byte(i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var dests []string
	h.engine.Run([]string{first, second}, func(r Result) { dests = append(dests, r.Destination) })

	if len(dests) != 2 || dests[0] == dests[1] {
		t.Fatalf("colliding names must get distinct destinations: %v", dests)
	}
	for _, dest := range dests {
		if _, err := os.Stat(dest); err != nil {
			t.Fatalf("destination missing: %s: %v", dest, err)
		}
	}
}
