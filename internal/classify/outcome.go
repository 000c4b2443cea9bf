package classify

// Outcome is the final classification of one file in one run.
type Outcome string

const (
	OutcomeUnique        Outcome = "unique"
	OutcomeDuplicate     Outcome = "duplicate"
	OutcomeHashFailure   Outcome = "hash_failure"
	OutcomeMoveFailure   Outcome = "move_failure"
	OutcomeDeleteFailure Outcome = "delete_failure"
	OutcomeSkipped       Outcome = "skipped_checkpoint"
)

// Result describes what happened to a single file.
type Result struct {
	Path        string
	Outcome     Outcome
	Destination string // final path for placed files, empty otherwise
	Err         error  // set for failure outcomes
}

// Summary aggregates per-file outcomes for the final report.
type Summary struct {
	Total          int
	Unique         int
	Duplicate      int
	HashFailures   int
	MoveFailures   int
	DeleteFailures int
	Skipped        int
}

func (s *Summary) add(outcome Outcome) {
	s.Total++
	switch outcome {
	case OutcomeUnique:
		s.Unique++
	case OutcomeDuplicate:
		s.Duplicate++
	case OutcomeHashFailure:
		s.HashFailures++
	case OutcomeMoveFailure:
		s.MoveFailures++
	case OutcomeDeleteFailure:
		s.DeleteFailures++
	case OutcomeSkipped:
		s.Skipped++
	}
}

// Failures returns the number of files that ended in a failure outcome.
func (s *Summary) Failures() int {
	return s.HashFailures + s.MoveFailures + s.DeleteFailures
}
