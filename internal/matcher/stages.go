package matcher

import "fmt"

// Stage identifies where in the improvement pipeline a failure occurred
type Stage string

const (
	StageFetching   Stage = "fetching"
	StageAnalyzing  Stage = "analyzing"
	StageScoring    Stage = "scoring"
	StageSuggesting Stage = "suggesting"
	StagePersisting Stage = "persisting"
)

// StageError wraps a pipeline failure with the stage it happened in
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("match pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
