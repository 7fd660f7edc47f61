package pipeline

import "fmt"

// Stage names a step of the report pipeline.
type Stage string

const (
	StageConfig    Stage = "config"
	StageLoad      Stage = "load"
	StagePersist   Stage = "persist"
	StageAggregate Stage = "aggregate"
	StageRender    Stage = "render"
	StageAssemble  Stage = "assemble"
	StageSerialize Stage = "serialize"
	StageExport    Stage = "export"
)

// StageError attributes a failure to the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func fail(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
