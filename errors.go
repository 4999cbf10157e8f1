package edgeascii

import (
	"errors"
	"fmt"

	"github.com/wbrown/edgeascii/imageutil"
)

// Every render failure wraps exactly one of these.
var (
	// ErrSourceUnavailable means the image could not be opened or decoded.
	ErrSourceUnavailable = errors.New("source image unavailable")

	// ErrComputeContext means the compute backend could not be created.
	ErrComputeContext = errors.New("compute backend unavailable")

	// ErrStageSize means a stage was given dimensions it cannot process.
	ErrStageSize = imageutil.ErrSize

	// ErrBackendExecution means a backend primitive failed for a reason
	// other than size.
	ErrBackendExecution = errors.New("backend execution failed")
)

// Stage names used in StageError.
const (
	StageLoad      = "load"
	StageBackend   = "backend"
	StageCorrelate = "correlate"
	StageResample  = "resample"
)

// StageError records which pipeline stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// stageError wraps err for stage, classifying anything that is not already
// a size error as ErrBackendExecution.
func stageError(stage string, err error) error {
	if !errors.Is(err, ErrStageSize) && !errors.Is(err, ErrBackendExecution) {
		err = fmt.Errorf("%w: %w", ErrBackendExecution, err)
	}
	return &StageError{Stage: stage, Err: err}
}
