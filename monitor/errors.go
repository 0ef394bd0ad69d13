package monitor

import "fmt"

type constError string

func (e constError) Error() string { return string(e) }

const (
	ErrSampling = constError("cpu load sampling failed")
	ErrTerminal = constError("terminal failure")
)

// SamplingError reports that the CPU counter could not be read.
type SamplingError struct {
	Source string
	Err    error
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("could not sample cpu load from %s, reason: %v", e.Source, e.Err)
}

func (e *SamplingError) Unwrap() error { return e.Err }

func (e *SamplingError) Is(target error) bool { return target == ErrSampling }

// TerminalError reports a failure to drive the terminal.
type TerminalError struct {
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal failure, reason: %v", e.Err)
}

func (e *TerminalError) Unwrap() error { return e.Err }

func (e *TerminalError) Is(target error) bool { return target == ErrTerminal }
