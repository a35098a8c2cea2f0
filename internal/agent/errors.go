package agent

import "fmt"

// DecisionFunctionError reports a failed LLM call. The round is aborted; the
// history keeps everything appended before the failure.
type DecisionFunctionError struct {
	Stage State
	Err   error
}

func (e *DecisionFunctionError) Error() string {
	return fmt.Sprintf("LLM call failed while %s: %v", e.Stage, e.Err)
}

func (e *DecisionFunctionError) Unwrap() error { return e.Err }
