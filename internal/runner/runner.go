// Package runner is the boundary to the external sandboxed code executor.
// The engine never runs learner code in-process: isolation, timeouts and
// resource limits live on the runner side of this interface.
package runner

import (
	"context"
	"encoding/json"
)

// ExecResult is the outcome of running the submitted code against a single
// input. Err is an execution failure for that input (compile error, crash,
// timeout); it is data, not a Go error, so one bad case never aborts grading.
type ExecResult struct {
	Output json.RawMessage `json:"output,omitempty"`
	Err    string          `json:"error,omitempty"`
}

type Runner interface {
	// Execute runs code against the ordered inputs and returns one result
	// per input. A non-nil error means the runner itself was unreachable.
	Execute(ctx context.Context, code, language string, inputs []json.RawMessage) ([]ExecResult, error)
}
