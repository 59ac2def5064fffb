package app

import (
	"gibberish/internal/gibberish"
)

// operationTracker records one history entry per encode or decode call.
// Every operation gets its own ID from ids.
type operationTracker struct {
	history gibberish.History
	clock   gibberish.Clock
	ids     gibberish.IDGenerator
	logger  gibberish.Logger
}

// begin starts an operation record for the given mode and input.
func (t *operationTracker) begin(mode, input string) *gibberish.Operation {
	return &gibberish.Operation{
		InvocationID: t.ids.New(),
		Mode:         mode,
		Input:        input,
		StartedAt:    t.clock.Now(),
	}
}

// finish fills in the outcome and stores the record. A history failure is
// logged and never replaces the outcome of the operation itself.
func (t *operationTracker) finish(op *gibberish.Operation, res *gibberish.Result, opErr error) {
	op.FinishedAt = t.clock.Now()
	op.Status = operationStatus(res, opErr)
	if res != nil {
		op.Target = res.Target
	}
	if opErr != nil {
		op.Error = opErr.Error()
	}

	if err := t.history.RecordOperation(op); err != nil {
		t.logger.Warn("recording history failed", "invocation", op.InvocationID, "error", err)
	}
}

func operationStatus(res *gibberish.Result, err error) string {
	switch {
	case err != nil:
		return gibberish.StatusError
	case res != nil && !res.Written:
		return gibberish.StatusDeclined
	default:
		return gibberish.StatusSuccess
	}
}
