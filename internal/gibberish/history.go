package gibberish

import "time"

// Operation modes.
const (
	ModeEncode = "encode"
	ModeDecode = "decode"
)

// Operation statuses.
const (
	StatusSuccess  = "success"
	StatusDeclined = "declined"
	StatusError    = "error"
)

// Operation is the record of one encode or decode invocation.
type Operation struct {
	ID           int64
	InvocationID string
	Mode         string
	Input        string
	Target       string
	Status       string
	Error        string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// History keeps a local record of past invocations.
type History interface {
	// RecordOperation stores op and sets op.ID.
	RecordOperation(op *Operation) error

	// ListOperations returns up to limit operations, newest first.
	ListOperations(limit int) ([]*Operation, error)

	Close() error
}
