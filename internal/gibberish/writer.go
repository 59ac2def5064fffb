package gibberish

import (
	"bytes"
	"fmt"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// OutputWriter writes results to a Store, asking before replacing a file.
type OutputWriter struct {
	store     Store
	confirmer Confirmer
	logger    Logger
}

// NewOutputWriter creates an OutputWriter. confirmer may be nil only if every
// call passes allowOverwrite.
func NewOutputWriter(store Store, confirmer Confirmer, logger Logger) *OutputWriter {
	return &OutputWriter{store: store, confirmer: confirmer, logger: logger}
}

// Write stores data under name. When allowOverwrite is false and name already
// exists the user is asked first; a refusal returns false and no error.
func (w *OutputWriter) Write(name string, data []byte, allowOverwrite bool) (bool, error) {
	if !allowOverwrite {
		exists, err := w.store.Exists(name)
		if err != nil {
			return false, &WriteError{Path: name, Err: err}
		}
		if exists {
			if w.confirmer == nil {
				return false, &WriteError{Path: name, Err: fmt.Errorf("file exists and no confirmation is available")}
			}
			ok, err := w.confirmer.Confirm(fmt.Sprintf("File '%s' already exists. Overwrite? (Y/n) ", name))
			if err != nil {
				return false, fmt.Errorf("confirming overwrite: %w", err)
			}
			if !ok {
				w.logger.Info("overwrite declined", "path", name)
				return false, nil
			}
		}
	}

	if err := w.store.Put(name, bytes.NewReader(data), int64(len(data))); err != nil {
		return false, &WriteError{Path: name, Err: err}
	}

	w.logger.Debug("output written", "path", name, "size", len(data))
	return true, nil
}
