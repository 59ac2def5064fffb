package database

import "gibberish/internal/gibberish"

// NopHistory records nothing. It backs history type "none".
type NopHistory struct{}

func (NopHistory) RecordOperation(*gibberish.Operation) error { return nil }

func (NopHistory) ListOperations(int) ([]*gibberish.Operation, error) { return nil, nil }

func (NopHistory) Close() error { return nil }

var _ gibberish.History = NopHistory{}
