package store

import (
	"context"
	"fmt"

	"github.com/absfs/memfs"

	"gibberish/internal/config"
	"gibberish/internal/gibberish"
)

// NewStoreFromConfig creates a Store implementation based on the store config type.
func NewStoreFromConfig(cfg config.StoreConfig) (gibberish.Store, error) {
	switch cfg.Type {
	case "filesystem", "":
		return NewFileSystemStore(cfg.FSRoot), nil
	case "memory":
		return NewMemoryStore(), nil
	case "memfs":
		fsys, err := memfs.NewFS()
		if err != nil {
			return nil, fmt.Errorf("creating memfs: %w", err)
		}
		return NewAbsFSStore(fsys), nil
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 store requires s3_bucket to be set")
		}
		return NewS3StoreFromConfig(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
