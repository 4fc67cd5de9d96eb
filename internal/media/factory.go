package media

import (
	"context"
	"fmt"

	"github.com/Ougobatec/Breezy-sub000/pkg/config"
)

// NewStoreFromConfig creates a Store implementation based on the media
// config backend.
func NewStoreFromConfig(ctx context.Context, cfg config.MediaConfig) (Store, error) {
	switch cfg.Backend {
	case "filesystem":
		if cfg.Root == "" {
			return nil, fmt.Errorf("filesystem media store requires media.root to be set")
		}
		return NewFileSystemStore(cfg.Root)
	case "s3":
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("s3 media store requires media.s3.bucket to be set")
		}
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown media backend: %s", cfg.Backend)
	}
}
