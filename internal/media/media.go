// Package media turns stored image references into URLs a browser can load.
package media

import (
	"context"
	"fmt"
	"strings"

	"chai-app-go/internal/config"
)

// ImageURLs resolves an image reference such as "chais/kadak.jpg".
// An empty reference resolves to an empty URL.
type ImageURLs interface {
	ImageURL(ctx context.Context, ref string) (string, error)
}

// New picks the backend named in cfg.
func New(ctx context.Context, cfg config.MediaConfig) (ImageURLs, error) {
	switch cfg.Backend {
	case config.MediaBackendLocal, "":
		return NewLocal(cfg.URL), nil
	case config.MediaBackendS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("media: unsupported backend %q", cfg.Backend)
	}
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func cleanRef(ref string) string {
	return strings.TrimLeft(strings.TrimSpace(ref), "/")
}
