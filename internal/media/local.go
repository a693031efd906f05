package media

import (
	"context"
	"strings"
)

// LocalURLs serves images from the media directory mounted under baseURL.
type LocalURLs struct {
	baseURL string
}

func NewLocal(baseURL string) *LocalURLs {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = "/media/"
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalURLs{baseURL: baseURL}
}

func (l *LocalURLs) ImageURL(_ context.Context, ref string) (string, error) {
	ref = cleanRef(ref)
	if ref == "" {
		return "", nil
	}
	if isAbsoluteURL(ref) {
		return ref, nil
	}
	return l.baseURL + ref, nil
}
