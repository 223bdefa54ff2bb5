package docsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Loader resolves a document reference to its text. A reference is
// either a local file path (.txt or .html) or an http(s) URL. PDF
// conversion is deliberately outside this package: callers hand over
// already-extracted text blobs.
type Loader struct {
	fetcher *Fetcher
}

// NewLoader creates a Loader. fetcher may be nil to restrict loading to
// local files.
func NewLoader(fetcher *Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Load returns the text content of the referenced document.
func (l *Loader) Load(ctx context.Context, source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if l.fetcher == nil {
			return "", fmt.Errorf("URL documents are not enabled: %s", source)
		}
		return l.fetcher.Fetch(ctx, source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".html", ".htm":
		return VisibleText(string(data))
	default:
		return string(data), nil
	}
}
