package profilestore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sbcounts/aadv/internal/contract"
	"github.com/sbcounts/aadv/schema"
)

// Document file names under a profile base URL or directory.
const (
	hourlyDocumentName = "hourly.json"
	normDocumentName   = "normalization.json"
)

// documentName maps a profile kind to its document file name.
func documentName(kind schema.ProfileKind) string {
	if kind == schema.HourlyProfileKind {
		return hourlyDocumentName
	}
	return normDocumentName
}

// HTTPSource fetches factor documents from a base URL.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

var _ contract.ProfileSource = (*HTTPSource)(nil) // Compile-time check

// NewHTTPSource builds an HTTP source. The timeout bounds each fetch; a
// timed-out fetch surfaces to the store as a load failure.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch implements the ProfileSource interface.
func (s *HTTPSource) Fetch(ctx context.Context, kind schema.ProfileKind) ([]byte, error) {
	url := s.baseURL + "/" + documentName(kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// FileSource reads factor documents from a local directory. Used by tests
// and by deployments that ship factor tables alongside the binary.
type FileSource struct {
	dir string
}

var _ contract.ProfileSource = (*FileSource)(nil) // Compile-time check

// NewFileSource builds a directory-backed source.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Fetch implements the ProfileSource interface.
func (s *FileSource) Fetch(_ context.Context, kind schema.ProfileKind) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, documentName(kind)))
}
