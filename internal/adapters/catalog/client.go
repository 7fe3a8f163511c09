// Package catalog loads activity tables published over HTTP.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"mergingtonactivities/internal/domain"
	"mergingtonactivities/internal/seed"
)

// maxCatalogBytes caps how much of a remote catalog is read.
const maxCatalogBytes = 1 << 20

type httpFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a fetcher that downloads a TOML activity table.
func NewHTTPFetcher(client *http.Client) domain.CatalogFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpFetcher{client: client}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (domain.ActivityList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/toml, text/plain")
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog server returned status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(data) > maxCatalogBytes {
		return nil, fmt.Errorf("%w: catalog exceeds %d bytes", domain.ErrInvalidInput, maxCatalogBytes)
	}
	return seed.Parse(data)
}
