// Package di provides dependency injection factories for creating application components.
package di

import (
	"userdir_backend/internal/feature/directory/adapters/fakestore"
	infrahttp "userdir_backend/internal/platform/http"
)

// NewDirectorySource creates a fully configured Fake Store API client with HTTP client.
func NewDirectorySource() *fakestore.Client {
	cfg := fakestore.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return fakestore.NewClient(cfg, httpClient)
}
