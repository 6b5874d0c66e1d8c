package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Photos uploads and deletes hosted photos in one folder of a FileStorage and
// maps between object keys and public URLs.
type Photos struct {
	store   FileStorage
	folder  string
	baseURL *url.URL
}

// NewPhotos creates a photo host. publicBaseURL is the prefix every object URL is served under.
func NewPhotos(store FileStorage, publicBaseURL, folder string) (*Photos, error) {
	base, err := url.Parse(strings.TrimSuffix(publicBaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("storage: invalid public base url %q", publicBaseURL)
	}
	return &Photos{store: store, folder: strings.Trim(folder, "/"), baseURL: base}, nil
}

// Upload stores the photo under <folder>/<uuid> and returns its public URL.
func (p *Photos) Upload(ctx context.Context, body io.Reader, size int64, contentType string) (string, error) {
	key := uuid.NewString()
	if p.folder != "" {
		key = p.folder + "/" + key
	}
	if err := p.store.PutObject(ctx, key, body, size, contentType); err != nil {
		return "", err
	}
	return p.URLFor(key), nil
}

// URLFor returns the public URL of an object key.
func (p *Photos) URLFor(key string) string {
	return p.baseURL.String() + "/" + key
}

// Owns reports whether rawURL is served by this host.
func (p *Photos) Owns(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, p.baseURL.Host) &&
		strings.HasPrefix(u.Path, p.baseURL.Path+"/")
}

// Delete removes the photo behind rawURL and returns the key it derived.
// URLs this host does not serve (e.g. the default avatar) yield ErrForeignURL.
func (p *Photos) Delete(ctx context.Context, rawURL string) (string, error) {
	if !p.Owns(rawURL) {
		return "", ErrForeignURL
	}
	key, err := KeyFromURL(rawURL, p.baseURL.Path)
	if err != nil {
		return "", err
	}
	return key, p.store.DeleteObject(ctx, key)
}
