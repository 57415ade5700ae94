// Package assets resolves logo and stamp references to renderable image
// bytes. Resolution is an ordered list of strategies composed first-success
// wins; every failure is logged and swallowed so a missing asset can never
// abort a render.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const uploadsSegment = "/uploads/"

// DefaultFetchTimeout bounds the remote-logo fetch so a slow URL degrades to
// absence instead of stalling the render.
const DefaultFetchTimeout = 5 * time.Second

// Store is a filesystem-like lookup by filename, the renderer's only view of
// the upload storage owned by the surrounding application.
type Store interface {
	Read(name string) ([]byte, error)
}

// DirStore serves uploaded files from a local directory.
type DirStore struct {
	root string
}

// NewDirStore creates a store rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{root: dir}
}

// Read returns the named file's bytes. Only the base name is honored so a
// reference can never escape the upload directory.
func (s *DirStore) Read(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, filepath.Base(name)))
}

// Resolver turns a logo reference into image bytes.
type Resolver struct {
	store  Store
	client *http.Client
	log    *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStore sets the upload store used by the uploads-path strategy.
func WithStore(store Store) Option {
	return func(r *Resolver) { r.store = store }
}

// WithHTTPClient replaces the client used for remote fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) { r.client = client }
}

// WithLogger sets the logger for swallowed resolution failures.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// NewResolver creates a resolver with the given options.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		client: &http.Client{Timeout: DefaultFetchTimeout},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type strategy struct {
	name string
	fn   func(ctx context.Context, ref string) ([]byte, error)
}

func (r *Resolver) strategies() []strategy {
	return []strategy{
		{"uploads", r.fromStore},
		{"local-path", r.fromLocalPath},
		{"remote", r.fromURL},
	}
}

// Resolve tries each strategy in order and returns the first fully-read,
// recognizable image. It returns nil when every strategy fails; it never
// returns an error.
func (r *Resolver) Resolve(ctx context.Context, ref string) []byte {
	if ref == "" {
		return nil
	}

	for _, s := range r.strategies() {
		data, err := s.fn(ctx, ref)
		if err != nil {
			r.log.Debug("asset strategy failed",
				zap.String("strategy", s.name),
				zap.String("ref", ref),
				zap.Error(err))
			continue
		}
		if ImageType(data) == "" {
			r.log.Warn("asset resolved to non-image data, skipping",
				zap.String("strategy", s.name),
				zap.String("ref", ref))
			continue
		}
		return data
	}

	r.log.Warn("asset could not be resolved", zap.String("ref", ref))
	return nil
}

// fromStore strips a "/uploads/" prefix (or takes the last path segment of a
// URL-like reference) and looks the remainder up in the upload store.
func (r *Resolver) fromStore(_ context.Context, ref string) ([]byte, error) {
	if r.store == nil {
		return nil, errors.New("no upload store configured")
	}

	name := ref
	if i := strings.Index(ref, uploadsSegment); i >= 0 {
		name = ref[i+len(uploadsSegment):]
	} else if strings.Contains(ref, "/") {
		name = path.Base(ref)
	}
	if name == "" {
		return nil, errors.New("empty upload name")
	}
	return r.store.Read(name)
}

func (r *Resolver) fromLocalPath(_ context.Context, ref string) ([]byte, error) {
	return os.ReadFile(ref)
}

func (r *Resolver) fromURL(ctx context.Context, ref string) ([]byte, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// ImageType sniffs the image format from magic bytes. It returns "PNG" or
// "JPG" (the names the PDF backend registers images under), or "" for
// anything unrecognized.
func ImageType(data []byte) string {
	if len(data) < 4 {
		return ""
	}
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return "PNG"
	}
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "JPG"
	}
	return ""
}
