package invoicepdf

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/rezonia/invoice-renderer/internal/assets"
	"github.com/rezonia/invoice-renderer/internal/render"
)

// Options configures a Renderer. The zero value is usable: no upload store,
// no optimization, silent logging.
type Options struct {
	// UploadsDir is the directory with uploaded logo files. Empty disables
	// the upload-store resolution strategy.
	UploadsDir string

	// Optimize runs an optimization pass over finished documents.
	Optimize bool

	// CreationDate pins the document creation timestamp, making output
	// bytes reproducible. Zero means the current time.
	CreationDate time.Time

	// Logger receives degraded-output events. Nil means no logging.
	Logger *zap.Logger
}

// Renderer renders invoice snapshots to PDF documents.
type Renderer struct {
	engine *render.Engine
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts Options) *Renderer {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	resolverOpts := []assets.Option{assets.WithLogger(log)}
	if opts.UploadsDir != "" {
		resolverOpts = append(resolverOpts, assets.WithStore(assets.NewDirStore(opts.UploadsDir)))
	}

	engineOpts := []render.Option{
		render.WithAssets(assets.NewResolver(resolverOpts...)),
		render.WithLogger(log),
	}
	if opts.Optimize {
		engineOpts = append(engineOpts, render.WithOptimization())
	}
	if !opts.CreationDate.IsZero() {
		engineOpts = append(engineOpts, render.WithCreationDate(opts.CreationDate))
	}

	return &Renderer{engine: render.New(engineOpts...)}
}

// NewDefaultRenderer creates a renderer with default options.
func NewDefaultRenderer() *Renderer {
	return NewRenderer(Options{})
}

// Render produces the finished PDF document for an invoice snapshot.
func (r *Renderer) Render(ctx context.Context, inv *Invoice) ([]byte, error) {
	return r.engine.Render(ctx, inv)
}

// RenderTo renders the invoice and writes the document to w.
func (r *Renderer) RenderTo(ctx context.Context, inv *Invoice, w io.Writer) error {
	return r.engine.RenderTo(ctx, inv, w)
}
