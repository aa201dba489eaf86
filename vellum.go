// Package vellum renders a PDF page's flattened operator stream into a
// standalone SVG document.
//
// Basic usage:
//
//	svg, err := vellum.RenderPage(ctx, list, viewport, commonObjs, pageObjs)
//	if err != nil {
//	    // handle error
//	}
//	svg.WriteTo(out)
//
// With options:
//
//	svg, err := vellum.RenderPage(ctx, list, viewport, commonObjs, pageObjs,
//	    vellum.WithEmbedFonts(true),
//	    vellum.WithLogger(logger))
//
// The heavy lifting lives in the render package; this package is the stable
// entry point the command-line driver and embedding applications use.
package vellum

import (
	"context"

	"go.uber.org/zap"

	"github.com/tsawler/vellum/objstore"
	"github.com/tsawler/vellum/opstream"
	"github.com/tsawler/vellum/render"
	"github.com/tsawler/vellum/svgdom"
)

// RenderPage interprets one page. It blocks until every object referenced
// by a dependency operator has resolved in its store (or ctx is cancelled),
// then interprets the stream synchronously and returns the root <svg>.
//
// commonObjs holds document-wide objects (ids starting with "g_", fonts in
// particular); pageObjs holds page-local objects such as image data. Either
// store may be nil when the page references nothing from it.
func RenderPage(ctx context.Context, list *opstream.OperatorList, viewport opstream.Viewport,
	commonObjs, pageObjs *objstore.Store, opts ...Option) (*svgdom.Element, error) {

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	r := render.New(commonObjs, pageObjs, render.Config{
		Log:           options.log,
		ForceDataURLs: options.forceDataURLs,
		EmbedFonts:    options.embedFonts,
		IDs:           options.ids,
	})
	return r.Render(ctx, list, viewport)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	svg := vellum.Must(vellum.RenderPage(ctx, list, viewport, common, page))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Option configures a render.
type Option func(*renderOptions)

// WithLogger directs renderer warnings to log. The default discards them.
func WithLogger(log *zap.Logger) Option {
	return func(o *renderOptions) {
		o.log = log
	}
}

// WithEmbedFonts embeds @font-face rules for fonts that carry file data.
func WithEmbedFonts(embed bool) Option {
	return func(o *renderOptions) {
		o.embedFonts = embed
	}
}

// WithForceDataURLs forces data URLs for encoded images. The pure-Go
// encoder always emits data URLs; the option exists for driver parity with
// the producer contract.
func WithForceDataURLs(force bool) Option {
	return func(o *renderOptions) {
		o.forceDataURLs = force
	}
}

// WithIDAllocator overrides the process-wide mask/shading id allocator,
// which tests use to get deterministic ids.
func WithIDAllocator(ids *render.IDAllocator) Option {
	return func(o *renderOptions) {
		o.ids = ids
	}
}
