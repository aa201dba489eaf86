package vellum

import (
	"go.uber.org/zap"

	"github.com/tsawler/vellum/render"
)

// renderOptions holds configuration for a page render.
type renderOptions struct {
	log           *zap.Logger
	embedFonts    bool
	forceDataURLs bool
	ids           *render.IDAllocator
}

// defaultOptions returns the default render options.
func defaultOptions() renderOptions {
	return renderOptions{
		log:           nil, // nil means discard
		embedFonts:    false,
		forceDataURLs: false,
		ids:           nil, // nil means the shared process-wide allocator
	}
}
