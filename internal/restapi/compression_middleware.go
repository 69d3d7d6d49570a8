package restapi

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// CompressionConfig holds configuration options for response compression
type CompressionConfig struct {
	// MinSize is the minimum response size in bytes to compress
	MinSize int
	// Level is the gzip compression level 1-9
	Level int
	// ContentTypes limits compression to these media types
	ContentTypes []string
}

// DefaultCompressionConfig compresses JSON and CSV bodies of 1KB and more.
// Fare matrices of large networks are the main beneficiary.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize:      1024,
		Level:        6,
		ContentTypes: []string{"application/json", "text/csv"},
	}
}

// NewCompressionMiddleware creates a compression middleware with the given configuration
func NewCompressionMiddleware(config CompressionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		opts := optionList(
			gzhttp.MinSize(config.MinSize),
			gzhttp.CompressionLevel(config.Level),
		)
		if len(config.ContentTypes) > 0 {
			opts = append(opts, gzhttp.ContentTypes(config.ContentTypes))
		}
		wrapper, err := gzhttp.NewWrapper(opts...)
		if err != nil {
			return gzhttp.GzipHandler(next)
		}
		return wrapper(next)
	}
}

// optionList collects gzhttp options into a slice; gzhttp does not export
// its option type, so the element type is inferred.
func optionList[T any](opts ...T) []T {
	return opts
}

// CompressionMiddleware applies gzip compression with default settings
func CompressionMiddleware(next http.Handler) http.Handler {
	return NewCompressionMiddleware(DefaultCompressionConfig())(next)
}
