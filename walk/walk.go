// Package walk is the public face of lazywalk: a filtered, depth-bounded,
// pull-based directory traversal.
package walk

import (
	"context"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	internal "github.com/TFMV/lazywalk/internal/walk"
)

// Re-export the types from the internal package
type (
	// Options configures NewConfig.
	Options = internal.Options

	// Config is an immutable, validated traversal configuration.
	Config = internal.Config

	// Entry is one traversal result.
	Entry = internal.Entry

	// EntryType is the inferred type of an entry.
	EntryType = internal.EntryType

	// Walker is a pull-based traversal started from a Config.
	Walker = internal.Walker

	// Stats counts the work a traversal has done.
	Stats = internal.Stats

	// FileSystem is the set of queries a traversal makes.
	FileSystem = internal.FileSystem

	// WalkFunc is called for each entry produced by Walk.
	WalkFunc = internal.WalkFunc

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel

	// MiddlewareFunc wraps a WalkFunc.
	MiddlewareFunc func(next WalkFunc) WalkFunc
)

// Re-export the constants
const (
	TypeDir     = internal.TypeDir
	TypeFile    = internal.TypeFile
	TypeSpecial = internal.TypeSpecial

	DefaultMaxDepth = internal.DefaultMaxDepth

	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug
)

// NewConfig validates root and opts and canonicalizes root.
func NewConfig(root string, opts Options) (*Config, error) {
	return internal.NewConfig(root, opts)
}

// DefaultOptions matches every name, includes every type and lists the
// root's children and grandchildren.
func DefaultOptions() Options { return internal.DefaultOptions() }

// OSFS is the host filesystem.
func OSFS() FileSystem { return internal.OSFS() }

// AferoFS adapts an afero filesystem.
func AferoFS(fs afero.Fs) FileSystem { return internal.AferoFS(fs) }

// FormatEntry expands the placeholders of template for e.
func FormatEntry(template string, e Entry) string { return internal.FormatEntry(template, e) }

// PrintHandler, FormatHandler and ExecHandler are the stock WalkFuncs.
var (
	PrintHandler  = internal.PrintHandler
	FormatHandler = internal.FormatHandler
	ExecHandler   = internal.ExecHandler
)

// Chain applies middlewares so that the first one is outermost.
func Chain(fn WalkFunc, middlewares ...MiddlewareFunc) WalkFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		fn = middlewares[i](fn)
	}
	return fn
}

// LoggingMiddleware creates a middleware that logs each entry.
func LoggingMiddleware(logger *zap.Logger) MiddlewareFunc {
	return func(next WalkFunc) WalkFunc {
		return func(ctx context.Context, e Entry) error {
			logger.Debug("Processing entry",
				zap.String("path", e.Path),
				zap.Stringer("type", e.Type),
				zap.Int("depth", e.Depth),
			)
			err := next(ctx, e)
			if err != nil {
				logger.Error("Error processing entry",
					zap.String("path", e.Path),
					zap.Error(err),
				)
			}
			return err
		}
	}
}

// TimingMiddleware reports every entry whose handler took longer than
// threshold.
func TimingMiddleware(threshold time.Duration, slow func(e Entry, took time.Duration)) MiddlewareFunc {
	return func(next WalkFunc) WalkFunc {
		return func(ctx context.Context, e Entry) error {
			start := time.Now()
			err := next(ctx, e)
			if took := time.Since(start); took > threshold && slow != nil {
				slow(e, took)
			}
			return err
		}
	}
}
