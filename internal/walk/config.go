package lazywalk

import (
	"errors"
	"io/fs"
	"regexp"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/TFMV/lazywalk/internal/errs"
)

// DefaultMaxDepth descends one level below the root's direct children.
const DefaultMaxDepth = 1

// Options configures NewConfig. Start from DefaultOptions; the zero value
// excludes every entry type.
type Options struct {
	// Pattern is a regular expression tested against each bare entry name.
	// It is unanchored: use ^...$ for a whole-name match. Empty matches all.
	Pattern string

	IncludeDirs    bool // Emit directories
	IncludeFiles   bool // Emit regular files
	IncludeSpecial bool // Emit symlinks, devices, sockets, FIFOs, ...

	// MaxDepth bounds descent. Entries at depths 0..MaxDepth are produced;
	// a negative value means unlimited.
	MaxDepth int

	// FollowSymlinks classifies entries by their link target, so symlinked
	// directories are descended into. Pair with CycleGuard when MaxDepth < 0.
	FollowSymlinks bool

	// CycleGuard refuses to descend into a directory whose canonical path
	// was already entered during the same traversal.
	CycleGuard bool

	// NormalizeNames applies Unicode NFC to the pattern and to every name
	// before matching.
	NormalizeNames bool

	FS       FileSystem  // nil selects OSFS
	Logger   *zap.Logger // nil builds one from LogLevel
	LogLevel LogLevel
}

// DefaultOptions matches every name, includes every type and uses
// DefaultMaxDepth.
func DefaultOptions() Options {
	return Options{
		IncludeDirs:    true,
		IncludeFiles:   true,
		IncludeSpecial: true,
		MaxDepth:       DefaultMaxDepth,
		LogLevel:       LogLevelInfo,
	}
}

// Config is an immutable, validated traversal configuration. It may start
// any number of independent traversals, including concurrently.
type Config struct {
	root           string
	filter         *regexp.Regexp
	includeDirs    bool
	includeFiles   bool
	includeSpecial bool
	maxDepth       int
	followSymlinks bool
	cycleGuard     bool
	normalize      bool
	fs             FileSystem
	logger         *zap.Logger
}

// NewConfig validates root and opts.Pattern and canonicalizes root.
//
// It fails with errs.InvalidInput when the pattern does not compile or root
// does not name an existing directory, and with errs.IOFailure when root
// cannot be canonicalized. No directory is opened or listed.
func NewConfig(root string, opts Options) (*Config, error) {
	// Only the empty string is rejected here; " " may name a real directory.
	if root == "" {
		return nil, errs.Invalidf("resolve root", root, "empty path")
	}

	pattern := opts.Pattern
	if opts.NormalizeNames {
		pattern = norm.NFC.String(pattern)
	}
	// Compiling is the validation; no trial match follows.
	filter, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errs.Invalid("compile filter", opts.Pattern, err)
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = OSFS()
	}

	info, err := fsys.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, errs.Invalid("resolve root", root, err)
	case err != nil:
		return nil, errs.IO("resolve root", root, err)
	case !info.IsDir():
		return nil, errs.Invalidf("resolve root", root, "not a directory")
	}

	canonical, err := fsys.Canonical(root)
	if err != nil {
		return nil, errs.IO("canonicalize root", root, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = createLogger(opts.LogLevel)
	}

	return &Config{
		root:           canonical,
		filter:         filter,
		includeDirs:    opts.IncludeDirs,
		includeFiles:   opts.IncludeFiles,
		includeSpecial: opts.IncludeSpecial,
		maxDepth:       opts.MaxDepth,
		followSymlinks: opts.FollowSymlinks,
		cycleGuard:     opts.CycleGuard,
		normalize:      opts.NormalizeNames,
		fs:             fsys,
		logger:         logger,
	}, nil
}

// Root returns the canonical root directory.
func (c *Config) Root() string { return c.root }

// MaxDepth returns the configured depth bound; negative means unlimited.
func (c *Config) MaxDepth() int { return c.maxDepth }

// Pattern returns the filter expression as compiled.
func (c *Config) Pattern() string { return c.filter.String() }

// descends reports whether a directory found at depth may be entered.
func (c *Config) descends(depth int) bool {
	return c.maxDepth < 0 || depth < c.maxDepth
}
