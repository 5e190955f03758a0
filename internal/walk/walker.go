package lazywalk

import (
	"context"
	"errors"
	"iter"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/TFMV/lazywalk/internal/errs"
)

// Stats counts the work a single traversal has done so far.
type Stats struct {
	Emitted    int64 // entries produced
	DirsListed int64 // directories read
	Absent     int64 // entries that vanished between listing and type query
	CycleSkips int64 // directories not entered because CycleGuard saw them
}

// frame is one open level of the depth-first work stack. The listing is
// read whole when the frame is pushed, so no handle outlives the push.
type frame struct {
	dir   string
	names []string
	next  int
	depth int // depth of the entries in names
}

// Walker is a pull-based pre-order traversal. Each call to Next does only
// the filesystem work needed to produce the next matching entry.
//
// A Walker is not safe for concurrent use; start one per goroutine from a
// shared Config instead.
type Walker struct {
	cfg   *Config
	stack []frame
	cur   Entry
	err   error
	stats Stats

	started bool
	done    bool
	// pending is set when cur is a directory that still has to be entered
	// before its next sibling is considered.
	pending bool
	visited map[string]struct{}
}

// Walker starts a new traversal. Nothing touches the filesystem until the
// first call to Next.
func (c *Config) Walker() *Walker {
	return &Walker{cfg: c}
}

// Next advances to the next matching entry. It returns false when the tree
// is exhausted or a directory could not be listed; Err tells them apart.
func (w *Walker) Next() bool {
	if w.done {
		return false
	}
	if !w.started {
		w.started = true
		if w.cfg.cycleGuard {
			w.visited = map[string]struct{}{w.cfg.root: {}}
		}
		if !w.list(w.cfg.root, 0) {
			return false
		}
	}
	if w.pending {
		w.pending = false
		if !w.enter(w.cur.Path, w.cur.Depth+1) {
			return false
		}
	}

	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]
		if top.next >= len(top.names) {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}
		name := top.names[top.next]
		top.next++

		cl := w.cfg.classify(top.dir, name, top.depth)
		if cl.absent {
			if !cl.dot {
				w.stats.Absent++
			}
			continue
		}
		descend := cl.recurse && w.cfg.descends(cl.entry.Depth)
		if cl.emit {
			w.cur = cl.entry
			w.pending = descend
			w.stats.Emitted++
			return true
		}
		if descend && !w.enter(cl.entry.Path, cl.entry.Depth+1) {
			return false
		}
	}

	w.done = true
	return false
}

// Entry returns the entry produced by the last successful Next.
func (w *Walker) Entry() Entry { return w.cur }

// Err returns the errs.IOFailure that ended the traversal, if any.
func (w *Walker) Err() error { return w.err }

// SkipDir prevents descent into the current entry. It has no effect when
// the current entry is not a directory or was already entered.
func (w *Walker) SkipDir() { w.pending = false }

// skipSiblings drops the rest of the listing the current entry came from.
// Only valid right after a non-directory was yielded, when that listing is
// the top frame.
func (w *Walker) skipSiblings() {
	if len(w.stack) > 0 {
		w.stack = w.stack[:len(w.stack)-1]
	}
}

// Stats returns the counters accumulated so far.
func (w *Walker) Stats() Stats { return w.stats }

// enter descends into dir, consulting the cycle guard first.
func (w *Walker) enter(dir string, depth int) bool {
	if w.visited != nil {
		canonical, err := w.cfg.fs.Canonical(dir)
		if err != nil {
			return w.fail("canonicalize", dir, err)
		}
		if _, seen := w.visited[canonical]; seen {
			w.stats.CycleSkips++
			w.cfg.logger.Debug("cycle guard: not descending",
				zap.String("path", dir),
				zap.String("canonical", canonical),
			)
			return true
		}
		w.visited[canonical] = struct{}{}
	}
	return w.list(dir, depth)
}

func (w *Walker) list(dir string, depth int) bool {
	names, err := w.cfg.fs.ReadDirnames(dir)
	if err != nil {
		return w.fail("list", dir, err)
	}
	w.stats.DirsListed++
	w.cfg.logger.Debug("listed directory",
		zap.String("path", dir),
		zap.Int("depth", depth),
		zap.Int("entries", len(names)),
	)
	w.stack = append(w.stack, frame{dir: dir, names: names, depth: depth})
	return true
}

func (w *Walker) fail(op, path string, err error) bool {
	w.cfg.logger.Warn("traversal stopped",
		zap.String("op", op),
		zap.String("path", path),
		zap.Error(err),
	)
	w.err = errs.IO(op, path, err)
	w.done = true
	w.stack = nil
	return false
}

// --------------------------------------------------------------------------
// Sequence and callback forms
// --------------------------------------------------------------------------

// All returns the traversal as a range-over-func sequence. A failure is
// reported as a final (Entry{}, err) pair; breaking out of the loop stops
// the walk where it is.
func (c *Config) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		w := c.Walker()
		for w.Next() {
			if !yield(w.Entry(), nil) {
				return
			}
		}
		if err := w.Err(); err != nil {
			yield(Entry{}, err)
		}
	}
}

// Paths is All reduced to absolute path strings.
func (c *Config) Paths() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for e, err := range c.All() {
			if !yield(e.Path, err) {
				return
			}
		}
	}
}

// WalkFunc is called for each entry produced by Walk.
type WalkFunc func(ctx context.Context, e Entry) error

// Walk calls fn for every entry of a fresh traversal. See Walker.Walk.
func (c *Config) Walk(ctx context.Context, fn WalkFunc) error {
	return c.Walker().Walk(ctx, fn)
}

// Walk drives w to the end, calling fn for every entry. As with
// filepath.WalkDir, returning filepath.SkipDir for a directory skips its
// subtree and returning it for any other entry skips the remaining entries
// of that entry's parent directory. filepath.SkipAll stops the walk without
// error. Any other error from fn is returned as is. ctx is checked before
// each pull.
func (w *Walker) Walk(ctx context.Context, fn WalkFunc) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !w.Next() {
			return w.Err()
		}
		err := fn(ctx, w.Entry())
		switch {
		case err == nil:
		case errors.Is(err, filepath.SkipDir):
			if w.cur.Type == TypeDir {
				w.SkipDir()
			} else {
				w.skipSiblings()
			}
		case errors.Is(err, filepath.SkipAll):
			return nil
		default:
			return err
		}
	}
}

// Collect gathers every entry. On failure it returns the entries produced
// before the failure together with the error.
func (c *Config) Collect(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := c.Walk(ctx, func(_ context.Context, e Entry) error {
		entries = append(entries, e)
		return nil
	})
	return entries, err
}
