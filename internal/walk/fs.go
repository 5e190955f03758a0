package lazywalk

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/karrick/godirwalk"
	"github.com/spf13/afero"
)

// FileSystem is the set of blocking queries a traversal needs.
//
// ReadDirnames must return names in the order the underlying listing produces
// them and must not hold the directory open after it returns.
type FileSystem interface {
	ReadDirnames(dir string) ([]string, error)
	Lstat(path string) (os.FileInfo, error)
	Stat(path string) (os.FileInfo, error)
	// Canonical returns an absolute path with symlinks and relative
	// segments eliminated.
	Canonical(path string) (string, error)
}

// --------------------------------------------------------------------------
// Operating system
// --------------------------------------------------------------------------

type osFS struct {
	// godirwalk reuses this between listings; a pool keeps configs safe to
	// share across concurrent traversals.
	scratch sync.Pool
}

// OSFS returns a FileSystem backed by the host operating system.
func OSFS() FileSystem {
	return &osFS{
		scratch: sync.Pool{New: func() any {
			b := make([]byte, godirwalk.MinimumScratchBufferSize)
			return &b
		}},
	}
}

func (f *osFS) ReadDirnames(dir string) ([]string, error) {
	buf := f.scratch.Get().(*[]byte)
	defer f.scratch.Put(buf)
	return godirwalk.ReadDirnames(dir, *buf)
}

func (f *osFS) Lstat(path string) (os.FileInfo, error) { return os.Lstat(path) }

func (f *osFS) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }

func (f *osFS) Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// --------------------------------------------------------------------------
// afero
// --------------------------------------------------------------------------

type aferoFS struct {
	fs afero.Fs
}

// AferoFS adapts an afero filesystem (in-memory, base-path, read-only, ...).
//
// Canonical only cleans and absolutizes the path unless the filesystem can
// read links, in which case each symlink component is resolved.
func AferoFS(fs afero.Fs) FileSystem {
	return &aferoFS{fs: fs}
}

func (a *aferoFS) ReadDirnames(dir string) ([]string, error) {
	f, err := a.fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Readdirnames(-1)
}

func (a *aferoFS) Lstat(path string) (os.FileInfo, error) {
	if l, ok := a.fs.(afero.Lstater); ok {
		fi, _, err := l.LstatIfPossible(path)
		return fi, err
	}
	return a.fs.Stat(path)
}

func (a *aferoFS) Stat(path string) (os.FileInfo, error) { return a.fs.Stat(path) }

// maxLinkHops bounds symlink resolution in Canonical.
const maxLinkHops = 255

var errTooManyLinks = errors.New("too many levels of symbolic links")

func (a *aferoFS) Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	reader, ok := a.fs.(afero.LinkReader)
	if !ok {
		if _, err := a.fs.Stat(abs); err != nil {
			return "", err
		}
		return abs, nil
	}

	// Resolve one component at a time, restarting after each link.
	for hops := 0; ; hops++ {
		if hops > maxLinkHops {
			return "", &os.PathError{Op: "canonical", Path: path, Err: errTooManyLinks}
		}
		resolved, changed, err := a.resolveOnce(reader, abs)
		if err != nil {
			return "", err
		}
		if !changed {
			return resolved, nil
		}
		abs = resolved
	}
}

func (a *aferoFS) resolveOnce(reader afero.LinkReader, abs string) (string, bool, error) {
	vol := filepath.VolumeName(abs)
	rest := abs[len(vol):]
	cur := vol + string(filepath.Separator)
	for _, part := range splitPath(rest) {
		next := filepath.Join(cur, part)
		fi, err := a.Lstat(next)
		if err != nil {
			return "", false, err
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			target, err := reader.ReadlinkIfPossible(next)
			if err != nil {
				return "", false, err
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(cur, target)
			}
			tail, _ := filepath.Rel(next, abs)
			return filepath.Clean(filepath.Join(target, tail)), true, nil
		}
		cur = next
	}
	return filepath.Clean(cur), false, nil
}

func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(filepath.ToSlash(p), "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}
