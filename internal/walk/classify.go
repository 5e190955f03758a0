package lazywalk

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// EntryType is the inferred type of a directory entry.
type EntryType int

const (
	TypeDir EntryType = iota
	TypeFile
	TypeSpecial // symlink, device, socket, FIFO or anything else
)

func (t EntryType) String() string {
	switch t {
	case TypeDir:
		return "dir"
	case TypeFile:
		return "file"
	default:
		return "special"
	}
}

// MarshalText renders the type as its String form.
func (t EntryType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Entry is one traversal result.
type Entry struct {
	Path  string    `json:"path" yaml:"path"`   // parent directory joined with Name
	Name  string    `json:"name" yaml:"name"`   // bare name
	Type  EntryType `json:"type" yaml:"type"`   // inferred at listing time
	Depth int       `json:"depth" yaml:"depth"` // root's direct children are 0
}

// classification is the outcome of inspecting one raw listing name.
type classification struct {
	entry   Entry
	absent  bool // vanished or unclassifiable; always skipped
	dot     bool // "." or "..", also absent
	emit    bool // type flag and filter both pass
	recurse bool // directory, independent of emit
}

// classify inspects name inside dir. The "." and ".." names are dropped
// before any query; a failed type query marks the entry absent.
func (c *Config) classify(dir, name string, depth int) classification {
	if name == "." || name == ".." {
		return classification{absent: true, dot: true}
	}

	path := filepath.Join(dir, name)
	typ, err := c.typeOf(path)
	if err != nil {
		c.logger.Debug("skipping transiently absent entry",
			zap.String("path", path),
			zap.Error(err),
		)
		return classification{absent: true}
	}

	cl := classification{
		entry:   Entry{Path: path, Name: name, Type: typ, Depth: depth},
		recurse: typ == TypeDir,
	}
	cl.emit = c.includes(typ) && c.matches(name)
	return cl
}

func (c *Config) typeOf(path string) (EntryType, error) {
	var (
		info os.FileInfo
		err  error
	)
	if c.followSymlinks {
		info, err = c.fs.Stat(path)
		if err != nil {
			// Dangling link: still present, just not followable.
			info, err = c.fs.Lstat(path)
		}
	} else {
		info, err = c.fs.Lstat(path)
	}
	if err != nil {
		return 0, err
	}

	switch mode := info.Mode(); {
	case mode.IsDir():
		return TypeDir, nil
	case mode.IsRegular():
		return TypeFile, nil
	default:
		return TypeSpecial, nil
	}
}

func (c *Config) includes(t EntryType) bool {
	switch t {
	case TypeDir:
		return c.includeDirs
	case TypeFile:
		return c.includeFiles
	default:
		return c.includeSpecial
	}
}

func (c *Config) matches(name string) bool {
	if c.normalize {
		name = norm.NFC.String(name)
	}
	return c.filter.MatchString(name)
}
