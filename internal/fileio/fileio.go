// Package fileio wraps whole-file reads and writes and CSV records.
//
// Open, read and write failures are errs.IOFailure; bad arguments are
// errs.InvalidInput, matching the traversal's error kinds.
package fileio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/TFMV/lazywalk/internal/errs"
	"github.com/TFMV/lazywalk/internal/validate"
)

// Files performs file helpers against one filesystem.
type Files struct {
	fs afero.Fs
}

// New returns Files backed by fs.
func New(fs afero.Fs) *Files {
	return &Files{fs: fs}
}

var osFiles = New(afero.NewOsFs())

// ReadFile reads path from the host filesystem.
func ReadFile(path string) ([]byte, error) { return osFiles.ReadFile(path) }

// ReadLines reads path from the host filesystem split into lines.
func ReadLines(path string) ([]string, error) { return osFiles.ReadLines(path) }

// WriteFile replaces path on the host filesystem.
func WriteFile(path string, data []byte) error { return osFiles.WriteFile(path, data) }

// AppendFile appends to path on the host filesystem.
func AppendFile(path string, data []byte) error { return osFiles.AppendFile(path, data) }

// ReadCSV reads a CSV file from the host filesystem.
func ReadCSV(path string, opts CSVOptions) (*Table, error) { return osFiles.ReadCSV(path, opts) }

// WriteCSV writes a CSV file on the host filesystem.
func WriteCSV(path string, header []string, rows [][]string) error {
	return osFiles.WriteCSV(path, header, rows)
}

// ReadFile returns the whole content of path.
func (f *Files) ReadFile(path string) ([]byte, error) {
	if err := validate.NonEmpty("path", path); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, errs.IO("read", path, err)
	}
	return data, nil
}

// ReadLines returns the lines of path without their terminators.
func (f *Files) ReadLines(path string) ([]string, error) {
	if err := validate.NonEmpty("path", path); err != nil {
		return nil, err
	}
	file, err := f.fs.Open(path)
	if err != nil {
		return nil, errs.IO("open", path, err)
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errs.IO("read", path, err)
	}
	return lines, nil
}

// WriteFile creates or truncates path and writes data to it.
func (f *Files) WriteFile(path string, data []byte) error {
	if err := validate.NonEmpty("path", path); err != nil {
		return err
	}
	if err := afero.WriteFile(f.fs, path, data, 0o644); err != nil {
		return errs.IO("write", path, err)
	}
	return nil
}

// AppendFile appends data to path, creating it if needed.
func (f *Files) AppendFile(path string, data []byte) error {
	if err := validate.NonEmpty("path", path); err != nil {
		return err
	}
	file, err := f.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errs.IO("open", path, err)
	}
	_, werr := file.Write(data)
	cerr := file.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return errs.IO("write", path, err)
	}
	return nil
}

// --------------------------------------------------------------------------
// CSV
// --------------------------------------------------------------------------

// CSVOptions controls ReadCSV. The zero value reads comma-separated records
// with no header.
type CSVOptions struct {
	Comma            rune // field delimiter, ',' when zero
	Comment          rune // lines starting with this are ignored, none when zero
	Header           bool // first record is a header
	TrimLeadingSpace bool
	// FieldsPerRecord follows encoding/csv: 0 requires every record to match
	// the first, negative allows ragged records.
	FieldsPerRecord int
}

// Table is a parsed CSV file.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the values of the named header column.
func (t *Table) Column(name string) ([]string, error) {
	idx := -1
	for i, h := range t.Header {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errs.Invalidf("column", "", "no column %q", name)
	}
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			out = append(out, row[idx])
		} else {
			out = append(out, "")
		}
	}
	return out, nil
}

// ReadCSV parses path according to opts. Malformed records are
// errs.InvalidInput.
func (f *Files) ReadCSV(path string, opts CSVOptions) (*Table, error) {
	if err := validate.NonEmpty("path", path); err != nil {
		return nil, err
	}
	if opts.Comma != 0 && (opts.Comma == '\r' || opts.Comma == '\n' || opts.Comma == '"' || opts.Comma == opts.Comment) {
		return nil, errs.Invalidf("csv", path, "invalid delimiter %q", opts.Comma)
	}

	file, err := f.fs.Open(path)
	if err != nil {
		return nil, errs.IO("open", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	if opts.Comma != 0 {
		r.Comma = opts.Comma
	}
	r.Comment = opts.Comment
	r.TrimLeadingSpace = opts.TrimLeadingSpace
	r.FieldsPerRecord = opts.FieldsPerRecord

	t := &Table{}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, errs.Invalid("csv", path, err)
		}
		if err != nil {
			return nil, errs.IO("read", path, err)
		}
		if opts.Header && t.Header == nil {
			t.Header = rec
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// WriteCSV writes header (when non-nil) followed by rows to path.
func (f *Files) WriteCSV(path string, header []string, rows [][]string) error {
	if err := validate.NonEmpty("path", path); err != nil {
		return err
	}
	file, err := f.fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return errs.IO("open", path, err)
	}

	w := csv.NewWriter(file)
	if header != nil {
		if err := w.Write(header); err != nil {
			file.Close()
			return errs.IO("write", path, err)
		}
	}
	if err := w.WriteAll(rows); err != nil {
		file.Close()
		return errs.IO("write", path, err)
	}
	if err := file.Close(); err != nil {
		return errs.IO("close", path, err)
	}
	return nil
}
