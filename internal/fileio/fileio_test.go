package fileio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/lazywalk/internal/errs"
)

func TestReadWriteAppend(t *testing.T) {
	f := New(afero.NewMemMapFs())

	require.NoError(t, f.WriteFile("/notes.txt", []byte("one\ntwo\n")))
	require.NoError(t, f.AppendFile("/notes.txt", []byte("three\n")))

	data, err := f.ReadFile("/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nthree\n", string(data))

	lines, err := f.ReadLines("/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestErrorKinds(t *testing.T) {
	f := New(afero.NewMemMapFs())

	_, err := f.ReadFile("/missing")
	assert.True(t, errors.Is(err, errs.ErrIOFailure), "got %v", err)

	_, err = f.ReadLines("/missing")
	assert.True(t, errors.Is(err, errs.ErrIOFailure), "got %v", err)

	_, err = f.ReadFile("")
	assert.True(t, errors.Is(err, errs.ErrInvalidInput), "got %v", err)

	err = New(afero.NewReadOnlyFs(afero.NewMemMapFs())).WriteFile("/x", []byte("x"))
	assert.True(t, errors.Is(err, errs.ErrIOFailure), "got %v", err)
}

// failingWriteFs opens real files whose writes always fail.
type failingWriteFs struct{ afero.Fs }

type failingWriteFile struct{ afero.File }

var errDiskFull = errors.New("disk full")

func (f failingWriteFile) Write([]byte) (int, error) { return 0, errDiskFull }

func (fs failingWriteFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	file, err := fs.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return failingWriteFile{file}, nil
}

func TestWriteCSVReportsWriteFailure(t *testing.T) {
	f := New(failingWriteFs{afero.NewMemMapFs()})

	err := f.WriteCSV("/out.csv", []string{"path"}, [][]string{{"/a"}})
	assert.True(t, errors.Is(err, errs.ErrIOFailure), "got %v", err)
	assert.True(t, errors.Is(err, errDiskFull), "got %v", err)

	err = f.WriteCSV("/out.csv", nil, [][]string{{"/a"}})
	assert.True(t, errors.Is(err, errDiskFull), "got %v", err)
}

func TestCSVRoundTrip(t *testing.T) {
	f := New(afero.NewMemMapFs())
	rows := [][]string{{"/a", "a", "file"}, {"/b, with comma", "b", "dir"}}

	require.NoError(t, f.WriteCSV("/out.csv", []string{"path", "name", "type"}, rows))

	table, err := f.ReadCSV("/out.csv", CSVOptions{Header: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"path", "name", "type"}, table.Header)
	assert.Equal(t, rows, table.Rows)

	types, err := table.Column("type")
	require.NoError(t, err)
	assert.Equal(t, []string{"file", "dir"}, types)

	_, err = table.Column("size")
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
}

func TestReadCSVOptions(t *testing.T) {
	f := New(afero.NewMemMapFs())
	require.NoError(t, f.WriteFile("/semi.csv", []byte("# comment\nx; y\n1; 2\n")))

	table, err := f.ReadCSV("/semi.csv", CSVOptions{Comma: ';', Comment: '#', TrimLeadingSpace: true})
	require.NoError(t, err)
	assert.Nil(t, table.Header)
	assert.Equal(t, [][]string{{"x", "y"}, {"1", "2"}}, table.Rows)

	_, err = f.ReadCSV("/semi.csv", CSVOptions{Comma: '\n'})
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
}

func TestReadCSVMalformed(t *testing.T) {
	f := New(afero.NewMemMapFs())
	require.NoError(t, f.WriteFile("/bad.csv", []byte("a,b\n1,2,3\n")))

	_, err := f.ReadCSV("/bad.csv", CSVOptions{})
	assert.True(t, errors.Is(err, errs.ErrInvalidInput), "got %v", err)

	table, err := f.ReadCSV("/bad.csv", CSVOptions{FieldsPerRecord: -1})
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestHostHelpers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host.txt")

	require.NoError(t, WriteFile(path, []byte("hello")))
	require.NoError(t, AppendFile(path, []byte(" world")))

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	csvPath := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, WriteCSV(csvPath, nil, [][]string{{"1", "2"}}))
	table, err := ReadCSV(csvPath, CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}}, table.Rows)

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello world"}, lines)
}
