package lazywalk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// PrintHandler returns a WalkFunc that writes each path on its own line.
func PrintHandler(w io.Writer) WalkFunc {
	return func(ctx context.Context, e Entry) error {
		_, err := fmt.Fprintln(w, e.Path)
		return err
	}
}

// FormatHandler returns a WalkFunc that writes FormatEntry(template, e).
func FormatHandler(w io.Writer, template string) WalkFunc {
	return func(ctx context.Context, e Entry) error {
		_, err := fmt.Fprintln(w, FormatEntry(template, e))
		return err
	}
}

// ExecHandler returns a WalkFunc that runs the expanded template as a
// command for each entry, copying its stdout to w.
func ExecHandler(w io.Writer, template string) WalkFunc {
	return func(ctx context.Context, e Entry) error {
		return executeCommand(ctx, w, FormatEntry(template, e))
	}
}

// FormatEntry replaces placeholders in template with values from e:
//
//	{}      path        {""}      quoted path
//	{base}  name        {"base"}  quoted name
//	{dir}   parent dir  {"dir"}   quoted parent dir
//	{depth} depth       {type}    dir|file|special
func FormatEntry(template string, e Entry) string {
	dir := filepath.Dir(e.Path)
	r := strings.NewReplacer(
		`{""}`, strconv.Quote(e.Path),
		`{"base"}`, strconv.Quote(e.Name),
		`{"dir"}`, strconv.Quote(dir),
		"{}", e.Path,
		"{base}", e.Name,
		"{dir}", dir,
		"{depth}", strconv.Itoa(e.Depth),
		"{type}", e.Type.String(),
	)
	return r.Replace(template)
}

// executeCommand runs cmdStr split on whitespace.
func executeCommand(ctx context.Context, w io.Writer, cmdStr string) error {
	args := strings.Fields(cmdStr)
	if len(args) == 0 {
		return fmt.Errorf("empty command")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("command error: %s: %w", strings.TrimSpace(stderr.String()), err)
		}
		return err
	}

	_, err := stdout.WriteTo(w)
	return err
}
