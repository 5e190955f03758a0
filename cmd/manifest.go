package cmd

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TFMV/lazywalk/internal/fileio"
)

var manifestHeader = []string{"path", "name", "type", "depth"}

var manifestCmd = &cobra.Command{
	Use:   "manifest <root> <out.csv>",
	Short: "Write the filtered listing of a tree to a CSV file",
	Long: `manifest runs the same traversal as the root command and writes one CSV row
per entry with the columns path, name, type and depth.

If a directory cannot be read, the rows gathered before the failure are still
written and the command exits with the traversal error.

Examples:
  lazywalk manifest --max-depth=-1 /src files.csv
  lazywalk manifest --pattern='\.log$' --dirs=false /var/log logs.csv`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		return runManifest(cmd.Context(), args[0], args[1], s)
	},
}

func init() {
	rootCmd.AddCommand(manifestCmd)
}

func runManifest(ctx context.Context, root, out string, s settings) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := buildConfig(root, s)
	if err != nil {
		return err
	}

	entries, walkErr := cfg.Collect(ctx)
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Path, e.Name, e.Type.String(), strconv.Itoa(e.Depth)})
	}
	if err := fileio.WriteCSV(out, manifestHeader, rows); err != nil {
		return errors.Join(walkErr, err)
	}
	return walkErr
}
