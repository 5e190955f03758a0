package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/TFMV/lazywalk/internal/env"
	"github.com/TFMV/lazywalk/internal/errs"
	"github.com/TFMV/lazywalk/internal/numeric"
	"github.com/TFMV/lazywalk/internal/validate"
	lazywalk "github.com/TFMV/lazywalk/internal/walk"
)

var (
	cfgFile string
	version = "0.1.0"
)

// settings mirrors the flags; viper fills it from flags, env and config file.
type settings struct {
	Pattern        string `mapstructure:"pattern"`
	Dirs           bool   `mapstructure:"dirs"`
	Files          bool   `mapstructure:"files"`
	Special        bool   `mapstructure:"special"`
	MaxDepth       int    `mapstructure:"max-depth"`
	FollowSymlinks bool   `mapstructure:"follow-symlinks"`
	CycleGuard     bool   `mapstructure:"cycle-guard"`
	NFC            bool   `mapstructure:"nfc"`
	Output         string `mapstructure:"output"`
	Format         string `mapstructure:"format"`
	Exec           string `mapstructure:"exec"`
	Stats          bool   `mapstructure:"stats"`
	Verbose        bool   `mapstructure:"verbose"`
	Silent         bool   `mapstructure:"silent"`
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lazywalk [flags] <root>",
	Short: "List a directory tree filtered by name, type and depth",
	Long: `lazywalk walks a directory tree in pre-order and prints every entry whose
bare name matches a regular expression and whose type is enabled.

Results stream as they are found. If a directory cannot be read, the entries
printed so far are valid and lazywalk exits with an error.

Examples:
  lazywalk /src
  lazywalk --pattern='\.go$' --dirs=false --max-depth=-1 /src
  lazywalk --output=json --max-depth=3 /var/log
  lazywalk --format='{depth} {type} {}' /etc
  lazywalk --exec='wc -l {}' --pattern='\.txt$' .`,
	Version:      version,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		return runWalk(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], s)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.lazywalk.yaml)")
	pf.StringP("pattern", "p", "", "Regular expression matched against bare entry names")
	pf.Bool("dirs", true, "Include directories")
	pf.Bool("files", true, "Include regular files")
	pf.Bool("special", true, "Include symlinks, devices, sockets and FIFOs")
	pf.IntP("max-depth", "d", lazywalk.DefaultMaxDepth, "Deepest level to list, root children are 0 (negative for unlimited)")
	pf.Bool("follow-symlinks", false, "Classify symlinks by their target and descend into linked directories")
	pf.Bool("cycle-guard", false, "Never enter the same directory twice in one walk")
	pf.Bool("nfc", false, "Unicode-normalize names and pattern (NFC) before matching")
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("silent", false, "Log errors only")

	f := rootCmd.Flags()
	f.StringP("output", "o", "text", "Output format (text|json|yaml)")
	f.String("format", "", "Output template, e.g. '{depth} {type} {}'")
	f.String("exec", "", "Command template to run for each entry, e.g. 'wc -c {}'")
	f.Bool("stats", false, "Print traversal statistics to stderr")
	rootCmd.MarkFlagsMutuallyExclusive("exec", "format", "output")

	for _, name := range []string{
		"pattern", "dirs", "files", "special", "max-depth", "follow-symlinks",
		"cycle-guard", "nfc", "verbose", "silent",
	} {
		viper.BindPFlag(name, pf.Lookup(name))
	}
	for _, name := range []string{"output", "format", "exec", "stats"} {
		viper.BindPFlag(name, f.Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// .env values feed AutomaticEnv below.
	if err := env.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lazywalk")
	}

	viper.SetEnvPrefix("LAZYWALK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func loadSettings() (settings, error) {
	var s settings
	if err := viper.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("reading settings: %w", err)
	}
	return s, nil
}

// buildConfig turns settings into a validated traversal configuration.
func buildConfig(root string, s settings) (*lazywalk.Config, error) {
	opts := lazywalk.DefaultOptions()
	opts.Pattern = s.Pattern
	opts.IncludeDirs = s.Dirs
	opts.IncludeFiles = s.Files
	opts.IncludeSpecial = s.Special
	opts.MaxDepth = s.MaxDepth
	opts.FollowSymlinks = s.FollowSymlinks
	opts.CycleGuard = s.CycleGuard
	opts.NormalizeNames = s.NFC

	switch {
	case s.Verbose:
		opts.LogLevel = lazywalk.LogLevelDebug
	case s.Silent:
		opts.LogLevel = lazywalk.LogLevelError
	default:
		opts.LogLevel = lazywalk.LogLevelInfo
	}

	return lazywalk.NewConfig(root, opts)
}

// entryHandler picks the per-entry output from the settings. The flag group
// only sees flags; values from env or a config file are checked here.
func entryHandler(out io.Writer, s settings) (lazywalk.WalkFunc, error) {
	chosen := 0
	for _, set := range []bool{s.Exec != "", s.Format != "", s.Output != "" && s.Output != "text"} {
		if set {
			chosen++
		}
	}
	if chosen > 1 {
		return nil, errs.Invalidf("output", "", "exec, format and output are mutually exclusive")
	}

	if s.Exec != "" {
		return lazywalk.ExecHandler(out, s.Exec), nil
	}
	if s.Format != "" {
		return lazywalk.FormatHandler(out, s.Format), nil
	}

	output := s.Output
	if output == "" {
		output = "text"
	}
	if err := validate.OneOf("output", output, "text", "json", "yaml"); err != nil {
		return nil, err
	}

	switch output {
	case "json":
		enc := json.NewEncoder(out)
		return func(ctx context.Context, e lazywalk.Entry) error {
			return enc.Encode(e)
		}, nil
	case "yaml":
		enc := yaml.NewEncoder(out)
		return func(ctx context.Context, e lazywalk.Entry) error {
			return enc.Encode(e)
		}, nil
	default:
		return lazywalk.PrintHandler(out), nil
	}
}

func runWalk(ctx context.Context, out, errOut io.Writer, root string, s settings) error {
	if ctx == nil {
		ctx = context.Background()
	}
	handler, err := entryHandler(out, s)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(root, s)
	if err != nil {
		return err
	}

	start := time.Now()
	w := cfg.Walker()
	walkErr := w.Walk(ctx, handler)

	if s.Stats {
		printStats(errOut, w.Stats(), time.Since(start))
	}
	return walkErr
}

func printStats(w io.Writer, st lazywalk.Stats, elapsed time.Duration) {
	rate := 0.0
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(st.Emitted) / secs
	}
	fmt.Fprintf(w, "entries: %s, directories listed: %s, vanished: %s, cycle skips: %s, elapsed: %s, rate: %s\n",
		humanize.Comma(st.Emitted),
		humanize.Comma(st.DirsListed),
		humanize.Comma(st.Absent),
		humanize.Comma(st.CycleSkips),
		elapsed.Round(time.Microsecond),
		numeric.FormatSI(rate, "entries/s"),
	)
}
