package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/macropower/vscroll/api/v1beta1/configs"
	"github.com/macropower/vscroll/pkg/config"
	"github.com/macropower/vscroll/pkg/log"
	"github.com/macropower/vscroll/pkg/ui"
	"github.com/macropower/vscroll/pkg/yaml"
)

const (
	runExamples = `  # Scroll the configured grid:
  vscroll

  # Override the grid size:
  vscroll --rows 96 --cells 14 --groups 4

  # Stack groups vertically:
  vscroll --groups 3 --vertical-grouping

  # Send one frame to a file (disables TUI):
  vscroll --width 120 --height 40 > frame.txt

  # Print the active configuration:
  vscroll --show-config`

	defaultFrameWidth  = 80
	defaultFrameHeight = 24
)

type RunArgs struct {
	*RootArgs

	ConfigPath       string
	Rows             int
	Cells            int
	Groups           int
	Width            int
	Height           int
	VerticalGrouping bool
	WriteConfig      bool
	ShowConfig       bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.ConfigPath, "config", "", "Path to the vscroll configuration file")
	cmd.Flags().BoolVar(&ra.WriteConfig, "write-config", false, "Write the default configuration file and exit")
	cmd.Flags().BoolVar(&ra.ShowConfig, "show-config", false, "Print the active configuration and exit")
	cmd.Flags().IntVar(&ra.Rows, "rows", 0, "Override the number of rows (time slots) per group")
	cmd.Flags().IntVar(&ra.Cells, "cells", 0, "Override the number of cells per row and group")
	cmd.Flags().IntVar(&ra.Groups, "groups", 0, "Override the number of groups")
	cmd.Flags().BoolVar(&ra.VerticalGrouping, "vertical-grouping", false, "Stack groups vertically")
	cmd.Flags().IntVar(&ra.Width, "width", 0, "Frame width when stdout is not a terminal")
	cmd.Flags().IntVar(&ra.Height, "height", 0, "Frame height when stdout is not a terminal")

	must(cmd.MarkFlagFilename("config", "yaml", "yml"))
}

func NewRunCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "run",
		Short:             "Default command, scroll a grid workspace in the terminal",
		Example:           runExamples,
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, ra)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func run(cmd *cobra.Command, ra *RunArgs) error {
	configPath := ra.ConfigPath
	if configPath == "" {
		configPath = configs.GetPath()
	}

	err := configs.WriteDefault(configPath, false)
	if err != nil {
		slog.Error("write default config", slog.Any("err", err))
	}
	if ra.WriteConfig {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	ra.applyGridFlags(cmd, cfg)

	err = cfg.Grid.Validate()
	if err != nil {
		return fmt.Errorf("invalid grid: %w", err)
	}

	out := cmd.OutOrStdout()

	if ra.ShowConfig {
		return showConfig(out, configPath, cfg)
	}

	fd, isTerminal := terminalFd(out)
	if !isTerminal {
		width, height := ra.frameSize(fd)
		frame := ui.RenderFrame(cfg.UI, *cfg.Grid, width, height, cfg.Scrolling.DispatcherOpts()...)
		mustN(fmt.Fprintln(out, frame))

		return nil
	}

	backlog := log.NewBacklog(log.DefaultBacklogSize)
	logHandler, err := log.CreateHandlerWithStrings(backlog, ra.LogLevel, ra.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	stderrLogger := slog.Default()
	slog.SetDefault(slog.New(logHandler))

	m := ui.New(cfg.UI, *cfg.Grid, ui.WithDispatcherOpts(cfg.Scrolling.DispatcherOpts()...))

	_, err = ui.NewProgram(m).Run()

	slog.SetDefault(stderrLogger)
	flushLogs(cmd.ErrOrStderr(), backlog)

	if err != nil {
		return fmt.Errorf("ui program failure: %w", err)
	}

	return nil
}

// loadConfig loads the configuration at path. A missing file is not an
// error: the defaults are used instead.
func loadConfig(path string) (*configs.Config, error) {
	cl, err := config.NewLoaderFromFile(path, configs.New, configs.DefaultValidator)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("could not read config, using defaults", slog.Any("err", err))

			return configs.New(), nil
		}

		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := cl.LoadValid()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (ra *RunArgs) applyGridFlags(cmd *cobra.Command, cfg *configs.Config) {
	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Grid.RowCount = ra.Rows
	}
	if flags.Changed("cells") {
		cfg.Grid.CellCount = ra.Cells
	}
	if flags.Changed("groups") {
		cfg.Grid.GroupCount = ra.Groups
	}
	if flags.Changed("vertical-grouping") {
		cfg.Grid.VerticalGrouping = ra.VerticalGrouping
	}
}

// frameSize returns the flag sizes, falling back to the size of the terminal
// behind fd and then to 80x24.
func (ra *RunArgs) frameSize(fd int) (int, int) {
	width, height := defaultFrameWidth, defaultFrameHeight
	if fd >= 0 {
		w, h, err := term.GetSize(fd)
		if err == nil && w > 0 && h > 0 {
			width, height = w, h
		}
	}

	if ra.Width > 0 {
		width = ra.Width
	}
	if ra.Height > 0 {
		height = ra.Height
	}

	return width, height
}

func showConfig(w io.Writer, path string, cfg *configs.Config) error {
	slog.Info("active configuration", slog.String("path", path))

	b, err := cfg.MarshalYAML()
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	formatter := yaml.FormatterNone
	if _, ok := terminalFd(w); ok {
		formatter = yaml.FormatterTerminal
	}

	err = yaml.Highlight(w, b, formatter, "")
	if err != nil {
		mustN(w.Write(b))

		return err //nolint:wrapcheck // Already wrapped.
	}

	return nil
}

// terminalFd returns the file descriptor behind w, or -1, and whether it is a
// terminal.
func terminalFd(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return -1, false
	}

	fd := int(f.Fd()) //nolint:gosec // G115: file descriptors fit in int.

	return fd, term.IsTerminal(fd)
}

func flushLogs(w io.Writer, b *log.Backlog) {
	slog.Debug("flush logs to console",
		slog.Int("count", b.Len()),
		slog.Int("max", b.Cap()),
		slog.Int("dropped", b.Dropped()),
	)

	_, err := b.WriteTo(w)
	if err != nil {
		panic(err)
	}
}
