package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/macropower/vscroll/api/v1beta1/traces"
	"github.com/macropower/vscroll/pkg/config"
	"github.com/macropower/vscroll/pkg/replay"
)

const replayExamples = `  # Replay a trace and print a table:
  vscroll replay ./testdata/trace.yaml

  # Print the result as YAML:
  vscroll replay ./testdata/trace.yaml -o yaml

  # Compare against a golden result, or update it:
  vscroll replay ./testdata/trace.yaml --golden ./testdata/trace.golden.yaml
  vscroll replay ./testdata/trace.yaml --golden ./testdata/trace.golden.yaml --update

  # Replay again whenever the trace changes:
  vscroll replay ./testdata/trace.yaml --watch`

var ErrGoldenMismatch = errors.New("result differs from golden file")

type ReplayArgs struct {
	*RootArgs

	Path   string
	Output string
	Golden string
	Update bool
	Watch  bool
}

func NewReplayArgs(rootArgs *RootArgs) *ReplayArgs {
	return &ReplayArgs{RootArgs: rootArgs}
}

func (ra *ReplayArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ra.Output, "output", "o", outputTable, "Output format, one of: [table yaml]")
	cmd.Flags().StringVar(&ra.Golden, "golden", "", "Compare the YAML result against this file")
	cmd.Flags().BoolVar(&ra.Update, "update", false, "Write the result to the golden file instead of comparing")
	cmd.Flags().BoolVarP(&ra.Watch, "watch", "w", false, "Replay again when the trace file changes")

	must(cmd.MarkFlagFilename("golden", "yaml", "yml"))
	must(cmd.RegisterFlagCompletionFunc("output",
		cobra.FixedCompletions([]string{outputTable, outputYAML}, cobra.ShellCompDirectiveNoFileComp),
	))
}

func NewReplayCmd(ra *ReplayArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "replay <trace>",
		Short:   "Replay a scroll trace against a headless workspace",
		Example: replayExamples,
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return []cobra.Completion{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
			}

			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ra.Path = args[0]

			if ra.Watch {
				return ra.watch(cmd.Context(), cmd.OutOrStdout())
			}

			return ra.replay(cmd.Context(), cmd.OutOrStdout())
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

// replay replays the trace once and writes the result to w.
func (ra *ReplayArgs) replay(ctx context.Context, w io.Writer) error {
	cl, err := config.NewLoaderFromFile(ra.Path, traces.New, traces.DefaultValidator)
	if err != nil {
		return fmt.Errorf("read trace: %w", err)
	}

	tr, err := cl.LoadValid()
	if err != nil {
		return fmt.Errorf("load trace: %w", err)
	}

	res, err := replay.New().Run(ctx, tr)
	if err != nil {
		return fmt.Errorf("replay %s: %w", ra.Path, err)
	}

	switch ra.Output {
	case outputTable:
		mustN(fmt.Fprintln(w, res.Table()))
	case outputYAML:
		b, err := res.YAML()
		if err != nil {
			return err //nolint:wrapcheck // Already wrapped.
		}

		mustN(w.Write(b))
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidInput, ra.Output)
	}

	if ra.Golden != "" {
		err = ra.compareGolden(w, res)
		if err != nil {
			return err
		}
	}

	return res.Err() //nolint:wrapcheck // Already wrapped.
}

func (ra *ReplayArgs) compareGolden(w io.Writer, res *replay.Result) error {
	got, err := res.YAML()
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped.
	}

	if ra.Update {
		err = os.WriteFile(ra.Golden, got, 0o600)
		if err != nil {
			return fmt.Errorf("write golden file: %w", err)
		}

		slog.Info("updated golden file", slog.String("path", ra.Golden))

		return nil
	}

	want, err := os.ReadFile(ra.Golden)
	if err != nil {
		return fmt.Errorf("read golden file: %w", err)
	}

	if bytes.Equal(want, got) {
		return nil
	}

	mustN(io.WriteString(w, udiff.Unified(ra.Golden, "result", string(want), string(got))))

	return fmt.Errorf("%w: %s", ErrGoldenMismatch, ra.Golden)
}

// watch replays the trace, then again after every change to the trace file,
// until ctx is done. Replay errors are logged rather than returned.
func (ra *ReplayArgs) watch(ctx context.Context, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		err := watcher.Close()
		if err != nil {
			slog.Error("close watcher", slog.Any("err", err))
		}
	}()

	target := filepath.Clean(ra.Path)

	// Watch the directory: editors often replace files instead of writing them.
	err = watcher.Add(filepath.Dir(target))
	if err != nil {
		return fmt.Errorf("watch %s: %w", target, err)
	}

	ra.replayLogged(ctx, w)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}

			slog.Debug("trace changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			ra.replayLogged(ctx, w)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Error("watch trace", slog.Any("err", err))
		}
	}
}

func (ra *ReplayArgs) replayLogged(ctx context.Context, w io.Writer) {
	err := ra.replay(ctx, w)
	if err != nil {
		slog.Error("replay trace", slog.String("path", ra.Path), slog.Any("err", err))
	}
}
