package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/macropower/vscroll/pkg/scrolling"
	"github.com/macropower/vscroll/pkg/yaml"
)

const (
	calcExamples = `  # Window of 100 rows of 50px in a 300px viewport, scrolled to 3980px:
  vscroll calc --total 100 --item-size 50 --viewport 300 --offset 3980

  # With a fixed outline, as JSON:
  vscroll calc --total 200 --item-size 150 --viewport 600 --offset 900 --outline 1 -o json`

	outputYAML  = "yaml"
	outputJSON  = "json"
	outputTable = "table"
)

var ErrInvalidInput = errors.New("invalid input")

type CalcArgs struct {
	*RootArgs

	Output   string
	ItemSize float64
	Viewport float64
	Offset   float64
	Total    int
	Outline  int
}

// CalcOutput is the result of the calc command.
type CalcOutput struct {
	Window            scrolling.WindowState `json:"window"`
	EndIndex          int                   `json:"endIndex"`
	MaxScrollPosition float64               `json:"maxScrollPosition"`
	PageSize          int                   `json:"pageSize"`
	OutlineCount      int                   `json:"outlineCount"`
}

func NewCalcArgs(rootArgs *RootArgs) *CalcArgs {
	return &CalcArgs{RootArgs: rootArgs}
}

func (ca *CalcArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&ca.Total, "total", 0, "Total number of items on the axis")
	cmd.Flags().Float64Var(&ca.ItemSize, "item-size", 0, "Size of one item")
	cmd.Flags().Float64Var(&ca.Viewport, "viewport", 0, "Size of the viewport")
	cmd.Flags().Float64Var(&ca.Offset, "offset", 0, "Scroll offset")
	cmd.Flags().IntVar(&ca.Outline, "outline", -1, "Outline count; negative uses half a page")
	cmd.Flags().StringVarP(&ca.Output, "output", "o", outputYAML, "Output format, one of: [yaml json]")

	must(cmd.MarkFlagRequired("total"))
	must(cmd.MarkFlagRequired("item-size"))
	must(cmd.MarkFlagRequired("viewport"))
	must(cmd.RegisterFlagCompletionFunc("output",
		cobra.FixedCompletions([]string{outputYAML, outputJSON}, cobra.ShellCompDirectiveNoFileComp),
	))
}

func NewCalcCmd(ca *CalcArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "calc",
		Short:             "Compute the window of one axis",
		Example:           calcExamples,
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := ca.Calculate()
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), ca.Output, out)
		},
	}
	ca.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

// Calculate computes the window described by the flags.
func (ca *CalcArgs) Calculate() (*CalcOutput, error) {
	if ca.Total < 0 {
		return nil, fmt.Errorf("%w: negative total %d", ErrInvalidInput, ca.Total)
	}
	if !(ca.ItemSize > 0) || !(ca.Viewport > 0) {
		return nil, fmt.Errorf("%w: item size and viewport must be positive", ErrInvalidInput)
	}

	cfg := scrolling.NewAxisConfig(ca.Total, ca.ItemSize, ca.Viewport)
	if ca.Outline >= 0 {
		cfg.OutlineCount = ca.Outline
	}

	state := scrolling.Calculate(cfg, ca.Offset)

	return &CalcOutput{
		Window:            state,
		EndIndex:          state.EndIndex(),
		MaxScrollPosition: cfg.MaxScrollPosition(),
		PageSize:          cfg.PageSize(),
		OutlineCount:      cfg.OutlineCount,
	}, nil
}

func writeOutput(w io.Writer, format string, v any) error {
	var (
		b   []byte
		err error
	)

	switch format {
	case outputYAML:
		b, err = yaml.Marshal(v)
	case outputJSON:
		b, err = json.MarshalIndent(v, "", "  ")
		b = append(b, '\n')
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidInput, format)
	}

	if err != nil {
		return fmt.Errorf("marshal %s: %w", format, err)
	}

	_, err = w.Write(b)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
