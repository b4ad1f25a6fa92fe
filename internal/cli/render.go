package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/indexgen/internal/codegen"
	"github.com/roach88/indexgen/internal/render"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Ecosystem string
	Mode      string
	Name      string
	Events    []string
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <abi-file>",
		Short: "Render the generated code of one ABI",
		Long: `Lower a single EVM or Fuel ABI and print its ReScript types, schemas,
defaults, TypeScript types and JavaScript defaults without a project.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ecosystem, "ecosystem", "", "ABI dialect (evm|fuel)")
	cmd.Flags().StringVar(&opts.Mode, "mode", render.FieldSelection.String(), "schema mode (storage|field-selection)")
	cmd.Flags().StringVar(&opts.Name, "name", "Contract", "contract name used for generated modules")
	cmd.Flags().StringSliceVar(&opts.Events, "events", nil, "EVM events to include (default all)")
	_ = cmd.MarkFlagRequired("ecosystem")

	return cmd
}

func runRender(opts *RenderOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	mode, err := render.ParseMode(opts.Mode)
	if err != nil {
		return formatter.fail(ExitCommandError, err)
	}
	eco := codegen.Ecosystem(opts.Ecosystem)
	if eco != codegen.EVM && eco != codegen.Fuel {
		return formatter.fail(ExitCommandError, fmt.Errorf("invalid ecosystem %q: must be evm or fuel", opts.Ecosystem))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return formatter.fail(ExitCommandError, withCode(ErrCodeReadFailed, err))
	}

	l, err := codegen.Lower(codegen.Contract{
		Name:      opts.Name,
		Ecosystem: eco,
		ABI:       data,
		Events:    opts.Events,
	}, opts.Logger(cmd.ErrOrStderr()))
	if err != nil {
		return formatter.fail(ExitFailure, err)
	}
	formatter.VerboseLog("Lowered %d declaration(s), %d event(s)", l.Decls.Len(), len(l.Events))

	arts, err := codegen.Render(l, mode)
	if err != nil {
		return formatter.fail(ExitFailure, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(arts)
	}
	for i, a := range arts {
		if i > 0 {
			fmt.Fprintln(formatter.Writer)
		}
		fmt.Fprintf(formatter.Writer, "== %s ==\n%s", a.Path, a.Content)
	}
	return nil
}
