package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hayato-coosy/kouseian/internal/brief"
	"github.com/hayato-coosy/kouseian/internal/prompt"
)

func newPromptCmd() *cobra.Command {
	var file string
	var withSystem bool
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt compiled from a request",
		Long: `Compiles a request (JSON or YAML) into the prompt sent to the generation
provider and prints it without calling the provider. Useful to review what
the model will be asked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := GetProvider()
			if err != nil {
				return fmt.Errorf("failed to get service provider: %w", err)
			}
			compiler, err := provider.Compiler()
			if err != nil {
				return err
			}
			req, err := loadRequest(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return promptRun(compiler, req, withSystem, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", stdinPath, "Request file (JSON or YAML), '-' for stdin")
	cmd.Flags().BoolVar(&withSystem, "system", false, "Also print the system instruction")
	return cmd
}

// promptRun prints the compiled prompt of req.
func promptRun(compiler *prompt.Compiler, req brief.Request, withSystem bool, out io.Writer) error {
	text, err := compiler.Compile(req)
	if err != nil {
		return fmt.Errorf("failed to compile prompt: %w", err)
	}
	if withSystem {
		fmt.Fprintln(out, "# System")
		fmt.Fprintln(out, compiler.SystemInstruction())
		fmt.Fprintln(out)
		fmt.Fprintln(out, "# Prompt")
	}
	fmt.Fprintln(out, text)
	return nil
}
