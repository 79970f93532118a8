package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hayato-coosy/kouseian/internal/share"
)

func newResolveCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Print a shared brief",
		Long:  `Looks up the brief stored under a share id and prints it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized, err := normalizeFormat(format)
			if err != nil {
				return err
			}
			provider, err := GetProvider()
			if err != nil {
				return fmt.Errorf("failed to get service provider: %w", err)
			}
			defer provider.Close()

			shares, err := provider.Shares(cmd.Context())
			if err != nil {
				return err
			}
			return resolveRun(cmd.Context(), shares, args[0], normalized, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&format, "format", formatJSON, "Output format (json|markdown)")
	return cmd
}

// resolveRun contains the core logic of the resolve command.
func resolveRun(ctx context.Context, shares ShareService, id, format string, out io.Writer) error {
	result, err := shares.Resolve(ctx, id)
	if err != nil {
		if errors.Is(err, share.ErrNotFound) {
			return fmt.Errorf("brief %q not found: %w", id, err)
		}
		return fmt.Errorf("failed to resolve brief %q: %w", id, err)
	}
	return writeResult(out, format, result, nil)
}
