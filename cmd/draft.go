package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hayato-coosy/kouseian/internal/brief"
)

func newDraftCmd() *cobra.Command {
	draftCmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage the saved request draft",
		Long: `A draft is an in-progress request kept between runs. 'kouseian generate
--from-draft' uses it and clears it after a successful generation.`,
	}
	draftCmd.AddCommand(newDraftSaveCmd(), newDraftShowCmd(), newDraftClearCmd())
	return draftCmd
}

func newDraftSaveCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a request as the draft",
		Long:  `Saves a request (JSON or YAML) as the draft, replacing any previous one. Incomplete requests are accepted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := GetProvider()
			if err != nil {
				return fmt.Errorf("failed to get service provider: %w", err)
			}
			req, err := loadRequest(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return draftSaveRun(provider.Drafts(), req, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", stdinPath, "Request file (JSON or YAML), '-' for stdin")
	return cmd
}

func newDraftShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := GetProvider()
			if err != nil {
				return fmt.Errorf("failed to get service provider: %w", err)
			}
			return draftShowRun(provider.Drafts(), format, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format (yaml|json)")
	return cmd
}

func newDraftClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := GetProvider()
			if err != nil {
				return fmt.Errorf("failed to get service provider: %w", err)
			}
			return draftClearRun(provider.Drafts(), cmd.OutOrStdout())
		},
	}
}

// draftSaveRun stores req as the draft.
func draftSaveRun(drafts DraftStore, req brief.Request, out io.Writer) error {
	if err := drafts.Save(req); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	Log.Debug().Str("title", req.Title).Msg("Draft saved")
	fmt.Fprintln(out, "Draft saved.")
	return nil
}

// draftShowRun prints the draft, or a notice when none is saved.
func draftShowRun(drafts DraftStore, format string, out io.Writer) error {
	req, ok, err := drafts.Load()
	if err != nil {
		return fmt.Errorf("failed to load draft: %w", err)
	}
	if !ok {
		fmt.Fprintln(out, "No draft saved.")
		return nil
	}

	switch strings.ToLower(format) {
	case formatJSON:
		return writeJSON(out, req)
	case "", "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(req); err != nil {
			return fmt.Errorf("failed to encode draft: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (want yaml or json)", format)
	}
}

// draftClearRun deletes the draft.
func draftClearRun(drafts DraftStore, out io.Writer) error {
	if err := drafts.Clear(); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	fmt.Fprintln(out, "Draft cleared.")
	return nil
}
