package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hayato-coosy/kouseian/internal/brief"
	"github.com/hayato-coosy/kouseian/internal/present"
)

func newChecklistCmd() *cobra.Command {
	checklistCmd := &cobra.Command{
		Use:   "checklist",
		Short: "Track progress on a brief's next actions",
		Long: `Checks off the action items of a brief. State is kept per share id, or for a
local result file when --result-file is given.`,
	}
	checklistCmd.AddCommand(newChecklistListCmd(), newChecklistToggleCmd())
	return checklistCmd
}

func newChecklistListCmd() *cobra.Command {
	var resultFile string
	cmd := &cobra.Command{
		Use:   "list [id]",
		Short: "List action items with their checked state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := checklistScope(args, resultFile, 0)
			if err != nil {
				return err
			}
			provider, err := GetProvider()
			if err != nil {
				return fmt.Errorf("failed to get service provider: %w", err)
			}
			defer provider.Close()

			result, err := checklistResult(cmd.Context(), provider, id, resultFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return checklistListRun(provider.Checklists(), id, result, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&resultFile, "result-file", "", "Local result JSON instead of a share id, '-' for stdin")
	return cmd
}

func newChecklistToggleCmd() *cobra.Command {
	var resultFile string
	cmd := &cobra.Command{
		Use:   "toggle [id] <item>",
		Short: "Check or uncheck one action item",
		Long: `Flips the checked state of an action item. Item ids are printed by
'kouseian checklist list', for example 0-direct-1 or 1-sub0-2.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := checklistScope(args, resultFile, 1)
			if err != nil {
				return err
			}
			item := args[len(args)-1]

			provider, err := GetProvider()
			if err != nil {
				return fmt.Errorf("failed to get service provider: %w", err)
			}
			defer provider.Close()

			result, err := checklistResult(cmd.Context(), provider, id, resultFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return checklistToggleRun(provider.Checklists(), id, result, item, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&resultFile, "result-file", "", "Local result JSON instead of a share id, '-' for stdin")
	return cmd
}

// checklistScope returns the share id named by args. extra is the number of
// positional arguments that follow the id. With resultFile the scope is
// local and no id is accepted.
func checklistScope(args []string, resultFile string, extra int) (string, error) {
	switch {
	case resultFile != "" && len(args) == extra:
		return "", nil
	case resultFile != "":
		return "", errors.New("a share id cannot be combined with --result-file")
	case len(args) == extra+1:
		return args[0], nil
	default:
		return "", errors.New("a share id or --result-file is required")
	}
}

// checklistResult loads the brief the checklist belongs to.
func checklistResult(ctx context.Context, provider *Provider, id, resultFile string, stdin io.Reader) (brief.Result, error) {
	if id == "" {
		return loadResult(resultFile, stdin)
	}
	shares, err := provider.Shares(ctx)
	if err != nil {
		return brief.Result{}, err
	}
	result, err := shares.Resolve(ctx, id)
	if err != nil {
		return brief.Result{}, fmt.Errorf("brief %q not found: %w", id, err)
	}
	return result, nil
}

// checklistListRun prints every action item of result with its state.
func checklistListRun(lists ChecklistStore, id string, result brief.Result, out io.Writer) error {
	checked, err := lists.Load(id)
	if err != nil {
		return fmt.Errorf("failed to load checklist: %w", err)
	}
	items := present.ItemIDs(result)
	if len(items) == 0 {
		fmt.Fprintln(out, "No action items.")
		return nil
	}
	done := 0
	for _, item := range items {
		if checked.Has(item.ID) {
			done++
		}
		printChecklistItem(out, item, checked.Has(item.ID))
	}
	fmt.Fprintf(out, "%d/%d done\n", done, len(items))
	return nil
}

// checklistToggleRun flips item and prints its new state. Unknown item ids
// are rejected.
func checklistToggleRun(lists ChecklistStore, id string, result brief.Result, item string, out io.Writer) error {
	var target *present.ChecklistItem
	for _, it := range present.ItemIDs(result) {
		if it.ID == item {
			target = &it
			break
		}
	}
	if target == nil {
		return fmt.Errorf("unknown checklist item %q", item)
	}

	checked, err := lists.Toggle(id, item)
	if err != nil {
		return fmt.Errorf("failed to save checklist: %w", err)
	}
	printChecklistItem(out, *target, checked.Has(item))
	return nil
}

func printChecklistItem(out io.Writer, item present.ChecklistItem, checked bool) {
	mark := " "
	if checked {
		mark = "x"
	}
	fmt.Fprintf(out, "[%s] %-14s %s\n", mark, item.ID, item.Text)
}
