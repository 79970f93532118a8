package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hayato-coosy/kouseian/internal/brief"
	"github.com/hayato-coosy/kouseian/internal/llm"
	"github.com/hayato-coosy/kouseian/internal/share"
)

// generateOptions holds the flags of the generate command.
type generateOptions struct {
	File      string
	FromDraft bool
	Share     bool
	Format    string
	BaseURL   string
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a design brief from a request",
		Long: `Reads a request (JSON or YAML) from a file, standard input or the saved draft,
generates a design brief with the configured provider and prints it.

With --share the brief is also stored and a share link is printed.`,
		Example: `  kouseian generate -f request.yaml
  cat request.json | kouseian generate -f - --format markdown
  kouseian generate --from-draft --share`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := normalizeFormat(opts.Format)
			if err != nil {
				return err
			}
			opts.Format = format

			provider, err := GetProvider()
			if err != nil {
				return fmt.Errorf("failed to get service provider: %w", err)
			}
			defer provider.Close()

			drafts := provider.Drafts()
			req, err := requestFromSource(opts, drafts, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				printValidation(cmd.ErrOrStderr(), err)
				return err
			}

			ctx := cmd.Context()
			generator, err := provider.Generator(ctx)
			if err != nil {
				return err
			}
			var shares ShareService
			if opts.Share {
				svc, err := provider.Shares(ctx)
				if err != nil {
					return err
				}
				shares = svc
				if opts.BaseURL == "" {
					opts.BaseURL = provider.ShareBaseURL()
				}
			}
			return generateRun(ctx, generator, shares, drafts, req, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Request file (JSON or YAML), '-' for stdin")
	cmd.Flags().BoolVar(&opts.FromDraft, "from-draft", false, "Use the saved draft as the request")
	cmd.Flags().BoolVar(&opts.Share, "share", false, "Store the brief and print a share link")
	cmd.Flags().StringVar(&opts.Format, "format", formatJSON, "Output format (json|markdown)")
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "", "Base URL of share links (default server.base_url)")
	cmd.MarkFlagsMutuallyExclusive("file", "from-draft")
	cmd.MarkFlagsOneRequired("file", "from-draft")
	return cmd
}

// requestFromSource loads the request named by opts.
func requestFromSource(opts generateOptions, drafts DraftStore, stdin io.Reader) (brief.Request, error) {
	if opts.FromDraft {
		req, ok, err := drafts.Load()
		if err != nil {
			return brief.Request{}, fmt.Errorf("failed to load draft: %w", err)
		}
		if !ok {
			return brief.Request{}, errors.New("no draft saved (use 'kouseian draft save')")
		}
		return req, nil
	}
	if opts.File == "" {
		return brief.Request{}, errors.New("a request file or --from-draft is required")
	}
	return loadRequest(opts.File, stdin)
}

// printValidation lists the field messages of a validation failure.
func printValidation(w io.Writer, err error) {
	var verr *brief.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for _, f := range verr.Fields {
		fmt.Fprintf(w, "  %s: %s\n", f.Field, f.Message)
	}
}

// generateRun contains the core logic of the generate command. shares may
// be nil when opts.Share is false. The draft is cleared only after a
// successful generation from it.
func generateRun(ctx context.Context, generator BriefGenerator, shares ShareService, drafts DraftStore, req brief.Request, opts generateOptions, out io.Writer) error {
	Log.Info().Str("deliverable_type", req.DeliverableType).Msg("Generating design brief...")
	result, err := generator.GenerateBrief(ctx, req)
	if err != nil {
		if errors.Is(err, brief.ErrMissingRequiredFields) {
			return err
		}
		Log.Error().Err(err).Str("code", llm.ErrorCode(err)).Msg("Brief generation failed")
		return fmt.Errorf("brief generation failed: %w", err)
	}
	Log.Info().Str("title", result.Summary.Title).Msg("Design brief generated")

	if opts.FromDraft && drafts != nil {
		if err := drafts.Clear(); err != nil {
			Log.Warn().Err(err).Msg("Failed to clear draft")
		}
	}

	var link *shareLink
	if opts.Share {
		if shares == nil {
			return errors.New("share service is not configured")
		}
		id, err := shares.Create(ctx, result)
		if err != nil {
			return fmt.Errorf("failed to share brief: %w", err)
		}
		link = &shareLink{ID: id, URL: share.URL(opts.BaseURL, id)}
		Log.Info().Str("id", id).Msg("Brief shared")
	}

	return writeResult(out, opts.Format, result, link)
}
