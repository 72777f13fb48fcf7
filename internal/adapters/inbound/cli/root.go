package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/commitcraft/commitcraft/internal/adapters/inbound/editor"
	appconfig "github.com/commitcraft/commitcraft/internal/adapters/outbound/config"
	"github.com/commitcraft/commitcraft/internal/adapters/outbound/gitdiff"
	"github.com/commitcraft/commitcraft/internal/adapters/outbound/msgfile"
	"github.com/commitcraft/commitcraft/internal/adapters/outbound/tui"
	"github.com/commitcraft/commitcraft/internal/application"
	"github.com/commitcraft/commitcraft/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var (
		message     string
		messageFile string
		repoPath    string
		output      string
		noEdit      bool
	)

	cmd := &cobra.Command{
		Use:   "commitcraft",
		Short: "Write standardized commit messages",
		Long: "CommitCraft inspects staged changes, proposes a structured commit message, " +
			"validates it against formatting rules, and lets you refine it interactively before commit.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(repoPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			loader := appconfig.New(absPath)
			store := msgfile.New()

			if message != "" {
				return runVerifyText(cmd, loader, store, message)
			}
			if messageFile != "" {
				return runVerifyFile(cmd, loader, store, messageFile)
			}
			return runGenerate(cmd, loader, store, absPath, output, noEdit)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Verify a commit message string")
	cmd.Flags().StringVarP(&messageFile, "file", "f", "", "Verify a commit message file")
	cmd.Flags().StringVar(&repoPath, "path", ".", "Repository path")
	cmd.Flags().StringVar(&output, "output", msgfile.DefaultFileName, "Output file for the generated message")
	cmd.Flags().BoolVar(&noEdit, "no-edit", false, "Write the draft without opening the interactive editor")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

func runVerifyText(cmd *cobra.Command, loader *appconfig.Loader, store *msgfile.Store, text string) error {
	verifySvc := application.NewVerifyService(loader, store)
	report, err := verifySvc.VerifyText(text)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
	if !report.Valid {
		return fmt.Errorf("commit message validation failed: %d violation(s)", len(report.Violations))
	}
	return nil
}

func runVerifyFile(cmd *cobra.Command, loader *appconfig.Loader, store *msgfile.Store, path string) error {
	verifySvc := application.NewVerifyService(loader, store)
	report, err := verifySvc.VerifyFile(path)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
	if !report.Valid {
		return fmt.Errorf("commit message validation failed: %d violation(s)", len(report.Violations))
	}
	return nil
}

func runGenerate(cmd *cobra.Command, loader *appconfig.Loader, store *msgfile.Store, repoPath, output string, noEdit bool) error {
	diffs := gitdiff.New()
	generateSvc := application.NewGenerateService(loader, diffs, store)

	draft, err := generateSvc.Generate(repoPath, domain.Overrides{})
	if err != nil {
		if errors.Is(err, application.ErrNoStagedChanges) {
			return fmt.Errorf("no staged changes found; stage changes with 'git add' first")
		}
		return err
	}

	msg := draft.Message
	if !noEdit {
		edited, saved, err := editor.Run(msg, draft.Config)
		if err != nil {
			return err
		}
		if !saved {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted, nothing written.")
			return nil
		}
		msg = edited
	}

	if err := generateSvc.Save(output, msg); err != nil {
		return err
	}

	draft.Message = msg
	out := cmd.OutOrStdout()
	fmt.Fprint(out, tui.RenderDraft(draft))
	fmt.Fprintln(out)
	fmt.Fprint(out, tui.RenderInstructions(output))
	return nil
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
