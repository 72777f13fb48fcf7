package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	appconfig "github.com/commitcraft/commitcraft/internal/adapters/outbound/config"
	"github.com/commitcraft/commitcraft/internal/domain"
)

const configFileName = ".commitcraft.toml"

func newInitCmd() *cobra.Command {
	var (
		user  bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter configuration file",
		Long: "Create a .commitcraft.toml with the built-in verbs, indicators, section templates, " +
			"and format rules, ready to customize.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			dest := filepath.Join(path, configFileName)
			if user {
				dest = filepath.Join(xdg.ConfigHome, "commitcraft", "config.toml")
				if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
					return fmt.Errorf("creating config dir: %w", err)
				}
			}

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", dest)
				}
			}

			content, err := appconfig.Render(domain.DefaultConfig())
			if err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", dest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Write the user-level config instead of a project-local one")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
