package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lmoreno/readmegen/internal/config"
	"github.com/lmoreno/readmegen/pkg/github"
	"github.com/lmoreno/readmegen/pkg/profile"
)

func (c *CLI) profileCommand() *cobra.Command {
	var (
		username   string
		configPath string
		token      string
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Fetch a GitHub profile and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if token != "" {
				cfg.GitHub.Token = token
			}

			builder := profile.NewBuilder(github.NewClient(cfg.GitHub.Token), cfg.Limits(), c.Logger)
			p, err := builder.Fetch(cmd.Context(), username)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "GitHub username (required)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path (default readmegen.toml if present)")
	cmd.Flags().StringVar(&token, "token", "", "GitHub token (overrides config and GITHUB_TOKEN)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
