package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lmoreno/readmegen/internal/config"
	"github.com/lmoreno/readmegen/pkg/badges"
	"github.com/lmoreno/readmegen/pkg/charts"
	"github.com/lmoreno/readmegen/pkg/github"
	"github.com/lmoreno/readmegen/pkg/profile"
	"github.com/lmoreno/readmegen/pkg/readme"
)

func (c *CLI) generateCommand() *cobra.Command {
	var (
		username   string
		output     string
		configPath string
		token      string
		template   string
		sections   []string
		subtitle   string
		layout     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch a GitHub profile and write the composed README",
		Example: `  readmegen generate --user ana
  readmegen generate --user ana --template professional --out README.md
  readmegen generate --user ana --sections header,languages,repos --layout table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if token != "" {
				cfg.GitHub.Token = token
			}

			render := mergeRender(cfg.Render, template, sections, subtitle, layout)

			builder := profile.NewBuilder(github.NewClient(cfg.GitHub.Token), cfg.Limits(), c.Logger)
			prog := newProgress(c.Logger)
			p, err := builder.Fetch(cmd.Context(), username)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched profile for %s", styleTitle.Render(p.Username)))

			doc := newComposer().Build(p, readme.ParseConfig(render))

			if output == "-" {
				fmt.Fprint(cmd.OutOrStdout(), doc.Markdown)
				return nil
			}
			if err := os.WriteFile(output, []byte(doc.Markdown), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, successf("Wrote %s", styleLink.Render(output)))
			for _, key := range sortedKeys(doc.Assets) {
				fmt.Fprintln(out, styleDim.Render("  asset "+key+" = "+doc.Assets[key]))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "GitHub username (required)")
	cmd.Flags().StringVarP(&output, "out", "o", "README.md", "output file path, or - for stdout")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path (default readmegen.toml if present)")
	cmd.Flags().StringVar(&token, "token", "", "GitHub token (overrides config and GITHUB_TOKEN)")
	cmd.Flags().StringVarP(&template, "template", "t", "", "template preset: minimal, professional, creative")
	cmd.Flags().StringSliceVar(&sections, "sections", nil, "comma-separated section list")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "subtitle line under the heading")
	cmd.Flags().StringVar(&layout, "layout", "", "repository layout: default, compact, table")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

// newComposer wires the document builder with both collaborators.
func newComposer() *readme.Builder {
	return readme.NewBuilder(
		readme.WithBadges(badges.Renderer{}),
		readme.WithCharts(charts.Renderer{}),
	)
}

// mergeRender overlays command-line render options onto the [render] table
// from the config file. Flags win.
func mergeRender(base map[string]any, template string, sections []string, subtitle, layout string) map[string]any {
	render := make(map[string]any, len(base)+4)
	for k, v := range base {
		render[k] = v
	}
	if template != "" {
		render["template"] = template
	}
	if len(sections) > 0 {
		render["sections"] = sections
	}
	if strings.TrimSpace(subtitle) != "" {
		render["subtitle"] = subtitle
	}
	if layout != "" {
		render["layout"] = layout
	}
	return render
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
