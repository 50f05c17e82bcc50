package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/lmoreno/readmegen/internal/config"
	"github.com/lmoreno/readmegen/pkg/readme"
)

func (c *CLI) initCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively write a starter readmegen.toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(output); err == nil {
				overwrite := false
				prompt := &survey.Confirm{
					Message: fmt.Sprintf("%s already exists. Overwrite?", output),
				}
				if err := survey.AskOne(prompt, &overwrite); err != nil {
					return translatePromptErr(err)
				}
				if !overwrite {
					return nil
				}
			}

			render, err := askRenderOptions()
			if err != nil {
				return translatePromptErr(err)
			}

			cfg := config.Default()
			cfg.Render = render

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()
			if err := toml.NewEncoder(f).Encode(cfg); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), successf("Wrote %s", styleLink.Render(output)))
			fmt.Fprintln(cmd.OutOrStdout(), styleDim.Render("  set GITHUB_TOKEN (or [github] token) for higher rate limits"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", config.DefaultPath, "config file to write")

	return cmd
}

func askRenderOptions() (map[string]any, error) {
	render := make(map[string]any)

	template := ""
	if err := survey.AskOne(&survey.Select{
		Message: "Template preset:",
		Options: append([]string{"none"}, readme.TemplateNames()...),
		Default: "none",
	}, &template); err != nil {
		return nil, err
	}
	if template != "none" {
		render["template"] = template
	}

	var sections []string
	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Sections to include:",
		Options: readme.DefaultSections,
		Default: readme.DefaultSections,
	}, &sections); err != nil {
		return nil, err
	}
	if len(sections) > 0 && len(sections) < len(readme.DefaultSections) {
		render["sections"] = sections
	}

	subtitle := ""
	if err := survey.AskOne(&survey.Input{
		Message: "Subtitle (optional):",
	}, &subtitle); err != nil {
		return nil, err
	}
	if subtitle != "" {
		render["subtitle"] = subtitle
	}

	layout := ""
	if err := survey.AskOne(&survey.Select{
		Message: "Repository layout:",
		Options: []string{"default", "compact", "table"},
		Default: "default",
	}, &layout); err != nil {
		return nil, err
	}
	if layout != "default" {
		render["layout"] = layout
	}

	return render, nil
}

func translatePromptErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errors.New("cancelled")
	}
	return err
}
