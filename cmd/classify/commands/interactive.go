package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/puneetripathi/bajaj-frontend/pkg/renderers/text"
	"github.com/puneetripathi/bajaj-frontend/pkg/renderers/tui"
)

// interactive: prompt for payloads and filters until the user quits.
func interactiveCmd(st *state) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Prompt for payloads and filters in the terminal",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := st.wire.Renderer(text.Name)
			if err != nil {
				return err
			}
			runner, err := tui.NewRunner(st.wire.Session(), renderer,
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
				tui.WithConfirmSubmit(!yes),
			)
			if err != nil {
				return err
			}

			err = runner.Run(cmd.Context())
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "submit without asking for confirmation")
	return cmd
}
