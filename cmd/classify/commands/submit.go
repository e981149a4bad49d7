package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
	"github.com/puneetripathi/bajaj-frontend/pkg/render"
)

// submit [json|-]: validate one payload, send it and print the outcome.
func submitCmd(st *state) *cobra.Command {
	var (
		input   string
		filters []string
		format  string
		title   string
	)

	cmd := &cobra.Command{
		Use:   "submit [json|-]",
		Short: "Validate and send one payload, then print the filtered response",
		Example: `  classify submit '{"data":["A","1","z"]}'
  echo '{"data":[]}' | classify submit - --filter numbers --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), input, args)
			if err != nil {
				return err
			}

			renderer, err := st.wire.Renderer(format)
			if err != nil {
				return err
			}

			s := st.wire.Session()
			if cmd.Flags().Changed("filter") {
				set, err := projection.ParseFilters(filters)
				if err != nil {
					return err
				}
				s.SetFilters(set)
			}

			submitErr := s.SubmitInput(cmd.Context(), raw)

			out, err := renderer.Render(cmd.Context(), s.View(), render.RenderOptions{Title: title})
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
			if submitErr != nil {
				return fmt.Errorf("%w: %v", errShown, submitErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON payload (alternative to the positional argument)")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "field to show: numbers, alphabets or highest_alphabet (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "o", "", "output format: text, json or html (default from config)")
	cmd.Flags().StringVar(&title, "title", "", "heading printed above the outcome")
	return cmd
}

func readInput(stdin io.Reader, flagValue string, args []string) (string, error) {
	switch {
	case flagValue != "" && len(args) > 0:
		return "", errors.New("give the payload either as an argument or with --input, not both")
	case flagValue != "":
		return flagValue, nil
	case len(args) == 0:
		return "", errors.New("missing payload: pass JSON, '-' for stdin, or --input")
	case args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	default:
		return args[0], nil
	}
}
