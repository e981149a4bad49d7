package commands

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/puneetripathi/bajaj-frontend/internal/app"
	"github.com/puneetripathi/bajaj-frontend/internal/config"
)

// errShown marks a failure whose message already reached the user.
var errShown = errors.New("classify: failure already reported")

type state struct {
	configPath string
	endpoint   string
	timeout    string
	theme      string
	variant    string

	cfg  *config.Config
	wire *app.Wire
}

// Execute runs the CLI against os.Args.
func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil && !errors.Is(err, errShown) {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	st := &state{}

	root := &cobra.Command{
		Use:           "classify",
		Short:         "Submit {\"data\": [...]} payloads to the classification service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&st.configPath, "config", "c", os.Getenv("CLASSIFY_CONFIG"), "config file (.toml, .yaml or .json)")
	flags.StringVar(&st.endpoint, "endpoint", "", "service base URL (overrides config)")
	flags.StringVar(&st.timeout, "timeout", "", "per-request timeout, e.g. 5s (overrides config)")
	flags.StringVar(&st.theme, "theme", "", "html theme name")
	flags.StringVar(&st.variant, "variant", "", "html theme variant")

	root.AddCommand(submitCmd(st), interactiveCmd(st), serveCmd(st), filtersCmd(st))
	return root
}

func (st *state) load(cmd *cobra.Command) error {
	cfg, err := config.Load(st.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Service.Endpoint = st.endpoint
	}
	if flags.Changed("timeout") {
		cfg.Service.Timeout = st.timeout
	}
	if flags.Changed("theme") {
		cfg.Theme.Name = st.theme
	}
	if flags.Changed("variant") {
		cfg.Theme.Variant = st.variant
	}

	wire, err := app.NewWire(cmd.Context(), cfg, app.WithLogger(st.logger(cmd.ErrOrStderr())))
	if err != nil {
		return err
	}
	st.cfg = cfg
	st.wire = wire
	return nil
}

func (st *state) logger(out io.Writer) *log.Logger {
	return log.New(out, "classify: ", log.LstdFlags)
}
