// Package cli wires the playpen commands.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/playpen/internal/config"
)

// ExitError asks main to exit with Code without logging a failure. The
// command has already reported what went wrong.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the status a failed command asked for, or 1.
func ExitCode(err error) (int, bool) {
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code, true
	}
	return 1, false
}

// NewRootCmd builds the playpen command tree. Without a subcommand it opens
// the terminal UI.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "playpen [location]",
		Short:         "Terminal client for a code playground",
		Long:          "playpen: edit, run, format and share snippets against a playground backend.",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd, cfgPath, args)
		},
	}

	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to config file (default: $XDG_CONFIG_HOME/playpen/config.yaml)")

	root.AddCommand(newOpenCmd(&cfgPath))
	root.AddCommand(newExecCmd(&cfgPath))
	root.AddCommand(newGistCmd(&cfgPath))
	root.AddCommand(newConfigCmd(&cfgPath))

	return root
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
