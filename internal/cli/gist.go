package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/playpen/internal/selectors"
	"github.com/interpretive-systems/playpen/internal/store"
)

func newGistCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gist",
		Short: "Load or share snippets",
	}
	cmd.AddCommand(newGistLoadCmd(cfgPath))
	cmd.AddCommand(newGistSaveCmd(cfgPath))
	return cmd
}

func newGistLoadCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "load ID",
		Short: "Print a shared snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, *cfgPath)
			if err != nil {
				return err
			}
			sess.run(sess.d.PerformGistLoad(args[0]))
			g := sess.st.State().Output.Gist
			if g.Error != "" {
				return &ExitError{Code: exitTransportFailure, Err: errors.New(g.Error)}
			}
			fmt.Fprint(cmd.OutOrStdout(), ensureNewline(sess.st.State().Code))
			return nil
		},
	}
}

func newGistSaveCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save [file]",
		Short: "Share a file (or stdin) and print its permalink",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			sess, err := openSession(cmd, *cfgPath)
			if err != nil {
				return err
			}
			sess.st.Dispatch(store.EditCode{Code: code})
			sess.run(sess.d.PerformGistSave())

			s := sess.st.State()
			if s.Output.Gist.Error != "" {
				return &ExitError{Code: exitTransportFailure, Err: errors.New(s.Output.Gist.Error)}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Permalink: %s\n", selectors.Permalink(s))
			if u := selectors.GistURL(s); u != "" {
				fmt.Fprintf(out, "Gist: %s\n", u)
			}
			return nil
		},
	}
}

func openSession(cmd *cobra.Command, cfgPath string) (*session, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	return newSession(cmd.Context(), cfg)
}
