package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/playpen/internal/dispatch"
	"github.com/interpretive-systems/playpen/internal/gateway"
	"github.com/interpretive-systems/playpen/internal/selectors"
	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/types"
	"github.com/interpretive-systems/playpen/internal/wasmrun"
)

const (
	exitTransportFailure = 1
	exitCompileFailure   = 2
)

func newExecCmd(cfgPath *string) *cobra.Command {
	var (
		op      string
		channel string
		mode    string
		edition string
	)
	cmd := &cobra.Command{
		Use:   "exec [file]",
		Short: "Run code without the UI",
		Long: "Send a file (or stdin) through the primary action, or through --op, and print the result.\n" +
			"Exits 1 when the backend could not be reached and 2 when the code did not compile.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			sess, err := openSession(cmd, *cfgPath)
			if err != nil {
				return err
			}

			actions := []store.Action{store.EditCode{Code: code}}
			if channel != "" {
				actions = append(actions, store.ChangeChannel{Channel: types.Channel(channel)})
			}
			if mode != "" {
				actions = append(actions, store.ChangeMode{Mode: types.Mode(mode)})
			}
			if edition != "" {
				actions = append(actions, store.ChangeEdition{Edition: types.Edition(edition)})
			}
			sess.st.Dispatch(store.Batch{Actions: actions})
			if err := validateSession(sess.st.State()); err != nil {
				return err
			}

			th, target, err := execThunk(sess.d, sess.st.State(), op)
			if err != nil {
				return err
			}
			sess.run(th)
			return reportExec(cmd, sess, target)
		},
	}
	cmd.Flags().StringVar(&op, "op", "", "Operation to run: execute, compile, format, clippy, miri, macro-expansion (default: primary action)")
	cmd.Flags().StringVar(&channel, "channel", "", "Override build.channel")
	cmd.Flags().StringVar(&mode, "mode", "", "Override build.mode")
	cmd.Flags().StringVar(&edition, "edition", "", "Override build.edition")
	return cmd
}

func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

func validateSession(s store.State) error {
	c := s.Configuration
	switch {
	case !c.Channel.Valid():
		return fmt.Errorf("invalid channel %q", c.Channel)
	case !c.Mode.Valid():
		return fmt.Errorf("invalid mode %q", c.Mode)
	case !c.Edition.Valid():
		return fmt.Errorf("invalid edition %q", c.Edition)
	}
	return nil
}

// execThunk picks the thunk for op and the operation whose slot will hold
// the answer.
func execThunk(d *dispatch.Dispatcher, s store.State, op string) (dispatch.Thunk, types.Operation, error) {
	if op == "" {
		return d.PerformPrimaryAction(), types.Operation(selectors.EffectiveOperation(s)), nil
	}
	target := types.Operation(op)
	th := d.ForOperation(target)
	if th == nil {
		return nil, "", fmt.Errorf("unknown operation %q", op)
	}
	return th, target, nil
}

func reportExec(cmd *cobra.Command, sess *session, op types.Operation) error {
	s := sess.st.State()
	slot := s.Output.Slot(op)
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if slot.Error != "" {
		fmt.Fprintln(stderr, slot.Error)
		return &ExitError{Code: exitTransportFailure, Err: fmt.Errorf("%s: %s", op, slot.Error)}
	}
	if slot.Stderr != "" {
		fmt.Fprint(stderr, ensureNewline(slot.Stderr))
	}
	if _, failed := sess.gw.Last().(gateway.CompileFailure); failed {
		return &ExitError{Code: exitCompileFailure, Err: fmt.Errorf("%s: compilation failed", op)}
	}

	switch {
	case op == types.OpFormat:
		fmt.Fprint(stdout, ensureNewline(s.Code))
	case op == types.OpCompile && wasmrun.IsModule(slot.Body):
		res, err := wasmrun.Run(cmd.Context(), slot.Body, wasmrun.DefaultTimeout)
		if err != nil {
			return fmt.Errorf("run artifact: %w", err)
		}
		if out := res.String(); out != "" {
			fmt.Fprintln(stdout, out)
		}
	case slot.Stdout != "":
		fmt.Fprint(stdout, ensureNewline(slot.Stdout))
	case len(slot.Body) > 0:
		fmt.Fprint(stdout, ensureNewline(string(slot.Body)))
	}
	return nil
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
