package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/interpretive-systems/playpen/internal/logx"
	"github.com/interpretive-systems/playpen/internal/router"
	"github.com/interpretive-systems/playpen/internal/tui"
	"github.com/interpretive-systems/playpen/internal/wasmrun"
)

func newOpenCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open [location]",
		Short: "Open the terminal UI",
		Long:  "Open the terminal UI at an optional location such as /?code=..., /?gist=ID or /help.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd, *cfgPath, args)
		},
	}
	return cmd
}

func runOpen(cmd *cobra.Command, cfgPath string, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	start := router.Location{Path: router.IndexPath}
	if len(args) == 1 {
		loc, err := router.ParseLocation(args[0])
		if err != nil {
			return fmt.Errorf("parse location %q: %w", args[0], err)
		}
		start = loc
	}

	// The terminal belongs to the UI; diagnostics go to the log file.
	logger, closer, err := logx.Open(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer closer.Close()
	ctx := pslog.ContextWithLogger(cmd.Context(), logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())

	sess, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("playpen started", "backend", cfg.Backend.BaseURL, "location", start.String())

	return tui.Run(tui.Options{
		Context:     ctx,
		Store:       sess.st,
		Dispatcher:  sess.d,
		History:     router.NewMemoryHistory(start),
		WasmTimeout: wasmrun.DefaultTimeout,
	})
}
