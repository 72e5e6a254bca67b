// Package cli implements routectl, an offline route search over a SQLite snapshot.
package cli

import (
	"log/slog"
	"os"

	"github.com/Domenick1991/airroutes/config"
	"github.com/Domenick1991/airroutes/internal/logger"
	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	db    string
	debug bool
}

func (g *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	level := "warn"
	if g.debug {
		level = "debug"
	}
	return logger.NewWithWriter(cmd.ErrOrStderr(), config.LogConfig{Level: level, Format: "text"})
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:          "routectl",
		Short:        "Search cargo routes over an offline network snapshot",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&g.db, "db", "routes.db", "path to the SQLite snapshot")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable verbose logging to stderr")

	cmd.AddCommand(importCmd(g), searchCmd(g), nearestCmd(g))
	return cmd
}
