package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/walkabout/internal/config"
	"github.com/appengine-ltd/walkabout/internal/logging"
	"github.com/appengine-ltd/walkabout/internal/session"
)

type rootFlags struct {
	configPath string
	logLevel   string
	prefsPath  string
	classic    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "walkabout",
		Short:        "Walk around a small 3D scene with a pause menu",
		Long:         "Walkabout opens a first-person scene. Esc pauses the game and opens the menu.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return play(cmd.Context(), flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", config.DefaultFile, "path to the TOML config file")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error (overrides the config file)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "preferences file (overrides the config file)")
	cmd.Flags().BoolVar(&flags.classic, "classic", false, "use the terminal menu instead of the 3D window")

	cmd.AddCommand(newPrefsCmd(flags), newVersionCmd(), newAssetsCmd())
	return cmd
}

func play(ctx context.Context, flags *rootFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	terminal := usesTerminal(flags.classic)
	var logOut io.Writer = os.Stdout
	if terminal {
		// The terminal host owns the screen; logs go to the log file only.
		logOut = io.Discard
	}

	s, err := session.New(ctx, session.Options{
		ConfigPath: flags.configPath,
		LogLevel:   flags.logLevel,
		LogOut:     logOut,
		PrefsPath:  flags.prefsPath,
	})
	if err != nil {
		return err
	}
	defer logging.Close()

	s.Log.Info("starting", "version", version, "commit", commit, "terminal", terminal)
	runErr := launch(ctx, s, flags.classic)

	// Save with a fresh context so an interrupt still persists settings.
	closeErr := s.Close(context.Background())
	if closeErr != nil {
		s.Log.Error("could not save preferences", "error", closeErr)
	}
	if runErr != nil {
		return fmt.Errorf("run: %w", runErr)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "walkabout %s (%s) %s\n", version, commit, date)
		},
	}
}
