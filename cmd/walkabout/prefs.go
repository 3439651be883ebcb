package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/walkabout/internal/config"
	"github.com/appengine-ltd/walkabout/internal/prefs"
	"github.com/appengine-ltd/walkabout/internal/session"
)

func newPrefsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change saved preferences",
	}
	cmd.AddCommand(newPrefsShowCmd(flags), newPrefsSetCmd(flags), newPrefsResetCmd(flags))
	return cmd
}

func newPrefsShowCmd(flags *rootFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := prefsPath(flags)
			if err != nil {
				return err
			}
			p, err := prefs.Load(cmd.Context(), path)
			if errors.Is(err, prefs.ErrCorrupt) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is corrupted, showing defaults\n", path)
			} else if err != nil {
				return err
			}
			return writePrefs(cmd.OutOrStdout(), p, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}

func newPrefsSetCmd(flags *rootFlags) *cobra.Command {
	var volume, sensitivity float32
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change saved preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("volume") && !cmd.Flags().Changed("sensitivity") {
				return errors.New("nothing to set: pass --volume and/or --sensitivity")
			}
			store, err := openPrefs(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("volume") {
				if err := store.SetValue(prefs.KeyVolume, volume); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("sensitivity") {
				if err := store.SetValue(prefs.KeySensitivity, sensitivity); err != nil {
					return err
				}
			}
			if err := store.Save(cmd.Context()); err != nil {
				return err
			}
			return writePrefs(cmd.OutOrStdout(), store.Get(), "yaml")
		},
	}
	cmd.Flags().Float32Var(&volume, "volume", prefs.DefaultVolume, "master volume, 0 to 1")
	cmd.Flags().Float32Var(&sensitivity, "sensitivity", prefs.DefaultSensitivity, "look sensitivity, 0.05 to 2")
	return cmd
}

func newPrefsResetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openPrefs(cmd, flags)
			if err != nil {
				return err
			}
			store.Reset()
			if err := store.Save(cmd.Context()); err != nil {
				return err
			}
			return writePrefs(cmd.OutOrStdout(), store.Get(), "yaml")
		},
	}
}

func prefsPath(flags *rootFlags) (string, error) {
	path := flags.prefsPath
	if path == "" {
		cfg, err := config.Load(flags.configPath)
		if err != nil {
			return "", fmt.Errorf("load config: %w", err)
		}
		path = cfg.Game.PrefsPath
	}
	return session.ResolvePrefsPath(path)
}

func openPrefs(cmd *cobra.Command, flags *rootFlags) (*prefs.Store, error) {
	path, err := prefsPath(flags)
	if err != nil {
		return nil, err
	}
	p, err := prefs.Load(cmd.Context(), path)
	if err != nil && !errors.Is(err, prefs.ErrCorrupt) {
		return nil, err
	}
	return prefs.NewStore(path, p, nil), nil
}

func writePrefs(w io.Writer, p prefs.Prefs, format string) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
