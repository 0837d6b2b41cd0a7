package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"skyfare/pkg/theme"

	"github.com/spf13/cobra"
)

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change preferences",
	}

	var systemDark bool
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Show the stored preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *application) error {
				if !cmd.Flags().Changed("system-dark") {
					systemDark = app.cfg.SystemDarkMode
				}
				prefs := app.preferences.Get(ctx)
				airport := prefs.DefaultDepartureAirport
				if airport == "" {
					airport = "(none)"
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "default departure airport: %s\n", airport)
				effective := theme.Resolve(prefs.Theme, systemDark)
				fmt.Fprintf(out, "theme: %s (effective %s)\n", prefs.Theme, effective)
				printPalette(out, effective)
				return nil
			})
		},
	}
	getCmd.Flags().BoolVar(&systemDark, "system-dark", false, "Treat the platform as being in dark mode (default SYSTEM_DARK_MODE)")
	cmd.AddCommand(getCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "set-airport <code>",
		Short: "Set the default departure airport, empty to clear",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *application) error {
				return app.preferences.SetDefaultDepartureAirport(ctx, args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set-theme <system|light|dark>",
		Short:     "Set the theme preference",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(theme.PreferenceSystem), string(theme.PreferenceLight), string(theme.PreferenceDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *application) error {
				return app.preferences.SetTheme(ctx, args[0])
			})
		},
	})

	return cmd
}

// baseStyle is the light palette the terminal output is described in
var baseStyle = map[string]string{
	"backgroundColor": "#ffffff",
	"borderColor":     "#e0e0e0",
	"color":           "#000000",
	"tintColor":       "#007aff",
}

func printPalette(w io.Writer, t theme.Theme) {
	style := theme.PatchStyle(t, baseStyle)
	names := make([]string, 0, len(style))
	for name := range style {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "palette:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-16s %s\n", name+":", style[name])
	}
}
