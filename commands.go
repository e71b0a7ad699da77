package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/keylime/go-keylime/lib/config"
	"github.com/keylime/go-keylime/lib/secure"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true).Width(22)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	unsetStyle = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file in use",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), newResolver().ConfigPath())
	},
}

var getCmd = &cobra.Command{
	Use:   "get SECTION KEY",
	Short: "Resolve a single setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cmd.Flags().GetString("env")
		if err != nil {
			return err
		}
		value, err := newResolver().GetWithEnvOverride(args[0], args[1], env)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print every named agent setting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newResolver()
		out := cmd.OutOrStdout()
		var failed bool
		for _, s := range config.Settings {
			fmt.Fprintln(out, nameStyle.Render(s.Name)+renderSetting(r, s, &failed))
		}
		if failed {
			return oops.Errorf("one or more required settings could not be resolved")
		}
		return nil
	},
}

// renderSetting resolves s and formats the result, setting *failed when a
// required setting or the contact port cannot be used.
func renderSetting(r *config.Resolver, s config.Setting, failed *bool) string {
	switch {
	case s == config.AgentContactPortSetting:
		port, ok, err := r.AgentContactPort()
		if err != nil {
			*failed = true
			return errStyle.Render(err.Error())
		}
		if !ok {
			return unsetStyle.Render("<unset>")
		}
		return valueStyle.Render(strconv.FormatUint(uint64(port), 10))
	case s.Optional:
		v, ok := config.SuppressNotFound(r.Resolve(s))
		if !ok {
			return unsetStyle.Render("<unset>")
		}
		return valueStyle.Render(v)
	default:
		v, err := r.Resolve(s)
		if err != nil {
			*failed = true
			return errStyle.Render(err.Error())
		}
		return valueStyle.Render(v)
	}
}

var secureCmd = &cobra.Command{
	Use:   "secure PATH...",
	Short: "Change the owner of each path to root",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return securePaths(cmd, secure.NewEnforcer(nil), args)
	},
}

func securePaths(cmd *cobra.Command, e *secure.Enforcer, paths []string) error {
	for _, p := range paths {
		done, err := e.SecurePath(p)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), done)
	}
	return nil
}

func init() {
	getCmd.Flags().String("env", "", "environment variable that overrides the file value")
}
