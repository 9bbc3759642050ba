package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/egoavara/verify-structure/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(e *env) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage verify-structure configuration",
		Long: `Manage verify-structure configuration settings.

Example:
  verify-structure config show
  verify-structure config set locale ko-KR`,
	}

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE:  e.runConfigShow,
	}

	configSetCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

Available keys:
  locale    - Language of the report
              Values: auto, en-US, ko-KR, etc.
  logLevel  - Diagnostic log level on stderr
              Values: debug, info, warn, error

Example:
  verify-structure config set locale ko-KR
  verify-structure config set logLevel debug`,
		Args: cobra.ExactArgs(2),
		RunE: e.runConfigSet,
	}

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	return configCmd
}

func (e *env) runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, e.tr.T("ConfigHeader", nil))
	fmt.Fprintln(out, "----------------------------------------")
	fmt.Fprintf(out, "  file: %s\n", path)
	fmt.Fprintf(out, "  locale: %s\n", cfg.Locale)
	fmt.Fprintf(out, "  logLevel: %s\n", cfg.LogLevel)
	fmt.Fprintln(out)

	if cfg.Locale == config.LocaleAuto {
		fmt.Fprintf(out, "  %s\n", e.tr.T("ConfigLocaleAuto", nil))
	} else {
		fmt.Fprintf(out, "  %s\n", e.tr.T("ConfigLocaleFixed", map[string]any{"Locale": cfg.Locale}))
	}
	return nil
}

func (e *env) runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "locale":
		cfg.Locale = value
	case "logLevel":
		if !config.IsValidLogLevel(value) {
			return errors.New(e.tr.T("ConfigInvalidLogLevel", map[string]any{
				"Value": value,
				"Valid": strings.Join(config.LogLevels, ", "),
			}))
		}
		cfg.LogLevel = strings.ToLower(value)
	default:
		return errors.New(e.tr.T("ConfigUnknownKey", map[string]any{"Key": key}))
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), e.tr.T("ConfigSaved", map[string]any{"Key": key, "Value": value}))
	return nil
}
