// Command lintcheck resolves and validates the console's lint configuration.
package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/synthpanel/internal/adapter/driven/yamlconfig"
	"github.com/ericfisherdev/synthpanel/internal/application"
	"github.com/ericfisherdev/synthpanel/internal/domain/model"
)

// errInvalidConfigs is returned by validate when any file fails.
var errInvalidConfigs = errors.New("invalid lint configuration")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lintcheck",
		Short:        "Resolve and validate lint configuration",
		SilenceUsage: true,
	}
	root.AddCommand(newRulesCmd(), newValidateCmd(), newDefaultsCmd(), newPresetsCmd())
	return root
}

func newRulesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective rule table",
		Long:  "Layers the extended presets and the local overrides, then prints every rule with its severity and the layer that set it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := application.DefaultLintConfig()
			if configPath != "" {
				loaded, err := yamlconfig.LoadLintConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			rules, err := application.ResolveLint(cfg)
			if err != nil {
				return err
			}
			return printRules(cmd, rules)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "lint config file (defaults to the built-in configuration)")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate file...",
		Short: "Check lint config files for unknown presets, rules and globals",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				cfg, err := yamlconfig.LoadLintConfig(path)
				if err == nil {
					_, err = application.ResolveLint(cfg)
				}
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s\n%v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", path)
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files", errInvalidConfigs, failed, len(args))
			}
			return nil
		},
	}
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := yamlconfig.MarshalLintConfig(application.DefaultLintConfig())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets a config may extend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range application.PresetNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func printRules(cmd *cobra.Command, rules []model.LintRule) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tSEVERITY\tLAYER")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Severity, r.Layer)
	}
	return tw.Flush()
}
