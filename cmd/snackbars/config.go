package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configOpts struct {
	format string
	write  bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the effective configuration: defaults merged with the config file.

Use --write to save it to the config file, which is a convenient way to
create a starting config.

Examples:
  snackbars config
  snackbars config --format yaml
  snackbars config --write`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVarP(&configOpts.format, "format", "f", "toml",
		"Output format (toml, yaml)")
	configCmd.Flags().BoolVar(&configOpts.write, "write", false,
		"Write the configuration to the config file")

	_ = configCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"toml", "yaml"}, cobra.ShellCompDirectiveNoFileComp))
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configOpts.write {
		path := configPath()
		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	var (
		data []byte
		err  error
	)
	switch configOpts.format {
	case "toml":
		data, err = toml.Marshal(cfg)
	case "yaml":
		data, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("unknown format %q (want toml or yaml)", configOpts.format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Print(string(data))
	return nil
}
