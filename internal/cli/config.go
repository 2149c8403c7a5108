package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anekos/rename-movies/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or modify rename-movies configuration.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Printf("Naming Strategy: %s\n", cfg.Naming.Strategy)
			if cfg.Naming.Lookup.Endpoint != "" {
				fmt.Printf("Lookup Endpoint: %s\n", cfg.Naming.Lookup.Endpoint)
			}
			fmt.Printf("Recursive: %v\n", cfg.Rename.Recursive)
			fmt.Printf("Disambiguate: %v\n", cfg.Rename.Disambiguate)
			fmt.Printf("Atomic: %v\n", cfg.Rename.Atomic)
			fmt.Printf("Extensions: %v\n", cfg.Rename.Extensions)
			fmt.Printf("Output Format: %s\n", cfg.Output.Format)
			fmt.Printf("Log Format: %s\n", cfg.Logging.Format)
			fmt.Printf("Log Level: %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}

			if err := config.Default().SaveToFile(path); err != nil {
				return err
			}

			fmt.Printf("Configuration file created at: %s\n", path)
			return nil
		},
	}
}
