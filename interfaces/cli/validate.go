package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/propagator-go/infrastructure/config"
)

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a run configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()
			cfg, err := loader.LoadFile(configPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Configuration valid: %s\n", cfg.Name)
			fmt.Fprintf(a.stdout, "  Stepper: %s\n", cfg.Stepper.Type)
			if cfg.Target != nil {
				fmt.Fprintf(a.stdout, "  Target: %s\n", cfg.Target.Type)
			} else {
				fmt.Fprintf(a.stdout, "  Target: none\n")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
