package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bizyair/bizyair-go"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or change the saved server and API key",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "view",
		Short: "Print the saved configuration with the key masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(a.cfgFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			dimColor.Fprintf(out, "# %s\n", a.cfgFile)
			fmt.Fprintf(out, "server: %s\n", cfg.Server)
			fmt.Fprintf(out, "apiKey: %s\n", maskKey(cfg.APIKey))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-key <key>",
		Short: "Save the API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(args[0])
			// Reuse the client's validation so a bad key is rejected before it is saved.
			if _, err := bizyair.BuildHeaders(key, false); err != nil {
				return err
			}
			return a.updateConfig(cmd, func(cfg *Config) { cfg.APIKey = key }, "API key saved")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-server <url>",
		Short: "Save the workflow endpoint URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server := strings.TrimSpace(args[0])
			return a.updateConfig(cmd, func(cfg *Config) { cfg.Server = server }, "server saved")
		},
	})

	return cmd
}

func (a *app) updateConfig(cmd *cobra.Command, mutate func(*Config), done string) error {
	cfg, err := LoadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	mutate(cfg)
	if err := SaveConfig(cfg, a.cfgFile); err != nil {
		return err
	}
	a.log.WithField("config", a.cfgFile).Debug("config written")
	okColor.Fprintf(cmd.OutOrStdout(), "%s to %s\n", done, a.cfgFile)
	return nil
}

func maskKey(key string) string {
	if key == "" {
		return "<unset>"
	}
	if len(key) <= 3 {
		return "***"
	}
	// Short keys would be mostly revealed by their tail.
	if len(key) < 12 {
		return key[:3] + "***"
	}
	return key[:3] + "***" + key[len(key)-4:]
}
