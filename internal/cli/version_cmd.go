package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bizyair/bizyair-go"
)

func newVersionCommand() *cobra.Command {
	var serverVersion string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the SDK version and check a server version against it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bizyair-go %s (API %s, supports %s)\n",
				bizyair.Version, bizyair.APIVersion, bizyair.APIVersionRange)
			if serverVersion == "" {
				return nil
			}

			result := bizyair.CheckCompatibility(serverVersion)
			if result.IsCompatible() {
				okColor.Fprintln(out, result.Message)
				return nil
			}
			hintColor.Fprintln(out, result.Message)
			return fmt.Errorf("server version %q is %s", serverVersion, result.Status)
		},
	}

	cmd.Flags().StringVar(&serverVersion, "server-version", "", "Server API version to check")
	return cmd
}
