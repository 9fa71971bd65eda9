package cli

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bizyair/bizyair-go"
)

func newSendCommand(a *app) *cobra.Command {
	var (
		payload     string
		payloadFile string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a workflow and print the response body",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.resolve()
			if err != nil {
				return err
			}
			workflow, err := readPayload(payload, payloadFile)
			if err != nil {
				return err
			}

			opts := a.clientOptions(cfg)
			if timeout > 0 {
				opts = append(opts, bizyair.WithTimeout(timeout))
			}
			client := bizyair.NewClient(cfg.Server, workflow, opts...)

			start := time.Now()
			body, err := client.Send(cmd.Context())
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"bytes":   len(body),
				"elapsed": time.Since(start).Round(time.Millisecond),
			}).Debug("workflow completed")

			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		},
	}

	cmd.Flags().StringVar(&payload, "payload", "", "Workflow JSON")
	cmd.Flags().StringVar(&payloadFile, "payload-file", "", "Path to a workflow JSON file")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort the request after this long (0 waits forever)")
	return cmd
}
