package cli

import (
	"fmt"
	"iter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bizyair/bizyair-go"
)

func newStreamCommand(a *app) *cobra.Command {
	var (
		payload     string
		payloadFile string
		maxEvents   int
	)

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Send a workflow and print each streamed event",
		Long: `stream sends the workflow with "Accept: text/event-stream" and prints
the payload of every "data:" line as it arrives, one per line.

Use --max-events to stop after N events; the connection is closed at once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.resolve()
			if err != nil {
				return err
			}
			workflow, err := readPayload(payload, payloadFile)
			if err != nil {
				return err
			}

			stream := bizyair.NewStreamClient(cfg.Server, workflow, a.clientOptions(cfg)...)
			out := cmd.OutOrStdout()
			count := 0

			err = stream.Run(cmd.Context(), func(events iter.Seq[string]) error {
				a.log.WithField("server", cfg.Server).Debug("stream opened")
				for data := range events {
					fmt.Fprintln(out, data)
					count++
					if maxEvents > 0 && count >= maxEvents {
						a.log.WithField("events", count).Debug("event limit reached, closing stream")
						break
					}
				}
				return nil
			})
			a.log.WithFields(logrus.Fields{
				"events": count,
				"state":  stream.State(),
			}).Debug("stream finished")
			return err
		},
	}

	cmd.Flags().StringVar(&payload, "payload", "", "Workflow JSON")
	cmd.Flags().StringVar(&payloadFile, "payload-file", "", "Path to a workflow JSON file")
	cmd.Flags().IntVar(&maxEvents, "max-events", 0, "Stop after this many events (0 reads until the server closes)")
	return cmd
}
