package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Matchmaking queue commands",
	}

	cmd.AddCommand(newQueueJoinCmd())
	cmd.AddCommand(newQueueLeaveCmd())

	return cmd
}

func newQueueJoinCmd() *cobra.Command {
	var connectionID string
	var displayName string

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join the matchmaking queue",
		Long: `Join the matchmaking queue. If another participant is already waiting
you are paired immediately; otherwise you wait until an opponent joins
or the pairing timeout elapses, at which point the server starts a
session against an AI opponent.

The connection ID must belong to an open event stream (see "dropfour watch").`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"connection_id": connectionID,
				"display_name":  displayName,
			}

			var result JoinResult

			if err := client.Post("/api/v1/queue/join", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&connectionID, "connection", "", "Connection ID from an open event stream (required)")
	cmd.Flags().StringVar(&displayName, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("connection")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newQueueLeaveCmd() *cobra.Command {
	var connectionID string

	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Leave the matchmaking queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"connection_id": connectionID,
			}

			if err := client.Post("/api/v1/queue/leave", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Left queue (connection %s)", connectionID))
			return nil
		},
	}

	cmd.Flags().StringVar(&connectionID, "connection", "", "Connection ID (required)")
	_ = cmd.MarkFlagRequired("connection")

	return cmd
}
