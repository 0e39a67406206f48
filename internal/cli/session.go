package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session commands",
	}

	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionMoveCmd())
	cmd.AddCommand(newSessionRejoinCmd())
	cmd.AddCommand(newSessionRecentCmd())

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Get session state",
		Long: `Get the state of a session. Live sessions return the current board
snapshot; finished sessions return the archived record including the
full move history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID := args[0]

			var envelope struct {
				Session json.RawMessage `json:"session"`
			}

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s", sessionID), &envelope); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)

			// Archived records carry the end reason; live snapshots do not
			var probe struct {
				Reason string `json:"reason"`
			}
			_ = json.Unmarshal(envelope.Session, &probe)

			if probe.Reason != "" {
				var record SessionRecord
				if err := json.Unmarshal(envelope.Session, &record); err != nil {
					return fmt.Errorf("failed to decode session record: %w", err)
				}
				out.Print(record)
				return nil
			}

			var session Session
			if err := json.Unmarshal(envelope.Session, &session); err != nil {
				return fmt.Errorf("failed to decode session: %w", err)
			}
			out.Print(session)
			return nil
		},
	}
}

func newSessionMoveCmd() *cobra.Command {
	var connectionID string
	var column int

	cmd := &cobra.Command{
		Use:   "move <session-id>",
		Short: "Drop a token into a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID := args[0]

			req := map[string]any{
				"connection_id": connectionID,
				"column":        column,
			}

			var result SessionEnvelope

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/moves", sessionID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result.Session)
			return nil
		},
	}

	cmd.Flags().StringVar(&connectionID, "connection", "", "Connection ID (required)")
	cmd.Flags().IntVar(&column, "column", -1, "Column to drop into, 0-6 (required)")
	_ = cmd.MarkFlagRequired("connection")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func newSessionRejoinCmd() *cobra.Command {
	var connectionID string
	var participantID string

	cmd := &cobra.Command{
		Use:   "rejoin <session-id>",
		Short: "Rejoin a session after a disconnect",
		Long: `Reattach a fresh connection to a session you were disconnected from.
Must happen within the abandonment grace period, before the server
forfeits the session to your opponent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID := args[0]

			req := map[string]string{
				"connection_id":  connectionID,
				"participant_id": participantID,
			}

			var result SessionEnvelope

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/rejoin", sessionID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result.Session)
			return nil
		},
	}

	cmd.Flags().StringVar(&connectionID, "connection", "", "New connection ID (required)")
	cmd.Flags().StringVar(&participantID, "participant", "", "Your participant ID (required)")
	_ = cmd.MarkFlagRequired("connection")
	_ = cmd.MarkFlagRequired("participant")

	return cmd
}

func newSessionRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently finished sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RecentResult

			if err := client.Get(fmt.Sprintf("/api/v1/sessions?limit=%d", limit), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of sessions to return (1-100)")

	return cmd
}
