package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case JoinResult:
		o.printJoinResult(v)
	case Session:
		o.printSession(v)
	case SessionRecord:
		o.printSessionRecord(v)
	case RecentResult:
		o.printRecentResult(v)
	case StatsResult:
		o.printStatsResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Participant response type (matches API)
type Participant struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsAI        bool   `json:"is_ai"`
	Connected   bool   `json:"connected"`
}

// Session response type
type Session struct {
	SessionID    string         `json:"session_id"`
	Participants [2]Participant `json:"participants"`
	Turn         string         `json:"turn"`
	Board        [][]string     `json:"board"`
	Status       string         `json:"status"`
	Outcome      string         `json:"outcome"`
	MoveCount    int            `json:"move_count"`
}

// SessionEnvelope wraps a session response
type SessionEnvelope struct {
	Session Session `json:"session"`
}

// JoinResult response type
type JoinResult struct {
	ParticipantID string   `json:"participant_id"`
	Queued        bool     `json:"queued"`
	Session       *Session `json:"session,omitempty"`
}

// MoveRecord response type
type MoveRecord struct {
	Ordinal       int       `json:"Ordinal"`
	ParticipantID string    `json:"ParticipantID"`
	Column        int       `json:"Column"`
	Row           int       `json:"Row"`
	Timestamp     time.Time `json:"Timestamp"`
}

// SessionRecord response type
type SessionRecord struct {
	ID           string         `json:"id"`
	Participants [2]Participant `json:"participants"`
	Status       string         `json:"status"`
	Outcome      string         `json:"outcome"`
	Reason       string         `json:"reason"`
	Moves        []MoveRecord   `json:"moves"`
	EndedAt      time.Time      `json:"ended_at"`
}

// RecentResult response type
type RecentResult struct {
	Sessions []SessionRecord `json:"sessions"`
}

// Stats response type
type Stats struct {
	Handle string `json:"handle"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Draws  int    `json:"draws"`
}

// StatsResult wraps a stats response
type StatsResult struct {
	Stats Stats `json:"stats"`
}

// HealthResult response type
type HealthResult struct {
	Status       string `json:"status"`
	LiveSessions int    `json:"live_sessions"`
	Connections  int    `json:"connections"`
}

func (o *Output) printJoinResult(j JoinResult) {
	fmt.Printf("Participant: %s\n", j.ParticipantID)
	if j.Queued {
		fmt.Println("Waiting for an opponent...")
		return
	}
	if j.Session != nil {
		fmt.Println("Matched!")
		o.printSession(*j.Session)
	}
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.SessionID)
	fmt.Printf("Status: %s\n", s.Status)
	for i, p := range s.Participants {
		label := participantLabel(p)
		fmt.Printf("  %s %s (%s)%s\n", tokenForIndex(i), p.DisplayName, p.ID, label)
	}
	if s.Status == "in_progress" {
		fmt.Printf("Turn: %s\n", s.Turn)
	}
	if s.Outcome != "" {
		fmt.Printf("Outcome: %s\n", s.Outcome)
	}
	fmt.Printf("Moves: %d\n", s.MoveCount)
	o.printBoard(s)
}

func participantLabel(p Participant) string {
	switch {
	case p.IsAI:
		return " [ai]"
	case !p.Connected:
		return " [disconnected]"
	default:
		return ""
	}
}

func tokenForIndex(i int) string {
	if i == 0 {
		return "X"
	}
	return "O"
}

// printBoard renders the grid with row 0 at the bottom, the way the
// columns fill up
func (o *Output) printBoard(s Session) {
	if len(s.Board) == 0 {
		return
	}
	cols := len(s.Board)
	rows := len(s.Board[0])

	tokens := map[string]string{
		s.Participants[0].ID: "X",
		s.Participants[1].ID: "O",
	}

	fmt.Println()
	for row := rows - 1; row >= 0; row-- {
		fmt.Print("|")
		for col := 0; col < cols; col++ {
			cell := s.Board[col][row]
			if token, ok := tokens[cell]; ok {
				fmt.Printf(" %s", token)
			} else {
				fmt.Print(" .")
			}
		}
		fmt.Println(" |")
	}
	fmt.Print("+")
	for col := 0; col < cols; col++ {
		fmt.Print("--")
	}
	fmt.Println("-+")
	fmt.Print(" ")
	for col := 0; col < cols; col++ {
		fmt.Printf(" %d", col)
	}
	fmt.Println()
}

func (o *Output) printSessionRecord(r SessionRecord) {
	fmt.Printf("Session: %s\n", r.ID)
	fmt.Printf("Status: %s\n", r.Status)
	fmt.Printf("Outcome: %s (%s)\n", r.Outcome, r.Reason)
	for i, p := range r.Participants {
		fmt.Printf("  %s %s (%s)\n", tokenForIndex(i), p.DisplayName, p.ID)
	}
	fmt.Printf("Moves: %d\n", len(r.Moves))
	if !r.EndedAt.IsZero() {
		fmt.Printf("Ended: %s\n", r.EndedAt.Format(time.RFC3339))
	}
}

func (o *Output) printRecentResult(r RecentResult) {
	fmt.Printf("Recent sessions (%d):\n", len(r.Sessions))
	for _, s := range r.Sessions {
		fmt.Printf("  %s  %s vs %s  %s/%s  %d moves\n",
			s.ID,
			s.Participants[0].DisplayName, s.Participants[1].DisplayName,
			s.Status, s.Reason, len(s.Moves))
	}
}

func (o *Output) printStatsResult(s StatsResult) {
	fmt.Printf("Stats for %s:\n", s.Stats.Handle)
	fmt.Printf("  Wins:   %d\n", s.Stats.Wins)
	fmt.Printf("  Losses: %d\n", s.Stats.Losses)
	fmt.Printf("  Draws:  %d\n", s.Stats.Draws)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Live sessions: %d\n", h.LiveSessions)
	fmt.Printf("Connections: %d\n", h.Connections)
}
