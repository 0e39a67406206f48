package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/fourstack/dropfour/internal/analytics"
	"github.com/fourstack/dropfour/internal/dependencies/clock"
	"github.com/fourstack/dropfour/internal/dependencies/random"
	"github.com/fourstack/dropfour/internal/ids"
	"github.com/fourstack/dropfour/internal/model"
	"github.com/fourstack/dropfour/internal/notify"
	"github.com/fourstack/dropfour/internal/services/ai"
	"github.com/fourstack/dropfour/internal/services/matchmaking"
	"github.com/fourstack/dropfour/internal/storage"
)

// Config holds the lifecycle timing knobs
type Config struct {
	// PairingTimeout is how long a queued participant waits for a human
	// opponent before an AI opponent is synthesized
	PairingTimeout time.Duration

	// AbandonGrace is how long a disconnected participant may be away
	// before the session is abandoned in the opponent's favor
	AbandonGrace time.Duration

	// AIMoveDelay is the pause before the AI opponent replies, so moves
	// do not land instantaneously
	AIMoveDelay time.Duration
}

// DefaultConfig returns the standard lifecycle timings
func DefaultConfig() Config {
	return Config{
		PairingTimeout: 10 * time.Second,
		AbandonGrace:   30 * time.Second,
		AIMoveDelay:    500 * time.Millisecond,
	}
}

// JoinResult is the outcome of a queue join: either the participant is
// waiting, or a session started immediately
type JoinResult struct {
	ParticipantID model.ParticipantID
	Queued        bool
	Session       *model.Snapshot
}

// Controller owns the whole session lifecycle: matchmaking, turn
// arbitration, disconnect grace and terminal archival. Every transition
// runs under one mutex, so state changes are strictly serialized; timer
// callbacks re-validate their preconditions after taking the lock rather
// than trusting that a Stop happened in time.
type Controller struct {
	mu sync.Mutex

	cfg       Config
	queue     *matchmaking.Queue
	registry  *Registry
	strategy  ai.Strategy
	archive   storage.Archive
	publisher analytics.Publisher
	sender    notify.Sender
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger

	pairingTimers map[model.ParticipantID]clock.Timer
	abandonTimers map[model.ParticipantID]clock.Timer
}

// NewController creates the lifecycle controller
func NewController(
	cfg Config,
	queue *matchmaking.Queue,
	registry *Registry,
	strategy ai.Strategy,
	archive storage.Archive,
	publisher analytics.Publisher,
	sender notify.Sender,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		cfg:           cfg,
		queue:         queue,
		registry:      registry,
		strategy:      strategy,
		archive:       archive,
		publisher:     publisher,
		sender:        sender,
		clock:         clk,
		random:        rnd,
		logger:        logger.With(slog.String("component", "session")),
		pairingTimers: make(map[model.ParticipantID]clock.Timer),
		abandonTimers: make(map[model.ParticipantID]clock.Timer),
	}
}

// JoinQueue places a connection into matchmaking. If another participant is
// already waiting the session starts immediately; otherwise the caller
// waits for pairing or the AI fallback. Joining again on the same
// connection replaces the stale entry and restarts the countdown.
func (c *Controller) JoinQueue(ctx context.Context, conn model.ConnectionID, displayName string) (*JoinResult, error) {
	if conn == "" {
		return nil, model.ErrConnectionRequired
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.registry.ByConnection(conn) != nil {
		return nil, model.ErrAlreadyInSession
	}

	now := c.clock.Now()

	participant := model.Participant{
		ID:           model.ParticipantID(ids.New()),
		DisplayName:  displayName,
		ConnectionID: conn,
		Connected:    true,
		LastSeen:     now,
	}

	// A second join from the same connection keeps the participant
	// identity and refreshes the countdown
	if stale, ok := c.queue.RemoveByConnection(conn); ok {
		c.stopPairingTimer(stale.Participant.ID)
		participant.ID = stale.Participant.ID
	}

	paired, _ := c.queue.Join(model.QueueEntry{Participant: participant, EnqueuedAt: now})
	if paired != nil {
		c.stopPairingTimer(paired.Participant.ID)
		// The longer-waiting participant moves first
		snapshot := c.startSession(ctx, paired.Participant, participant)
		return &JoinResult{ParticipantID: participant.ID, Session: &snapshot}, nil
	}

	id := participant.ID
	c.pairingTimers[id] = c.clock.AfterFunc(c.cfg.PairingTimeout, func() {
		c.onPairingTimeout(id)
	})

	c.sender.Send(conn, notify.EventQueued, notify.QueuedPayload{
		ParticipantID:  id,
		TimeoutSeconds: int(c.cfg.PairingTimeout / time.Second),
	})
	c.publish(ctx, model.Event{
		Type:          model.EventQueueJoined,
		Timestamp:     now,
		ParticipantID: id,
	})

	c.logger.Info("participant queued",
		slog.String("participant_id", string(id)),
		slog.Int("queue_length", c.queue.Len()))

	return &JoinResult{ParticipantID: id, Queued: true}, nil
}

// LeaveQueue removes a waiting participant before pairing resolves
func (c *Controller) LeaveQueue(ctx context.Context, conn model.ConnectionID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.queue.RemoveByConnection(conn)
	if !ok {
		return model.ErrNotQueued
	}
	c.stopPairingTimer(entry.Participant.ID)

	c.logger.Info("participant left queue",
		slog.String("participant_id", string(entry.Participant.ID)))
	return nil
}

// onPairingTimeout fires when a queued participant found no human opponent
// in time. The entry may have been paired or withdrawn since the timer was
// set, so absence from the queue means there is nothing to do.
func (c *Controller) onPairingTimeout(id model.ParticipantID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.queue.Remove(id)
	if !ok {
		return
	}
	delete(c.pairingTimers, id)

	ctx := context.Background()
	opponent := ai.NewOpponent(c.random)

	c.publish(ctx, model.Event{
		Type:          model.EventQueueTimeout,
		Timestamp:     c.clock.Now(),
		ParticipantID: id,
	})

	c.logger.Info("pairing timed out, starting ai session",
		slog.String("participant_id", string(id)),
		slog.String("opponent", opponent.DisplayName))

	// The human always moves first against the AI
	c.startSession(ctx, entry.Participant, opponent)
}

// startSession creates and registers a live session. The first participant
// takes the opening turn. Callers hold the lock.
func (c *Controller) startSession(ctx context.Context, first, second model.Participant) model.Snapshot {
	now := c.clock.Now()

	s := &model.Session{
		ID:           model.SessionID(ids.New()),
		Participants: [2]*model.Participant{&first, &second},
		Board:        model.NewBoard(),
		Turn:         first.ID,
		Status:       model.SessionStatusInProgress,
		CreatedAt:    now,
	}
	c.registry.Add(s)

	snapshot := model.NewSnapshot(s)
	for i, p := range s.Participants {
		c.sender.Send(p.ConnectionID, notify.EventSessionStarted, notify.SessionStartedPayload{
			Snapshot:   snapshot,
			YourID:     p.ID,
			OpponentID: s.Participants[1-i].ID,
			VersusAI:   s.VersusAI(),
		})
	}

	c.publish(ctx, model.Event{
		Type:      model.EventSessionStarted,
		Timestamp: now,
		SessionID: s.ID,
		Payload: model.SessionStartedPayload{
			Participants: [2]model.ParticipantID{first.ID, second.ID},
			FirstTurn:    first.ID,
			VersusAI:     s.VersusAI(),
		},
	})

	c.logger.Info("session started",
		slog.String("session_id", string(s.ID)),
		slog.String("first_turn", string(first.ID)),
		slog.Bool("versus_ai", s.VersusAI()))

	return snapshot
}

// SubmitMove applies a column drop for whichever participant owns the given
// connection. Validation fails closed: a rejected intent leaves the session
// untouched.
func (c *Controller) SubmitMove(ctx context.Context, sessionID model.SessionID, conn model.ConnectionID, column int) (model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.registry.Get(sessionID)
	if s == nil {
		return model.Snapshot{}, c.rejectMove(conn, c.missingSessionError(ctx, sessionID))
	}

	p := s.ParticipantByConnection(conn)
	if p == nil {
		return model.Snapshot{}, c.rejectMove(conn, model.ErrNotInSession)
	}
	if s.Turn != p.ID {
		return model.Snapshot{}, c.rejectMove(conn, model.ErrOutOfTurn)
	}

	if err := c.applyMove(ctx, s, p.ID, column); err != nil {
		return model.Snapshot{}, c.rejectMove(conn, err)
	}
	return model.NewSnapshot(s), nil
}

// missingSessionError distinguishes a session that already ended from one
// that never existed, so resolved sessions reject intents with an accurate
// reason instead of a generic not-found
func (c *Controller) missingSessionError(ctx context.Context, sessionID model.SessionID) error {
	if _, err := c.archive.GetCompletedSession(ctx, sessionID); err == nil {
		return model.ErrSessionNotActive
	}
	return model.ErrSessionNotFound
}

// rejectMove mirrors a rejection back over the event stream and returns the
// error for the HTTP response
func (c *Controller) rejectMove(conn model.ConnectionID, err error) error {
	c.sender.Send(conn, notify.EventMoveRejected, notify.MoveRejectedPayload{Reason: err.Error()})
	return err
}

// applyMove drops a token, records the move and either finalizes the
// session or hands the turn over. Callers hold the lock and have already
// verified it is mover's turn.
func (c *Controller) applyMove(ctx context.Context, s *model.Session, mover model.ParticipantID, column int) error {
	row, err := s.Board.Drop(column, mover)
	if err != nil {
		return model.ErrIllegalMove
	}

	now := c.clock.Now()
	move := model.Move{
		Ordinal:       len(s.Moves) + 1,
		ParticipantID: mover,
		Column:        column,
		Row:           row,
		Timestamp:     now,
	}
	s.Moves = append(s.Moves, move)

	if winner := s.Board.Winner(); winner != "" {
		c.finalize(ctx, s, model.WinnerOutcome(winner), model.EndReasonWin)
		return nil
	}
	if s.Board.IsFull() {
		c.finalize(ctx, s, model.OutcomeDraw, model.EndReasonDraw)
		return nil
	}

	next := s.Opponent(mover)
	s.Turn = next.ID

	snapshot := model.NewSnapshot(s)
	for _, p := range s.Participants {
		c.sender.Send(p.ConnectionID, notify.EventMoveApplied, notify.MoveAppliedPayload{
			Snapshot: snapshot,
			Move:     move,
			NextTurn: next.ID,
		})
	}
	c.publish(ctx, model.Event{
		Type:          model.EventMoveApplied,
		Timestamp:     now,
		SessionID:     s.ID,
		ParticipantID: mover,
		Payload:       model.MoveAppliedPayload{Move: move, NextTurn: next.ID},
	})

	if next.IsAI {
		sessionID := s.ID
		c.clock.AfterFunc(c.cfg.AIMoveDelay, func() {
			c.aiMove(sessionID)
		})
	}
	return nil
}

// aiMove is the deferred AI reply. The session may have ended or changed
// hands since it was scheduled, so every precondition is checked again.
func (c *Controller) aiMove(sessionID model.SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.registry.Get(sessionID)
	if s == nil {
		return
	}

	mover := s.Participant(s.Turn)
	if mover == nil || !mover.IsAI {
		return
	}

	opponent := s.Opponent(mover.ID)
	column := c.strategy.ChooseColumn(s.Board, mover.ID, opponent.ID)
	if column < 0 {
		return
	}

	if err := c.applyMove(context.Background(), s, mover.ID, column); err != nil {
		c.logger.Error("ai move rejected",
			slog.String("session_id", string(sessionID)),
			slog.Int("column", column),
			slog.Any("error", err))
	}
}

// Disconnect handles a closed event stream: a queued participant is
// withdrawn, a session participant starts the abandonment countdown
func (c *Controller) Disconnect(conn model.ConnectionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.queue.RemoveByConnection(conn); ok {
		c.stopPairingTimer(entry.Participant.ID)
		c.logger.Info("queued participant disconnected",
			slog.String("participant_id", string(entry.Participant.ID)))
		return
	}

	s := c.registry.ByConnection(conn)
	if s == nil {
		return
	}
	p := s.ParticipantByConnection(conn)
	if p == nil {
		return
	}

	now := c.clock.Now()
	p.Connected = false
	p.ConnectionID = ""
	p.LastSeen = now
	c.registry.UnbindConnection(conn)

	opponent := s.Opponent(p.ID)
	c.sender.Send(opponent.ConnectionID, notify.EventOpponentDisconnected, notify.OpponentDisconnectedPayload{
		ParticipantID:  p.ID,
		TimeoutSeconds: int(c.cfg.AbandonGrace / time.Second),
	})
	c.publish(context.Background(), model.Event{
		Type:          model.EventParticipantDisconnected,
		Timestamp:     now,
		SessionID:     s.ID,
		ParticipantID: p.ID,
		Payload:       model.DisconnectPayload{GraceSeconds: int(c.cfg.AbandonGrace / time.Second)},
	})

	id := p.ID
	c.abandonTimers[id] = c.clock.AfterFunc(c.cfg.AbandonGrace, func() {
		c.onAbandonTimeout(s.ID, id)
	})

	c.logger.Info("participant disconnected",
		slog.String("session_id", string(s.ID)),
		slog.String("participant_id", string(p.ID)))
}

// onAbandonTimeout fires when a disconnected participant's grace expires.
// A reconnect that won the race leaves the participant connected again, in
// which case the countdown is void.
func (c *Controller) onAbandonTimeout(sessionID model.SessionID, participantID model.ParticipantID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.abandonTimers, participantID)

	s := c.registry.Get(sessionID)
	if s == nil {
		return
	}
	p := s.Participant(participantID)
	if p == nil || p.Connected {
		return
	}

	opponent := s.Opponent(participantID)
	c.logger.Info("abandonment grace expired",
		slog.String("session_id", string(sessionID)),
		slog.String("participant_id", string(participantID)))

	c.finalize(context.Background(), s, model.WinnerOutcome(opponent.ID), model.EndReasonAbandoned)
}

// Rejoin rebinds a participant's fresh connection to their live session
func (c *Controller) Rejoin(ctx context.Context, sessionID model.SessionID, participantID model.ParticipantID, conn model.ConnectionID) (model.Snapshot, error) {
	if conn == "" {
		return model.Snapshot{}, model.ErrConnectionRequired
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.registry.Get(sessionID)
	if s == nil {
		return model.Snapshot{}, c.missingSessionError(ctx, sessionID)
	}
	p := s.Participant(participantID)
	if p == nil || p.IsAI {
		return model.Snapshot{}, model.ErrParticipantNotFound
	}

	if timer, ok := c.abandonTimers[participantID]; ok {
		timer.Stop()
		delete(c.abandonTimers, participantID)
	}

	if p.ConnectionID != "" {
		c.registry.UnbindConnection(p.ConnectionID)
	}
	now := c.clock.Now()
	p.ConnectionID = conn
	p.Connected = true
	p.LastSeen = now
	c.registry.BindConnection(conn, s.ID)

	snapshot := model.NewSnapshot(s)
	opponent := s.Opponent(participantID)
	c.sender.Send(conn, notify.EventSessionRejoined, notify.SessionRejoinedPayload{
		Snapshot:   snapshot,
		YourID:     participantID,
		OpponentID: opponent.ID,
	})
	c.sender.Send(opponent.ConnectionID, notify.EventOpponentReconnected, notify.OpponentReconnectedPayload{
		ParticipantID: participantID,
	})
	c.publish(ctx, model.Event{
		Type:          model.EventParticipantReconnected,
		Timestamp:     now,
		SessionID:     s.ID,
		ParticipantID: participantID,
	})

	c.logger.Info("participant rejoined",
		slog.String("session_id", string(s.ID)),
		slog.String("participant_id", string(participantID)))

	return snapshot, nil
}

// GetSession returns the live snapshot of a session
func (c *Controller) GetSession(sessionID model.SessionID) (model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.registry.Get(sessionID)
	if s == nil {
		return model.Snapshot{}, model.ErrSessionNotFound
	}
	return model.NewSnapshot(s), nil
}

// SessionForParticipant returns the live snapshot of the session a
// participant currently belongs to
func (c *Controller) SessionForParticipant(id model.ParticipantID) (model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.registry.ByParticipant(id)
	if s == nil {
		return model.Snapshot{}, model.ErrSessionNotFound
	}
	return model.NewSnapshot(s), nil
}

// LiveSessionCount returns the number of in-progress sessions
func (c *Controller) LiveSessionCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Count()
}

// finalize moves a session to its terminal state, persists the record
// exactly once and drops it from the registry. Callers hold the lock.
// Archival failures are logged; the lifecycle transition itself never
// fails.
func (c *Controller) finalize(ctx context.Context, s *model.Session, outcome model.Outcome, reason string) {
	now := c.clock.Now()
	if reason == model.EndReasonAbandoned {
		s.Status = model.SessionStatusAbandoned
	} else {
		s.Status = model.SessionStatusCompleted
	}
	s.Outcome = outcome
	s.EndedAt = now

	c.updateStats(ctx, s, outcome, now)

	record := model.NewSessionRecord(s, reason)
	if err := c.archive.SaveCompletedSession(ctx, record); err != nil {
		c.logger.Error("failed to archive session",
			slog.String("session_id", string(s.ID)),
			slog.Any("error", err))
	}

	snapshot := model.NewSnapshot(s)
	for _, p := range s.Participants {
		c.sender.Send(p.ConnectionID, notify.EventSessionEnded, notify.SessionEndedPayload{
			Snapshot: snapshot,
			Outcome:  outcome,
			Reason:   reason,
		})
	}
	c.publish(ctx, model.Event{
		Type:      model.EventSessionEnded,
		Timestamp: now,
		SessionID: s.ID,
		Payload: model.SessionEndedPayload{
			Outcome:   outcome,
			Reason:    reason,
			MoveCount: len(s.Moves),
		},
	})

	c.registry.Remove(s.ID)

	c.logger.Info("session ended",
		slog.String("session_id", string(s.ID)),
		slog.String("outcome", string(outcome)),
		slog.String("reason", reason),
		slog.Int("moves", len(s.Moves)))
}

// updateStats folds the outcome into each human participant's cross-session
// counters, keyed by display handle
func (c *Controller) updateStats(ctx context.Context, s *model.Session, outcome model.Outcome, now time.Time) {
	for _, p := range s.Participants {
		if p.IsAI {
			continue
		}

		stats, err := c.archive.GetStats(ctx, p.DisplayName)
		if errors.Is(err, model.ErrStatsNotFound) {
			stats = &model.ParticipantStats{Handle: p.DisplayName}
		} else if err != nil {
			c.logger.Error("failed to load stats",
				slog.String("handle", p.DisplayName),
				slog.Any("error", err))
			continue
		}

		switch outcome {
		case model.OutcomeDraw:
			stats.Draws++
		case model.WinnerOutcome(p.ID):
			stats.Wins++
			p.Wins++
		default:
			stats.Losses++
			p.Losses++
		}
		stats.UpdatedAt = now

		if err := c.archive.SaveStats(ctx, stats); err != nil {
			c.logger.Error("failed to save stats",
				slog.String("handle", p.DisplayName),
				slog.Any("error", err))
		}
	}
}

// stopPairingTimer stops and forgets a pairing countdown. Stop is advisory;
// onPairingTimeout re-validates queue membership regardless.
func (c *Controller) stopPairingTimer(id model.ParticipantID) {
	if timer, ok := c.pairingTimers[id]; ok {
		timer.Stop()
		delete(c.pairingTimers, id)
	}
}

func (c *Controller) publish(ctx context.Context, event model.Event) {
	c.publisher.Publish(ctx, event)
}
