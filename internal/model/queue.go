package model

import "time"

// QueueEntry is a participant waiting to be paired into a session. It is
// created on queue join and removed by pairing, by the pairing countdown
// expiring (AI fallback), or by the participant disconnecting first.
type QueueEntry struct {
	Participant Participant
	EnqueuedAt  time.Time
}
