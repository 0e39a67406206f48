package redis

import (
	"fmt"

	"github.com/fourstack/dropfour/internal/model"
)

// Key prefix for all archive data
const keyPrefix = "dropfour"

// sessionKey returns the Redis key for a SessionRecord
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// recentSessionsIndexKey returns the Redis key for the ZSET of session ids
// scored by end timestamp
func recentSessionsIndexKey() string {
	return fmt.Sprintf("%s:idx:recent_sessions", keyPrefix)
}

// statsKey returns the Redis key for a participant's stats
func statsKey(handle string) string {
	return fmt.Sprintf("%s:stats:%s", keyPrefix, handle)
}
