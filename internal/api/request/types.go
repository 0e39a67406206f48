package request

// JoinQueueRequest is the request body for entering matchmaking
type JoinQueueRequest struct {
	ConnectionID string `json:"connection_id"`
	DisplayName  string `json:"display_name"`
}

// LeaveQueueRequest is the request body for withdrawing from matchmaking
type LeaveQueueRequest struct {
	ConnectionID string `json:"connection_id"`
}

// MoveRequest is the request body for submitting a column drop
type MoveRequest struct {
	ConnectionID string `json:"connection_id"`
	Column       int    `json:"column"`
}

// RejoinRequest is the request body for rebinding a fresh connection to a
// live session
type RejoinRequest struct {
	ConnectionID  string `json:"connection_id"`
	ParticipantID string `json:"participant_id"`
}
