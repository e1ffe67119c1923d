package shared

import "time"

// Task types
const (
	TypeProcessFailedLogin = "auth:process_failed_login"
)

// Queues
const (
	QueueAuth    = "auth"
	QueueDefault = "default"
)

// FailedLoginPayload is the asynq payload for a wrong-password attempt.
type FailedLoginPayload struct {
	AccountID int64     `json:"accountId"`
	IPAddress string    `json:"ipAddress"`
	Timestamp time.Time `json:"timestamp"`
}
