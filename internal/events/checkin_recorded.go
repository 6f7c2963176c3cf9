package events

import "time"

const CheckInRecordedTopic = "hr.checkin.recorded.v1"

type CheckInRecordedEvent struct {
	EventType string    `json:"event_type"`
	WorkerID  string    `json:"worker_id"`
	CompanyID string    `json:"company_id"`
	Action    string    `json:"action"`
	Method    string    `json:"method"`
	Timestamp time.Time `json:"timestamp"`
}
