package types

import "time"

// EventData is delivered to event handlers
type EventData struct {
	Time      time.Time `json:"time"`
	Source    string    `json:"source"`
	EventType string    `json:"event_type"`
	Data      any       `json:"data,omitempty"`
}

// EventServerStarted is published once the embedded server is listening.
// Data is the bound address as a string.
const EventServerStarted = "server.started"
