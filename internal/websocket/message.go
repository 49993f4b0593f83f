package websocket

// Message defines the structure for activity-feed messages.
type Message struct {
	Action  string      `json:"action"` // e.g., "event", "stats"
	Payload interface{} `json:"payload"`
}
