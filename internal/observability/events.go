package observability

type EventEnvelope struct {
	EventType string      `json:"event_type"`
	EventName string      `json:"event_name"`
	Payload   interface{} `json:"payload"`
}

// WSEventPayload describes a relay lifecycle event.
type WSEventPayload struct {
	ConnID     string `json:"conn_id"`
	UserID     string `json:"user_id"`
	IP         string `json:"ip"`
	Event      string `json:"event"`
	DurationMS int64  `json:"duration_ms"`
	Reason     string `json:"reason,omitempty"`
}

// NotificationEventPayload describes a fan-out batch.
type NotificationEventPayload struct {
	Type       string `json:"type"`
	ActorID    string `json:"actor_id"`
	Recipients int    `json:"recipients"`
	Link       string `json:"link,omitempty"`
}

func BuildHeaders(requestID, traceID string) map[string]string {
	headers := map[string]string{}
	if requestID != "" {
		headers["x-request-id"] = requestID
	}
	if traceID != "" {
		headers["trace_id"] = traceID
	}
	return headers
}
