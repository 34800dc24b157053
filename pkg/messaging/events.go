package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventReportGenerated = "arztliste.report.generated"
)

// Exchange names
const (
	ExchangeArztlisteEvents = "arztliste.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data any) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v any) error {
	return json.Unmarshal(e.Data, v)
}

// ReportGeneratedEvent is published after a report was written
type ReportGeneratedEvent struct {
	Output            string   `json:"output"`
	DoctorsRead       int      `json:"doctors_read"`
	DoctorsWritten    int      `json:"doctors_written"`
	Rows              int      `json:"rows"`
	ConsultationTypes []string `json:"consultation_types"`
	PeriodDays        *int     `json:"period_days,omitempty"`
}
