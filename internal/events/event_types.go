package events

import (
	"time"

	"github.com/spec-kit/patient-booking/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered    EventType = "account_registered"
	EventAppointmentSubmitted EventType = "appointment_submitted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AppointmentSubmittedPayload payload.
type AppointmentSubmittedPayload struct {
	Reference     string               `json:"reference"`
	Email         string               `json:"email"`
	Department    string               `json:"department"`
	Doctor        string               `json:"doctor"`
	VisitKind     domain.VisitKind     `json:"visit_kind"`
	VideoPlatform domain.VideoPlatform `json:"video_platform,omitempty"`
	PreferredDate string               `json:"preferred_date"`
	PreferredTime string               `json:"preferred_time"`
}
