package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotifySOSCreated      NotificationKind = "sos.created"
	NotifySOSCancelled    NotificationKind = "sos.cancelled"
	NotifyWalkStarted     NotificationKind = "walk.started"
	NotifyWalkExtended    NotificationKind = "walk.extended"
	NotifyWalkCompleted   NotificationKind = "walk.completed"
	NotifyEscortAssigned  NotificationKind = "escort.assigned"
	NotifyIncidentCreated NotificationKind = "incident.created"
)

// Notification is queued by the service layer and delivered to the
// configured webhook by the notifier worker.
type Notification struct {
	Kind       NotificationKind `json:"kind"`
	UserID     uuid.UUID        `json:"user_id"`
	SubjectID  uuid.UUID        `json:"subject_id"`
	ContactIDs []uuid.UUID      `json:"contact_ids,omitempty"`
	Lat        float64          `json:"lat,omitempty"`
	Lng        float64          `json:"lng,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}
