package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type IncidentStatus string

const (
	IncidentPending   IncidentStatus = "pending"
	IncidentReviewing IncidentStatus = "reviewing"
	IncidentResolved  IncidentStatus = "resolved"
)

const (
	MaxIncidentPhotos = 3
	MaxPhotoBytes     = 2 << 20
)

var IncidentTypes = []string{
	"Suspicious Activity",
	"Theft",
	"Harassment",
	"Property Damage",
	"Safety Hazard",
	"Other",
}

// Photos are raw image bytes; encoding/json carries them as base64 strings.
type IncidentReport struct {
	ID           uuid.UUID      `json:"id"`
	UserID       *uuid.UUID     `json:"user_id"`
	IncidentType string         `json:"incident_type"`
	Lat          float64        `json:"location_lat"`
	Lng          float64        `json:"location_lng"`
	LocationName *string        `json:"location_name"`
	Description  string         `json:"description"`
	Photos       [][]byte       `json:"photos"`
	IsAnonymous  bool           `json:"is_anonymous"`
	WantsContact bool           `json:"wants_contact"`
	ContactPhone *string        `json:"contact_phone"`
	Status       IncidentStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
}

type CreateIncidentRequest struct {
	IncidentType string   `json:"incident_type" validate:"required,notblank"`
	Lat          float64  `json:"location_lat" validate:"lat"`
	Lng          float64  `json:"location_lng" validate:"lng"`
	LocationName *string  `json:"location_name,omitempty"`
	Description  string   `json:"description" validate:"required,notblank"`
	Photos       [][]byte `json:"photos" validate:"max=3,dive,max=2097152"`
	IsAnonymous  bool     `json:"is_anonymous"`
	WantsContact bool     `json:"wants_contact"`
	ContactPhone *string  `json:"contact_phone,omitempty"`
}

type UpdateIncidentStatusRequest struct {
	Status IncidentStatus `json:"status" validate:"required,oneof=pending reviewing resolved"`
}

// ReferenceCode is the short id shown to the reporter.
func ReferenceCode(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}
