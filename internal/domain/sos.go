package domain

import (
	"time"

	"github.com/google/uuid"
)

type SOSStatus string

const (
	SOSActive    SOSStatus = "active"
	SOSCancelled SOSStatus = "cancelled"
	SOSResolved  SOSStatus = "resolved"
)

// SOS categories offered before the countdown. Empty means "send now".
const (
	SOSMedical = "medical"
	SOSUnsafe  = "unsafe"
	SOSCrime   = "crime"
	SOSOther   = "other"
)

var SOSCategories = []string{SOSMedical, SOSUnsafe, SOSCrime, SOSOther}

type SOSAlert struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserPhone string    `json:"user_phone"`
	Lat       float64   `json:"location_lat"`
	Lng       float64   `json:"location_lng"`
	AlertType *string   `json:"alert_type"`
	Status    SOSStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateSOSRequest struct {
	Lat       float64 `json:"location_lat" validate:"lat"`
	Lng       float64 `json:"location_lng" validate:"lng"`
	AlertType *string `json:"alert_type,omitempty" validate:"omitempty,oneof=medical unsafe crime other"`
}
