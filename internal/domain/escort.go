package domain

import (
	"time"

	"github.com/google/uuid"
)

type EscortStatus string

const (
	EscortPending   EscortStatus = "pending"
	EscortAssigned  EscortStatus = "assigned"
	EscortCancelled EscortStatus = "cancelled"
)

const (
	EscortInitialWait  = 10
	EscortAssignedWait = 5
	DefaultOfficerName = "Officer John"
	DefaultPickupName  = "Current Location"
)

type EscortRequest struct {
	ID              uuid.UUID    `json:"id"`
	UserID          uuid.UUID    `json:"user_id"`
	PickupLat       float64      `json:"pickup_lat"`
	PickupLng       float64      `json:"pickup_lng"`
	PickupName      *string      `json:"pickup_name"`
	DestinationLat  float64      `json:"destination_lat"`
	DestinationLng  float64      `json:"destination_lng"`
	DestinationName *string      `json:"destination_name"`
	Notes           *string      `json:"notes"`
	Status          EscortStatus `json:"status"`
	OfficerName     *string      `json:"officer_name"`
	OfficerPhoto    *string      `json:"officer_photo"`
	EstimatedWait   int          `json:"estimated_wait"`
	CreatedAt       time.Time    `json:"created_at"`
}

func (r EscortRequest) Active() bool {
	return r.Status == EscortPending || r.Status == EscortAssigned
}

type CreateEscortRequest struct {
	PickupLat       float64 `json:"pickup_lat" validate:"lat"`
	PickupLng       float64 `json:"pickup_lng" validate:"lng"`
	PickupName      *string `json:"pickup_name,omitempty"`
	DestinationLat  float64 `json:"destination_lat" validate:"lat"`
	DestinationLng  float64 `json:"destination_lng" validate:"lng"`
	DestinationName *string `json:"destination_name,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}
