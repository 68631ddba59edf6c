package domain

import (
	"time"

	"github.com/google/uuid"
)

type AlertType string

const (
	AlertEmergency AlertType = "emergency"
	AlertAdvisory  AlertType = "advisory"
	AlertInfo      AlertType = "info"
)

type CampusAlert struct {
	ID        uuid.UUID `json:"id"`
	AlertType AlertType `json:"alert_type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

type CreateAlertRequest struct {
	AlertType AlertType `json:"alert_type" validate:"required,oneof=emergency advisory info"`
	Title     string    `json:"title" validate:"required,notblank"`
	Message   string    `json:"message" validate:"required,notblank"`
}

type LocationType string

const (
	LocationEmergencyPhone LocationType = "emergency_phone"
	LocationAED            LocationType = "aed"
	LocationSafeBuilding   LocationType = "safe_building"
	LocationSecurityOffice LocationType = "security_office"
	LocationParking        LocationType = "parking"
)

var LocationTypes = []LocationType{
	LocationEmergencyPhone,
	LocationAED,
	LocationSafeBuilding,
	LocationSecurityOffice,
	LocationParking,
}

func ValidLocationType(t LocationType) bool {
	for _, lt := range LocationTypes {
		if lt == t {
			return true
		}
	}
	return false
}

type CampusLocation struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Description  *string      `json:"description"`
	LocationType LocationType `json:"location_type"`
	Lat          float64      `json:"lat"`
	Lng          float64      `json:"lng"`
}

type SeedResponse struct {
	Message   string `json:"message"`
	Alerts    int    `json:"alerts"`
	Locations int    `json:"locations"`
}

// Campus centre; also the position used when the device cannot locate itself.
const (
	CampusLat = 45.0875
	CampusLng = -64.3665
)

type EmergencyNumber struct {
	Name  string
	Phone string
}

const SecurityPhone = "902-585-1103"

var EmergencyDirectory = []EmergencyNumber{
	{Name: "Acadia Security", Phone: SecurityPhone},
	{Name: "Emergency (911)", Phone: "911"},
	{Name: "Campus Health", Phone: "902-585-1234"},
	{Name: "Crisis Helpline", Phone: "1-833-456-4566"},
	{Name: "Wolfville Police", Phone: "902-542-3817"},
}
