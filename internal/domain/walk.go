package domain

import (
	"time"

	"github.com/google/uuid"
)

type WalkStatus string

const (
	WalkActive    WalkStatus = "active"
	WalkCompleted WalkStatus = "completed"
)

const WalkExtendMinutes = 15

// WalkDurations are the selectable lengths in minutes; 0 runs until stopped.
var WalkDurations = []int{15, 30, 60, 0}

func ValidWalkDuration(minutes int) bool {
	for _, d := range WalkDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

type FriendWalk struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	ContactIDs      []uuid.UUID `json:"contact_ids"`
	StartTime       time.Time   `json:"start_time"`
	DurationMinutes int         `json:"duration_minutes"`
	EndTime         *time.Time  `json:"end_time"`
	CurrentLat      float64     `json:"current_lat"`
	CurrentLng      float64     `json:"current_lng"`
	Status          WalkStatus  `json:"status"`
}

func (w FriendWalk) Bounded() bool {
	return w.EndTime != nil && w.DurationMinutes > 0
}

// Remaining is max(0, end-now) truncated to whole seconds; unbounded walks
// report zero.
func (w FriendWalk) Remaining(now time.Time) time.Duration {
	if w.EndTime == nil {
		return 0
	}
	rem := w.EndTime.Sub(now)
	if rem < 0 {
		return 0
	}
	return rem.Truncate(time.Second)
}

type StartWalkRequest struct {
	ContactIDs      []uuid.UUID `json:"contact_ids" validate:"required,min=1"`
	DurationMinutes int         `json:"duration_minutes" validate:"oneof=0 15 30 60"`
	Lat             float64     `json:"location_lat" validate:"lat"`
	Lng             float64     `json:"location_lng" validate:"lng"`
}

type UpdateWalkLocationRequest struct {
	Lat float64 `json:"location_lat" validate:"lat"`
	Lng float64 `json:"location_lng" validate:"lng"`
}

type ExtendWalkResponse struct {
	Message    string    `json:"message"`
	NewEndTime time.Time `json:"new_end_time"`
}
