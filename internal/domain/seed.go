package domain

import (
	"time"

	"github.com/google/uuid"
)

func SeedAlerts(now time.Time) []CampusAlert {
	return []CampusAlert{
		{
			ID:        uuid.New(),
			AlertType: AlertEmergency,
			Title:     "Campus Lockdown Drill",
			Message:   "This is a scheduled campus lockdown drill. Please follow all standard lockdown procedures. This drill will last approximately 30 minutes.",
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:        uuid.New(),
			AlertType: AlertAdvisory,
			Title:     "Suspicious Activity Reported",
			Message:   "Suspicious activity has been reported near the Science building. Campus security is investigating. Please remain vigilant and report any unusual activity.",
			CreatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID:        uuid.New(),
			AlertType: AlertInfo,
			Title:     "Winter Weather Advisory",
			Message:   "Environment Canada has issued a winter storm warning. Classes may be affected. Check your email for updates on campus closures.",
			CreatedAt: now.Add(-48 * time.Hour),
		},
	}
}

func SeedLocations() []CampusLocation {
	loc := func(name, desc string, t LocationType, lat, lng float64) CampusLocation {
		return CampusLocation{ID: uuid.New(), Name: name, Description: &desc, LocationType: t, Lat: lat, Lng: lng}
	}
	return []CampusLocation{
		loc("Acadia Security Office", "Main campus security headquarters. Open 24/7.", LocationSecurityOffice, 45.0875, -64.3665),
		loc("BAC Emergency Phone", "Emergency phone outside Beveridge Arts Centre", LocationEmergencyPhone, 45.0880, -64.3670),
		loc("Library Emergency Phone", "Emergency phone at main library entrance", LocationEmergencyPhone, 45.0870, -64.3660),
		loc("SUB Emergency Phone", "Emergency phone at Student Union Building", LocationEmergencyPhone, 45.0885, -64.3675),
		loc("Patterson Hall AED", "AED located in main lobby of Patterson Hall", LocationAED, 45.0865, -64.3655),
		loc("Library AED", "AED located at library front desk", LocationAED, 45.0871, -64.3661),
		loc("Athletic Centre AED", "AED located at athletic centre entrance", LocationAED, 45.0860, -64.3680),
		loc("Library", "Vaughan Memorial Library - 24/7 access during exams", LocationSafeBuilding, 45.0870, -64.3660),
		loc("Student Union Building", "SUB - Open until midnight daily", LocationSafeBuilding, 45.0885, -64.3675),
		loc("KC Irving Centre", "Environmental Science Centre - Card access after hours", LocationSafeBuilding, 45.0878, -64.3668),
		loc("Main Parking Lot", "Main campus parking - Well lit, security patrols", LocationParking, 45.0882, -64.3658),
		loc("Residence Parking", "Residence parking lot - Permit required", LocationParking, 45.0868, -64.3672),
	}
}
