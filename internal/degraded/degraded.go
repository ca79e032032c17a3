// Package degraded supplies deterministic synthetic datasets substituted
// for live data when the backend is unreachable. The collections satisfy
// every canonical invariant, so nothing downstream can structurally tell
// degraded data from a normalized fetch; only the error flag carried
// alongside tells the UI to show a warning banner.
package degraded

import (
	"time"

	"github.com/aegisgate/aegis/internal/model"
)

// seedTime anchors every synthetic timestamp so the dataset is identical
// across calls and across test runs.
var seedTime = time.Date(2025, 8, 7, 14, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

// Cameras returns the synthetic camera collection.
func Cameras() []model.Camera {
	return []model.Camera{
		{
			ID:          "camera_1",
			Name:        "Main Entrance",
			Location:    "Building A - Ground Floor",
			Status:      model.StatusOnline,
			FPS:         25.5,
			PersonCount: 3,
			LastFrame:   ptr(seedTime),
			Resolution:  "1920x1080",
		},
		{
			ID:          "camera_2",
			Name:        "Side Entrance",
			Location:    "Building A - Side Door",
			Status:      model.StatusOnline,
			FPS:         24.8,
			PersonCount: 1,
			LastFrame:   ptr(seedTime.Add(-2 * time.Second)),
			Resolution:  "1920x1080",
		},
		{
			ID:       "camera_3",
			Name:     "Loading Dock",
			Location: "Building B - Loading Dock",
			Status:   model.StatusOffline,
			Error:    "no frames received",
		},
	}
}

// Employees returns the synthetic employee roster.
func Employees() []model.Employee {
	return []model.Employee{
		{
			ID:             "EMP001",
			Name:           "John Smith",
			Email:          "john.smith@company.com",
			Department:     "Engineering",
			Position:       "Senior Developer",
			RegisteredDate: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			Status:         model.EmployeeActive,
		},
		{
			ID:             "EMP002",
			Name:           "Sarah Johnson",
			Email:          "sarah.johnson@company.com",
			Department:     "Marketing",
			Position:       "Marketing Manager",
			RegisteredDate: time.Date(2024, 2, 20, 9, 15, 0, 0, time.UTC),
			Status:         model.EmployeeActive,
		},
		{
			ID:             "EMP003",
			Name:           "Mike Chen",
			Email:          "mike.chen@company.com",
			Department:     "Sales",
			Position:       "Sales Representative",
			RegisteredDate: time.Date(2024, 3, 10, 14, 20, 0, 0, time.UTC),
			Status:         model.EmployeeInactive,
		},
	}
}

// AccessLogs returns the synthetic access event collection, newest first,
// matching the ordering the backend delivers.
func AccessLogs() []model.AccessLogEntry {
	return []model.AccessLogEntry{
		{
			LogID:        "log_001",
			Timestamp:    seedTime,
			CameraID:     "camera_1",
			PersonID:     "EMP001",
			AccessType:   model.AccessFaceRecognition,
			AccessResult: model.ResultGranted,
			Confidence:   ptr(0.95),
			Details:      "Employee John Smith granted access",
		},
		{
			LogID:        "log_002",
			Timestamp:    seedTime.Add(-5 * time.Minute),
			CameraID:     "camera_2",
			PersonID:     "EMP002",
			AccessType:   model.AccessCardSwipe,
			AccessResult: model.ResultGranted,
			Confidence:   ptr(0.92),
			Details:      "Employee Sarah Johnson granted access",
		},
		{
			LogID:        "log_003",
			Timestamp:    seedTime.Add(-10 * time.Minute),
			CameraID:     "camera_1",
			PersonID:     "unknown",
			AccessType:   model.AccessFaceRecognition,
			AccessResult: model.ResultDenied,
			Confidence:   ptr(0.45),
			Details:      "Unknown person denied access",
		},
		{
			LogID:        "log_004",
			Timestamp:    seedTime.Add(-15 * time.Minute),
			CameraID:     "camera_1",
			PersonID:     "EMP003",
			AccessType:   model.AccessBodyRecognition,
			AccessResult: model.ResultTailgating,
			Confidence:   ptr(0.88),
			Details:      "Tailgating detected - Employee Mike Chen",
		},
		{
			LogID:        "log_005",
			Timestamp:    seedTime.Add(-20 * time.Minute),
			CameraID:     "camera_2",
			PersonID:     "EMP001",
			AccessType:   model.AccessCardSwipe,
			AccessResult: model.ResultGranted,
			Confidence:   ptr(0.99),
			Details:      "Employee John Smith granted access",
		},
	}
}

// Stats returns the synthetic aggregate snapshot, consistent with the other
// synthetic collections.
func Stats() model.SystemStats {
	return model.SystemStats{
		PeopleDetected:      4,
		AccessGranted:       3,
		AccessDenied:        1,
		TailgatingIncidents: 1,
		ActiveCameras:       2,
		TotalCameras:        3,
		TotalEmployees:      3,
		SystemUptime:        "2h 15m 30s",
		LastUpdate:          seedTime,
	}
}

// Snapshot bundles the synthetic collections the dashboard view needs.
func Snapshot() model.Snapshot {
	stats := Stats()
	return model.Snapshot{
		Stats:   &stats,
		Cameras: Cameras(),
		Logs:    AccessLogs(),
	}
}
