package mockapi

import "time"

// Wire types mirror the backend's JSON exactly: snake_case keys, and a
// legacy access_type field that carries outcome values on older
// records. Newer records ship access_type and access_result as separate
// fields; the seed contains both generations so clients see the full
// variety.

type wireCamera struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	Status        string  `json:"status"`
	FPS           float64 `json:"fps"`
	PersonCount   int     `json:"person_count"`
	LastFrameTime string  `json:"last_frame_time"`
	Health        string  `json:"health"`
}

type wireEmployee struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	Position       string `json:"position"`
	FaceSnapshot   string `json:"face_snapshot"`
	RegisteredDate string `json:"registered_date"`
	LastAccess     string `json:"last_access,omitempty"`
}

type wireLog struct {
	ID           string  `json:"id"`
	Timestamp    string  `json:"timestamp"`
	CameraID     string  `json:"camera_id"`
	PersonID     string  `json:"person_id"`
	AccessType   string  `json:"access_type"`
	AccessResult string  `json:"access_result,omitempty"`
	Confidence   float64 `json:"confidence"`
	Details      string  `json:"details"`
}

type wireAlert struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	CameraID  string `json:"camera_id"`
	Resolved  bool   `json:"resolved"`
}

func seedCameras(now time.Time) map[string]wireCamera {
	frame := now.Format(time.RFC3339)
	return map[string]wireCamera{
		"camera_1": {
			ID:            "camera_1",
			Name:          "Main Entrance",
			Location:      "Building A - Ground Floor",
			Status:        "online",
			FPS:           25.5,
			PersonCount:   3,
			LastFrameTime: frame,
			Health:        "healthy",
		},
		"camera_2": {
			ID:            "camera_2",
			Name:          "Side Entrance",
			Location:      "Building A - Side Door",
			Status:        "online",
			FPS:           24.8,
			PersonCount:   1,
			LastFrameTime: frame,
			Health:        "healthy",
		},
	}
}

func seedEmployees() []wireEmployee {
	return []wireEmployee{
		{
			ID:             "EMP001",
			Name:           "John Smith",
			Email:          "john.smith@company.com",
			Department:     "Engineering",
			Position:       "Senior Developer",
			RegisteredDate: "2024-01-15T10:30:00Z",
			LastAccess:     "2024-08-07T14:30:00Z",
		},
		{
			ID:             "EMP002",
			Name:           "Sarah Johnson",
			Email:          "sarah.johnson@company.com",
			Department:     "Marketing",
			Position:       "Marketing Manager",
			RegisteredDate: "2024-02-20T09:15:00Z",
			LastAccess:     "2024-08-07T13:45:00Z",
		},
		{
			ID:             "EMP003",
			Name:           "Mike Chen",
			Email:          "mike.chen@company.com",
			Department:     "Sales",
			Position:       "Sales Representative",
			RegisteredDate: "2024-03-10T14:20:00Z",
			LastAccess:     "2024-08-07T12:15:00Z",
		},
	}
}

func seedLogs() []wireLog {
	return []wireLog{
		{
			ID:           "log_001",
			Timestamp:    "2024-08-07T14:30:00Z",
			CameraID:     "camera_1",
			PersonID:     "EMP001",
			AccessType:   "face_recognition",
			AccessResult: "granted",
			Confidence:   0.95,
			Details:      "Employee John Smith granted access",
		},
		{
			ID:         "log_002",
			Timestamp:  "2024-08-07T14:25:00Z",
			CameraID:   "camera_2",
			PersonID:   "EMP002",
			AccessType: "granted",
			Confidence: 0.92,
			Details:    "Employee Sarah Johnson granted access",
		},
		{
			ID:         "log_003",
			Timestamp:  "2024-08-07T14:20:00Z",
			CameraID:   "camera_1",
			PersonID:   "unknown",
			AccessType: "denied",
			Confidence: 0.45,
			Details:    "Unknown person denied access",
		},
		{
			ID:         "log_004",
			Timestamp:  "2024-08-07T14:15:00Z",
			CameraID:   "camera_1",
			PersonID:   "EMP003",
			AccessType: "tailgating",
			Confidence: 0.88,
			Details:    "Tailgating detected - Employee Mike Chen",
		},
	}
}

func seedAlerts(now time.Time) []wireAlert {
	return []wireAlert{
		{
			ID:        "alert_001",
			Type:      "tailgating",
			Severity:  "high",
			Message:   "Tailgating detected at Main Entrance",
			Timestamp: now.Format(time.RFC3339),
			CameraID:  "camera_1",
			Resolved:  false,
		},
		{
			ID:        "alert_002",
			Type:      "camera_offline",
			Severity:  "medium",
			Message:   "Camera 3 is offline",
			Timestamp: now.Add(-5 * time.Minute).Format(time.RFC3339),
			CameraID:  "camera_3",
			Resolved:  true,
		},
	}
}

// outcomeOf reads the outcome of a log record regardless of generation:
// access_result when present, otherwise the legacy outcome-valued
// access_type.
func outcomeOf(l wireLog) string {
	if l.AccessResult != "" {
		return l.AccessResult
	}
	return l.AccessType
}
