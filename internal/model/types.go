package model

import "time"

// CameraStatus is the canonical camera state. Unrecognized raw values
// normalize to StatusUnknown, never to an arbitrary string.
type CameraStatus string

const (
	StatusOnline  CameraStatus = "online"
	StatusOffline CameraStatus = "offline"
	StatusError   CameraStatus = "error"
	StatusUnknown CameraStatus = "unknown"
)

// EmployeeStatus marks whether an employee badge is currently valid.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

// AccessType is the detection method that produced an access event.
type AccessType string

const (
	AccessCardSwipe       AccessType = "card_swipe"
	AccessFaceRecognition AccessType = "face_recognition"
	AccessBodyRecognition AccessType = "body_recognition"
	AccessTypeUnknown     AccessType = "unknown"
)

// AccessResult is the outcome of an access event. It is a separate concept
// from AccessType even though some backend versions ship both in one field.
type AccessResult string

const (
	ResultGranted    AccessResult = "granted"
	ResultDenied     AccessResult = "denied"
	ResultTailgating AccessResult = "tailgating"
	ResultUnknown    AccessResult = "unknown"
)

// Camera is the canonical camera record used across the system.
// Instances are produced only by the normalize package (or the degraded
// provider) and are replaced wholesale on every refresh.
type Camera struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Location    string       `json:"location"`
	Status      CameraStatus `json:"status"`
	FPS         float64      `json:"fps"`
	PersonCount int          `json:"personCount"`
	LastFrame   *time.Time   `json:"lastFrame"`
	Resolution  string       `json:"resolution,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// CameraHealth is the per-camera health detail returned by the health probe.
type CameraHealth struct {
	CameraID    string       `json:"cameraId"`
	Status      CameraStatus `json:"status"`
	Health      string       `json:"health"`
	FPS         float64      `json:"fps"`
	PersonCount int          `json:"personCount"`
	LastFrame   *time.Time   `json:"lastFrame"`
	Errors      []string     `json:"errors"`
}

// Employee is the canonical employee record.
type Employee struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Department     string         `json:"department"`
	Position       string         `json:"position,omitempty"`
	FaceImage      string         `json:"faceImage,omitempty"`
	RegisteredDate time.Time      `json:"registeredDate"`
	Status         EmployeeStatus `json:"status"`
}

// AccessLogEntry is one access event. LogID is unique within a fetch.
type AccessLogEntry struct {
	LogID        string       `json:"logId"`
	Timestamp    time.Time    `json:"timestamp"`
	CameraID     string       `json:"cameraId"`
	PersonID     string       `json:"personId"`
	AccessType   AccessType   `json:"accessType"`
	AccessResult AccessResult `json:"accessResult"`
	Confidence   *float64     `json:"confidenceScore"`
	Details      string       `json:"details,omitempty"`
}

// SystemStats is a read-only aggregate snapshot, replaced every poll.
// It has no identity and is never mutated in place.
type SystemStats struct {
	PeopleDetected      int       `json:"peopleDetected"`
	AccessGranted       int       `json:"accessGranted"`
	AccessDenied        int       `json:"accessDenied"`
	TailgatingIncidents int       `json:"tailgatingIncidents"`
	ActiveCameras       int       `json:"activeCameras"`
	TotalCameras        int       `json:"totalCameras"`
	TotalEmployees      int       `json:"totalEmployees"`
	SystemUptime        string    `json:"systemUptime"`
	LastUpdate          time.Time `json:"lastUpdate"`
}

// Health is the backend liveness snapshot.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// FilterCriteria is the current log-view query. All fields are optional;
// empty means "not filtering on this". It is owned by the filter engine and
// the UI and is never sent to the backend.
type FilterCriteria struct {
	Search     string
	DateFrom   string
	DateTo     string
	EmployeeID string
	CameraID   string
	Status     string
}

// Empty reports whether no criterion is active.
func (c FilterCriteria) Empty() bool {
	return c == FilterCriteria{}
}

// SearchableText is the concatenation of an entry's text fields used for
// case-insensitive substring search.
func (e AccessLogEntry) SearchableText() string {
	return e.LogID + " " + e.CameraID + " " + e.PersonID + " " +
		string(e.AccessType) + " " + string(e.AccessResult) + " " + e.Details
}
