// Package normalize converts raw backend records of varying shape into the
// canonical entity types in internal/model. Different backend versions ship
// different field names (id vs employee_id, person_count vs personCount);
// each canonical field declares an ordered list of accepted source keys and
// the first present, non-null key wins. Nothing outside this package may
// shape raw backend JSON.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aegisgate/aegis/internal/model"
)

// now is stubbed in tests; normalization is otherwise pure.
var now = time.Now

// NormalizationError reports raw input that is not an object (or array,
// where a collection was expected). Missing or malformed individual fields
// never produce an error; they fall back to documented defaults.
type NormalizationError struct {
	Kind string
	Got  any
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize %s: raw input is %T, want object", e.Kind, e.Got)
}

// locationByID maps well-known camera ids to their installed locations for
// records that omit the location field.
var locationByID = map[string]string{
	"camera_1": "Building A - Ground Floor",
	"camera_2": "Building A - Side Door",
	"camera_3": "Building B - Loading Dock",
	"camera_4": "Parking Garage - Level 1",
}

// Camera normalizes one raw camera record.
func Camera(raw map[string]any) (model.Camera, error) {
	if raw == nil {
		return model.Camera{}, &NormalizationError{Kind: "camera", Got: raw}
	}

	id := stringField(raw, "id", "camera_id")
	cam := model.Camera{
		ID:          id,
		Name:        stringField(raw, "name"),
		Location:    stringField(raw, "location"),
		Status:      CameraStatus(stringField(raw, "status")),
		FPS:         numberField(raw, "fps"),
		PersonCount: intField(raw, "person_count", "personCount"),
		LastFrame:   timePtrField(raw, "last_frame_time", "lastFrame", "last_frame"),
		Resolution:  stringField(raw, "resolution"),
		Error:       stringField(raw, "error"),
	}

	if cam.Name == "" {
		cam.Name = displayName(id)
	}
	if cam.Location == "" {
		if loc, ok := locationByID[id]; ok {
			cam.Location = loc
		} else {
			cam.Location = "Unknown"
		}
	}
	if cam.FPS < 0 {
		cam.FPS = 0
	}
	if cam.PersonCount < 0 {
		cam.PersonCount = 0
	}
	return cam, nil
}

// Cameras normalizes a collection of raw camera records. Records that are
// not objects are skipped rather than failing the whole collection.
func Cameras(raw []any) ([]model.Camera, error) {
	out := make([]model.Camera, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		cam, err := Camera(obj)
		if err != nil {
			continue
		}
		out = append(out, cam)
	}
	return out, nil
}

// CameraHealth normalizes the /cameras/{id}/health detail payload.
func CameraHealth(raw map[string]any) (model.CameraHealth, error) {
	if raw == nil {
		return model.CameraHealth{}, &NormalizationError{Kind: "camera health", Got: raw}
	}

	h := model.CameraHealth{
		CameraID:    stringField(raw, "camera_id", "cameraId", "id"),
		Status:      CameraStatus(stringField(raw, "status")),
		Health:      stringField(raw, "health"),
		FPS:         numberField(raw, "fps"),
		PersonCount: intField(raw, "person_count", "personCount"),
		LastFrame:   timePtrField(raw, "last_frame_time", "lastFrame"),
	}
	if errs, ok := raw["errors"].([]any); ok {
		for _, e := range errs {
			if s := stringify(e); s != "" {
				h.Errors = append(h.Errors, s)
			}
		}
	}
	return h, nil
}

// Employee normalizes one raw employee record.
func Employee(raw map[string]any) (model.Employee, error) {
	if raw == nil {
		return model.Employee{}, &NormalizationError{Kind: "employee", Got: raw}
	}

	emp := model.Employee{
		ID:         stringField(raw, "id", "employee_id"),
		Name:       stringField(raw, "name"),
		Email:      stringField(raw, "email"),
		Department: stringField(raw, "department"),
		Position:   stringField(raw, "position"),
		FaceImage:  stringField(raw, "face_snapshot", "face_image", "faceImage"),
		Status:     EmployeeStatus(stringField(raw, "status")),
	}
	if emp.Name == "" {
		emp.Name = "Unknown"
	}
	if ts, ok := timeField(raw, "registered_date", "registeredDate"); ok {
		emp.RegisteredDate = ts
	} else {
		emp.RegisteredDate = now()
	}
	return emp, nil
}

// Employees normalizes a collection of raw employee records.
func Employees(raw []any) ([]model.Employee, error) {
	out := make([]model.Employee, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		emp, err := Employee(obj)
		if err != nil {
			continue
		}
		out = append(out, emp)
	}
	return out, nil
}

// AccessLog normalizes one raw access log entry.
//
// Older backend versions carried the outcome (granted/denied/tailgating)
// in the access_type field, which also names the detection method in newer
// versions. The two canonical fields stay independently sourced: a
// result-valued access_type feeds AccessResult only, and only when no
// dedicated result key is present; AccessType stays unknown for that record.
func AccessLog(raw map[string]any) (model.AccessLogEntry, error) {
	if raw == nil {
		return model.AccessLogEntry{}, &NormalizationError{Kind: "access log", Got: raw}
	}

	entry := model.AccessLogEntry{
		LogID:    stringField(raw, "id", "log_id", "logId"),
		CameraID: stringField(raw, "camera_id", "cameraId"),
		PersonID: stringField(raw, "person_id", "personId", "employee_id"),
		Details:  stringField(raw, "details"),
	}
	if entry.CameraID == "" {
		entry.CameraID = "unknown"
	}
	if entry.PersonID == "" {
		entry.PersonID = "unknown"
	}

	// Fallback of last resort, not a correctness guarantee.
	if ts, ok := timeField(raw, "timestamp", "time", "created_at"); ok {
		entry.Timestamp = ts
	} else {
		entry.Timestamp = now()
	}

	rawType := stringField(raw, "access_type", "accessType")
	rawResult := stringField(raw, "access_result", "accessResult", "result")

	entry.AccessType = AccessTypeValue(rawType)
	entry.AccessResult = AccessResultValue(rawResult)
	if rawResult == "" && entry.AccessResult == model.ResultUnknown {
		if legacy := AccessResultValue(rawType); legacy != model.ResultUnknown {
			entry.AccessResult = legacy
			entry.AccessType = model.AccessTypeUnknown
		}
	}

	if conf, ok := floatField(raw, "confidence_score", "confidenceScore", "confidence"); ok {
		if conf >= 0 && conf <= 1 {
			entry.Confidence = &conf
		}
	}
	return entry, nil
}

// AccessLogs normalizes a collection of raw access log entries.
func AccessLogs(raw []any) ([]model.AccessLogEntry, error) {
	out := make([]model.AccessLogEntry, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry, err := AccessLog(obj)
		if err != nil {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// SystemStats normalizes the /system/stats snapshot.
func SystemStats(raw map[string]any) (model.SystemStats, error) {
	if raw == nil {
		return model.SystemStats{}, &NormalizationError{Kind: "system stats", Got: raw}
	}

	stats := model.SystemStats{
		PeopleDetected:      intField(raw, "total_people_detected", "people_detected", "peopleDetected"),
		AccessGranted:       intField(raw, "granted_access", "access_granted", "accessGranted"),
		AccessDenied:        intField(raw, "denied_access", "access_denied", "accessDenied"),
		TailgatingIncidents: intField(raw, "tailgating_incidents", "tailgatingIncidents"),
		ActiveCameras:       intField(raw, "active_cameras", "activeCameras"),
		TotalCameras:        intField(raw, "total_cameras", "totalCameras"),
		TotalEmployees:      intField(raw, "total_employees", "totalEmployees"),
		SystemUptime:        stringField(raw, "system_uptime", "systemUptime", "uptime"),
	}
	if ts, ok := timeField(raw, "last_updated", "last_update", "lastUpdate"); ok {
		stats.LastUpdate = ts
	} else {
		stats.LastUpdate = now()
	}
	return stats, nil
}

// Health normalizes the liveness probe payload.
func Health(raw map[string]any) (model.Health, error) {
	if raw == nil {
		return model.Health{}, &NormalizationError{Kind: "health", Got: raw}
	}
	h := model.Health{Status: stringField(raw, "status")}
	if ts, ok := timeField(raw, "timestamp"); ok {
		h.Timestamp = ts
	} else {
		h.Timestamp = now()
	}
	return h, nil
}

// CameraStatus maps a raw status string onto the canonical enum.
func CameraStatus(raw string) model.CameraStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "online", "connected", "streaming":
		return model.StatusOnline
	case "offline", "disconnected":
		return model.StatusOffline
	case "error", "failed":
		return model.StatusError
	default:
		return model.StatusUnknown
	}
}

// EmployeeStatus maps a raw status string onto the canonical enum,
// defaulting to active.
func EmployeeStatus(raw string) model.EmployeeStatus {
	if strings.EqualFold(strings.TrimSpace(raw), "inactive") {
		return model.EmployeeInactive
	}
	return model.EmployeeActive
}

// AccessTypeValue maps a raw detection method onto the canonical enum.
func AccessTypeValue(raw string) model.AccessType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "card_swipe", "card":
		return model.AccessCardSwipe
	case "face_recognition", "face":
		return model.AccessFaceRecognition
	case "body_recognition", "body":
		return model.AccessBodyRecognition
	default:
		return model.AccessTypeUnknown
	}
}

// AccessResultValue maps a raw outcome onto the canonical enum.
func AccessResultValue(raw string) model.AccessResult {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "granted", "allowed":
		return model.ResultGranted
	case "denied", "rejected":
		return model.ResultDenied
	case "tailgating":
		return model.ResultTailgating
	default:
		return model.ResultUnknown
	}
}

// displayName derives a human-readable camera name from its id
// ("camera_1" becomes "Camera 1").
func displayName(id string) string {
	if id == "" {
		return "Camera"
	}
	parts := strings.Split(id, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// stringField returns the first present, non-null source key stringified.
func stringField(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			if s := stringify(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func numberField(raw map[string]any, keys ...string) float64 {
	f, _ := floatField(raw, keys...)
	return f
}

func floatField(raw map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f, true
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func intField(raw map[string]any, keys ...string) int {
	if f, ok := floatField(raw, keys...); ok {
		return int(f)
	}
	return 0
}

func timeField(raw map[string]any, keys ...string) (time.Time, bool) {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if ts, ok := ParseTimestamp(v); ok {
			return ts, true
		}
	}
	return time.Time{}, false
}

func timePtrField(raw map[string]any, keys ...string) *time.Time {
	if ts, ok := timeField(raw, keys...); ok {
		return &ts
	}
	return nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// Ids sometimes arrive numeric; render integers without a decimal.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	default:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return ""
}
