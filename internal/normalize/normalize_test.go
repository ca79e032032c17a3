package normalize

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aegisgate/aegis/internal/model"
)

func fixedNow(t *testing.T) time.Time {
	t.Helper()
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
	return ts
}

func TestCamera_StatusEnum(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		expect model.CameraStatus
	}{
		{"lowercase online", "online", model.StatusOnline},
		{"uppercase online", "ONLINE", model.StatusOnline},
		{"mixed case", "OnLine", model.StatusOnline},
		{"offline", "offline", model.StatusOffline},
		{"error", "error", model.StatusError},
		{"unrecognized", "booting", model.StatusUnknown},
		{"missing", nil, model.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{"id": "camera_1"}
			if tt.raw != nil {
				raw["status"] = tt.raw
			}
			cam, err := Camera(raw)
			if err != nil {
				t.Fatalf("Camera: %v", err)
			}
			if cam.Status != tt.expect {
				t.Errorf("Status = %q, want %q", cam.Status, tt.expect)
			}
		})
	}
}

func TestCamera_Defaults(t *testing.T) {
	cam, err := Camera(map[string]any{"id": "camera_1"})
	if err != nil {
		t.Fatalf("Camera: %v", err)
	}

	if cam.Name != "Camera 1" {
		t.Errorf("Name = %q, want derived %q", cam.Name, "Camera 1")
	}
	if cam.Location != "Building A - Ground Floor" {
		t.Errorf("Location = %q, want lookup value", cam.Location)
	}
	if cam.FPS != 0 {
		t.Errorf("FPS = %v, want 0", cam.FPS)
	}
	if cam.PersonCount != 0 {
		t.Errorf("PersonCount = %d, want 0", cam.PersonCount)
	}
	if cam.LastFrame != nil {
		t.Errorf("LastFrame = %v, want nil", cam.LastFrame)
	}
}

func TestCamera_LegacyFieldNames(t *testing.T) {
	cam, err := Camera(map[string]any{
		"id":              "camera_2",
		"name":            "Side Entrance",
		"status":          "online",
		"fps":             24.8,
		"person_count":    float64(3),
		"last_frame_time": "2024-08-07T14:30:00Z",
	})
	if err != nil {
		t.Fatalf("Camera: %v", err)
	}

	if cam.PersonCount != 3 {
		t.Errorf("PersonCount = %d, want 3", cam.PersonCount)
	}
	if cam.LastFrame == nil || !cam.LastFrame.Equal(time.Date(2024, 8, 7, 14, 30, 0, 0, time.UTC)) {
		t.Errorf("LastFrame = %v, want 2024-08-07T14:30:00Z", cam.LastFrame)
	}
	if cam.FPS != 24.8 {
		t.Errorf("FPS = %v, want 24.8", cam.FPS)
	}
}

func TestCamera_NegativeValuesClamped(t *testing.T) {
	cam, err := Camera(map[string]any{
		"id":           "camera_1",
		"fps":          -5.0,
		"person_count": float64(-2),
	})
	if err != nil {
		t.Fatalf("Camera: %v", err)
	}
	if cam.FPS != 0 || cam.PersonCount != 0 {
		t.Errorf("got FPS=%v PersonCount=%d, want both clamped to 0", cam.FPS, cam.PersonCount)
	}
}

func TestCamera_NilInput(t *testing.T) {
	_, err := Camera(nil)
	var nerr *NormalizationError
	if !errors.As(err, &nerr) {
		t.Fatalf("err = %v, want *NormalizationError", err)
	}
}

func TestCamera_Idempotent(t *testing.T) {
	first, err := Camera(map[string]any{
		"id":     "camera_1",
		"status": "ONLINE",
		"fps":    25.5,
	})
	if err != nil {
		t.Fatalf("first Camera: %v", err)
	}

	// Re-normalize the canonical output via a JSON round trip.
	b, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	second, err := Camera(raw)
	if err != nil {
		t.Fatalf("second Camera: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-normalized camera differs:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestEmployee_Defaults(t *testing.T) {
	ts := fixedNow(t)

	emp, err := Employee(map[string]any{"employee_id": "EMP001"})
	if err != nil {
		t.Fatalf("Employee: %v", err)
	}

	if emp.ID != "EMP001" {
		t.Errorf("ID = %q, want EMP001 (from employee_id)", emp.ID)
	}
	if emp.Name != "Unknown" {
		t.Errorf("Name = %q, want Unknown", emp.Name)
	}
	if emp.Email != "" || emp.Department != "" {
		t.Errorf("Email/Department = %q/%q, want empty", emp.Email, emp.Department)
	}
	if !emp.RegisteredDate.Equal(ts) {
		t.Errorf("RegisteredDate = %v, want normalization time %v", emp.RegisteredDate, ts)
	}
	if emp.Status != model.EmployeeActive {
		t.Errorf("Status = %q, want active", emp.Status)
	}
}

func TestEmployee_FaceImageSources(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"face_snapshot wins", map[string]any{"face_snapshot": "a.png", "face_image": "b.png"}, "a.png"},
		{"face_image fallback", map[string]any{"face_image": "b.png"}, "b.png"},
		{"camelCase fallback", map[string]any{"faceImage": "c.png"}, "c.png"},
		{"null skipped", map[string]any{"face_snapshot": nil, "face_image": "b.png"}, "b.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.raw["id"] = "EMP001"
			emp, err := Employee(tt.raw)
			if err != nil {
				t.Fatalf("Employee: %v", err)
			}
			if emp.FaceImage != tt.want {
				t.Errorf("FaceImage = %q, want %q", emp.FaceImage, tt.want)
			}
		})
	}
}

func TestAccessLog_IndependentTypeAndResult(t *testing.T) {
	entry, err := AccessLog(map[string]any{
		"log_id":        "log_001",
		"access_type":   "face_recognition",
		"access_result": "granted",
	})
	if err != nil {
		t.Fatalf("AccessLog: %v", err)
	}
	if entry.AccessType != model.AccessFaceRecognition {
		t.Errorf("AccessType = %q, want face_recognition", entry.AccessType)
	}
	if entry.AccessResult != model.ResultGranted {
		t.Errorf("AccessResult = %q, want granted", entry.AccessResult)
	}
}

func TestAccessLog_LegacyOutcomeInAccessType(t *testing.T) {
	// Old backends shipped the outcome in access_type. That value feeds the
	// result only; the detection method stays unknown.
	entry, err := AccessLog(map[string]any{
		"id":          "log_004",
		"access_type": "tailgating",
	})
	if err != nil {
		t.Fatalf("AccessLog: %v", err)
	}
	if entry.AccessResult != model.ResultTailgating {
		t.Errorf("AccessResult = %q, want tailgating", entry.AccessResult)
	}
	if entry.AccessType != model.AccessTypeUnknown {
		t.Errorf("AccessType = %q, want unknown (not the outcome value)", entry.AccessType)
	}
}

func TestAccessLog_ExplicitResultWinsOverLegacy(t *testing.T) {
	entry, err := AccessLog(map[string]any{
		"id":            "log_005",
		"access_type":   "granted",
		"access_result": "denied",
	})
	if err != nil {
		t.Fatalf("AccessLog: %v", err)
	}
	if entry.AccessResult != model.ResultDenied {
		t.Errorf("AccessResult = %q, want denied (explicit key wins)", entry.AccessResult)
	}
}

func TestAccessLog_Defaults(t *testing.T) {
	ts := fixedNow(t)

	entry, err := AccessLog(map[string]any{"id": "log_001"})
	if err != nil {
		t.Fatalf("AccessLog: %v", err)
	}

	if entry.CameraID != "unknown" || entry.PersonID != "unknown" {
		t.Errorf("CameraID/PersonID = %q/%q, want unknown/unknown", entry.CameraID, entry.PersonID)
	}
	if !entry.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want normalization time %v", entry.Timestamp, ts)
	}
	if entry.AccessType != model.AccessTypeUnknown || entry.AccessResult != model.ResultUnknown {
		t.Errorf("enums = %q/%q, want unknown/unknown", entry.AccessType, entry.AccessResult)
	}
	if entry.Confidence != nil {
		t.Errorf("Confidence = %v, want nil", *entry.Confidence)
	}
}

func TestAccessLog_ConfidenceRange(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantNil bool
		want    float64
	}{
		{"in range", 0.95, false, 0.95},
		{"zero", 0.0, false, 0},
		{"one", 1.0, false, 1},
		{"above one", 1.5, true, 0},
		{"negative", -0.1, true, 0},
		{"absent", nil, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{"id": "log_1"}
			if tt.value != nil {
				raw["confidence"] = tt.value
			}
			entry, err := AccessLog(raw)
			if err != nil {
				t.Fatalf("AccessLog: %v", err)
			}
			if tt.wantNil {
				if entry.Confidence != nil {
					t.Errorf("Confidence = %v, want nil", *entry.Confidence)
				}
				return
			}
			if entry.Confidence == nil || *entry.Confidence != tt.want {
				t.Errorf("Confidence = %v, want %v", entry.Confidence, tt.want)
			}
		})
	}
}

func TestAccessLog_NumericLogID(t *testing.T) {
	entry, err := AccessLog(map[string]any{"id": float64(42)})
	if err != nil {
		t.Fatalf("AccessLog: %v", err)
	}
	if entry.LogID != "42" {
		t.Errorf("LogID = %q, want %q", entry.LogID, "42")
	}
}

func TestSystemStats_SnakeCaseCounters(t *testing.T) {
	stats, err := SystemStats(map[string]any{
		"total_people_detected": float64(4),
		"granted_access":        float64(15),
		"denied_access":         float64(7),
		"tailgating_incidents":  float64(3),
		"active_cameras":        float64(2),
		"total_cameras":         float64(3),
		"system_uptime":         "2h 15m 30s",
		"last_updated":          "2024-08-07T14:30:00Z",
	})
	if err != nil {
		t.Fatalf("SystemStats: %v", err)
	}

	if stats.PeopleDetected != 4 || stats.AccessGranted != 15 || stats.AccessDenied != 7 {
		t.Errorf("counters = %+v, want 4/15/7", stats)
	}
	if stats.TailgatingIncidents != 3 || stats.ActiveCameras != 2 || stats.TotalCameras != 3 {
		t.Errorf("counters = %+v, want 3/2/3", stats)
	}
	if stats.SystemUptime != "2h 15m 30s" {
		t.Errorf("SystemUptime = %q", stats.SystemUptime)
	}
	if stats.LastUpdate.IsZero() {
		t.Error("LastUpdate is zero, want parsed timestamp")
	}
}

func TestCollections_SkipNonObjects(t *testing.T) {
	cams, err := Cameras([]any{
		map[string]any{"id": "camera_1"},
		"not an object",
		float64(7),
		map[string]any{"id": "camera_2"},
	})
	if err != nil {
		t.Fatalf("Cameras: %v", err)
	}
	if len(cams) != 2 {
		t.Fatalf("len = %d, want 2 (non-objects skipped)", len(cams))
	}
}
