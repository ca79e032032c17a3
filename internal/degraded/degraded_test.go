package degraded

import (
	"reflect"
	"testing"

	"github.com/aegisgate/aegis/internal/model"
)

func TestDeterministic(t *testing.T) {
	if !reflect.DeepEqual(Cameras(), Cameras()) {
		t.Error("Cameras() differs between calls")
	}
	if !reflect.DeepEqual(AccessLogs(), AccessLogs()) {
		t.Error("AccessLogs() differs between calls")
	}
	if !reflect.DeepEqual(Employees(), Employees()) {
		t.Error("Employees() differs between calls")
	}
	if Stats() != Stats() {
		t.Error("Stats() differs between calls")
	}
}

func TestCamerasSatisfyInvariants(t *testing.T) {
	valid := map[model.CameraStatus]bool{
		model.StatusOnline:  true,
		model.StatusOffline: true,
		model.StatusError:   true,
		model.StatusUnknown: true,
	}

	for _, cam := range Cameras() {
		if cam.ID == "" {
			t.Errorf("camera %+v has empty id", cam)
		}
		if cam.Name == "" || cam.Location == "" {
			t.Errorf("camera %s missing name or location", cam.ID)
		}
		if !valid[cam.Status] {
			t.Errorf("camera %s status %q outside enum", cam.ID, cam.Status)
		}
		if cam.FPS < 0 || cam.PersonCount < 0 {
			t.Errorf("camera %s has negative fps/person count", cam.ID)
		}
	}
}

func TestAccessLogsSatisfyInvariants(t *testing.T) {
	validType := map[model.AccessType]bool{
		model.AccessCardSwipe:       true,
		model.AccessFaceRecognition: true,
		model.AccessBodyRecognition: true,
		model.AccessTypeUnknown:     true,
	}
	validResult := map[model.AccessResult]bool{
		model.ResultGranted:    true,
		model.ResultDenied:     true,
		model.ResultTailgating: true,
		model.ResultUnknown:    true,
	}

	seen := map[string]bool{}
	for _, entry := range AccessLogs() {
		if entry.LogID == "" {
			t.Errorf("entry %+v has empty log id", entry)
		}
		if seen[entry.LogID] {
			t.Errorf("log id %s not unique within collection", entry.LogID)
		}
		seen[entry.LogID] = true

		if entry.Timestamp.IsZero() {
			t.Errorf("entry %s has zero timestamp", entry.LogID)
		}
		if entry.CameraID == "" || entry.PersonID == "" {
			t.Errorf("entry %s missing camera or person id", entry.LogID)
		}
		if !validType[entry.AccessType] {
			t.Errorf("entry %s access type %q outside enum", entry.LogID, entry.AccessType)
		}
		if !validResult[entry.AccessResult] {
			t.Errorf("entry %s access result %q outside enum", entry.LogID, entry.AccessResult)
		}
		if entry.Confidence != nil && (*entry.Confidence < 0 || *entry.Confidence > 1) {
			t.Errorf("entry %s confidence %v outside [0,1]", entry.LogID, *entry.Confidence)
		}
	}
}

func TestEmployeesSatisfyInvariants(t *testing.T) {
	for _, emp := range Employees() {
		if emp.ID == "" || emp.Name == "" {
			t.Errorf("employee %+v missing id or name", emp)
		}
		if emp.Status != model.EmployeeActive && emp.Status != model.EmployeeInactive {
			t.Errorf("employee %s status %q outside enum", emp.ID, emp.Status)
		}
		if emp.RegisteredDate.IsZero() {
			t.Errorf("employee %s has zero registered date", emp.ID)
		}
	}
}

func TestStatsConsistentWithCollections(t *testing.T) {
	stats := Stats()
	if stats.TotalCameras != len(Cameras()) {
		t.Errorf("TotalCameras = %d, want %d", stats.TotalCameras, len(Cameras()))
	}
	if stats.TotalEmployees != len(Employees()) {
		t.Errorf("TotalEmployees = %d, want %d", stats.TotalEmployees, len(Employees()))
	}

	var granted, denied, tailgating int
	for _, entry := range AccessLogs() {
		switch entry.AccessResult {
		case model.ResultGranted:
			granted++
		case model.ResultDenied:
			denied++
		case model.ResultTailgating:
			tailgating++
		}
	}
	if stats.AccessGranted != granted || stats.AccessDenied != denied || stats.TailgatingIncidents != tailgating {
		t.Errorf("stats counters %d/%d/%d, want %d/%d/%d from the log collection",
			stats.AccessGranted, stats.AccessDenied, stats.TailgatingIncidents,
			granted, denied, tailgating)
	}
}
