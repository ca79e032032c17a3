package filter

import (
	"strings"
	"testing"
	"time"

	"github.com/aegisgate/aegis/internal/model"
)

func TestWriteCSV(t *testing.T) {
	conf := 0.954
	entries := []model.AccessLogEntry{
		{
			LogID:        "log_001",
			Timestamp:    time.Date(2025, 8, 7, 14, 30, 0, 0, time.UTC),
			CameraID:     "camera_1",
			PersonID:     "EMP001",
			AccessType:   model.AccessFaceRecognition,
			AccessResult: model.ResultGranted,
			Confidence:   &conf,
		},
		{
			LogID:        "log_002",
			Timestamp:    time.Date(2025, 8, 7, 14, 25, 0, 0, time.UTC),
			CameraID:     "camera_2",
			PersonID:     "unknown",
			AccessType:   model.AccessTypeUnknown,
			AccessResult: model.ResultDenied,
		},
	}

	var sb strings.Builder
	if err := WriteCSV(&sb, entries); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if lines[0] != "Timestamp,Camera,Person ID,Access Type,Status,Confidence" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2025-08-07T14:30:00Z,camera_1,EMP001,face_recognition,granted,95.4%" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], ",N/A") {
		t.Errorf("row 2 = %q, want N/A confidence", lines[2])
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if strings.TrimSpace(sb.String()) != "Timestamp,Camera,Person ID,Access Type,Status,Confidence" {
		t.Errorf("empty export = %q, want header only", sb.String())
	}
}
