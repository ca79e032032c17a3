package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aegisgate/aegis/internal/model"
)

func TestDashboardFillsFailedSlotsFromSampleData(t *testing.T) {
	p := NewDashboardPage(&stubSource{}, time.Second, time.Second)
	p.Init()

	// Stats failed; cameras survived.
	cams := []model.Camera{{ID: "camera_9", Name: "Lab Door", Status: model.StatusOnline}}
	p.Update(dashboardLoadedMsg{
		seq:  1,
		snap: model.Snapshot{Cameras: cams},
		err:  fmt.Errorf("backend returned status 503"),
	})

	if p.snap.Stats == nil {
		t.Fatal("failed stats slot was not filled")
	}
	if len(p.snap.Cameras) != 1 || p.snap.Cameras[0].ID != "camera_9" {
		t.Errorf("surviving camera slot was replaced: %+v", p.snap.Cameras)
	}
	if p.banner() == "" {
		t.Error("no degraded banner after a partial failure")
	}
}

func TestDashboardDropsStaleSnapshot(t *testing.T) {
	p := NewDashboardPage(&stubSource{}, time.Second, time.Second)
	p.Init()

	stats := model.SystemStats{TotalCameras: 2}
	p.Update(dashboardLoadedMsg{seq: 1, snap: model.Snapshot{Stats: &stats}})

	p.Update(keyMsg('r'))

	old := model.SystemStats{TotalCameras: 99}
	p.Update(dashboardLoadedMsg{seq: 1, snap: model.Snapshot{Stats: &old}})
	if p.snap.Stats.TotalCameras != 2 {
		t.Errorf("stale snapshot was applied: TotalCameras = %d", p.snap.Stats.TotalCameras)
	}
}

func TestDashboardViewRendersCounters(t *testing.T) {
	p := NewDashboardPage(&stubSource{}, time.Second, time.Second)
	p.Init()

	stats := model.SystemStats{
		PeopleDetected:      4,
		ActiveCameras:       2,
		TotalCameras:        3,
		AccessGranted:       7,
		AccessDenied:        2,
		TailgatingIncidents: 1,
		TotalEmployees:      3,
		LastUpdate:          time.Date(2025, 8, 7, 14, 30, 0, 0, time.UTC),
	}
	p.Update(dashboardLoadedMsg{seq: 1, snap: model.Snapshot{Stats: &stats}})

	view := p.View(100, 40)
	for _, want := range []string{"System Overview", "Access Outcomes", "Granted", "Tailgating"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
