package model

import "context"

// LogQuery holds the query parameters passed through to /access/logs.
// Filtering is still re-applied client-side regardless of what the server
// does with these.
type LogQuery struct {
	StartDate string
	EndDate   string
	CameraID  string
	PersonID  string
	Limit     int
}

// Snapshot bundles the resources the dashboard view refreshes together.
// Slots are filled independently; a nil slot means that fetch failed.
type Snapshot struct {
	Stats   *SystemStats
	Cameras []Camera
	Logs    []AccessLogEntry
}

// DataSource is the read contract the TUI consumes. The live gateway and
// test stubs both implement it.
type DataSource interface {
	Health(ctx context.Context) (Health, error)
	SystemStats(ctx context.Context) (SystemStats, error)
	Cameras(ctx context.Context) ([]Camera, error)
	Camera(ctx context.Context, id string) (Camera, error)
	CameraHealth(ctx context.Context, id string) (CameraHealth, error)
	AccessLogs(ctx context.Context, q LogQuery) ([]AccessLogEntry, error)
	Employees(ctx context.Context) ([]Employee, error)
}

// EmployeeWriter is the opaque CRUD pass-through for employee records.
// Bodies are forwarded as-is; the dashboard core does not shape them.
type EmployeeWriter interface {
	CreateEmployee(ctx context.Context, body map[string]any) error
	UpdateEmployee(ctx context.Context, id string, body map[string]any) error
	DeleteEmployee(ctx context.Context, id string) error
}
