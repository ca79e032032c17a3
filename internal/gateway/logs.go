package gateway

import (
	"context"
	"strconv"

	"github.com/aegisgate/aegis/internal/model"
	"github.com/aegisgate/aegis/internal/normalize"
)

// AccessLogs fetches access events. The query mirrors the backend's filter
// parameters, but filtering is re-applied client-side regardless of what
// the server returns.
func (g *Gateway) AccessLogs(ctx context.Context, q model.LogQuery) ([]model.AccessLogEntry, error) {
	params := map[string]string{}
	if q.StartDate != "" {
		params["start_date"] = q.StartDate
	}
	if q.EndDate != "" {
		params["end_date"] = q.EndDate
	}
	if q.CameraID != "" {
		params["camera_id"] = q.CameraID
	}
	if q.PersonID != "" {
		params["person_id"] = q.PersonID
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}

	raw, err := g.collection(ctx, "fetch access logs", "/access/logs", "logs", params)
	if err != nil {
		return nil, err
	}
	return normalize.AccessLogs(raw)
}
