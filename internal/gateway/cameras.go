package gateway

import (
	"context"
	"fmt"

	"github.com/aegisgate/aegis/internal/model"
	"github.com/aegisgate/aegis/internal/normalize"
)

// Cameras fetches every configured camera. The backend may deliver a bare
// array or a map keyed by camera id; either way the result is a canonical
// array with one entry per camera.
func (g *Gateway) Cameras(ctx context.Context) ([]model.Camera, error) {
	raw, err := g.collection(ctx, "fetch cameras", "/cameras", "cameras", nil)
	if err != nil {
		return nil, err
	}
	return normalize.Cameras(raw)
}

// Camera fetches a single camera's status.
func (g *Gateway) Camera(ctx context.Context, id string) (model.Camera, error) {
	obj, err := g.object(ctx, "fetch camera status", "/cameras/"+id)
	if err != nil {
		return model.Camera{}, err
	}
	return normalize.Camera(obj)
}

// CameraHealth fetches the health detail for one camera.
func (g *Gateway) CameraHealth(ctx context.Context, id string) (model.CameraHealth, error) {
	obj, err := g.object(ctx, "fetch camera health", fmt.Sprintf("/cameras/%s/health", id))
	if err != nil {
		return model.CameraHealth{}, err
	}
	return normalize.CameraHealth(obj)
}

// StreamURL returns the playable stream locator for a camera. The resource
// behind it is not parsed by the dashboard; it is handed to the player
// as-is.
func (g *Gateway) StreamURL(id string) string {
	return g.http.BaseURL + "/cameras/" + id + "/stream"
}
