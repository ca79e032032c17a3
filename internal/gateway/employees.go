package gateway

import (
	"context"

	"github.com/aegisgate/aegis/internal/model"
	"github.com/aegisgate/aegis/internal/normalize"
)

// Employees fetches the registered employee roster.
func (g *Gateway) Employees(ctx context.Context) ([]model.Employee, error) {
	raw, err := g.collection(ctx, "fetch employees", "/employees", "employees", nil)
	if err != nil {
		return nil, err
	}
	return normalize.Employees(raw)
}

// CreateEmployee forwards a new employee record. The body is opaque
// pass-through; the dashboard core does not validate or shape it.
func (g *Gateway) CreateEmployee(ctx context.Context, body map[string]any) error {
	resp, err := g.request(ctx).SetBody(body).Post("/employees")
	if err != nil {
		return &TransportError{Op: "create employee", Err: err}
	}
	if resp.IsError() {
		return &TransportError{Op: "create employee", StatusCode: resp.StatusCode()}
	}
	return nil
}

// UpdateEmployee forwards an employee update.
func (g *Gateway) UpdateEmployee(ctx context.Context, id string, body map[string]any) error {
	resp, err := g.request(ctx).SetBody(body).Put("/employees/" + id)
	if err != nil {
		return &TransportError{Op: "update employee", Err: err}
	}
	if resp.IsError() {
		return &TransportError{Op: "update employee", StatusCode: resp.StatusCode()}
	}
	return nil
}

// DeleteEmployee removes an employee record.
func (g *Gateway) DeleteEmployee(ctx context.Context, id string) error {
	resp, err := g.request(ctx).Delete("/employees/" + id)
	if err != nil {
		return &TransportError{Op: "delete employee", Err: err}
	}
	if resp.IsError() {
		return &TransportError{Op: "delete employee", StatusCode: resp.StatusCode()}
	}
	return nil
}
