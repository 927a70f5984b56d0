package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a unit with a mount/unmount lifecycle.
type Component interface {
	// Name returns the name consumers resolve the component by.
	Name() string

	// Start mounts the component.
	Start(ctx context.Context) error

	// Stop unmounts the component and drops its state.
	Stop(ctx context.Context) error

	// Health reports the component's current state.
	Health(ctx context.Context) Health
}
