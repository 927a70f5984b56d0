package provider

import (
	"strconv"

	"github.com/kbukum/sitekit/component"
	"github.com/kbukum/sitekit/fetch"
)

// State is the lifecycle state of a collection.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status mirrors the envelope fields consumers render from.
type Status struct {
	IsLoading bool   `json:"isLoading"`
	Err       error  `json:"-"`
	Message   string `json:"message,omitempty"`
}

func statusOf[T any](r fetch.Result[T]) Status {
	return Status{IsLoading: r.IsLoading, Err: r.Err, Message: r.Message}
}

// Snapshot is a consistent copy of a collection's state.
type Snapshot[T any] struct {
	Items  []T    `json:"items"`
	Status Status `json:"status"`
	State  State  `json:"-"`
	// Seq is the number of the load that produced this state.
	Seq uint64 `json:"seq"`
}

func healthOf(name string, s State, items int, err error) component.Health {
	h := component.Health{Name: name}
	switch s {
	case StateLoaded:
		h.Status = component.StatusHealthy
		h.Message = pluralItems(items)
	case StateFailed:
		h.Status = component.StatusUnhealthy
		if err != nil {
			h.Message = err.Error()
		}
	default:
		h.Status = component.StatusDegraded
		h.Message = s.String()
	}
	return h
}

func pluralItems(n int) string {
	if n == 1 {
		return "1 item"
	}
	return strconv.Itoa(n) + " items"
}
