package container

import "errors"

var (
	// ErrAlreadyRefreshed is returned when Refresh or Register is called
	// after a refresh.
	ErrAlreadyRefreshed = errors.New("container already refreshed")
	// ErrAlreadyRegistered is returned for a duplicate component name.
	ErrAlreadyRegistered = errors.New("component already registered")
	// ErrNotFound is returned when a component does not exist.
	ErrNotFound = errors.New("component not found")
	// ErrMissingDependency is returned when a strong dependency is absent.
	ErrMissingDependency = errors.New("missing component dependency")
	// ErrCyclicDependency is returned when components depend on each other.
	ErrCyclicDependency = errors.New("cyclic component dependency")
	// ErrInitTimeout is returned when initialization exceeds its time budget.
	ErrInitTimeout = errors.New("component initialization timeout")
	// ErrNotRefreshed is returned by Start before a successful Refresh.
	ErrNotRefreshed = errors.New("container not refreshed")
	// ErrClosed is returned by operations on a closed container.
	ErrClosed = errors.New("container closed")
)
