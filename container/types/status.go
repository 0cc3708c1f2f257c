package types

// Component status constants
const (
	// StatusInactive indicates the component is registered but not initialized
	StatusInactive = "inactive"
	// StatusInitializing indicates the component is in initialization process
	StatusInitializing = "initializing"
	// StatusActive indicates the component is running normally
	StatusActive = "active"
	// StatusError indicates the component encountered an error
	StatusError = "error"
	// StatusStopped indicates the component has been stopped and cleaned up
	StatusStopped = "stopped"
)
