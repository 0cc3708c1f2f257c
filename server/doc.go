// Package server is the embedded gin HTTP server. It carries the management
// endpoints (health, info, metrics, components) and the routes registered by
// container components.
package server
