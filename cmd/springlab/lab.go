package main

import "github.com/epoint/springlab/container/types"

// LabApplication is the root configuration of the process. It declares no
// components of its own, so the container only runs its housekeeping.
type LabApplication struct{}

// NewLabApplication creates the root configuration
func NewLabApplication() *LabApplication {
	return &LabApplication{}
}

// Components returns the components declared by the application
func (*LabApplication) Components() []types.Interface {
	return nil
}
