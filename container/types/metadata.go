package types

// Metadata represents the metadata of a component
type Metadata struct {
	// Name is the name of the component
	Name string `json:"name,omitempty"`
	// Version is the version of the component
	Version string `json:"version,omitempty"`
	// Dependencies are the dependencies of the component
	Dependencies []string `json:"dependencies,omitempty"`
	// Description is the description of the component
	Description string `json:"description,omitempty"`
	// Type is the type of the component, e.g. core, data, discovery
	Type string `json:"type,omitempty"`
	// Group is the group the component belongs to, e.g. sys, data
	Group string `json:"group,omitempty"`
}
