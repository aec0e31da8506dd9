package rpcad

import (
	"encoding/json"
)

// Backend is the slice of the host CAD application's scripting API this
// module consumes. Implementations are not required to be safe for
// concurrent use: the dispatch bridge guarantees every call runs on the
// host's single privileged thread.
type Backend interface {
	Parameter(name string) (Parameter, error)
	Parameters() (map[string]Parameter, error)
	SetParameter(name string, value ParameterValue) error

	OpenProject(path string) error
	SaveProject() error
	CloseProject() error
	ExportProject(path string) error

	// Undo rolls back the last count modifications.
	Undo(count int) error
	// Reload re-resolves the backend's handles to the active document and
	// re-evaluates parameter expressions.
	Reload() error
	Status() (Status, error)

	PhysicalProperties(props []PhysicalProperty, part string, accuracy Accuracy) (map[PhysicalProperty]PropertyValue, error)
}

// Status is a diagnostic snapshot of the backend.
type Status struct {
	Document   string `json:"document,omitempty"`
	Parameters int    `json:"parameters"`
}

// Command is a deferred service call used for batching: the operation id and
// its request payload, serialized so a whole batch travels in one round trip.
type Command struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}
