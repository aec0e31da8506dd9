package rpc

import (
	"encoding/json"
	"time"

	"github.com/dkavolis/rpcad"
)

type Empty struct{}

type ParameterRequest struct {
	Name string `json:"name"`
}

type ParameterResponse struct {
	Parameter rpcad.Parameter `json:"parameter"`
}

type ParametersResponse struct {
	Parameters map[string]rpcad.Parameter `json:"parameters"`
}

type OpenProjectRequest struct {
	Path string `json:"path"`
}

type ExportProjectRequest struct {
	Path string `json:"path"`
}

type SetParameterRequest struct {
	Name  string               `json:"name"`
	Value rpcad.ParameterValue `json:"value"`
}

type SetParametersRequest struct {
	Parameters map[string]rpcad.ParameterValue `json:"parameters"`
}

type UndoRequest struct {
	Count int `json:"count"`
}

type PhysicalPropertiesRequest struct {
	Properties []rpcad.PhysicalProperty `json:"properties"`
	Part       string                   `json:"part,omitempty"`
	Accuracy   rpcad.Accuracy           `json:"accuracy,omitempty"`
}

type PhysicalPropertiesResponse struct {
	Values map[rpcad.PhysicalProperty]rpcad.PropertyValue `json:"values"`
}

// StatusResponse is the Debug call payload: a snapshot of the host session.
type StatusResponse struct {
	Document     string    `json:"document,omitempty"`
	Parameters   int       `json:"parameters"`
	PendingCalls int       `json:"pendingCalls"`
	StartedAt    time.Time `json:"startedAt"`
}

// BatchRequest carries serialized rpcad.Command values. They stay raw so the
// server can route on the command name before deciding how to decode the
// arguments.
type BatchRequest struct {
	Commands []json.RawMessage `json:"commands"`
}

type BatchResult struct {
	Value json.RawMessage `json:"value,omitempty"`
}

type BatchResponse struct {
	Results []BatchResult `json:"results"`
}
