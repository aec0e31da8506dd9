// Package rpcad exposes a CAD application's scripting API over gRPC so that
// external processes can open, parameterize, export and query designs without
// driving the CAD GUI directly.
//
// The host application executes all scripting calls on a single privileged
// thread and its event mechanism only carries string payloads. The dispatch
// package bridges that restriction: RPC worker goroutines park a future in a
// pending registry, fire a host event with the dispatch key and wait for the
// privileged thread to deliver the result.
package rpcad

const (
	DefaultHostname     = "localhost"
	DefaultPort         = 18888
	DefaultFallbackPort = 18898
)
