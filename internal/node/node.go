// Package node defines the workflow-node contract on top of the module
// system. A node is a module that declares an input schema and can be
// executed with a set of input values, producing output values. Hosts use
// the schema to render inputs and the AlwaysStale flag to decide whether a
// node's result may ever be cached (dispatch nodes never may).
package node

import (
	"context"

	"github.com/flemzord/tgdispatch/internal/core"
)

// Node is implemented by modules in the "node" namespace.
type Node interface {
	core.Module

	// Describe returns the node's input schema. It must be constant for
	// the lifetime of the process.
	Describe() Schema

	// Run executes the node. Implementations must be safe for concurrent
	// calls and must not retain in across invocations.
	Run(ctx context.Context, in Values) (Values, error)
}

// Schema declares a node's inputs and host-facing metadata.
type Schema struct {
	// Category groups nodes in host UIs (e.g. "api/telegram").
	Category string `json:"category"`

	Required []Input `json:"required"`
	Optional []Input `json:"optional,omitempty"`

	// Returns names the output values, in order.
	Returns []string `json:"returns,omitempty"`

	// AlwaysStale marks nodes whose result must never be memoized by the
	// host. Every execution is reported with a fresh timestamp.
	AlwaysStale bool `json:"always_stale"`
}

// Input describes one node input.
type Input struct {
	Name    string `json:"name"`
	Type    Type   `json:"type"`
	Default any    `json:"default,omitempty"`
}

// Type enumerates the wire types a node input can take.
type Type string

const (
	TypeString Type = "string"
	TypeInt    Type = "int"
	TypeBool   Type = "bool"
	// TypeImage inputs arrive as base64-encoded PNG or JPEG bytes.
	TypeImage Type = "image"
)

// Registered returns all nodes currently in the module registry,
// instantiated fresh, sorted by ID. Registered modules in the "node"
// namespace that do not implement Node are skipped.
func Registered() []Node {
	var nodes []Node
	for _, info := range core.GetModulesByNamespace("node") {
		if n, ok := info.New().(Node); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
