// Package core provides the module system foundation for tgdispatch.
package core

// ModuleID uniquely identifies a module, namespaced by dots
// (e.g. "node.telegram_send", "gateway.http").
type ModuleID string

// Namespace returns the portion of the ID before the first dot,
// or the whole ID if it has no namespace.
func (id ModuleID) Namespace() string {
	for i := 0; i < len(id); i++ {
		if id[i] == '.' {
			return string(id[:i])
		}
	}
	return string(id)
}

// Name returns the portion of the ID after the first dot,
// or the whole ID if it has no namespace.
func (id ModuleID) Name() string {
	for i := 0; i < len(id); i++ {
		if id[i] == '.' {
			return string(id[i+1:])
		}
	}
	return string(id)
}

// Module is the minimal interface every module implements.
// Optional capabilities are expressed through the lifecycle interfaces
// in lifecycle.go.
type Module interface {
	ModuleInfo() ModuleInfo
}

// ModuleInfo describes a registered module.
type ModuleInfo struct {
	// ID is the unique, namespaced module identifier.
	ID ModuleID

	// New returns a fresh, unconfigured instance of the module.
	New func() Module
}
