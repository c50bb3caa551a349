package rules

import "sync"

// Global registry instance and initialization guard.
var (
	globalRegistry *Registry
	globalOnce     sync.Once
)

// Global returns the process-wide registry, building it from the built-in
// catalog on first call. Concurrent first calls build it exactly once.
// It panics if the built-in catalog is invalid.
func Global() *Registry {
	globalOnce.Do(func() {
		reg, err := NewDefaultRegistry()
		if err != nil {
			panic(err)
		}
		globalRegistry = reg
	})
	return globalRegistry
}

// InitGlobal installs r as the global registry.
// Must be called before any call to Global() to take effect.
func InitGlobal(r *Registry) {
	globalOnce.Do(func() {
		globalRegistry = r
	})
}

// ResetGlobal resets the global registry for testing purposes.
// This is NOT thread-safe and should only be used in tests.
func ResetGlobal() {
	globalOnce = sync.Once{}
	globalRegistry = nil
}
