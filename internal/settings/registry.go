// Package settings is the world-scoped configuration registry. Entries are
// registered once with a default and read at use time, mirroring the host's
// settings facility.
package settings

import (
	"context"
)

// Scope says where a setting's value lives. Only world scope exists today;
// the host also has per-user scope, which this module never registers.
type Scope string

const (
	ScopeWorld Scope = "world"
)

// Setting describes one registered configuration entry.
type Setting struct {
	Key     string
	Name    string
	Hint    string
	Scope   Scope
	Default any
}

// Registry registers named typed settings and serves their current values.
type Registry interface {
	// Register declares a setting; reading an unregistered key is an error
	Register(ctx context.Context, setting Setting) error

	// GetBool returns the current value of a boolean setting
	GetBool(ctx context.Context, key string) (bool, error)

	// SetBool stores a new value for a boolean setting
	SetBool(ctx context.Context, key string, value bool) error
}
