package settings

import (
	"context"
	"sync"

	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
)

// InMemoryRegistry keeps registered settings and their values in process
// memory. Useful for testing and development.
type InMemoryRegistry struct {
	mu         sync.RWMutex
	registered map[string]Setting
	values     map[string]any
}

// NewInMemoryRegistry creates a new in-memory settings registry
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{
		registered: make(map[string]Setting),
		values:     make(map[string]any),
	}
}

// Register declares a setting
func (r *InMemoryRegistry) Register(ctx context.Context, setting Setting) error {
	if setting.Key == "" {
		return apperrors.InvalidArgument("setting key is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.registered[setting.Key]; exists {
		return apperrors.AlreadyExistsf("setting '%s' already registered", setting.Key)
	}

	r.registered[setting.Key] = setting
	return nil
}

// GetBool returns the current value of a boolean setting
func (r *InMemoryRegistry) GetBool(ctx context.Context, key string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	setting, exists := r.registered[key]
	if !exists {
		return false, apperrors.NotFoundf("setting '%s' not registered", key)
	}

	if value, ok := r.values[key]; ok {
		b, ok := value.(bool)
		if !ok {
			return false, apperrors.Internalf("setting '%s' holds a non-boolean value", key)
		}
		return b, nil
	}

	b, ok := setting.Default.(bool)
	if !ok {
		return false, apperrors.Internalf("setting '%s' has a non-boolean default", key)
	}
	return b, nil
}

// SetBool stores a new value for a boolean setting
func (r *InMemoryRegistry) SetBool(ctx context.Context, key string, value bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.registered[key]; !exists {
		return apperrors.NotFoundf("setting '%s' not registered", key)
	}

	r.values[key] = value
	return nil
}
