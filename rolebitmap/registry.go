package rolebitmap

import (
	"errors"
	"sync"
)

// Registry maps role names to slot indexes within a bitmap. Slots are
// assigned by [Registry.Register] in order and are stable for the lifetime
// of the process.
type Registry struct {
	mu         sync.RWMutex
	nameToSlot map[string]int
	slotToName map[int]string
	frozen     bool
}

// NewRegistry creates an empty role [Registry].
func NewRegistry() *Registry {
	return &Registry{
		nameToSlot: make(map[string]int),
		slotToName: make(map[int]string),
	}
}

// Register assigns the next available slot to the named role. Returns the
// assigned slot index. Must be called before [Registry.Freeze].
func (r *Registry) Register(name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return -1, errors.New("registry frozen")
	}

	if name == "" {
		return -1, errors.New("role name cannot be empty")
	}

	if _, exists := r.nameToSlot[name]; exists {
		return -1, errors.New("role already registered")
	}

	nextSlot := len(r.nameToSlot)
	if nextSlot >= MaxRoles {
		return -1, errors.New("role limit exceeded")
	}

	r.nameToSlot[name] = nextSlot
	r.slotToName[nextSlot] = name

	return nextSlot, nil
}

// Roles composes the bitmap holding the direct-role bit of every named
// role. Unregistered names fail the whole composition.
func (r *Registry) Roles(names ...string) (Bitmap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var m Bitmap
	for _, name := range names {
		slot, ok := r.nameToSlot[name]
		if !ok {
			return Bitmap{}, errors.New("role not registered: " + name)
		}
		m = m.Or(Role(slot))
	}
	return m, nil
}

// Admins composes the bitmap holding the admin bit of every named role.
func (r *Registry) Admins(names ...string) (Bitmap, error) {
	m, err := r.Roles(names...)
	if err != nil {
		return Bitmap{}, err
	}
	return m.AdminOf(), nil
}

// Slot returns the slot index for the named role, or false if not
// registered.
func (r *Registry) Slot(name string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slot, ok := r.nameToSlot[name]
	return slot, ok
}

// Name returns the role name for the given slot index, or false if
// unassigned.
func (r *Registry) Name(slot int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.slotToName[slot]
	return name, ok
}

// Freeze prevents further registrations. Must be called before the
// registry is shared with running consumers.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Count returns the number of registered roles.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nameToSlot)
}
