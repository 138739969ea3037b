package revshare

import "revora/core/events"

// Initialize creates the lifecycle singleton. One-time: fails once an admin is
// set. Safety may be the zero address when no safety role is delegated.
func (e *Engine) Initialize(admin, safety [20]byte) error {
	if err := e.requireAuth(admin); err != nil {
		return err
	}
	return e.inTx(func() ([]*events.Event, error) {
		if _, ok, err := e.loadSystem(); err != nil {
			return nil, err
		} else if ok {
			return nil, ErrAlreadyInitialized
		}
		cfg := SystemConfig{Admin: admin, Safety: safety}
		if err := e.state.KVPut(systemKey(), &cfg); err != nil {
			return nil, err
		}
		return []*events.Event{newLifecycleEvent(EventTypeInitialized, admin, "admin")}, nil
	})
}

type lifecycleRole uint8

const (
	roleAdmin lifecycleRole = iota
	roleSafety
)

func (r lifecycleRole) String() string {
	if r == roleSafety {
		return "safety"
	}
	return "admin"
}

// setPaused flips the Paused flag on behalf of a role holder. Pause and
// unpause deliberately skip the Paused gate; otherwise no one could unpause.
func (e *Engine) setPaused(caller [20]byte, role lifecycleRole, paused bool) error {
	return e.inTx(func() ([]*events.Event, error) {
		cfg, ok, err := e.loadSystem()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotInitialized
		}
		if cfg.Frozen {
			return nil, ErrFrozen
		}
		expected := cfg.Admin
		if role == roleSafety {
			expected = cfg.Safety
		}
		if expected == ([20]byte{}) || caller != expected {
			return nil, ErrUnauthorized
		}
		if err := e.requireAuth(caller); err != nil {
			return nil, err
		}
		cfg.Paused = paused
		if err := e.state.KVPut(systemKey(), cfg); err != nil {
			return nil, err
		}
		eventType := EventTypePaused
		if !paused {
			eventType = EventTypeUnpaused
		}
		return []*events.Event{newLifecycleEvent(eventType, caller, role.String())}, nil
	})
}

// PauseAdmin halts all mutating operations. Idempotent, admin only.
func (e *Engine) PauseAdmin(caller [20]byte) error {
	return e.setPaused(caller, roleAdmin, true)
}

// UnpauseAdmin resumes mutating operations. Idempotent, admin only.
func (e *Engine) UnpauseAdmin(caller [20]byte) error {
	return e.setPaused(caller, roleAdmin, false)
}

// PauseSafety halts all mutating operations via the safety role.
func (e *Engine) PauseSafety(caller [20]byte) error {
	return e.setPaused(caller, roleSafety, true)
}

// UnpauseSafety resumes mutating operations via the safety role.
func (e *Engine) UnpauseSafety(caller [20]byte) error {
	return e.setPaused(caller, roleSafety, false)
}

// Freeze permanently disables all mutating operations. There is no unfreeze.
func (e *Engine) Freeze(caller [20]byte) error {
	return e.inTx(func() ([]*events.Event, error) {
		cfg, ok, err := e.loadSystem()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotInitialized
		}
		if cfg.Frozen {
			return nil, ErrFrozen
		}
		if caller != cfg.Admin {
			return nil, ErrUnauthorized
		}
		if err := e.requireAuth(caller); err != nil {
			return nil, err
		}
		cfg.Frozen = true
		if err := e.state.KVPut(systemKey(), cfg); err != nil {
			return nil, err
		}
		return []*events.Event{newLifecycleEvent(EventTypeFrozen, caller, "admin")}, nil
	})
}

func (e *Engine) setAdminFlag(caller [20]byte, eventType string, apply func(*SystemConfig)) error {
	if err := e.guardMutation(); err != nil {
		return err
	}
	return e.inTx(func() ([]*events.Event, error) {
		cfg, ok, err := e.loadSystem()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotInitialized
		}
		if caller != cfg.Admin {
			return nil, ErrUnauthorized
		}
		if err := e.requireAuth(caller); err != nil {
			return nil, err
		}
		apply(cfg)
		if err := e.state.KVPut(systemKey(), cfg); err != nil {
			return nil, err
		}
		return []*events.Event{newLifecycleEvent(eventType, caller, "admin")}, nil
	})
}

// SetTestnetMode relaxes bps validation and concentration enforcement for
// non-production deployments. The storage domain stays unchanged.
func (e *Engine) SetTestnetMode(caller [20]byte, enabled bool) error {
	return e.setAdminFlag(caller, EventTypeTestnetUpdated, func(cfg *SystemConfig) {
		cfg.TestnetMode = enabled
	})
}

// SetEventVersioning toggles emission of the parallel schema-versioned event
// stream.
func (e *Engine) SetEventVersioning(caller [20]byte, enabled bool) error {
	return e.setAdminFlag(caller, EventTypeVersioningUpdated, func(cfg *SystemConfig) {
		cfg.EventVersioning = enabled
	})
}

// IsPaused reports the current pause state. Read-only, bypasses gates.
func (e *Engine) IsPaused() (bool, error) {
	cfg, _, err := e.loadSystem()
	if err != nil {
		return false, err
	}
	return cfg.Paused, nil
}

// IsFrozen reports whether the ledger is permanently frozen.
func (e *Engine) IsFrozen() (bool, error) {
	cfg, _, err := e.loadSystem()
	if err != nil {
		return false, err
	}
	return cfg.Frozen, nil
}
