package revshare

import (
	"errors"
	"testing"
)

func TestInitializeOnce(t *testing.T) {
	env := newTestEnv(t)
	env.initialize(adminAddr, safetyAddr)

	err := env.engine.Initialize(adminAddr, safetyAddr)
	if !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
	if len(env.emitter.byType(EventTypeInitialized)) != 1 {
		t.Fatal("expected exactly one initialized event")
	}
}

func TestPauseGatesMutations(t *testing.T) {
	env := newTestEnv(t)
	env.initialize(adminAddr, safetyAddr)

	if err := env.engine.PauseAdmin(adminAddr); err != nil {
		t.Fatalf("PauseAdmin: %v", err)
	}
	err := env.engine.RegisterOffering(issuerAddr, tokenAddr, 2500, payoutAddr)
	if !errors.Is(err, ErrPaused) {
		t.Fatalf("expected ErrPaused, got %v", err)
	}
	paused, err := env.engine.IsPaused()
	if err != nil || !paused {
		t.Fatalf("IsPaused: %v %v", paused, err)
	}

	if err := env.engine.UnpauseAdmin(adminAddr); err != nil {
		t.Fatalf("UnpauseAdmin: %v", err)
	}
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)
}

func TestPauseRejectsNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.initialize(adminAddr, safetyAddr)

	if err := env.engine.PauseAdmin(issuerAddr); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSafetyRolePause(t *testing.T) {
	env := newTestEnv(t)
	env.initialize(adminAddr, safetyAddr)

	if err := env.engine.PauseSafety(safetyAddr); err != nil {
		t.Fatalf("PauseSafety: %v", err)
	}
	if err := env.engine.UnpauseSafety(safetyAddr); err != nil {
		t.Fatalf("UnpauseSafety: %v", err)
	}
	// Admin cannot act through the safety entry point.
	if err := env.engine.PauseSafety(adminAddr); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSafetyRoleUnsetRejectsAll(t *testing.T) {
	env := newTestEnv(t)
	env.initialize(adminAddr, [20]byte{})

	if err := env.engine.PauseSafety([20]byte{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unset safety role, got %v", err)
	}
}

func TestFreezeIsPermanent(t *testing.T) {
	env := newTestEnv(t)
	env.initialize(adminAddr, safetyAddr)

	if err := env.engine.Freeze(adminAddr); err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	frozen, err := env.engine.IsFrozen()
	if err != nil || !frozen {
		t.Fatalf("IsFrozen: %v %v", frozen, err)
	}

	if err := env.engine.RegisterOffering(issuerAddr, tokenAddr, 2500, payoutAddr); !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen, got %v", err)
	}
	if err := env.engine.UnpauseAdmin(adminAddr); !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen on unpause, got %v", err)
	}
	if err := env.engine.Freeze(adminAddr); !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen on second freeze, got %v", err)
	}
}

func TestAdminFlagsRequireInitialization(t *testing.T) {
	env := newTestEnv(t)

	if err := env.engine.SetTestnetMode(adminAddr, true); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if err := env.engine.PauseAdmin(adminAddr); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestAdminFlagsRejectNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.initialize(adminAddr, safetyAddr)

	if err := env.engine.SetEventVersioning(safetyAddr, true); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
