package revshare

import (
	"errors"
	"math/big"
	"time"

	"revora/core/events"
)

// EngineState is the subset of state-manager functionality the revenue-share
// engine needs. Begin/Commit/Discard delimit the all-or-nothing write region
// every mutating operation runs in.
type EngineState interface {
	KVGet(key []byte, out interface{}) (bool, error)
	KVPut(key []byte, value interface{}) error
	KVDelete(key []byte) error
	KVHas(key []byte) (bool, error)
	KVGetList(key []byte) ([][]byte, error)
	KVPutList(key []byte, values [][]byte) error
	KVAppend(key []byte, value []byte) error
	Begin() error
	Commit() error
	Discard()
}

// Authorizer is the environment's caller-authentication collaborator. A
// returned error aborts the operation before any state is written.
type Authorizer interface {
	RequireAuth(principal [20]byte) error
}

// allowAllAuthorizer defers authentication entirely to the host environment.
type allowAllAuthorizer struct{}

func (allowAllAuthorizer) RequireAuth([20]byte) error { return nil }

// TokenTransferor is the external asset-custody collaborator moving the payout
// asset between accounts. It must behave atomically: on error no value moved.
type TokenTransferor interface {
	Transfer(token, from, to [20]byte, amount *big.Int) error
}

var (
	errNilState      = errors.New("revshare: state not configured")
	errNilTransferor = errors.New("revshare: token transferor not configured")
)

// Engine wires the revenue-share ledger logic with external state, the
// authentication collaborator, the value-transfer collaborator and an event
// emitter.
type Engine struct {
	state      EngineState
	emitter    events.Emitter
	auth       Authorizer
	transferor TokenTransferor
	custody    [20]byte
	nowFn      func() int64
}

// NewEngine creates an engine with a no-op emitter and a pass-through
// authorizer. Callers override collaborators via the setters.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		auth:    allowAllAuthorizer{},
		nowFn:   func() int64 { return time.Now().Unix() },
	}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state EngineState) { e.state = state }

// SetCustody configures the account holding deposited revenue between deposit
// and claim.
func (e *Engine) SetCustody(addr [20]byte) { e.custody = addr }

// SetTransferor configures the value-transfer collaborator.
func (e *Engine) SetTransferor(t TokenTransferor) { e.transferor = t }

// SetAuthorizer configures the authentication collaborator. Passing nil resets
// it to the pass-through implementation.
func (e *Engine) SetAuthorizer(a Authorizer) {
	if a == nil {
		e.auth = allowAllAuthorizer{}
		return
	}
	e.auth = a
}

// SetEmitter configures the event emitter used by the engine. Passing nil
// resets the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetNowFunc overrides the time source used by the engine. Primarily intended
// for tests to provide deterministic timestamps.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

func (e *Engine) now() int64 {
	if e == nil || e.nowFn == nil {
		return time.Now().Unix()
	}
	return e.nowFn()
}

func (e *Engine) requireAuth(principal [20]byte) error {
	if e.auth == nil {
		return nil
	}
	return e.auth.RequireAuth(principal)
}

// inTx runs fn inside a staging region. Events returned by fn are emitted only
// after the region commits, so a failed call leaves neither state nor stream
// side effects.
func (e *Engine) inTx(fn func() ([]*events.Event, error)) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	if err := e.state.Begin(); err != nil {
		return err
	}
	evts, err := fn()
	if err != nil {
		e.state.Discard()
		return err
	}
	if err := e.state.Commit(); err != nil {
		e.state.Discard()
		return err
	}
	for _, ev := range evts {
		if ev != nil {
			e.emitter.Emit(ev)
		}
	}
	return nil
}

// loadSystem returns the lifecycle singleton. Absent means uninitialized: the
// engine then runs with neutral defaults (unpaused, unfrozen, mainnet rules).
func (e *Engine) loadSystem() (*SystemConfig, bool, error) {
	if e == nil || e.state == nil {
		return nil, false, errNilState
	}
	var cfg SystemConfig
	ok, err := e.state.KVGet(systemKey(), &cfg)
	if err != nil || !ok {
		return &SystemConfig{}, false, err
	}
	return &cfg, true, nil
}

// guardMutation enforces the lifecycle gate order: Frozen, then Paused. Every
// mutating entry point calls it before any role check.
func (e *Engine) guardMutation() error {
	cfg, _, err := e.loadSystem()
	if err != nil {
		return err
	}
	if cfg.Frozen {
		return ErrFrozen
	}
	if cfg.Paused {
		return ErrPaused
	}
	return nil
}

func (e *Engine) loadOffering(token [20]byte) (*Offering, bool, error) {
	if e == nil || e.state == nil {
		return nil, false, errNilState
	}
	var offering Offering
	ok, err := e.state.KVGet(offeringKey(token), &offering)
	if err != nil || !ok {
		return nil, false, err
	}
	return &offering, true, nil
}

// requireCurrentIssuer re-derives the issuer of record from the reverse index
// and rejects calls whose declared issuer is stale. Never trust the argument:
// a completed issuer transfer must invalidate the old issuer immediately.
func (e *Engine) requireCurrentIssuer(issuer, token [20]byte) (*Offering, error) {
	offering, ok, err := e.loadOffering(token)
	if err != nil {
		return nil, err
	}
	if !ok || offering.Issuer != issuer {
		return nil, ErrOfferingNotFound
	}
	return offering, nil
}
