package revshare

import (
	"strconv"

	"revora/core/events"
)

// SetHolderShare assigns holder's basis-point entitlement for token's revenue
// periods. Issuer-authorized via the reverse index.
func (e *Engine) SetHolderShare(issuer, token, holder [20]byte, shareBps uint32) error {
	if err := e.guardMutation(); err != nil {
		return err
	}
	cfg, _, err := e.loadSystem()
	if err != nil {
		return err
	}
	if shareBps > MaxBps && !cfg.TestnetMode {
		return ErrInvalidShareBps
	}
	return e.inTx(func() ([]*events.Event, error) {
		if _, err := e.requireCurrentIssuer(issuer, token); err != nil {
			return nil, err
		}
		if err := e.requireAuth(issuer); err != nil {
			return nil, err
		}
		if err := e.state.KVPut(holderShareKey(token, holder), shareBps); err != nil {
			return nil, err
		}
		ev := newEvent(EventTypeHolderShareUpdated, map[string]string{
			"issuer":   addrAttr(issuer),
			"token":    addrAttr(token),
			"holder":   addrAttr(holder),
			"shareBps": strconv.FormatUint(uint64(shareBps), 10),
		})
		return []*events.Event{ev}, nil
	})
}

// GetHolderShare returns holder's entitlement in bps, defaulting to zero.
func (e *Engine) GetHolderShare(token, holder [20]byte) (uint32, error) {
	if e == nil || e.state == nil {
		return 0, errNilState
	}
	var bps uint32
	ok, err := e.state.KVGet(holderShareKey(token, holder), &bps)
	if err != nil || !ok {
		return 0, err
	}
	return bps, nil
}
