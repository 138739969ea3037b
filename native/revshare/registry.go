package revshare

import (
	"bytes"

	"revora/core/events"
)

// RegisterOffering records a new revenue-share relationship between issuer and
// token and sets the token's reverse index. A token can only ever belong to
// one offering; re-registration is rejected.
func (e *Engine) RegisterOffering(issuer, token [20]byte, revenueShareBps uint32, payoutAsset [20]byte) error {
	if err := e.guardMutation(); err != nil {
		return err
	}
	if err := e.requireAuth(issuer); err != nil {
		return err
	}
	cfg, _, err := e.loadSystem()
	if err != nil {
		return err
	}
	if revenueShareBps > MaxBps && !cfg.TestnetMode {
		return ErrInvalidRevenueShareBps
	}
	return e.inTx(func() ([]*events.Event, error) {
		if _, ok, err := e.loadOffering(token); err != nil {
			return nil, err
		} else if ok {
			return nil, ErrOfferingExists
		}
		offering := &Offering{
			Issuer:          issuer,
			Token:           token,
			RevenueShareBps: revenueShareBps,
			PayoutAsset:     payoutAsset,
		}
		if err := e.state.KVPut(offeringKey(token), offering); err != nil {
			return nil, err
		}
		if err := e.state.KVAppend(issuerTokensKey(issuer), token[:]); err != nil {
			return nil, err
		}
		evts := []*events.Event{newOfferingRegisteredEvent(offering)}
		if cfg.EventVersioning {
			evts = append(evts, versionedEvent(evts[0]))
		}
		return evts, nil
	})
}

// GetOffering returns the offering registered by issuer for token.
func (e *Engine) GetOffering(issuer, token [20]byte) (*Offering, bool, error) {
	offering, ok, err := e.loadOffering(token)
	if err != nil || !ok {
		return nil, false, err
	}
	if offering.Issuer != issuer {
		return nil, false, nil
	}
	return offering, true, nil
}

// CurrentIssuer resolves the issuer of record for token via the reverse index.
func (e *Engine) CurrentIssuer(token [20]byte) ([20]byte, bool, error) {
	offering, ok, err := e.loadOffering(token)
	if err != nil || !ok {
		return [20]byte{}, false, err
	}
	return offering.Issuer, true, nil
}

// GetOfferingCount returns the number of offerings registered by issuer.
func (e *Engine) GetOfferingCount(issuer [20]byte) (uint32, error) {
	if e == nil || e.state == nil {
		return 0, errNilState
	}
	tokens, err := e.state.KVGetList(issuerTokensKey(issuer))
	if err != nil {
		return 0, err
	}
	return uint32(len(tokens)), nil
}

// ListOfferings returns all offering tokens for issuer. Order follows the
// internal list, which removal compaction does not preserve.
func (e *Engine) ListOfferings(issuer [20]byte) ([][20]byte, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	raw, err := e.state.KVGetList(issuerTokensKey(issuer))
	if err != nil {
		return nil, err
	}
	tokens := make([][20]byte, 0, len(raw))
	for _, entry := range raw {
		var token [20]byte
		copy(token[:], entry)
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// GetOfferingsPage returns a page of issuer's offerings starting at start.
// limit is clamped to MaxPageLimit (0 selects the cap). The second return is
// the next cursor; false means no further results remain.
func (e *Engine) GetOfferingsPage(issuer [20]byte, start, limit uint32) ([]Offering, uint32, bool, error) {
	if e == nil || e.state == nil {
		return nil, 0, false, errNilState
	}
	raw, err := e.state.KVGetList(issuerTokensKey(issuer))
	if err != nil {
		return nil, 0, false, err
	}
	count := uint32(len(raw))
	effective := limit
	if effective == 0 || effective > MaxPageLimit {
		effective = MaxPageLimit
	}
	if start >= count {
		return []Offering{}, 0, false, nil
	}
	end := start + effective
	if end > count {
		end = count
	}
	page := make([]Offering, 0, end-start)
	for _, entry := range raw[start:end] {
		var token [20]byte
		copy(token[:], entry)
		offering, ok, err := e.loadOffering(token)
		if err != nil {
			return nil, 0, false, err
		}
		if !ok {
			continue
		}
		page = append(page, *offering)
	}
	if end < count {
		return page, end, true, nil
	}
	return page, 0, false, nil
}

// removeIssuerToken drops token from issuer's offering list via swap-with-last
// compaction. Insertion order is not preserved.
func (e *Engine) removeIssuerToken(issuer, token [20]byte) (bool, error) {
	key := issuerTokensKey(issuer)
	list, err := e.state.KVGetList(key)
	if err != nil {
		return false, err
	}
	for i, entry := range list {
		if bytes.Equal(entry, token[:]) {
			last := len(list) - 1
			list[i] = list[last]
			list = list[:last]
			return true, e.state.KVPutList(key, list)
		}
	}
	return false, nil
}
