package revshare

import "revora/core/events"

// ProposeIssuerTransfer starts the two-step relocation of token's offering to
// newIssuer. Only one proposal may be in flight per token.
func (e *Engine) ProposeIssuerTransfer(issuer, token, newIssuer [20]byte) error {
	if err := e.guardMutation(); err != nil {
		return err
	}
	return e.inTx(func() ([]*events.Event, error) {
		if _, err := e.requireCurrentIssuer(issuer, token); err != nil {
			return nil, err
		}
		if err := e.requireAuth(issuer); err != nil {
			return nil, err
		}
		pending, err := e.state.KVHas(pendingTransferKey(token))
		if err != nil {
			return nil, err
		}
		if pending {
			return nil, ErrIssuerTransferPending
		}
		if err := e.state.KVPut(pendingTransferKey(token), newIssuer); err != nil {
			return nil, err
		}
		return []*events.Event{newTransferEvent(EventTypeTransferProposed, token, issuer, newIssuer)}, nil
	})
}

// AcceptIssuerTransfer completes a pending transfer. The offering leaves the
// old issuer's list, joins the new issuer's list and the reverse index flips,
// all inside one staged write region: the relocation cannot half-apply.
func (e *Engine) AcceptIssuerTransfer(newIssuer, token [20]byte) error {
	if err := e.guardMutation(); err != nil {
		return err
	}
	return e.inTx(func() ([]*events.Event, error) {
		var proposed [20]byte
		ok, err := e.state.KVGet(pendingTransferKey(token), &proposed)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNoTransferPending
		}
		if proposed != newIssuer {
			return nil, ErrUnauthorized
		}
		if err := e.requireAuth(newIssuer); err != nil {
			return nil, err
		}
		offering, ok, err := e.loadOffering(token)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrOfferingNotFound
		}
		oldIssuer := offering.Issuer
		if _, err := e.removeIssuerToken(oldIssuer, token); err != nil {
			return nil, err
		}
		if err := e.state.KVAppend(issuerTokensKey(newIssuer), token[:]); err != nil {
			return nil, err
		}
		offering.Issuer = newIssuer
		if err := e.state.KVPut(offeringKey(token), offering); err != nil {
			return nil, err
		}
		if err := e.state.KVDelete(pendingTransferKey(token)); err != nil {
			return nil, err
		}
		return []*events.Event{newTransferEvent(EventTypeTransferAccepted, token, oldIssuer, newIssuer)}, nil
	})
}

// CancelIssuerTransfer clears a pending proposal without changing the issuer.
func (e *Engine) CancelIssuerTransfer(issuer, token [20]byte) error {
	if err := e.guardMutation(); err != nil {
		return err
	}
	return e.inTx(func() ([]*events.Event, error) {
		var proposed [20]byte
		ok, err := e.state.KVGet(pendingTransferKey(token), &proposed)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNoTransferPending
		}
		if _, err := e.requireCurrentIssuer(issuer, token); err != nil {
			return nil, err
		}
		if err := e.requireAuth(issuer); err != nil {
			return nil, err
		}
		if err := e.state.KVDelete(pendingTransferKey(token)); err != nil {
			return nil, err
		}
		return []*events.Event{newTransferEvent(EventTypeTransferCancelled, token, issuer, proposed)}, nil
	})
}

// GetPendingIssuerTransfer returns the proposed new issuer for token, if a
// transfer is in flight.
func (e *Engine) GetPendingIssuerTransfer(token [20]byte) ([20]byte, bool, error) {
	if e == nil || e.state == nil {
		return [20]byte{}, false, errNilState
	}
	var proposed [20]byte
	ok, err := e.state.KVGet(pendingTransferKey(token), &proposed)
	if err != nil || !ok {
		return [20]byte{}, false, err
	}
	return proposed, true, nil
}
