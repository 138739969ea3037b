package revshare

import (
	"errors"
	"math/big"

	"revora/core/events"
)

// errMissingPeriodRecord marks an index entry without a backing record, which
// the write-once deposit path makes unreachable short of store corruption.
var errMissingPeriodRecord = errors.New("revshare: period record missing for indexed period")

func (e *Engine) claimCursor(token, holder [20]byte) (uint64, error) {
	var cursor uint64
	if _, err := e.state.KVGet(claimCursorKey(token, holder), &cursor); err != nil {
		return 0, err
	}
	return cursor, nil
}

// Claim pays holder its share of unclaimed periods, oldest first. Periods are
// settled strictly in deposit order: the scan stops at the first period whose
// claim delay has not elapsed, even when later periods are already eligible.
// At most maxPeriods are settled per call (0 selects the MaxClaimPeriods cap).
func (e *Engine) Claim(holder, token [20]byte, maxPeriods uint32) (*ClaimResult, error) {
	if err := e.guardMutation(); err != nil {
		return nil, err
	}
	if e.transferor == nil {
		return nil, errNilTransferor
	}
	if err := e.requireAuth(holder); err != nil {
		return nil, err
	}
	var result *ClaimResult
	err := e.inTx(func() ([]*events.Event, error) {
		blacklisted, err := e.IsBlacklisted(token, holder)
		if err != nil {
			return nil, err
		}
		if blacklisted {
			return nil, ErrHolderBlacklisted
		}
		shareBps, err := e.GetHolderShare(token, holder)
		if err != nil {
			return nil, err
		}
		if shareBps == 0 {
			return nil, ErrNoPendingClaims
		}
		ids, err := e.periodIDs(token)
		if err != nil {
			return nil, err
		}
		cursor, err := e.claimCursor(token, holder)
		if err != nil {
			return nil, err
		}
		count := uint64(len(ids))
		if cursor >= count {
			return nil, ErrNoPendingClaims
		}
		offering, ok, err := e.loadOffering(token)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrOfferingNotFound
		}
		mode, err := e.GetRoundingMode(offering.Issuer, token)
		if err != nil {
			return nil, err
		}
		delay, err := e.GetClaimDelay(token)
		if err != nil {
			return nil, err
		}
		batch := maxPeriods
		if batch == 0 || batch > MaxClaimPeriods {
			batch = MaxClaimPeriods
		}
		now := uint64(e.now())
		payout := big.NewInt(0)
		claimed := make([]uint64, 0, batch)
		next := cursor
		for next < count && uint32(len(claimed)) < batch {
			periodID := ids[next]
			record, ok, err := e.GetPeriodRecord(token, periodID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, errMissingPeriodRecord
			}
			if record.DepositedAt+delay > now {
				// FIFO: an unready period blocks everything behind it.
				break
			}
			payout.Add(payout, ComputeShare(record.Amount, shareBps, mode))
			claimed = append(claimed, periodID)
			next++
		}
		if len(claimed) == 0 {
			return nil, ErrClaimDelayNotElapsed
		}
		if payout.Sign() > 0 {
			payoutAsset := offering.PayoutAsset
			var locked [20]byte
			if ok, err := e.state.KVGet(paymentTokenKey(token), &locked); err != nil {
				return nil, err
			} else if ok {
				payoutAsset = locked
			}
			if err := e.transferor.Transfer(payoutAsset, e.custody, holder, payout); err != nil {
				return nil, err
			}
		}
		if err := e.state.KVPut(claimCursorKey(token, holder), next); err != nil {
			return nil, err
		}
		result = &ClaimResult{Payout: payout, Periods: claimed, Cursor: next}
		return []*events.Event{newClaimPaidEvent(holder, token, payout, claimed, next)}, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetPendingPeriods returns the period ids holder has not yet claimed, in
// deposit order, regardless of delay eligibility.
func (e *Engine) GetPendingPeriods(token, holder [20]byte) ([]uint64, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	ids, err := e.periodIDs(token)
	if err != nil {
		return nil, err
	}
	cursor, err := e.claimCursor(token, holder)
	if err != nil {
		return nil, err
	}
	if cursor >= uint64(len(ids)) {
		return []uint64{}, nil
	}
	pending := make([]uint64, len(ids[cursor:]))
	copy(pending, ids[cursor:])
	return pending, nil
}

// GetClaimable previews the total holder could collect across all unclaimed
// periods whose delay has elapsed. Unlike Claim it does not stop at the first
// unready period: the preview answers "how much is ready", not "how much can
// be collected in cursor order right now".
func (e *Engine) GetClaimable(token, holder [20]byte) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	blacklisted, err := e.IsBlacklisted(token, holder)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return big.NewInt(0), nil
	}
	shareBps, err := e.GetHolderShare(token, holder)
	if err != nil {
		return nil, err
	}
	if shareBps == 0 {
		return big.NewInt(0), nil
	}
	ids, err := e.periodIDs(token)
	if err != nil {
		return nil, err
	}
	cursor, err := e.claimCursor(token, holder)
	if err != nil {
		return nil, err
	}
	offering, ok, err := e.loadOffering(token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return big.NewInt(0), nil
	}
	mode, err := e.GetRoundingMode(offering.Issuer, token)
	if err != nil {
		return nil, err
	}
	delay, err := e.GetClaimDelay(token)
	if err != nil {
		return nil, err
	}
	now := uint64(e.now())
	total := big.NewInt(0)
	for _, periodID := range ids[min(cursor, uint64(len(ids))):] {
		record, ok, err := e.GetPeriodRecord(token, periodID)
		if err != nil {
			return nil, err
		}
		if !ok || record.DepositedAt+delay > now {
			continue
		}
		total.Add(total, ComputeShare(record.Amount, shareBps, mode))
	}
	return total, nil
}

// GetClaimCursor returns holder's next unclaimed period index for token.
func (e *Engine) GetClaimCursor(token, holder [20]byte) (uint64, error) {
	if e == nil || e.state == nil {
		return 0, errNilState
	}
	return e.claimCursor(token, holder)
}
