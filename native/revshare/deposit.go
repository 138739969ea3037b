package revshare

import (
	"encoding/binary"
	"math/big"

	"revora/core/events"
)

// maxTotalRevenue bounds the saturating audit accumulator at the i128 maximum
// carried on the wire.
var maxTotalRevenue = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))

func periodIndexEntry(periodID uint64) []byte {
	entry := make([]byte, 8)
	binary.BigEndian.PutUint64(entry, periodID)
	return entry
}

// DepositRevenue records a custodial revenue deposit for one period and moves
// amount from the issuer into contract custody. Strictly write-once per
// (token, period): a duplicate period is rejected, never merged or overridden.
func (e *Engine) DepositRevenue(issuer, token, paymentToken [20]byte, amount *big.Int, periodID uint64) error {
	if err := e.guardMutation(); err != nil {
		return err
	}
	if e.transferor == nil {
		return errNilTransferor
	}
	return e.inTx(func() ([]*events.Event, error) {
		offering, err := e.requireCurrentIssuer(issuer, token)
		if err != nil {
			return nil, err
		}
		if offering.PayoutAsset != paymentToken {
			return nil, ErrPayoutAssetMismatch
		}
		if err := e.requireAuth(issuer); err != nil {
			return nil, err
		}
		exists, err := e.state.KVHas(periodRecordKey(token, periodID))
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrPeriodAlreadyDeposited
		}
		var locked [20]byte
		ok, err := e.state.KVGet(paymentTokenKey(token), &locked)
		if err != nil {
			return nil, err
		}
		if ok {
			if locked != paymentToken {
				return nil, ErrPaymentTokenMismatch
			}
		} else if err := e.state.KVPut(paymentTokenKey(token), paymentToken); err != nil {
			return nil, err
		}
		if amount == nil || amount.Sign() <= 0 {
			return nil, ErrInvalidAmount
		}
		threshold, err := e.GetMinRevenueThreshold(token)
		if err != nil {
			return nil, err
		}
		if threshold.Sign() > 0 && amount.Cmp(threshold) < 0 {
			return nil, ErrBelowMinRevenueThreshold
		}
		// Custody transfer happens inside the staging region: if it fails no
		// period record survives, if the commit fails the host aborts the call
		// as a whole.
		if err := e.transferor.Transfer(paymentToken, issuer, e.custody, amount); err != nil {
			return nil, err
		}
		now := uint64(e.now())
		record := &PeriodRecord{Amount: new(big.Int).Set(amount), DepositedAt: now}
		if err := e.state.KVPut(periodRecordKey(token, periodID), record); err != nil {
			return nil, err
		}
		if err := e.state.KVAppend(periodIndexKey(token), periodIndexEntry(periodID)); err != nil {
			return nil, err
		}
		ev := newRevenueDepositedEvent(issuer, token, paymentToken, amount, periodID, now)
		return []*events.Event{ev}, nil
	})
}

// ReportRevenue records an audit-only revenue report. It moves no funds and is
// kept fully separate from the custodial deposit ledger. A duplicate report
// without overrideExisting succeeds while only emitting a rejection event;
// callers must inspect the event stream to notice.
func (e *Engine) ReportRevenue(issuer, token [20]byte, amount *big.Int, periodID uint64, overrideExisting bool) error {
	if err := e.guardMutation(); err != nil {
		return err
	}
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	cfg, _, err := e.loadSystem()
	if err != nil {
		return err
	}
	return e.inTx(func() ([]*events.Event, error) {
		if _, err := e.requireCurrentIssuer(issuer, token); err != nil {
			return nil, err
		}
		if err := e.requireAuth(issuer); err != nil {
			return nil, err
		}
		if !cfg.TestnetMode {
			limit, ok, err := e.getConcentrationLimit(issuer, token)
			if err != nil {
				return nil, err
			}
			if ok && limit.Enforce && limit.MaxBps > 0 {
				var current uint32
				if _, err := e.state.KVGet(currentConcentrationKey(issuer, token), &current); err != nil {
					return nil, err
				}
				if current > limit.MaxBps {
					return nil, ErrConcentrationLimitExceeded
				}
			}
		}
		var prior ReportRecord
		exists, err := e.state.KVGet(reportRecordKey(token, periodID), &prior)
		if err != nil {
			return nil, err
		}
		blacklist, err := e.state.KVGetList(blacklistKey(token))
		if err != nil {
			return nil, err
		}
		if exists && !overrideExisting {
			ev := newRevenueReportedEvent(EventTypeReportRejected, issuer, token, amount, periodID, len(blacklist))
			return []*events.Event{ev}, nil
		}
		record := &ReportRecord{Amount: new(big.Int).Set(amount), ReportedAt: uint64(e.now())}
		if err := e.state.KVPut(reportRecordKey(token, periodID), record); err != nil {
			return nil, err
		}
		if err := e.accumulateAudit(issuer, token, amount); err != nil {
			return nil, err
		}
		eventType := EventTypeRevenueReported
		if exists {
			eventType = EventTypeReportOverride
		}
		ev := newRevenueReportedEvent(eventType, issuer, token, amount, periodID, len(blacklist))
		evts := []*events.Event{ev}
		if exists {
			ev.Attributes["priorAmount"] = amountAttr(prior.Amount)
		}
		if cfg.EventVersioning {
			evts = append(evts, versionedEvent(ev))
		}
		return evts, nil
	})
}

func (e *Engine) accumulateAudit(issuer, token [20]byte, amount *big.Int) error {
	key := auditSummaryKey(issuer, token)
	var summary AuditSummary
	if _, err := e.state.KVGet(key, &summary); err != nil {
		return err
	}
	s := summary.normalize()
	s.TotalRevenue = new(big.Int).Add(s.TotalRevenue, amount)
	if s.TotalRevenue.Cmp(maxTotalRevenue) > 0 {
		s.TotalRevenue = new(big.Int).Set(maxTotalRevenue)
	}
	if s.ReportCount < ^uint64(0) {
		s.ReportCount++
	}
	return e.state.KVPut(key, s)
}

// GetAuditSummary returns the cumulative report summary for an offering.
func (e *Engine) GetAuditSummary(issuer, token [20]byte) (*AuditSummary, bool, error) {
	if e == nil || e.state == nil {
		return nil, false, errNilState
	}
	var summary AuditSummary
	ok, err := e.state.KVGet(auditSummaryKey(issuer, token), &summary)
	if err != nil || !ok {
		return nil, false, err
	}
	return summary.normalize(), true, nil
}

// GetPeriodRecord returns the custodial deposit record for one period.
func (e *Engine) GetPeriodRecord(token [20]byte, periodID uint64) (*PeriodRecord, bool, error) {
	if e == nil || e.state == nil {
		return nil, false, errNilState
	}
	var record PeriodRecord
	ok, err := e.state.KVGet(periodRecordKey(token, periodID), &record)
	if err != nil || !ok {
		return nil, false, err
	}
	return &record, true, nil
}

// GetReportRecord returns the audit-only report for one period.
func (e *Engine) GetReportRecord(token [20]byte, periodID uint64) (*ReportRecord, bool, error) {
	if e == nil || e.state == nil {
		return nil, false, errNilState
	}
	var record ReportRecord
	ok, err := e.state.KVGet(reportRecordKey(token, periodID), &record)
	if err != nil || !ok {
		return nil, false, err
	}
	return &record, true, nil
}

// periodIDs returns token's deposited periods in deposit order.
func (e *Engine) periodIDs(token [20]byte) ([]uint64, error) {
	raw, err := e.state.KVGetList(periodIndexKey(token))
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(raw))
	for _, entry := range raw {
		if len(entry) != 8 {
			continue
		}
		ids = append(ids, binary.BigEndian.Uint64(entry))
	}
	return ids, nil
}

// GetPeriodCount returns the number of deposited periods for token.
func (e *Engine) GetPeriodCount(token [20]byte) (uint64, error) {
	if e == nil || e.state == nil {
		return 0, errNilState
	}
	ids, err := e.periodIDs(token)
	if err != nil {
		return 0, err
	}
	return uint64(len(ids)), nil
}
