package revshare

import (
	"bytes"
	"math/big"
	"strconv"

	"revora/core/events"
)

// SetConcentrationLimit stores the per-offering concentration guardrail.
// max_bps 0 disables the check; enforce makes over-limit revenue reports fail.
func (e *Engine) SetConcentrationLimit(issuer, token [20]byte, maxBps uint32, enforce bool) error {
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
		cfg := &ConcentrationLimitConfig{MaxBps: maxBps, Enforce: enforce}
		if err := e.state.KVPut(concentrationLimitKey(issuer, token), cfg); err != nil {
			return nil, err
		}
		ev := newEvent(EventTypeConcentrationSet, map[string]string{
			"issuer":  addrAttr(issuer),
			"token":   addrAttr(token),
			"maxBps":  strconv.FormatUint(uint64(maxBps), 10),
			"enforce": strconv.FormatBool(enforce),
		})
		return []*events.Event{ev}, nil
	})
}

// ReportConcentration records the last observed top-holder share. The call
// never fails on an over-limit value; it only emits a warning event.
func (e *Engine) ReportConcentration(issuer, token [20]byte, concentrationBps uint32) error {
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
		if err := e.state.KVPut(currentConcentrationKey(issuer, token), concentrationBps); err != nil {
			return nil, err
		}
		evts := []*events.Event{newEvent(EventTypeConcentrationReport, map[string]string{
			"issuer":      addrAttr(issuer),
			"token":       addrAttr(token),
			"reportedBps": strconv.FormatUint(uint64(concentrationBps), 10),
		})}
		limit, ok, err := e.getConcentrationLimit(issuer, token)
		if err != nil {
			return nil, err
		}
		if ok && limit.MaxBps > 0 && concentrationBps > limit.MaxBps {
			evts = append(evts, newConcentrationWarningEvent(issuer, token, concentrationBps, limit.MaxBps))
		}
		return evts, nil
	})
}

func (e *Engine) getConcentrationLimit(issuer, token [20]byte) (*ConcentrationLimitConfig, bool, error) {
	var cfg ConcentrationLimitConfig
	ok, err := e.state.KVGet(concentrationLimitKey(issuer, token), &cfg)
	if err != nil || !ok {
		return nil, false, err
	}
	return &cfg, true, nil
}

// GetConcentrationLimit returns the configured guardrail, if any.
func (e *Engine) GetConcentrationLimit(issuer, token [20]byte) (*ConcentrationLimitConfig, bool, error) {
	if e == nil || e.state == nil {
		return nil, false, errNilState
	}
	return e.getConcentrationLimit(issuer, token)
}

// GetCurrentConcentration returns the last reported top-holder share in bps.
func (e *Engine) GetCurrentConcentration(issuer, token [20]byte) (uint32, bool, error) {
	if e == nil || e.state == nil {
		return 0, false, errNilState
	}
	var bps uint32
	ok, err := e.state.KVGet(currentConcentrationKey(issuer, token), &bps)
	if err != nil || !ok {
		return 0, false, err
	}
	return bps, true, nil
}

// --- blacklist / whitelist ---

func (e *Engine) mutateMemberList(caller, token, member [20]byte, key []byte, add bool, eventType string) error {
	if err := e.guardMutation(); err != nil {
		return err
	}
	if err := e.requireAuth(caller); err != nil {
		return err
	}
	return e.inTx(func() ([]*events.Event, error) {
		list, err := e.state.KVGetList(key)
		if err != nil {
			return nil, err
		}
		if add {
			found := false
			for _, entry := range list {
				if bytes.Equal(entry, member[:]) {
					found = true
					break
				}
			}
			if !found {
				list = append(list, member[:])
			}
		} else {
			for i, entry := range list {
				if bytes.Equal(entry, member[:]) {
					list = append(list[:i], list[i+1:]...)
					break
				}
			}
		}
		if err := e.state.KVPutList(key, list); err != nil {
			return nil, err
		}
		// Re-adding a member and removing a non-member are no-ops by effect
		// but still emit events.
		return []*events.Event{newListEvent(eventType, caller, token, member)}, nil
	})
}

// BlacklistAdd adds member to token's blacklist. Idempotent.
func (e *Engine) BlacklistAdd(caller, token, member [20]byte) error {
	return e.mutateMemberList(caller, token, member, blacklistKey(token), true, EventTypeBlacklistAdded)
}

// BlacklistRemove removes member from token's blacklist. Idempotent.
func (e *Engine) BlacklistRemove(caller, token, member [20]byte) error {
	return e.mutateMemberList(caller, token, member, blacklistKey(token), false, EventTypeBlacklistRemoved)
}

// WhitelistAdd adds member to token's optional allow-list. A non-empty
// whitelist restricts distribution eligibility to its members.
func (e *Engine) WhitelistAdd(caller, token, member [20]byte) error {
	return e.mutateMemberList(caller, token, member, whitelistKey(token), true, EventTypeWhitelistAdded)
}

// WhitelistRemove removes member from token's allow-list. Idempotent.
func (e *Engine) WhitelistRemove(caller, token, member [20]byte) error {
	return e.mutateMemberList(caller, token, member, whitelistKey(token), false, EventTypeWhitelistRemoved)
}

func (e *Engine) listContains(key []byte, member [20]byte) (bool, error) {
	list, err := e.state.KVGetList(key)
	if err != nil {
		return false, err
	}
	for _, entry := range list {
		if bytes.Equal(entry, member[:]) {
			return true, nil
		}
	}
	return false, nil
}

// IsBlacklisted reports whether member is blacklisted for token.
func (e *Engine) IsBlacklisted(token, member [20]byte) (bool, error) {
	if e == nil || e.state == nil {
		return false, errNilState
	}
	return e.listContains(blacklistKey(token), member)
}

// IsWhitelisted reports whether member is on token's allow-list.
func (e *Engine) IsWhitelisted(token, member [20]byte) (bool, error) {
	if e == nil || e.state == nil {
		return false, errNilState
	}
	return e.listContains(whitelistKey(token), member)
}

// IsWhitelistEnabled reports whether token has a non-empty allow-list.
func (e *Engine) IsWhitelistEnabled(token [20]byte) (bool, error) {
	if e == nil || e.state == nil {
		return false, errNilState
	}
	list, err := e.state.KVGetList(whitelistKey(token))
	if err != nil {
		return false, err
	}
	return len(list) > 0, nil
}

// GetBlacklist returns all blacklisted principals for token.
func (e *Engine) GetBlacklist(token [20]byte) ([][20]byte, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	raw, err := e.state.KVGetList(blacklistKey(token))
	if err != nil {
		return nil, err
	}
	members := make([][20]byte, 0, len(raw))
	for _, entry := range raw {
		var member [20]byte
		copy(member[:], entry)
		members = append(members, member)
	}
	return members, nil
}

// IsDistributionEligible applies blacklist precedence: a blacklisted holder is
// never eligible, whatever the whitelist says. With a non-empty whitelist only
// its members qualify.
func (e *Engine) IsDistributionEligible(token, holder [20]byte) (bool, error) {
	blacklisted, err := e.IsBlacklisted(token, holder)
	if err != nil {
		return false, err
	}
	if blacklisted {
		return false, nil
	}
	enabled, err := e.IsWhitelistEnabled(token)
	if err != nil {
		return false, err
	}
	if !enabled {
		return true, nil
	}
	return e.IsWhitelisted(token, holder)
}

// --- rounding / delay / threshold ---

func (e *Engine) issuerSetting(issuer, token [20]byte, eventType string, attrs map[string]string, write func() error) error {
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
		if err := write(); err != nil {
			return nil, err
		}
		attrs["issuer"] = addrAttr(issuer)
		attrs["token"] = addrAttr(token)
		return []*events.Event{newEvent(eventType, attrs)}, nil
	})
}

// SetRoundingMode stores the rounding mode used for token's share math.
func (e *Engine) SetRoundingMode(issuer, token [20]byte, mode RoundingMode) error {
	return e.issuerSetting(issuer, token, EventTypeRoundingUpdated,
		map[string]string{"mode": mode.String()},
		func() error {
			return e.state.KVPut(roundingModeKey(issuer, token), uint8(mode))
		})
}

// GetRoundingMode returns the offering's rounding mode, defaulting to
// truncation.
func (e *Engine) GetRoundingMode(issuer, token [20]byte) (RoundingMode, error) {
	if e == nil || e.state == nil {
		return RoundingTruncation, errNilState
	}
	var stored uint8
	ok, err := e.state.KVGet(roundingModeKey(issuer, token), &stored)
	if err != nil || !ok {
		return RoundingTruncation, err
	}
	return RoundingMode(stored), nil
}

// SetClaimDelay sets the seconds that must elapse between a period's deposit
// and its claim eligibility.
func (e *Engine) SetClaimDelay(issuer, token [20]byte, delaySecs uint64) error {
	return e.issuerSetting(issuer, token, EventTypeClaimDelayUpdated,
		map[string]string{"delaySecs": strconv.FormatUint(delaySecs, 10)},
		func() error {
			return e.state.KVPut(claimDelayKey(token), delaySecs)
		})
}

// GetClaimDelay returns token's claim delay in seconds, defaulting to zero
// (immediate eligibility).
func (e *Engine) GetClaimDelay(token [20]byte) (uint64, error) {
	if e == nil || e.state == nil {
		return 0, errNilState
	}
	var delay uint64
	ok, err := e.state.KVGet(claimDelayKey(token), &delay)
	if err != nil || !ok {
		return 0, err
	}
	return delay, nil
}

// SetMinRevenueThreshold sets the optional floor below which deposits are
// rejected. Zero disables the floor.
func (e *Engine) SetMinRevenueThreshold(issuer, token [20]byte, threshold *big.Int) error {
	if threshold == nil || threshold.Sign() < 0 {
		return ErrInvalidAmount
	}
	return e.issuerSetting(issuer, token, EventTypeThresholdUpdated,
		map[string]string{"threshold": threshold.String()},
		func() error {
			return e.state.KVPut(minRevenueKey(token), threshold)
		})
}

// GetMinRevenueThreshold returns token's minimum-revenue floor, defaulting to
// zero.
func (e *Engine) GetMinRevenueThreshold(token [20]byte) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	threshold := new(big.Int)
	ok, err := e.state.KVGet(minRevenueKey(token), threshold)
	if err != nil || !ok {
		return big.NewInt(0), err
	}
	return threshold, nil
}
