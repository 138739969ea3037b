package revshare

import "math/big"

var bpsDenominator = big.NewInt(MaxBps)

// ComputeShare returns amount*bps/10000 under the given rounding mode. Any bps
// over 10000 yields zero. The result is clamped into
// [min(0, amount), max(0, amount)]: a share can never exceed the amount in
// magnitude nor flip its sign.
func ComputeShare(amount *big.Int, bps uint32, mode RoundingMode) *big.Int {
	if amount == nil || bps > MaxBps {
		return big.NewInt(0)
	}
	raw := new(big.Int).Mul(amount, big.NewInt(int64(bps)))
	share := new(big.Int)
	switch mode {
	case RoundingHalfUp:
		half := big.NewInt(MaxBps / 2)
		if raw.Sign() >= 0 {
			share.Add(raw, half)
		} else {
			share.Sub(raw, half)
		}
		share.Quo(share, bpsDenominator)
	default:
		share.Quo(raw, bpsDenominator)
	}
	lo := big.NewInt(0)
	hi := big.NewInt(0)
	if amount.Sign() < 0 {
		lo = amount
	} else {
		hi = amount
	}
	if share.Cmp(lo) < 0 {
		return new(big.Int).Set(lo)
	}
	if share.Cmp(hi) > 0 {
		return new(big.Int).Set(hi)
	}
	return share
}

// SimulateShares previews each holder's payout from amount under mode. A
// share over 10000 bps yields zero for that holder rather than failing the
// whole preview.
func SimulateShares(amount *big.Int, holders []HolderShare, mode RoundingMode) (*big.Int, []DistributionEntry) {
	total := big.NewInt(0)
	entries := make([]DistributionEntry, len(holders))
	for i, hs := range holders {
		share := ComputeShare(amount, hs.ShareBps, mode)
		entries[i] = DistributionEntry{Holder: hs.Holder, Amount: share}
		total.Add(total, share)
	}
	return total, entries
}

// CalculateTotalDistributable returns the bps-scaled revenue pool available
// for proportional distribution, rounding down.
func CalculateTotalDistributable(revenue *big.Int, poolBps uint32) *big.Int {
	return ComputeShare(revenue, poolBps, RoundingTruncation)
}

// CalculateProportionalShare splits a bps-scaled revenue pool by
// holderBalance/totalSupply. Rounds down at each step: conservative, never
// over-distributes, dust stays unclaimed.
func CalculateProportionalShare(revenue *big.Int, poolBps uint32, holderBalance, totalSupply *big.Int) (*big.Int, error) {
	if totalSupply == nil || totalSupply.Sign() <= 0 {
		return nil, ErrZeroTotalSupply
	}
	if revenue == nil || revenue.Sign() < 0 || holderBalance == nil || holderBalance.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	pool := CalculateTotalDistributable(revenue, poolBps)
	share := new(big.Int).Mul(pool, holderBalance)
	return share.Quo(share, totalSupply), nil
}

// SimulateDistribution previews a distribution of amount across holders under
// the offering's current rounding mode. Blacklisted holders receive zero.
func (e *Engine) SimulateDistribution(issuer, token [20]byte, amount *big.Int, holders []HolderShare) (*big.Int, []DistributionEntry, error) {
	if e == nil || e.state == nil {
		return nil, nil, errNilState
	}
	mode, err := e.GetRoundingMode(issuer, token)
	if err != nil {
		return nil, nil, err
	}
	total := big.NewInt(0)
	entries := make([]DistributionEntry, len(holders))
	for i, hs := range holders {
		eligible, err := e.IsDistributionEligible(token, hs.Holder)
		if err != nil {
			return nil, nil, err
		}
		share := big.NewInt(0)
		if eligible {
			share = ComputeShare(amount, hs.ShareBps, mode)
		}
		entries[i] = DistributionEntry{Holder: hs.Holder, Amount: share}
		total.Add(total, share)
	}
	return total, entries, nil
}

// CalculateDistribution computes holder's proportional payout from a revenue
// pool given its balance and the token's total supply. Blacklisted holders
// are rejected outright; with a non-empty whitelist, so are non-members.
func (e *Engine) CalculateDistribution(token, holder [20]byte, revenue *big.Int, poolBps uint32, holderBalance, totalSupply *big.Int) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	blacklisted, err := e.IsBlacklisted(token, holder)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, ErrHolderBlacklisted
	}
	enabled, err := e.IsWhitelistEnabled(token)
	if err != nil {
		return nil, err
	}
	if enabled {
		listed, err := e.IsWhitelisted(token, holder)
		if err != nil {
			return nil, err
		}
		if !listed {
			return nil, ErrHolderNotWhitelisted
		}
	}
	return CalculateProportionalShare(revenue, poolBps, holderBalance, totalSupply)
}
