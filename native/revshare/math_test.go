package revshare

import (
	"errors"
	"math/big"
	"testing"
)

func TestComputeShareTruncation(t *testing.T) {
	cases := []struct {
		amount int64
		bps    uint32
		want   int64
	}{
		{1000, 2500, 250},
		{999, 2500, 249},
		{1000, 0, 0},
		{1000, MaxBps, 1000},
		{1000, MaxBps + 1, 0},
		{-999, 2500, -249},
		{1, 1, 0},
	}
	for _, tc := range cases {
		got := ComputeShare(big.NewInt(tc.amount), tc.bps, RoundingTruncation)
		if got.Cmp(big.NewInt(tc.want)) != 0 {
			t.Errorf("ComputeShare(%d, %d) = %s, want %d", tc.amount, tc.bps, got, tc.want)
		}
	}
	if got := ComputeShare(nil, 2500, RoundingTruncation); got.Sign() != 0 {
		t.Errorf("nil amount must yield zero, got %s", got)
	}
}

func TestComputeShareHalfUp(t *testing.T) {
	cases := []struct {
		amount int64
		bps    uint32
		want   int64
	}{
		{999, 2500, 250}, // 249.75 rounds up
		{998, 2500, 250}, // 249.50 rounds away from zero
		{-999, 2500, -250},
		{1, 9999, 1}, // 0.9999 rounds to 1
		{1, 1, 0},    // 0.0001 rounds to 0
	}
	for _, tc := range cases {
		got := ComputeShare(big.NewInt(tc.amount), tc.bps, RoundingHalfUp)
		if got.Cmp(big.NewInt(tc.want)) != 0 {
			t.Errorf("ComputeShare(%d, %d) = %s, want %d", tc.amount, tc.bps, got, tc.want)
		}
	}
}

func TestComputeShareClampsToAmount(t *testing.T) {
	// Half-up may round past the amount; the clamp keeps the share within it.
	got := ComputeShare(big.NewInt(1), MaxBps, RoundingHalfUp)
	if got.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("expected clamp to 1, got %s", got)
	}
	got = ComputeShare(big.NewInt(-1), MaxBps, RoundingHalfUp)
	if got.Cmp(big.NewInt(-1)) != 0 {
		t.Fatalf("expected clamp to -1, got %s", got)
	}
}

func TestSimulateShares(t *testing.T) {
	holders := []HolderShare{
		{Holder: testAddr(0x01), ShareBps: 2500},
		{Holder: testAddr(0x02), ShareBps: 5000},
		{Holder: testAddr(0x03), ShareBps: MaxBps + 1},
	}
	total, entries := SimulateShares(big.NewInt(1000), holders, RoundingTruncation)
	if total.Cmp(big.NewInt(750)) != 0 {
		t.Fatalf("expected total 750, got %s", total)
	}
	if entries[2].Amount.Sign() != 0 {
		t.Fatalf("over-limit bps must yield zero, got %s", entries[2].Amount)
	}
}

func TestCalculateProportionalShare(t *testing.T) {
	share, err := CalculateProportionalShare(big.NewInt(10000), 5000, big.NewInt(250), big.NewInt(1000))
	if err != nil {
		t.Fatalf("CalculateProportionalShare: %v", err)
	}
	if share.Cmp(big.NewInt(1250)) != 0 {
		t.Fatalf("expected 1250, got %s", share)
	}

	if _, err := CalculateProportionalShare(big.NewInt(10000), 5000, big.NewInt(250), big.NewInt(0)); !errors.Is(err, ErrZeroTotalSupply) {
		t.Fatalf("expected ErrZeroTotalSupply, got %v", err)
	}
	if _, err := CalculateProportionalShare(big.NewInt(-1), 5000, big.NewInt(250), big.NewInt(1000)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCalculateProportionalShareRoundsDown(t *testing.T) {
	// pool = 3333; 3333 * 1 / 7 = 476.14 floors to 476.
	share, err := CalculateProportionalShare(big.NewInt(3333), MaxBps, big.NewInt(1), big.NewInt(7))
	if err != nil {
		t.Fatalf("CalculateProportionalShare: %v", err)
	}
	if share.Cmp(big.NewInt(476)) != 0 {
		t.Fatalf("expected 476, got %s", share)
	}
}

func TestSimulateDistributionSkipsIneligible(t *testing.T) {
	env := newTestEnv(t)
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)
	banned := testAddr(0x08)
	if err := env.engine.BlacklistAdd(issuerAddr, tokenAddr, banned); err != nil {
		t.Fatalf("BlacklistAdd: %v", err)
	}

	holders := []HolderShare{
		{Holder: holderAddr, ShareBps: 2500},
		{Holder: banned, ShareBps: 2500},
	}
	total, entries, err := env.engine.SimulateDistribution(issuerAddr, tokenAddr, big.NewInt(1000), holders)
	if err != nil {
		t.Fatalf("SimulateDistribution: %v", err)
	}
	if total.Cmp(big.NewInt(250)) != 0 {
		t.Fatalf("expected total 250, got %s", total)
	}
	if entries[1].Amount.Sign() != 0 {
		t.Fatalf("blacklisted holder must receive zero, got %s", entries[1].Amount)
	}
}

func TestCalculateDistributionAppliesGuardrails(t *testing.T) {
	env := newTestEnv(t)
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)

	if err := env.engine.BlacklistAdd(issuerAddr, tokenAddr, holderAddr); err != nil {
		t.Fatalf("BlacklistAdd: %v", err)
	}
	_, err := env.engine.CalculateDistribution(tokenAddr, holderAddr, big.NewInt(1000), 5000, big.NewInt(10), big.NewInt(100))
	if !errors.Is(err, ErrHolderBlacklisted) {
		t.Fatalf("expected ErrHolderBlacklisted, got %v", err)
	}

	if err := env.engine.BlacklistRemove(issuerAddr, tokenAddr, holderAddr); err != nil {
		t.Fatalf("BlacklistRemove: %v", err)
	}
	if err := env.engine.WhitelistAdd(issuerAddr, tokenAddr, testAddr(0x07)); err != nil {
		t.Fatalf("WhitelistAdd: %v", err)
	}
	_, err = env.engine.CalculateDistribution(tokenAddr, holderAddr, big.NewInt(1000), 5000, big.NewInt(10), big.NewInt(100))
	if !errors.Is(err, ErrHolderNotWhitelisted) {
		t.Fatalf("expected ErrHolderNotWhitelisted, got %v", err)
	}

	if err := env.engine.WhitelistAdd(issuerAddr, tokenAddr, holderAddr); err != nil {
		t.Fatalf("WhitelistAdd: %v", err)
	}
	share, err := env.engine.CalculateDistribution(tokenAddr, holderAddr, big.NewInt(1000), 5000, big.NewInt(10), big.NewInt(100))
	if err != nil {
		t.Fatalf("CalculateDistribution: %v", err)
	}
	if share.Cmp(big.NewInt(50)) != 0 {
		t.Fatalf("expected 50, got %s", share)
	}
}
