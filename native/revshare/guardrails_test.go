package revshare

import (
	"errors"
	"math/big"
	"testing"
)

func TestBlacklistPrecedence(t *testing.T) {
	env := newTestEnv(t)
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)

	if err := env.engine.WhitelistAdd(issuerAddr, tokenAddr, holderAddr); err != nil {
		t.Fatalf("WhitelistAdd: %v", err)
	}
	if err := env.engine.BlacklistAdd(issuerAddr, tokenAddr, holderAddr); err != nil {
		t.Fatalf("BlacklistAdd: %v", err)
	}

	eligible, err := env.engine.IsDistributionEligible(tokenAddr, holderAddr)
	if err != nil {
		t.Fatalf("IsDistributionEligible: %v", err)
	}
	if eligible {
		t.Fatal("blacklist must override whitelist membership")
	}

	if err := env.engine.BlacklistRemove(issuerAddr, tokenAddr, holderAddr); err != nil {
		t.Fatalf("BlacklistRemove: %v", err)
	}
	eligible, err = env.engine.IsDistributionEligible(tokenAddr, holderAddr)
	if err != nil || !eligible {
		t.Fatalf("expected holder eligible after blacklist removal: %v %v", eligible, err)
	}
}

func TestWhitelistRestrictsEligibility(t *testing.T) {
	env := newTestEnv(t)
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)

	// No whitelist: everyone eligible.
	eligible, err := env.engine.IsDistributionEligible(tokenAddr, holderAddr)
	if err != nil || !eligible {
		t.Fatalf("expected eligibility with empty whitelist: %v %v", eligible, err)
	}

	other := testAddr(0x07)
	if err := env.engine.WhitelistAdd(issuerAddr, tokenAddr, other); err != nil {
		t.Fatalf("WhitelistAdd: %v", err)
	}
	eligible, err = env.engine.IsDistributionEligible(tokenAddr, holderAddr)
	if err != nil {
		t.Fatalf("IsDistributionEligible: %v", err)
	}
	if eligible {
		t.Fatal("non-member must lose eligibility once a whitelist exists")
	}

	if err := env.engine.WhitelistAdd(issuerAddr, tokenAddr, holderAddr); err != nil {
		t.Fatalf("WhitelistAdd: %v", err)
	}
	eligible, err = env.engine.IsDistributionEligible(tokenAddr, holderAddr)
	if err != nil || !eligible {
		t.Fatalf("expected member eligible: %v %v", eligible, err)
	}
}

func TestBlacklistAddIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)

	if err := env.engine.BlacklistAdd(issuerAddr, tokenAddr, holderAddr); err != nil {
		t.Fatalf("BlacklistAdd: %v", err)
	}
	if err := env.engine.BlacklistAdd(issuerAddr, tokenAddr, holderAddr); err != nil {
		t.Fatalf("BlacklistAdd repeat: %v", err)
	}

	members, err := env.engine.GetBlacklist(tokenAddr)
	if err != nil {
		t.Fatalf("GetBlacklist: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected single blacklist entry, got %d", len(members))
	}
	// Both calls emit, even when the second is a no-op by effect.
	if got := len(env.emitter.byType(EventTypeBlacklistAdded)); got != 2 {
		t.Fatalf("expected 2 added events, got %d", got)
	}
}

func TestConcentrationWarnOnly(t *testing.T) {
	env := newTestEnv(t)
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)
	if err := env.engine.SetConcentrationLimit(issuerAddr, tokenAddr, 2000, false); err != nil {
		t.Fatalf("SetConcentrationLimit: %v", err)
	}

	if err := env.engine.ReportConcentration(issuerAddr, tokenAddr, 2500); err != nil {
		t.Fatalf("ReportConcentration must never fail on over-limit values: %v", err)
	}
	if got := len(env.emitter.byType(EventTypeConcentrationWarning)); got != 1 {
		t.Fatalf("expected a warning event, got %d", got)
	}

	current, ok, err := env.engine.GetCurrentConcentration(issuerAddr, tokenAddr)
	if err != nil || !ok || current != 2500 {
		t.Fatalf("GetCurrentConcentration: %d ok=%v err=%v", current, ok, err)
	}
}

func TestConcentrationEnforceBlocksReports(t *testing.T) {
	env := newTestEnv(t)
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)
	if err := env.engine.SetConcentrationLimit(issuerAddr, tokenAddr, 2000, true); err != nil {
		t.Fatalf("SetConcentrationLimit: %v", err)
	}
	if err := env.engine.ReportConcentration(issuerAddr, tokenAddr, 2500); err != nil {
		t.Fatalf("ReportConcentration: %v", err)
	}

	err := env.engine.ReportRevenue(issuerAddr, tokenAddr, big.NewInt(1000), 1, false)
	if !errors.Is(err, ErrConcentrationLimitExceeded) {
		t.Fatalf("expected ErrConcentrationLimitExceeded, got %v", err)
	}

	// Dropping below the limit unblocks reporting.
	if err := env.engine.ReportConcentration(issuerAddr, tokenAddr, 1500); err != nil {
		t.Fatalf("ReportConcentration: %v", err)
	}
	if err := env.engine.ReportRevenue(issuerAddr, tokenAddr, big.NewInt(1000), 1, false); err != nil {
		t.Fatalf("ReportRevenue: %v", err)
	}
}

func TestRoundingModeDefaultsToTruncation(t *testing.T) {
	env := newTestEnv(t)
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)

	mode, err := env.engine.GetRoundingMode(issuerAddr, tokenAddr)
	if err != nil || mode != RoundingTruncation {
		t.Fatalf("default mode: %v err=%v", mode, err)
	}

	if err := env.engine.SetRoundingMode(issuerAddr, tokenAddr, RoundingHalfUp); err != nil {
		t.Fatalf("SetRoundingMode: %v", err)
	}
	mode, err = env.engine.GetRoundingMode(issuerAddr, tokenAddr)
	if err != nil || mode != RoundingHalfUp {
		t.Fatalf("updated mode: %v err=%v", mode, err)
	}
}

func TestClaimDelayAndThreshold(t *testing.T) {
	env := newTestEnv(t)
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)

	delay, err := env.engine.GetClaimDelay(tokenAddr)
	if err != nil || delay != 0 {
		t.Fatalf("default delay: %d err=%v", delay, err)
	}
	if err := env.engine.SetClaimDelay(issuerAddr, tokenAddr, 3600); err != nil {
		t.Fatalf("SetClaimDelay: %v", err)
	}
	delay, err = env.engine.GetClaimDelay(tokenAddr)
	if err != nil || delay != 3600 {
		t.Fatalf("updated delay: %d err=%v", delay, err)
	}

	threshold, err := env.engine.GetMinRevenueThreshold(tokenAddr)
	if err != nil || threshold.Sign() != 0 {
		t.Fatalf("default threshold: %v err=%v", threshold, err)
	}
	if err := env.engine.SetMinRevenueThreshold(issuerAddr, tokenAddr, big.NewInt(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative threshold, got %v", err)
	}
	if err := env.engine.SetMinRevenueThreshold(issuerAddr, tokenAddr, big.NewInt(500)); err != nil {
		t.Fatalf("SetMinRevenueThreshold: %v", err)
	}
}

func TestIssuerSettingsRejectStaleIssuer(t *testing.T) {
	env := newTestEnv(t)
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)

	stranger := testAddr(0x09)
	if err := env.engine.SetRoundingMode(stranger, tokenAddr, RoundingHalfUp); !errors.Is(err, ErrOfferingNotFound) {
		t.Fatalf("expected ErrOfferingNotFound, got %v", err)
	}
	if err := env.engine.SetConcentrationLimit(stranger, tokenAddr, 1000, false); !errors.Is(err, ErrOfferingNotFound) {
		t.Fatalf("expected ErrOfferingNotFound, got %v", err)
	}
}
