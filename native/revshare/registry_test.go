package revshare

import (
	"errors"
	"testing"
)

func TestRegisterOffering(t *testing.T) {
	env := newTestEnv(t)
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)

	offering, ok, err := env.engine.GetOffering(issuerAddr, tokenAddr)
	if err != nil || !ok {
		t.Fatalf("GetOffering: ok=%v err=%v", ok, err)
	}
	if offering.RevenueShareBps != 2500 || offering.PayoutAsset != payoutAddr {
		t.Fatalf("unexpected offering: %+v", offering)
	}

	current, ok, err := env.engine.CurrentIssuer(tokenAddr)
	if err != nil || !ok || current != issuerAddr {
		t.Fatalf("CurrentIssuer: %x ok=%v err=%v", current, ok, err)
	}

	count, err := env.engine.GetOfferingCount(issuerAddr)
	if err != nil || count != 1 {
		t.Fatalf("GetOfferingCount: %d err=%v", count, err)
	}

	registered := env.emitter.byType(EventTypeOfferingRegistered)
	if len(registered) != 1 {
		t.Fatalf("expected one registered event, got %d", len(registered))
	}
	if registered[0].Attributes["revenueShareBps"] != "2500" {
		t.Fatalf("unexpected event attributes: %v", registered[0].Attributes)
	}
}

func TestRegisterOfferingDuplicateToken(t *testing.T) {
	env := newTestEnv(t)
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)

	err := env.engine.RegisterOffering(testAddr(0x09), tokenAddr, 1000, payoutAddr)
	if !errors.Is(err, ErrOfferingExists) {
		t.Fatalf("expected ErrOfferingExists, got %v", err)
	}
}

func TestRegisterOfferingInvalidBps(t *testing.T) {
	env := newTestEnv(t)
	err := env.engine.RegisterOffering(issuerAddr, tokenAddr, MaxBps+1, payoutAddr)
	if !errors.Is(err, ErrInvalidRevenueShareBps) {
		t.Fatalf("expected ErrInvalidRevenueShareBps, got %v", err)
	}
}

func TestRegisterOfferingTestnetRelaxesBps(t *testing.T) {
	env := newTestEnv(t)
	env.initialize(adminAddr, safetyAddr)
	if err := env.engine.SetTestnetMode(adminAddr, true); err != nil {
		t.Fatalf("SetTestnetMode: %v", err)
	}
	if err := env.engine.RegisterOffering(issuerAddr, tokenAddr, MaxBps+1, payoutAddr); err != nil {
		t.Fatalf("expected testnet mode to relax bps validation, got %v", err)
	}
}

func TestGetOfferingWrongIssuer(t *testing.T) {
	env := newTestEnv(t)
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)

	_, ok, err := env.engine.GetOffering(testAddr(0x09), tokenAddr)
	if err != nil {
		t.Fatalf("GetOffering: %v", err)
	}
	if ok {
		t.Fatal("expected lookup under wrong issuer to miss")
	}
}

func TestGetOfferingsPage(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 25; i++ {
		token := testAddr(byte(0x30 + i))
		env.register(issuerAddr, token, 100, payoutAddr)
	}

	page, next, more, err := env.engine.GetOfferingsPage(issuerAddr, 0, 0)
	if err != nil {
		t.Fatalf("GetOfferingsPage: %v", err)
	}
	if len(page) != MaxPageLimit || !more || next != MaxPageLimit {
		t.Fatalf("first page: len=%d next=%d more=%v", len(page), next, more)
	}

	page, next, more, err = env.engine.GetOfferingsPage(issuerAddr, next, 50)
	if err != nil {
		t.Fatalf("GetOfferingsPage: %v", err)
	}
	if len(page) != 5 || more || next != 0 {
		t.Fatalf("second page: len=%d next=%d more=%v", len(page), next, more)
	}

	page, _, more, err = env.engine.GetOfferingsPage(issuerAddr, 100, 5)
	if err != nil {
		t.Fatalf("GetOfferingsPage: %v", err)
	}
	if len(page) != 0 || more {
		t.Fatalf("out-of-range page: len=%d more=%v", len(page), more)
	}
}

func TestListOfferings(t *testing.T) {
	env := newTestEnv(t)
	other := testAddr(0x05)
	env.register(issuerAddr, tokenAddr, 2500, payoutAddr)
	env.register(issuerAddr, other, 1000, payoutAddr)

	tokens, err := env.engine.ListOfferings(issuerAddr)
	if err != nil {
		t.Fatalf("ListOfferings: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 offerings, got %d", len(tokens))
	}
}
