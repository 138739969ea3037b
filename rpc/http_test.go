package rpc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"revora/core/state"
	"revora/native/ledger"
	"revora/native/revshare"
	"revora/storage"
)

const testToken = "secret-token"

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	manager := state.NewManager(storage.NewMemDB())
	book := ledger.NewBookLedger(manager)

	engine := revshare.NewEngine()
	engine.SetState(manager)
	engine.SetTransferor(book)

	server := NewServer(engine, testToken, nil)
	server.SetLedger(book)
	ts := httptest.NewServer(http.HandlerFunc(server.handle))
	t.Cleanup(ts.Close)
	return server, ts
}

func call(t *testing.T, ts *httptest.Server, token, method string, params interface{}) *RPCResponse {
	t.Helper()
	var rawParams []json.RawMessage
	if params != nil {
		encoded, err := json.Marshal(params)
		if err != nil {
			t.Fatalf("marshal params: %v", err)
		}
		rawParams = []json.RawMessage{encoded}
	}
	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": jsonRPCVersion,
		"id":      1,
		"method":  method,
		"params":  rawParams,
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, ts.URL, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	var decoded RPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return &decoded
}

const (
	testIssuer = "0x0101010101010101010101010101010101010101"
	testAsset  = "0x0202020202020202020202020202020202020202"
	testPayout = "0x0303030303030303030303030303030303030303"
)

func TestRegisterAndGetOffering(t *testing.T) {
	_, ts := newTestServer(t)

	resp := call(t, ts, testToken, "revshare_registerOffering", offeringParams{
		Issuer:          testIssuer,
		Token:           testAsset,
		RevenueShareBps: 2500,
		PayoutAsset:     testPayout,
	})
	if resp.Error != nil {
		t.Fatalf("registerOffering failed: %+v", resp.Error)
	}

	resp = call(t, ts, "", "revshare_getOffering", offeringParams{
		Issuer: testIssuer,
		Token:  testAsset,
	})
	if resp.Error != nil {
		t.Fatalf("getOffering failed: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result shape: %T", resp.Result)
	}
	if result["issuer"] != testIssuer || result["revenueShareBps"] != float64(2500) {
		t.Fatalf("unexpected offering: %v", result)
	}
}

func TestMutatingMethodRequiresAuth(t *testing.T) {
	_, ts := newTestServer(t)

	resp := call(t, ts, "", "revshare_registerOffering", offeringParams{
		Issuer:          testIssuer,
		Token:           testAsset,
		RevenueShareBps: 2500,
		PayoutAsset:     testPayout,
	})
	if resp.Error == nil || resp.Error.Code != codeUnauthorized {
		t.Fatalf("expected unauthorized error, got %+v", resp.Error)
	}

	resp = call(t, ts, "wrong-token", "revshare_registerOffering", offeringParams{
		Issuer:          testIssuer,
		Token:           testAsset,
		RevenueShareBps: 2500,
		PayoutAsset:     testPayout,
	})
	if resp.Error == nil || resp.Error.Code != codeUnauthorized {
		t.Fatalf("expected unauthorized error, got %+v", resp.Error)
	}
}

func TestMethodNotFound(t *testing.T) {
	_, ts := newTestServer(t)

	resp := call(t, ts, "", "revshare_noSuchMethod", nil)
	if resp.Error == nil || resp.Error.Code != codeMethodNotFound {
		t.Fatalf("expected method-not-found, got %+v", resp.Error)
	}
}

func TestInvalidAddressParam(t *testing.T) {
	_, ts := newTestServer(t)

	resp := call(t, ts, testToken, "revshare_registerOffering", offeringParams{
		Issuer:          "not-an-address",
		Token:           testAsset,
		RevenueShareBps: 2500,
		PayoutAsset:     testPayout,
	})
	if resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Fatalf("expected invalid-params, got %+v", resp.Error)
	}
}

func TestLedgerFundAndBalance(t *testing.T) {
	_, ts := newTestServer(t)

	resp := call(t, ts, testToken, "ledger_fund", ledgerParams{
		Token:   testPayout,
		Account: testIssuer,
		Amount:  "1000",
	})
	if resp.Error != nil {
		t.Fatalf("ledger_fund failed: %+v", resp.Error)
	}

	resp = call(t, ts, "", "ledger_getBalance", ledgerParams{
		Token:   testPayout,
		Account: testIssuer,
	})
	if resp.Error != nil {
		t.Fatalf("ledger_getBalance failed: %+v", resp.Error)
	}
	if resp.Result != "1000" {
		t.Fatalf("unexpected balance: %v", resp.Result)
	}
}
