package rpc

import (
	"encoding/json"
	"errors"
	"math/big"

	"revora/native/revshare"
	"revora/observability/metrics"
)

type offeringParams struct {
	Issuer          string `json:"issuer"`
	Token           string `json:"token"`
	RevenueShareBps uint32 `json:"revenueShareBps,omitempty"`
	PayoutAsset     string `json:"payoutAsset,omitempty"`
}

type pageParams struct {
	Issuer string `json:"issuer"`
	Start  uint32 `json:"start"`
	Limit  uint32 `json:"limit"`
}

type depositParams struct {
	Issuer       string `json:"issuer"`
	Token        string `json:"token"`
	PaymentToken string `json:"paymentToken"`
	Amount       string `json:"amount"`
	PeriodID     uint64 `json:"periodId"`
}

type reportParams struct {
	Issuer   string `json:"issuer"`
	Token    string `json:"token"`
	Amount   string `json:"amount"`
	PeriodID uint64 `json:"periodId"`
	Override bool   `json:"override,omitempty"`
}

type holderShareParams struct {
	Issuer   string `json:"issuer,omitempty"`
	Token    string `json:"token"`
	Holder   string `json:"holder"`
	ShareBps uint32 `json:"shareBps,omitempty"`
}

type claimParams struct {
	Holder     string `json:"holder"`
	Token      string `json:"token"`
	MaxPeriods uint32 `json:"maxPeriods,omitempty"`
}

type concentrationParams struct {
	Issuer  string `json:"issuer"`
	Token   string `json:"token"`
	Bps     uint32 `json:"bps"`
	Enforce bool   `json:"enforce,omitempty"`
}

type listMemberParams struct {
	Caller string `json:"caller"`
	Token  string `json:"token"`
	Member string `json:"member"`
}

type tokenSettingParams struct {
	Issuer    string `json:"issuer"`
	Token     string `json:"token"`
	Mode      string `json:"mode,omitempty"`
	DelaySecs uint64 `json:"delaySecs,omitempty"`
	Threshold string `json:"threshold,omitempty"`
}

type transferParams struct {
	Issuer    string `json:"issuer,omitempty"`
	NewIssuer string `json:"newIssuer,omitempty"`
	Token     string `json:"token"`
}

type offeringJSON struct {
	Issuer          string `json:"issuer"`
	Token           string `json:"token"`
	RevenueShareBps uint32 `json:"revenueShareBps"`
	PayoutAsset     string `json:"payoutAsset"`
}

type claimJSON struct {
	Payout  string   `json:"payout"`
	Periods []uint64 `json:"periods"`
	Cursor  uint64   `json:"cursor"`
}

func (s *Server) registerHandlers() {
	s.handlers = map[string]handlerFunc{
		"revshare_registerOffering":       (*Server).handleRegisterOffering,
		"revshare_getOffering":            (*Server).handleGetOffering,
		"revshare_listOfferings":          (*Server).handleListOfferings,
		"revshare_getOfferingsPage":       (*Server).handleGetOfferingsPage,
		"revshare_depositRevenue":         (*Server).handleDepositRevenue,
		"revshare_reportRevenue":          (*Server).handleReportRevenue,
		"revshare_setHolderShare":         (*Server).handleSetHolderShare,
		"revshare_getHolderShare":         (*Server).handleGetHolderShare,
		"revshare_claim":                  (*Server).handleClaim,
		"revshare_getClaimable":           (*Server).handleGetClaimable,
		"revshare_getPendingPeriods":      (*Server).handleGetPendingPeriods,
		"revshare_setConcentrationLimit":  (*Server).handleSetConcentrationLimit,
		"revshare_reportConcentration":    (*Server).handleReportConcentration,
		"revshare_blacklistAdd":           (*Server).handleBlacklistAdd,
		"revshare_blacklistRemove":        (*Server).handleBlacklistRemove,
		"revshare_getBlacklist":           (*Server).handleGetBlacklist,
		"revshare_whitelistAdd":           (*Server).handleWhitelistAdd,
		"revshare_whitelistRemove":        (*Server).handleWhitelistRemove,
		"revshare_setRoundingMode":        (*Server).handleSetRoundingMode,
		"revshare_setClaimDelay":          (*Server).handleSetClaimDelay,
		"revshare_setMinRevenue":          (*Server).handleSetMinRevenue,
		"revshare_proposeIssuerTransfer":  (*Server).handleProposeTransfer,
		"revshare_acceptIssuerTransfer":   (*Server).handleAcceptTransfer,
		"revshare_cancelIssuerTransfer":   (*Server).handleCancelTransfer,
		"revshare_getAuditSummary":        (*Server).handleGetAuditSummary,
		"revshare_initialize":             (*Server).handleInitialize,
		"revshare_pause":                  (*Server).handlePause,
		"revshare_unpause":                (*Server).handleUnpause,
		"revshare_freeze":                 (*Server).handleFreeze,
		"revshare_setTestnetMode":         (*Server).handleSetTestnetMode,
		"revshare_setEventVersioning":     (*Server).handleSetEventVersioning,
		"revshare_getStatus":              (*Server).handleGetStatus,
		"ledger_fund":                     (*Server).handleLedgerFund,
		"ledger_getBalance":               (*Server).handleLedgerBalance,
	}
	s.mutating = map[string]bool{
		"revshare_registerOffering":      true,
		"revshare_depositRevenue":        true,
		"revshare_reportRevenue":         true,
		"revshare_setHolderShare":        true,
		"revshare_claim":                 true,
		"revshare_setConcentrationLimit": true,
		"revshare_reportConcentration":   true,
		"revshare_blacklistAdd":          true,
		"revshare_blacklistRemove":       true,
		"revshare_whitelistAdd":          true,
		"revshare_whitelistRemove":       true,
		"revshare_setRoundingMode":       true,
		"revshare_setClaimDelay":         true,
		"revshare_setMinRevenue":         true,
		"revshare_proposeIssuerTransfer": true,
		"revshare_acceptIssuerTransfer":  true,
		"revshare_cancelIssuerTransfer":  true,
		"revshare_initialize":            true,
		"revshare_pause":                 true,
		"revshare_unpause":               true,
		"revshare_freeze":                true,
		"revshare_setTestnetMode":        true,
		"revshare_setEventVersioning":    true,
		"ledger_fund":                    true,
	}
}

func decodeParams(req *RPCRequest, out interface{}) *RPCError {
	if len(req.Params) != 1 {
		return &RPCError{Code: codeInvalidParams, Message: "invalid_params", Data: "exactly one parameter object expected"}
	}
	if err := json.Unmarshal(req.Params[0], out); err != nil {
		return &RPCError{Code: codeInvalidParams, Message: "invalid_params", Data: err.Error()}
	}
	return nil
}

func addressParam(value string) ([20]byte, *RPCError) {
	addr, err := parseAddress(value)
	if err != nil {
		return addr, &RPCError{Code: codeInvalidParams, Message: "invalid_params", Data: err.Error()}
	}
	return addr, nil
}

func engineError(err error) *RPCError {
	reason := "server_error"
	switch {
	case errors.Is(err, revshare.ErrOfferingNotFound),
		errors.Is(err, revshare.ErrNoTransferPending):
		reason = "not_found"
	case errors.Is(err, revshare.ErrFrozen), errors.Is(err, revshare.ErrPaused):
		reason = "lifecycle"
	case errors.Is(err, revshare.ErrUnauthorized):
		reason = "unauthorized"
	case errors.Is(err, revshare.ErrPeriodAlreadyDeposited),
		errors.Is(err, revshare.ErrIssuerTransferPending),
		errors.Is(err, revshare.ErrPaymentTokenMismatch),
		errors.Is(err, revshare.ErrPayoutAssetMismatch),
		errors.Is(err, revshare.ErrOfferingExists):
		reason = "state_conflict"
	case errors.Is(err, revshare.ErrConcentrationLimitExceeded),
		errors.Is(err, revshare.ErrHolderBlacklisted),
		errors.Is(err, revshare.ErrHolderNotWhitelisted):
		reason = "guardrail"
	case errors.Is(err, revshare.ErrClaimDelayNotElapsed):
		reason = "timing"
	case errors.Is(err, revshare.ErrInvalidRevenueShareBps),
		errors.Is(err, revshare.ErrInvalidShareBps),
		errors.Is(err, revshare.ErrInvalidAmount),
		errors.Is(err, revshare.ErrBelowMinRevenueThreshold):
		reason = "validation"
	}
	metrics.Revshare().IncRejected(reason)
	return &RPCError{Code: codeServerError, Message: err.Error(), Data: reason}
}

func (s *Server) handleRegisterOffering(req *RPCRequest) (interface{}, *RPCError) {
	var params offeringParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	payout, rpcErr := addressParam(params.PayoutAsset)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.RegisterOffering(issuer, token, params.RevenueShareBps, payout); err != nil {
		return nil, engineError(err)
	}
	return "ok", nil
}

func (s *Server) handleGetOffering(req *RPCRequest) (interface{}, *RPCError) {
	var params offeringParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	offering, ok, err := s.engine.GetOffering(issuer, token)
	if err != nil {
		return nil, engineError(err)
	}
	if !ok {
		return nil, nil
	}
	return formatOffering(offering), nil
}

func (s *Server) handleListOfferings(req *RPCRequest) (interface{}, *RPCError) {
	var params offeringParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	tokens, err := s.engine.ListOfferings(issuer)
	if err != nil {
		return nil, engineError(err)
	}
	formatted := make([]string, len(tokens))
	for i, token := range tokens {
		formatted[i] = formatAddress(token)
	}
	return formatted, nil
}

func (s *Server) handleGetOfferingsPage(req *RPCRequest) (interface{}, *RPCError) {
	var params pageParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	page, next, more, err := s.engine.GetOfferingsPage(issuer, params.Start, params.Limit)
	if err != nil {
		return nil, engineError(err)
	}
	formatted := make([]offeringJSON, len(page))
	for i := range page {
		formatted[i] = formatOffering(&page[i])
	}
	result := map[string]interface{}{"offerings": formatted}
	if more {
		result["nextCursor"] = next
	}
	return result, nil
}

func (s *Server) handleDepositRevenue(req *RPCRequest) (interface{}, *RPCError) {
	var params depositParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	payment, rpcErr := addressParam(params.PaymentToken)
	if rpcErr != nil {
		return nil, rpcErr
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		return nil, &RPCError{Code: codeInvalidParams, Message: "invalid_params", Data: err.Error()}
	}
	if err := s.engine.DepositRevenue(issuer, token, payment, amount, params.PeriodID); err != nil {
		return nil, engineError(err)
	}
	metrics.Revshare().ObserveDeposit(formatAddress(token))
	return "ok", nil
}

func (s *Server) handleReportRevenue(req *RPCRequest) (interface{}, *RPCError) {
	var params reportParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		return nil, &RPCError{Code: codeInvalidParams, Message: "invalid_params", Data: err.Error()}
	}
	if err := s.engine.ReportRevenue(issuer, token, amount, params.PeriodID, params.Override); err != nil {
		return nil, engineError(err)
	}
	outcome := "initial"
	if params.Override {
		outcome = "override"
	}
	metrics.Revshare().ObserveReport(outcome)
	return "ok", nil
}

func (s *Server) handleSetHolderShare(req *RPCRequest) (interface{}, *RPCError) {
	var params holderShareParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	holder, rpcErr := addressParam(params.Holder)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.SetHolderShare(issuer, token, holder, params.ShareBps); err != nil {
		return nil, engineError(err)
	}
	return "ok", nil
}

func (s *Server) handleGetHolderShare(req *RPCRequest) (interface{}, *RPCError) {
	var params holderShareParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	holder, rpcErr := addressParam(params.Holder)
	if rpcErr != nil {
		return nil, rpcErr
	}
	bps, err := s.engine.GetHolderShare(token, holder)
	if err != nil {
		return nil, engineError(err)
	}
	return bps, nil
}

func (s *Server) handleClaim(req *RPCRequest) (interface{}, *RPCError) {
	var params claimParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	holder, rpcErr := addressParam(params.Holder)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	result, err := s.engine.Claim(holder, token, params.MaxPeriods)
	if err != nil {
		return nil, engineError(err)
	}
	payout, _ := new(big.Float).SetInt(result.Payout).Float64()
	metrics.Revshare().ObserveClaim(payout)
	return claimJSON{Payout: result.Payout.String(), Periods: result.Periods, Cursor: result.Cursor}, nil
}

func (s *Server) handleGetClaimable(req *RPCRequest) (interface{}, *RPCError) {
	var params claimParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	holder, rpcErr := addressParam(params.Holder)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	total, err := s.engine.GetClaimable(token, holder)
	if err != nil {
		return nil, engineError(err)
	}
	return total.String(), nil
}

func (s *Server) handleGetPendingPeriods(req *RPCRequest) (interface{}, *RPCError) {
	var params claimParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	holder, rpcErr := addressParam(params.Holder)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	periods, err := s.engine.GetPendingPeriods(token, holder)
	if err != nil {
		return nil, engineError(err)
	}
	return periods, nil
}

func (s *Server) handleSetConcentrationLimit(req *RPCRequest) (interface{}, *RPCError) {
	var params concentrationParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.SetConcentrationLimit(issuer, token, params.Bps, params.Enforce); err != nil {
		return nil, engineError(err)
	}
	return "ok", nil
}

func (s *Server) handleReportConcentration(req *RPCRequest) (interface{}, *RPCError) {
	var params concentrationParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.ReportConcentration(issuer, token, params.Bps); err != nil {
		return nil, engineError(err)
	}
	return "ok", nil
}

func (s *Server) handleMemberList(req *RPCRequest, apply func(caller, token, member [20]byte) error) (interface{}, *RPCError) {
	var params listMemberParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := addressParam(params.Caller)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	member, rpcErr := addressParam(params.Member)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := apply(caller, token, member); err != nil {
		return nil, engineError(err)
	}
	return "ok", nil
}

func (s *Server) handleBlacklistAdd(req *RPCRequest) (interface{}, *RPCError) {
	return s.handleMemberList(req, s.engine.BlacklistAdd)
}

func (s *Server) handleBlacklistRemove(req *RPCRequest) (interface{}, *RPCError) {
	return s.handleMemberList(req, s.engine.BlacklistRemove)
}

func (s *Server) handleWhitelistAdd(req *RPCRequest) (interface{}, *RPCError) {
	return s.handleMemberList(req, s.engine.WhitelistAdd)
}

func (s *Server) handleWhitelistRemove(req *RPCRequest) (interface{}, *RPCError) {
	return s.handleMemberList(req, s.engine.WhitelistRemove)
}

func (s *Server) handleGetBlacklist(req *RPCRequest) (interface{}, *RPCError) {
	var params offeringParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	members, err := s.engine.GetBlacklist(token)
	if err != nil {
		return nil, engineError(err)
	}
	formatted := make([]string, len(members))
	for i, member := range members {
		formatted[i] = formatAddress(member)
	}
	return formatted, nil
}

func (s *Server) handleSetRoundingMode(req *RPCRequest) (interface{}, *RPCError) {
	var params tokenSettingParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	mode := revshare.RoundingTruncation
	if params.Mode == "half_up" {
		mode = revshare.RoundingHalfUp
	}
	if err := s.engine.SetRoundingMode(issuer, token, mode); err != nil {
		return nil, engineError(err)
	}
	return "ok", nil
}

func (s *Server) handleSetClaimDelay(req *RPCRequest) (interface{}, *RPCError) {
	var params tokenSettingParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.SetClaimDelay(issuer, token, params.DelaySecs); err != nil {
		return nil, engineError(err)
	}
	return "ok", nil
}

func (s *Server) handleSetMinRevenue(req *RPCRequest) (interface{}, *RPCError) {
	var params tokenSettingParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	threshold, err := parseAmount(params.Threshold)
	if err != nil {
		return nil, &RPCError{Code: codeInvalidParams, Message: "invalid_params", Data: err.Error()}
	}
	if err := s.engine.SetMinRevenueThreshold(issuer, token, threshold); err != nil {
		return nil, engineError(err)
	}
	return "ok", nil
}

func (s *Server) handleProposeTransfer(req *RPCRequest) (interface{}, *RPCError) {
	var params transferParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	newIssuer, rpcErr := addressParam(params.NewIssuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.ProposeIssuerTransfer(issuer, token, newIssuer); err != nil {
		return nil, engineError(err)
	}
	metrics.Revshare().AddPendingTransfer(1)
	return "ok", nil
}

func (s *Server) handleAcceptTransfer(req *RPCRequest) (interface{}, *RPCError) {
	var params transferParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	newIssuer, rpcErr := addressParam(params.NewIssuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.AcceptIssuerTransfer(newIssuer, token); err != nil {
		return nil, engineError(err)
	}
	metrics.Revshare().AddPendingTransfer(-1)
	return "ok", nil
}

func (s *Server) handleCancelTransfer(req *RPCRequest) (interface{}, *RPCError) {
	var params transferParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.CancelIssuerTransfer(issuer, token); err != nil {
		return nil, engineError(err)
	}
	metrics.Revshare().AddPendingTransfer(-1)
	return "ok", nil
}

func (s *Server) handleGetAuditSummary(req *RPCRequest) (interface{}, *RPCError) {
	var params offeringParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	issuer, rpcErr := addressParam(params.Issuer)
	if rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	summary, ok, err := s.engine.GetAuditSummary(issuer, token)
	if err != nil {
		return nil, engineError(err)
	}
	if !ok {
		return nil, nil
	}
	return map[string]interface{}{
		"totalRevenue": summary.TotalRevenue.String(),
		"reportCount":  summary.ReportCount,
	}, nil
}

func formatOffering(o *revshare.Offering) offeringJSON {
	return offeringJSON{
		Issuer:          formatAddress(o.Issuer),
		Token:           formatAddress(o.Token),
		RevenueShareBps: o.RevenueShareBps,
		PayoutAsset:     formatAddress(o.PayoutAsset),
	}
}
