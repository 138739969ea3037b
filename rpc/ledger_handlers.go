package rpc

type ledgerParams struct {
	Token   string `json:"token"`
	Account string `json:"account"`
	Amount  string `json:"amount,omitempty"`
}

func (s *Server) handleLedgerFund(req *RPCRequest) (interface{}, *RPCError) {
	if s.ledger == nil {
		return nil, &RPCError{Code: codeServerError, Message: "ledger not configured"}
	}
	var params ledgerParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	account, rpcErr := addressParam(params.Account)
	if rpcErr != nil {
		return nil, rpcErr
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		return nil, &RPCError{Code: codeInvalidParams, Message: "invalid_params", Data: err.Error()}
	}
	if err := s.ledger.Credit(token, account, amount); err != nil {
		return nil, &RPCError{Code: codeServerError, Message: err.Error()}
	}
	return "ok", nil
}

func (s *Server) handleLedgerBalance(req *RPCRequest) (interface{}, *RPCError) {
	if s.ledger == nil {
		return nil, &RPCError{Code: codeServerError, Message: "ledger not configured"}
	}
	var params ledgerParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	token, rpcErr := addressParam(params.Token)
	if rpcErr != nil {
		return nil, rpcErr
	}
	account, rpcErr := addressParam(params.Account)
	if rpcErr != nil {
		return nil, rpcErr
	}
	balance, err := s.ledger.Balance(token, account)
	if err != nil {
		return nil, &RPCError{Code: codeServerError, Message: err.Error()}
	}
	return balance.String(), nil
}
