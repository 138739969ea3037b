package rpc

type initializeParams struct {
	Admin  string `json:"admin"`
	Safety string `json:"safety"`
}

type lifecycleParams struct {
	Caller string `json:"caller"`
	Role   string `json:"role,omitempty"`
	Enable bool   `json:"enable,omitempty"`
}

func (s *Server) handleInitialize(req *RPCRequest) (interface{}, *RPCError) {
	var params initializeParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	admin, rpcErr := addressParam(params.Admin)
	if rpcErr != nil {
		return nil, rpcErr
	}
	safety, rpcErr := addressParam(params.Safety)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.Initialize(admin, safety); err != nil {
		return nil, engineError(err)
	}
	return "ok", nil
}

func (s *Server) handlePause(req *RPCRequest) (interface{}, *RPCError) {
	return s.lifecycleCall(req, true)
}

func (s *Server) handleUnpause(req *RPCRequest) (interface{}, *RPCError) {
	return s.lifecycleCall(req, false)
}

func (s *Server) lifecycleCall(req *RPCRequest, pause bool) (interface{}, *RPCError) {
	var params lifecycleParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := addressParam(params.Caller)
	if rpcErr != nil {
		return nil, rpcErr
	}
	var err error
	switch {
	case params.Role == "safety" && pause:
		err = s.engine.PauseSafety(caller)
	case params.Role == "safety":
		err = s.engine.UnpauseSafety(caller)
	case pause:
		err = s.engine.PauseAdmin(caller)
	default:
		err = s.engine.UnpauseAdmin(caller)
	}
	if err != nil {
		return nil, engineError(err)
	}
	return "ok", nil
}

func (s *Server) handleFreeze(req *RPCRequest) (interface{}, *RPCError) {
	var params lifecycleParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := addressParam(params.Caller)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.engine.Freeze(caller); err != nil {
		return nil, engineError(err)
	}
	return "ok", nil
}

func (s *Server) handleSetTestnetMode(req *RPCRequest) (interface{}, *RPCError) {
	return s.adminFlagCall(req, (*Server).callSetTestnetMode)
}

func (s *Server) handleSetEventVersioning(req *RPCRequest) (interface{}, *RPCError) {
	return s.adminFlagCall(req, (*Server).callSetEventVersioning)
}

func (s *Server) callSetTestnetMode(caller [20]byte, enabled bool) error {
	return s.engine.SetTestnetMode(caller, enabled)
}

func (s *Server) callSetEventVersioning(caller [20]byte, enabled bool) error {
	return s.engine.SetEventVersioning(caller, enabled)
}

func (s *Server) adminFlagCall(req *RPCRequest, apply func(*Server, [20]byte, bool) error) (interface{}, *RPCError) {
	var params lifecycleParams
	if rpcErr := decodeParams(req, &params); rpcErr != nil {
		return nil, rpcErr
	}
	caller, rpcErr := addressParam(params.Caller)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := apply(s, caller, params.Enable); err != nil {
		return nil, engineError(err)
	}
	return "ok", nil
}

func (s *Server) handleGetStatus(req *RPCRequest) (interface{}, *RPCError) {
	paused, err := s.engine.IsPaused()
	if err != nil {
		return nil, engineError(err)
	}
	frozen, err := s.engine.IsFrozen()
	if err != nil {
		return nil, engineError(err)
	}
	return map[string]bool{"paused": paused, "frozen": frozen}, nil
}
