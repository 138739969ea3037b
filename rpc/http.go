package rpc

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"revora/native/ledger"
	"revora/native/revshare"
)

const maxRequestBytes = 1 << 20 // 1 MiB

// Server exposes the revenue-share engine over JSON-RPC 2.0. Mutating methods
// require the configured bearer token; all methods share a per-client rate
// limit.
type Server struct {
	engine    *revshare.Engine
	ledger    *ledger.BookLedger
	authToken string
	logger    *slog.Logger

	mu       sync.Mutex
	visitors map[string]*rate.Limiter

	handlers map[string]handlerFunc
	mutating map[string]bool
}

type handlerFunc func(*Server, *RPCRequest) (interface{}, *RPCError)

// NewServer builds a server around the engine. An empty authToken disables
// bearer authentication.
func NewServer(engine *revshare.Engine, authToken string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		authToken: strings.TrimSpace(authToken),
		logger:    logger,
		visitors:  make(map[string]*rate.Limiter),
	}
	s.registerHandlers()
	return s
}

// SetLedger exposes the book ledger over RPC. Without it the ledger methods
// report a server error.
func (s *Server) SetLedger(l *ledger.BookLedger) { s.ledger = l }

// Start serves the RPC endpoint until the listener fails.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting JSON-RPC server", "addr", addr)
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handle)
	return http.ListenAndServe(addr, mux)
}

func clientID(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) limiter(id string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	limiter, ok := s.visitors[id]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(10), 20)
		s.visitors[id] = limiter
	}
	return limiter
}

func (s *Server) requireAuth(r *http.Request) *RPCError {
	if s.authToken == "" {
		return nil
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	token := strings.TrimPrefix(header, "Bearer ")
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
		return &RPCError{Code: codeUnauthorized, Message: "unauthorized"}
	}
	return nil
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, nil, codeInvalidRequest, "POST required", nil)
		return
	}
	if !s.limiter(clientID(r)).Allow() {
		writeError(w, http.StatusTooManyRequests, nil, codeRateLimited, "rate limited", nil)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, nil, codeParseError, "read error", nil)
		return
	}
	var req RPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, nil, codeParseError, "parse error", err.Error())
		return
	}
	handler, ok := s.handlers[req.Method]
	if !ok {
		writeError(w, http.StatusNotFound, req.ID, codeMethodNotFound, "method not found", req.Method)
		return
	}
	if s.mutating[req.Method] {
		if rpcErr := s.requireAuth(r); rpcErr != nil {
			writeError(w, http.StatusUnauthorized, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
			return
		}
	}
	result, rpcErr := handler(s, &req)
	if rpcErr != nil {
		writeError(w, http.StatusBadRequest, req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}
	writeResult(w, req.ID, result)
}

func writeResult(w http.ResponseWriter, id interface{}, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(RPCResponse{JSONRPC: jsonRPCVersion, ID: id, Result: result})
}

func writeError(w http.ResponseWriter, status int, id interface{}, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(RPCResponse{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &RPCError{Code: code, Message: message, Data: data},
	})
}
