package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"revora/config"
	"revora/core/events"
	"revora/core/state"
	"revora/native/ledger"
	"revora/native/revshare"
	"revora/observability/logging"
	"revora/rpc"
	"revora/storage"
)

type slogEmitter struct {
	logger *slog.Logger
}

func (e slogEmitter) Emit(ev *events.Event) {
	if ev == nil {
		return
	}
	attrs := make([]any, 0, len(ev.Attributes)*2)
	for k, v := range ev.Attributes {
		attrs = append(attrs, slog.String(k, v))
	}
	e.logger.Info(ev.Type, attrs...)
}

func parseAddress(value string) ([20]byte, error) {
	var addr [20]byte
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "0x")
	if trimmed == "" {
		return addr, fmt.Errorf("empty address")
	}
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return addr, err
	}
	if len(raw) != len(addr) {
		return addr, fmt.Errorf("invalid address length %d", len(raw))
	}
	copy(addr[:], raw)
	return addr, nil
}

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("REVORA_ENV"))
	logger := logging.Setup("revorad", env)

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := storage.NewLevelDB(cfg.DataDir)
	if err != nil {
		logger.Error("Failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	manager := state.NewManager(db)
	book := ledger.NewBookLedger(manager)

	engine := revshare.NewEngine()
	engine.SetState(manager)
	engine.SetTransferor(book)
	engine.SetEmitter(slogEmitter{logger: logger.With("component", "events")})

	if strings.TrimSpace(cfg.CustodyAddress) != "" {
		custody, err := parseAddress(cfg.CustodyAddress)
		if err != nil {
			logger.Error("Invalid custody address", slog.Any("error", err))
			os.Exit(1)
		}
		engine.SetCustody(custody)
	}

	token := ""
	if cfg.RPCTokenEnv != "" {
		token = strings.TrimSpace(os.Getenv(cfg.RPCTokenEnv))
		if token == "" {
			logger.Warn("RPC bearer token not set; mutating methods are unauthenticated",
				slog.String("env", cfg.RPCTokenEnv))
		}
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info("starting metrics server", slog.String("addr", cfg.MetricsAddress))
		if err := http.ListenAndServe(cfg.MetricsAddress, mux); err != nil {
			logger.Error("Metrics server stopped", slog.Any("error", err))
		}
	}()

	server := rpc.NewServer(engine, token, logger.With("component", "rpc"))
	server.SetLedger(book)
	logger.Info("revorad starting",
		slog.String("network", cfg.NetworkName),
		slog.String("data_dir", cfg.DataDir))
	if err := server.Start(cfg.RPCAddress); err != nil {
		logger.Error("RPC server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
