package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/powlabs/ledger/app/services/node/handlers"
	"github.com/powlabs/ledger/foundation/events"
	"github.com/powlabs/ledger/foundation/ledger/genesis"
	"github.com/powlabs/ledger/foundation/ledger/state"
	"github.com/powlabs/ledger/foundation/ledger/worker"
	"github.com/powlabs/ledger/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("NODE")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
			PublicHost      string        `conf:"default:0.0.0.0:8080"`
			PrivateHost     string        `conf:"default:0.0.0.0:9080"`
		}
		Ledger struct {
			MinerAccount string  `conf:"default:miner1"`
			GenesisFile  string
			Difficulty   int     `conf:"default:4"`
			MiningReward float64 `conf:"default:10"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	const prefix = "NODE"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Ledger Support

	// The events package provides fan-out support for the websocket event
	// stream served on the public API.
	evts := events.New()
	defer evts.Shutdown()

	// An event handler function to route events to both the logs and any
	// subscribed websocket clients.
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
		if strings.HasPrefix(s, "database: Mine") || strings.HasPrefix(s, "state:") {
			evts.Send(s)
		}
	}

	// Load the chain settings from the genesis file when one is provided,
	// otherwise they come from the configuration.
	gen := genesis.Genesis{
		Difficulty:   cfg.Ledger.Difficulty,
		MiningReward: cfg.Ledger.MiningReward,
	}
	if cfg.Ledger.GenesisFile != "" {
		gen, err = genesis.Load(cfg.Ledger.GenesisFile)
		if err != nil {
			return fmt.Errorf("loading genesis file: %w", err)
		}
	}

	// Construct the chain. This synchronously mines the genesis block, so
	// startup time is a function of the difficulty.
	log.Infow("startup", "status", "mining genesis block", "difficulty", gen.Difficulty)

	st, err := state.New(context.Background(), state.Config{
		Genesis:   gen,
		EvHandler: ev,
	})
	if err != nil {
		return fmt.Errorf("creating chain: %w", err)
	}

	// Start the worker that runs mining rounds in the background when
	// signaled by the API.
	wrkr := worker.Run(st, cfg.Ledger.MinerAccount, ev)
	defer wrkr.Shutdown()

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, handlers.DebugMux(build, log)); err != nil {
			log.Errorw("shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Start Public and Private Services

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 2)

	mux := handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		State:    st,
		Worker:   wrkr,
		Evts:     evts,
	}

	publicSrv := http.Server{
		Addr:         cfg.Web.PublicHost,
		Handler:      handlers.PublicMux(mux),
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
	}

	privateSrv := http.Server{
		Addr:         cfg.Web.PrivateHost,
		Handler:      handlers.PrivateMux(mux),
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
	}

	go func() {
		log.Infow("startup", "status", "public v1 router started", "host", publicSrv.Addr)
		defer log.Infow("shutdown", "status", "public v1 router closed", "host", publicSrv.Addr)

		serverErrors <- publicSrv.ListenAndServe()
	}()

	go func() {
		log.Infow("startup", "status", "private v1 router started", "host", privateSrv.Addr)
		defer log.Infow("shutdown", "status", "private v1 router closed", "host", privateSrv.Addr)

		serverErrors <- privateSrv.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := publicSrv.Shutdown(ctx); err != nil {
			publicSrv.Close()
		}
		if err := privateSrv.Shutdown(ctx); err != nil {
			privateSrv.Close()
		}
	}

	return nil
}
