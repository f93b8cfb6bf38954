package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nunchuk/host/config"
	"nunchuk/host/httpserver"
	"nunchuk/host/logging"
	"nunchuk/host/metrics"
	"nunchuk/host/monitor"
	"nunchuk/host/serial"
	"nunchuk/host/tui"
)

var (
	configPath = flag.String("config", "", "YAML config file (optional)")
	device     = flag.String("device", config.DefaultDevice, "Serial device path")
	baud       = flag.Int("baud", config.DefaultBaud, "Baud rate (ignored for USB CDC)")
	httpAddr   = flag.String("http", "", "Status HTTP listen address, e.g. :9100")
	withTUI    = flag.Bool("tui", false, "Show the live terminal view")
	verbose    = flag.Bool("verbose", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// the TUI owns the terminal, so console logs go to stderr only without it
	var console io.Writer = os.Stderr
	if cfg.TUI.Enabled {
		console = nil
	}
	logger, err := logging.InitLogger(cfg.Log, console)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("exiting", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// explicit flags win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "device":
			cfg.Serial.Device = *device
		case "baud":
			cfg.Serial.Baud = *baud
		case "http":
			cfg.HTTP.Addr = *httpAddr
		case "tui":
			cfg.TUI.Enabled = *withTUI
		case "verbose":
			if *verbose {
				cfg.Log.Level = "debug"
			}
		}
	})

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	port, err := serial.Open(&serial.Config{
		Device:      cfg.Serial.Device,
		Baud:        cfg.Serial.Baud,
		ReadTimeout: cfg.Serial.ReadTimeoutMs,
	})
	if err != nil {
		return err
	}
	defer port.Close()
	if err := port.Flush(); err != nil {
		log.Warn("flush serial input", zap.Error(err))
	}
	log.Info("serial port open", zap.String("device", cfg.Serial.Device), zap.Int("baud", cfg.Serial.Baud))

	reg := metrics.NewRegistry()
	appMetrics := metrics.New(reg)

	mon := monitor.New(port,
		monitor.WithLogger(log),
		monitor.WithStaleAfter(cfg.Monitor.StaleAfter),
		monitor.WithSink(appMetrics),
		monitor.WithSink(monitor.NewLogSink(log.Named("sample"), cfg.Monitor.LogRateHz)),
	)

	var httpSrv *httpserver.Server
	if cfg.HTTP.Addr != "" {
		gin.SetMode(gin.ReleaseMode)
		httpSrv = httpserver.New(cfg.HTTP, metrics.Handler(reg), mon)
		go func() {
			log.Info("http listening", zap.String("addr", cfg.HTTP.Addr))
			if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("http server error", zap.Error(err))
			}
		}()
	}

	monErr := make(chan error, 1)
	go func() { monErr <- mon.Run(ctx) }()

	var (
		tuiErr  chan error
		quitTUI func()
	)
	if cfg.TUI.Enabled {
		prog := tui.NewProgram(mon, cfg.TUI.Degrees)
		tuiErr = make(chan error, 1)
		quitTUI = prog.Quit
		go func() {
			_, err := prog.Run()
			tuiErr <- err
		}()
	}
	err = waitStopped(ctx, stop, monErr, tuiErr, quitTUI)

	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}
	log.Info("stopped", zap.Any("stats", mon.Stats()))
	return err
}

// waitStopped blocks until the monitor ends, the TUI ends or ctx is done.
// It then stops the TUI and the monitor and waits for both, so the port is
// not closed under a pending Read. tuiErr and quitTUI are nil without a TUI.
func waitStopped(ctx context.Context, stop func(), monErr, tuiErr <-chan error, quitTUI func()) error {
	var err error
	monDone, tuiDone := false, tuiErr == nil

	select {
	case err = <-monErr:
		monDone = true
	case err = <-tuiErr:
		tuiDone = true
	case <-ctx.Done():
	}

	stop()
	if !tuiDone {
		quitTUI()
		<-tuiErr
	}
	if !monDone {
		if monErrAfter := <-monErr; err == nil {
			err = monErrAfter
		}
	}
	return err
}
