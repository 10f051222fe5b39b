package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"tripcal/internal/calendar"
	"tripcal/internal/capture"
	"tripcal/internal/clock"
	"tripcal/internal/config"
	"tripcal/internal/itinerary"
	applog "tripcal/internal/log"
	"tripcal/internal/model"
	"tripcal/internal/tz"
	"tripcal/internal/web"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath  string
	listen      string
	currentDate string
	once        bool
	debug       bool
}

func main() {
	applog.Info("tripcal starting", "version", "0.1.0")

	flags := parseFlags()
	if flags.debug {
		applog.SetLevel(applog.LevelDebug)
	}

	conf, err := config.Load(flags.configPath)
	if err != nil {
		applog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI --listen overrides config file listen if provided.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}

	applog.Info("effective config",
		"listen", conf.Listen,
		"itinerary", conf.Itinerary,
		"home_timezone", conf.HomeTimezone,
		"trip_start", conf.TripStart,
		"trip_end", conf.TripEnd,
		"refresh", conf.RefreshCron,
		"once", flags.once,
	)

	tripStart, tripEnd, err := conf.TripRange()
	if err != nil {
		applog.Error("invalid trip range", err)
		os.Exit(1)
	}
	bounds := calendar.Bounds{TripStart: tripStart, TripEnd: tripEnd}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		applog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	// One-shot itinerary load. A failed load degrades to an empty
	// calendar instead of blocking startup.
	items := loadItems(ctx, conf)

	clk := clock.NewSource(flags.currentDate, tz.LocationOrUTC(conf.HomeTimezone))
	manager := calendar.NewManager(bounds, items, model.DayOf(clk.Now().In(tz.LocationOrUTC(conf.HomeTimezone))))

	if flags.once {
		runOnce(ctx, conf, manager, clk, flags.debug)
		return
	}

	// Periodic preview recapture on the configured cron schedule.
	if conf.RefreshCron != "" {
		c := cron.New()
		_, cronErr := c.AddFunc(conf.RefreshCron, func() {
			capturePreview(ctx, conf)
		})
		if cronErr != nil {
			applog.Error("invalid refresh cron spec; preview loop disabled", cronErr, "spec", conf.RefreshCron)
		} else {
			c.Start()
			defer c.Stop()
		}
	}

	if err := web.StartServer(ctx, conf, manager, clk, flags.debug); err != nil {
		applog.Error("HTTP server failed", err)
		os.Exit(1)
	}

	applog.Info("tripcal exiting")
}

// loadItems performs the startup itinerary load. Errors are logged and
// produce an empty list; the UI proceeds in a "no items" state.
func loadItems(ctx context.Context, conf *config.Config) []model.Item {
	loader := itinerary.NewLoader(filepath.Join(conf.CacheDir, "itinerary"))
	items, err := loader.Load(ctx, conf.Itinerary)
	if err != nil {
		applog.Error("itinerary load failed; starting with empty calendar", err, "source", conf.Itinerary)
		return []model.Item{}
	}
	applog.Info("itinerary loaded", "item_count", len(items))
	return items
}

// capturePreview snapshots the served calendar page into the cache dir.
func capturePreview(ctx context.Context, conf *config.Config) {
	if err := os.MkdirAll(conf.CacheDir, 0o700); err != nil {
		applog.Error("preview capture: cache dir unavailable", err, "dir", conf.CacheDir)
		return
	}
	out := filepath.Join(conf.CacheDir, "preview.png")
	err := capture.WeekPNG(ctx, capture.Options{
		URL:        fmt.Sprintf("http://%s/", conf.Listen),
		OutputPath: out,
	})
	if err != nil {
		applog.Error("preview capture failed", err)
		return
	}
	applog.Info("preview captured", "path", out)
}

// runOnce starts a temporary server, captures a single preview snapshot
// and exits. This mirrors a manual refresh without keeping the cron loop
// alive.
func runOnce(ctx context.Context, conf *config.Config, manager *calendar.Manager, clk *clock.Source, debug bool) {
	ctx, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	go func() {
		if err := web.StartServer(ctx, conf, manager, clk, debug); err != nil {
			applog.Error("HTTP server failed", err)
		}
	}()

	if !waitForHealth(ctx, conf.Listen) {
		applog.Error("server did not become healthy; skipping capture", ctx.Err())
		return
	}
	capturePreview(ctx, conf)
}

// waitForHealth polls /health until the server answers or ctx expires.
func waitForHealth(ctx context.Context, listen string) bool {
	url := fmt.Sprintf("http://%s/health", listen)
	for {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(200 * time.Millisecond):
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return false
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return true
		}
	}
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "./tripcal.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.currentDate, "current-date", "", "Debug override for the current date (ISO date-time)")
	flag.BoolVar(&cfg.once, "once", false, "Capture one preview snapshot and exit")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}
