package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/hexstrat/hexstrat/internal/config"
	"github.com/hexstrat/hexstrat/internal/core/ecs"
	"github.com/hexstrat/hexstrat/internal/core/event"
	coresys "github.com/hexstrat/hexstrat/internal/core/system"
	"github.com/hexstrat/hexstrat/internal/data"
	"github.com/hexstrat/hexstrat/internal/hex"
	"github.com/hexstrat/hexstrat/internal/reconcile"
	"github.com/hexstrat/hexstrat/internal/scripting"
	"github.com/hexstrat/hexstrat/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string, mode reconcile.Mode) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              hexhost  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       hex strategy scene sync host        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mhost:\033[0m %s \033[90m(mode: %s)\033[0m\n\n", name, mode)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

func run() error {
	// 1. Load config
	cfgPath := "config/hexhost.toml"
	if p := os.Getenv("HEXHOST_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	mode, err := cfg.Mode()
	if err != nil {
		return err
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Host.Name, mode)

	// 3. Map and scene
	printSection("scene")
	grid, err := hex.NewGrid(cfg.Map.Radius, cfg.Map.CellSize)
	if err != nil {
		return fmt.Errorf("build map: %w", err)
	}
	printStat("map cells", grid.Count())

	scene, err := data.LoadScene(cfg.Scene.Path)
	if err != nil {
		return err
	}
	graph, players, err := scene.Build()
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	printStat("entity slots", graph.Len())
	printStat("players", players.Len())
	for _, name := range scene.OffMap(grid) {
		log.Warn("entity placed off the map", zap.String("entity", name))
	}

	// 4. World, bridge and systems
	world := ecs.NewWorld()
	graph.SetListener(reconcile.NewBridge(world, graph, log))
	bus := event.NewBus()

	runner := coresys.NewRunner()
	rs := system.NewReconcileSystem(world, graph, players, mode, bus, log)
	occupancy := system.NewOccupancySystem(world, grid)
	runner.Register(rs)
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(occupancy)
	report := system.NewReportSystem(world, bus, occupancy, log)
	runner.Register(report)

	if cfg.Script.Path != "" {
		engine, err := scripting.NewEngine(cfg.Script.Path, log)
		if err != nil {
			return fmt.Errorf("init scripting: %w", err)
		}
		defer engine.Close()
		runner.Register(system.NewScriptSystem(engine, world, graph, players, grid, rs, bus, mode.String(), log))
		printOK(fmt.Sprintf("edit script %s", cfg.Script.Path))
	}
	printStat("systems", runner.Len())
	fmt.Println()

	// 5. Tick loop
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printSection("ready")
	printReady(fmt.Sprintf("tick loop started (tick: %s)", cfg.Host.TickRate))
	fmt.Println()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tickLoop(ctx, runner, cfg.Host.TickRate, cfg.Host.MaxTicks, log)
	})
	err = g.Wait()
	drain(runner)

	sum := report.Summary()
	log.Info("host stopped",
		zap.Duration("uptime", cfg.Host.Uptime(time.Now()).Round(time.Second)),
		zap.Int("entities", world.Len()),
		zap.Int("changes", sum.Changes),
		zap.Int("allocated", sum.Allocated),
		zap.Int("released", sum.Released),
		zap.Int("rejected_player_updates", sum.Rejected),
		zap.Uint64("fingerprint", world.Fingerprint()))
	rs.Detach()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// tickLoop runs the systems every rate until ctx ends or maxTicks ticks
// have run (0 means no limit).
func tickLoop(ctx context.Context, runner *coresys.Runner, rate time.Duration, maxTicks int, log *zap.Logger) error {
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	ticks := 0
	for {
		select {
		case <-ticker.C:
			runner.Tick(rate)
			ticks++
			if maxTicks > 0 && ticks >= maxTicks {
				log.Info("tick limit reached", zap.Int("ticks", ticks))
				return nil
			}
		case <-ctx.Done():
			log.Info("shutdown signal received", zap.Int("ticks", ticks))
			return ctx.Err()
		}
	}
}

// drain runs one last reconcile and dispatch so authoring edits made after
// the final tick reach the world and their events reach subscribers.
func drain(runner *coresys.Runner) {
	runner.TickPhase(coresys.PhaseReconcile, 0)
	runner.TickPhase(coresys.PhaseDispatch, 0)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
