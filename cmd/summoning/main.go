package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/summoning/internal/clock"
	"github.com/udisondev/summoning/internal/config"
	"github.com/udisondev/summoning/internal/data"
	"github.com/udisondev/summoning/internal/db"
	"github.com/udisondev/summoning/internal/match"
	"github.com/udisondev/summoning/internal/model"
	"github.com/udisondev/summoning/internal/nav"
	"github.com/udisondev/summoning/internal/sim"
	"github.com/udisondev/summoning/internal/spawn"
	"github.com/udisondev/summoning/internal/world"
)

const ConfigPath = "config/summoning.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("SUMMONING_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	world.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("summoning starting", "log_level", cfg.LogLevel, "config", cfgPath)

	templates, err := data.LoadMinionTemplates(cfg.TemplatesPath)
	if err != nil {
		return fmt.Errorf("loading minion templates: %w", err)
	}
	level, err := data.LoadLevel(cfg.MapPath, cfg.CellSize)
	if err != nil {
		return fmt.Errorf("loading map: %w", err)
	}
	mesh, err := level.Mesh()
	if err != nil {
		return fmt.Errorf("building navigation mesh: %w", err)
	}

	var store match.Store
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		repo := db.NewResultRepository(database.Pool())
		logBestResults(ctx, repo, level)
		store = repo
	}

	pathService := nav.NewService(mesh, nav.ServiceConfig{
		Workers:       cfg.PathWorkers,
		QueueSize:     cfg.PathQueueSize,
		MaxIterations: cfg.PathMaxIterations,
	})
	recorder := match.NewRecorder(store, level.Name, level.Digest)
	scene := world.NewScene(level, templates, pathService, model.NopLights{}, recorder, sceneConfig(cfg))
	driver := sim.NewDriver(scene, clock.NewSystem(), cfg.TickInterval)
	console := NewConsole(os.Stdin, os.Stdout, scene, templates, driver)

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := pathService.Run(gctx); err != nil {
			return fmt.Errorf("path service: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		// the level is over once the driver returns
		defer stop()
		if err := driver.Start(gctx); err != nil {
			return fmt.Errorf("simulation driver: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := recorder.Run(gctx); err != nil {
			return fmt.Errorf("match recorder: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return console.Run(gctx)
	})

	if cfg.StatusInterval > 0 {
		reporter := NewReporter(driver, pathService, cfg.StatusInterval)
		g.Go(func() error {
			return reporter.Run(gctx)
		})
	}

	slog.Info("level started",
		"map", level.Name,
		"enemyTowers", len(level.Enemies),
		"templates", templates.Names())

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("simulation error: %w", err)
	}

	if res := recorder.Last(); res != nil {
		fmt.Printf("%s after %.2f minutes\n", outcomeBanner(res), res.Elapsed.Minutes())
	}
	return nil
}

func sceneConfig(cfg config.Simulation) world.SceneConfig {
	return world.SceneConfig{
		Tower: model.TowerStats{
			MaxHealth:         cfg.Tower.MaxHealth,
			PowerGain:         cfg.Tower.PowerGain,
			PowerGainInterval: cfg.Tower.PowerGainInterval.Milliseconds(),
			ExtGainCooldown:   cfg.Tower.ExtGainCooldown.Milliseconds(),
		},
		TowerSize: cfg.Tower.Size,
		Enemy: spawn.Kind{
			Name:           "Minion",
			Cost:           cfg.Enemy.SpawnCost,
			Health:         cfg.Enemy.Health,
			TowerDamage:    cfg.Enemy.TowerDamage,
			KillReward:     cfg.Enemy.KillReward,
			TowerHitReward: cfg.Enemy.TowerHitReward,
			Visual:         cfg.Enemy.Visual,
			Color:          [3]uint8{255, 64, 64},
		},
		Minion: model.MinionStats{
			Speed:          cfg.Minion.Speed,
			MoveInterval:   cfg.Minion.MoveInterval.Milliseconds(),
			DamageCooldown: cfg.Minion.DamageCooldown.Milliseconds(),
			Size:           cfg.Minion.Size,
			ArriveEpsilon:  cfg.Minion.ArriveEpsilon,
		},
		CollisionStrike: cfg.Minion.CollisionStrike,
		SpawnCooldown:   cfg.Player.SpawnCooldown.Milliseconds(),
	}
}

func logBestResults(ctx context.Context, repo *db.ResultRepository, level *data.Level) {
	best, err := repo.Best(ctx, level.Digest, 3)
	if err != nil {
		slog.Warn("loading best results", "error", err)
		return
	}
	for i, res := range best {
		slog.Info("best result",
			"rank", i+1,
			"outcome", res.Outcome,
			"elapsed", res.Elapsed,
			"finishedAt", res.FinishedAt.Format("2006-01-02 15:04"))
	}
}

func outcomeBanner(res *model.MatchResult) string {
	if res.Won() {
		return "LEVEL COMPLETE"
	}
	return "GAME OVER"
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
