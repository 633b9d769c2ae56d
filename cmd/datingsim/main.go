// Command datingsim runs the dating world simulation: a population of
// autonomous agents flirting, matching, and breaking up over discrete
// sim-days, with a read-only HTTP API and a SQLite run archive.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/dating-world/internal/api"
	"github.com/talgya/dating-world/internal/config"
	"github.com/talgya/dating-world/internal/engine"
	"github.com/talgya/dating-world/internal/persistence"
	"github.com/talgya/dating-world/internal/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath     string
		population  int
		seed        int64
		days        int
		interval    time.Duration
		dbPath      string
		apiPort     int
		interactive bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "datingsim",
		Short: "Run the dating world agent simulation",
		Long: `datingsim advances a population of autonomous dating agents one
sim-day at a time. Each day every agent perceives the world, decides on an
action, and the driver arbitrates: interest messages, date requests,
matchmaking above the compatibility threshold, and stochastic breakups.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: level,
			})))

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("population") {
				cfg.Population = population
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if cmd.Flags().Changed("days") {
				cfg.Days = days
			}
			if cmd.Flags().Changed("interval") {
				cfg.TickInterval = interval
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			if cmd.Flags().Changed("port") {
				cfg.APIPort = apiPort
			}
			if cmd.Flags().Changed("interactive") {
				cfg.Interactive = interactive
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().IntVarP(&population, "population", "n", 200, "number of agents")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed (same seed replays the same run)")
	cmd.Flags().IntVar(&days, "days", 0, "stop after this many sim-days (0 = run until interrupted)")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "wall-clock pacing per sim-day")
	cmd.Flags().StringVar(&dbPath, "db", "data/datingworld.db", "SQLite archive path (empty to disable)")
	cmd.Flags().IntVar(&apiPort, "port", 8080, "HTTP API port (0 to disable)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pause for a keypress every week")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func run(cfg config.Config) error {
	sim, err := engine.NewSimulation(engine.Config{
		Population: cfg.Population,
		Seed:       cfg.Seed,
	})
	if err != nil {
		return err
	}
	slog.Info("simulation ready", "population", cfg.Population, "seed", cfg.Seed)

	// ── Run archive ──────────────────────────────────────────────────
	var db *persistence.DB
	if cfg.DBPath != "" {
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create archive dir: %w", err)
			}
		}
		db, err = persistence.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		db.SaveMeta("seed", fmt.Sprintf("%d", cfg.Seed))
		db.SaveMeta("population", fmt.Sprintf("%d", cfg.Population))
		db.SaveMeta("started_at", time.Now().UTC().Format(time.RFC3339))
		slog.Info("run archive opened", "path", cfg.DBPath)
	}

	var lastSeq uint64
	savedSamples := 0
	archive := func() {
		if db == nil {
			return
		}
		hist := sim.History()
		newSeq, err := db.Archive(sim, lastSeq, hist[savedSamples:])
		if err != nil {
			slog.Error("archive failed", "error", err)
			return
		}
		lastSeq = newSeq
		savedSamples = len(hist)
	}

	// ── Engine ───────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.Interval = cfg.TickInterval

	eng.OnTick = func(tick uint64) {
		sim.Step()
		if cfg.Days > 0 && tick >= uint64(cfg.Days) {
			eng.Stop()
		}
	}
	eng.OnWeek = func(tick uint64) {
		fmt.Print(report.Summary(sim, tick))
		archive()
	}

	// ── HTTP API ─────────────────────────────────────────────────────
	if cfg.APIPort > 0 {
		adminKey := os.Getenv("DATINGSIM_ADMIN_KEY")
		if adminKey == "" {
			slog.Warn("DATINGSIM_ADMIN_KEY not set, admin POST endpoints disabled")
		}
		srv := &api.Server{Sim: sim, Eng: eng, Port: cfg.APIPort, AdminKey: adminKey}
		srv.Start()
	}

	// ── Signals ──────────────────────────────────────────────────────
	var interrupted atomic.Bool
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		interrupted.Store(true)
		eng.Stop()
	}()

	fmt.Printf("\nStarting dating simulation with %d agents (seed %d)\n",
		cfg.Population, cfg.Seed)
	if cfg.APIPort > 0 {
		fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.APIPort)
	}

	if cfg.Interactive {
		runInteractive(sim, cfg, &interrupted)
	} else {
		eng.Run()
	}

	// Final archive and summary.
	archive()
	fmt.Print(report.Summary(sim, sim.CurrentTick()))
	fmt.Print(report.Network(sim))
	return nil
}

// runInteractive steps one sim-day per iteration and waits for a keypress at
// the end of each week, the pacing the terminal presentation always had.
func runInteractive(sim *engine.Simulation, cfg config.Config, interrupted *atomic.Bool) {
	stdin := bufio.NewReader(os.Stdin)

	day := uint64(0)
	for !interrupted.Load() {
		day++
		fmt.Printf("\nDay %d\n", day)
		sim.Step()
		fmt.Print(report.Summary(sim, day))

		if cfg.Days > 0 && day >= uint64(cfg.Days) {
			return
		}

		if day%engine.TicksPerWeek == 0 {
			fmt.Print(report.Network(sim))
			fmt.Print("\nPress Enter for next day...")
			if _, err := stdin.ReadString('\n'); err != nil {
				return
			}
		}
	}
}
