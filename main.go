package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/sim"
	"github.com/sheikhrachel/go-life/utils"
)

func main() {
	var (
		configPath = flag.String("config", "config.json", "path to the JSON configuration file")
		seed       = flag.Int64("seed", 0, "seed for randomize (0 keeps the configured seed)")
		headless   = flag.Bool("headless", false, "print frames to stdout instead of opening the terminal UI")
	)
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Using default configuration (%v)\n", err)
		config = utils.DefaultConfig()
	}
	if *seed != 0 {
		config.Seed = *seed
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *headless {
		err = runHeadless(ctx, config)
	} else {
		err = runInteractive(ctx, config)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

// runInteractive opens the terminal UI and runs until the user quits
func runInteractive(ctx context.Context, config utils.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runInteractive] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[runInteractive] failed to initialize screen")
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()

	grid, stats := initializeGame(config)
	latest := sim.NewLatestSnapshot()
	ctrl := sim.NewController(grid, sim.NewTickerScheduler(config.FrameRate), latest, stats)
	defer ctrl.Stop()

	sh := &shell{
		screen: screen,
		ctrl:   ctrl,
		stats:  stats,
		latest: latest,
		rng:    model.NewRand(config.SeedOrNow()),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return sh.pollEvents(ctx) })
	eg.Go(func() error { return sh.renderLoop(ctx) })

	if err = eg.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

// runHeadless randomizes the grid and prints frames until max_generations
// is reached (0 runs until interrupted)
func runHeadless(ctx context.Context, config utils.Config) error {
	grid, stats := initializeGame(config)
	latest := sim.NewLatestSnapshot()
	ctrl := sim.NewController(grid, sim.NewTickerScheduler(config.FrameRate), latest, stats)
	renderer := &model.TextRenderer{Out: os.Stdout}

	seed := config.SeedOrNow()
	fmt.Printf("Grid: %dx%d | Seed: %d | Frame rate: %v\n", config.Rows, config.Cols, seed, config.FrameRate)

	ctrl.Randomize(model.NewRand(seed))
	ctrl.Start()
	defer ctrl.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n🛑 Shutting down gracefully...")
			return nil
		case <-latest.Updated():
			snap, _ := latest.Latest()
			if err := renderer.Display(snap); err != nil {
				return err
			}
			fmt.Println(statusLine(snap, stats))

			if config.MaxGenerations > 0 && snap.Generation >= config.MaxGenerations {
				fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
				return nil
			}
		}
	}
}
