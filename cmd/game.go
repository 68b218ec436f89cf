package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// game is the terminal driver around a model.World: it renders, advances
// and paces, and owns everything the engine deliberately knows nothing about
type game struct {
	config   utils.Config
	out      io.Writer
	rng      *rand.Rand
	pool     *model.SetPool
	pattern  *model.Pattern
	world    *model.World
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	history  model.History

	generation     int
	lastRestartGen int
	stagnantCount  int
	lastFrameTime  time.Time
}

// newGame sets up the initial game state
func newGame(config utils.Config, out io.Writer) (*game, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &game{
		config: config,
		out:    out,
		rng:    rand.New(rand.NewPCG(uint64(seed), 0)),
		stats:  utils.NewStats(),
		renderer: &model.TerminalRenderer{
			OriginX:    config.OriginX,
			OriginY:    config.OriginY,
			Width:      config.Width,
			Height:     config.Height,
			AliveGlyph: []rune(config.AliveGlyph)[0],
			DeadGlyph:  []rune(config.DeadGlyph)[0],
			ShowRuler:  config.ShowRuler,
			Color:      config.Color,
		},
	}
	if config.UseMemoryPool {
		g.pool = model.NewSetPool()
	}

	if config.Pattern != "" {
		p, err := resolvePattern(config.Pattern)
		if err != nil {
			return nil, errors.Wrap(err, "[newGame] failed to resolve seed pattern")
		}
		g.pattern = &p
	}

	g.world = g.seedWorld()
	logrus.WithFields(logrus.Fields{
		"seed":       seed,
		"population": g.world.Population(),
		"pattern":    config.Pattern,
		"pool":       config.UseMemoryPool,
	}).Info("World initialized")

	return g, nil
}

// resolvePattern accepts a built-in pattern name or a path to a .cells file
func resolvePattern(name string) (model.Pattern, error) {
	if p, ok := model.BuiltinPattern(name); ok {
		return p, nil
	}
	return model.LoadPattern(name)
}

// seedWorld builds a fresh world from the configured pattern or random draws
func (g *game) seedWorld() *model.World {
	world := model.NewWorld().UsePool(g.pool)
	if g.pattern != nil {
		world.Add(g.pattern.At(g.config.SeedMin, g.config.SeedMin)...)
		return world
	}
	world.SeedRandom(g.rng, g.config.SeedCount, g.config.SeedMin, g.config.SeedMax)
	return world
}

// Run renders and advances the world until ctx is cancelled or the
// generation limit is reached
func (g *game) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		eg, egCtx = errgroup.WithContext(ctx)
		ticks     = make(chan struct{})
	)

	// Pacer: one tick per frame interval
	eg.Go(func() error {
		defer close(ticks)
		for {
			select {
			case <-egCtx.Done():
				return nil
			case ticks <- struct{}{}:
			}
			if g.config.FrameRate <= 0 {
				continue
			}
			select {
			case <-egCtx.Done():
				return nil
			case <-time.After(g.config.FrameRate):
			}
		}
	})

	eg.Go(func() error {
		defer cancel()
		g.lastFrameTime = time.Now()
		for range ticks {
			if !g.tick() {
				return nil
			}
		}
		return nil
	})

	err := eg.Wait()

	logrus.WithFields(logrus.Fields{
		"generations":    g.generation,
		"runtime":        g.stats.Runtime().Round(time.Millisecond).String(),
		"gen_per_sec":    fmt.Sprintf("%.1f", g.stats.GenerationsPerSecond),
		"avg_population": fmt.Sprintf("%.1f", g.stats.AveragePopulation),
		"peak":           g.stats.PeakPopulation,
	}).Info("Shutting down")

	return err
}

// tick draws the current generation and advances to the next one. It
// returns false once the generation limit is reached.
func (g *game) tick() bool {
	frameStart := time.Now()
	g.renderer.Clear(g.out)

	livingCells, status, isStagnant := g.updateGameState()
	g.lastFrameTime = frameStart

	if isStagnant {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}

	g.renderer.Header(g.out)
	g.displayGameStatus(livingCells, status)
	g.renderer.Display(g.out, g.world)

	if g.config.MaxGenerations > 0 && g.generation >= g.config.MaxGenerations {
		logrus.WithField("limit", g.config.MaxGenerations).Info("Reached maximum generations limit")
		return false
	}

	shouldRestart, reason := checkRestartConditions(livingCells, g.stagnantCount, g.config)
	if shouldRestart && g.config.AutoRestart {
		g.restart(reason)
	} else if g.config.InjectionCount > 0 && g.stagnantCount >= 2 && g.stagnantCount < g.config.StagnationThreshold {
		// Try to break the cycle before giving up on it
		g.world.SeedRandom(g.rng, g.config.InjectionCount, g.config.SeedMin, g.config.SeedMax)
		logrus.WithField("generation", g.generation).Debug("Injected random life")
	}

	g.world.Advance()
	g.generation++
	return true
}

// updateGameState refreshes stats and stagnation history for the current generation
func (g *game) updateGameState() (int, string, bool) {
	g.stats.Update(g.generation, g.world, time.Since(g.lastFrameTime))
	livingCells := g.stats.Population

	hash := g.world.Hash()
	isStagnant := g.history.IsStagnant(hash)
	g.history.Push(hash)

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, status, isStagnant
}

// displayGameStatus shows the current game status
func (g *game) displayGameStatus(livingCells int, status string) {
	fmt.Fprintf(g.out, "Gen: %d | Living: %d | Status: %s | Bounding box: %d cells\n",
		g.generation, livingCells, status, g.stats.BoundingBoxSize)
	if g.generation > g.lastRestartGen {
		fmt.Fprintf(g.out, "Generations since restart: %d\n", g.generation-g.lastRestartGen)
	}
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restart reseeds the world
func (g *game) restart(reason string) {
	g.world = g.seedWorld()
	g.history.Reset()
	g.lastRestartGen = g.generation
	g.stagnantCount = 0

	logrus.WithFields(logrus.Fields{
		"reason":     reason,
		"generation": g.generation,
		"population": g.world.Population(),
	}).Info("Restarting")
}
