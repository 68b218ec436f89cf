package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

var (
	// CLI flags; each overrides the config file value only when set
	configPath     string        // JSON, YAML or TOML config file
	logLevel       string        // Log verbosity level
	seed           int64         // RNG seed for random seeding, 0 for time based
	seedCount      int           // Number of random draws
	seedMin        int           // Lower seeding bound (inclusive)
	seedMax        int           // Upper seeding bound (exclusive)
	pattern        string        // Built-in pattern name or .cells file
	width          int           // Render window width
	height         int           // Render window height
	originX        int           // Window left edge
	originY        int           // Window top edge
	frameRate      time.Duration // Delay between ticks
	maxGenerations int           // Stop after this many generations, 0 for no limit
	autoRestart    bool          // Reseed on extinction or stagnation
	noColor        bool          // Disable ANSI color in the header
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "go-life",
	Short: "Conway's Game of Life on an unbounded grid",
}

// runCmd drives the simulation in the terminal
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation in the terminal",
	Run: func(cmd *cobra.Command, args []string) {
		config, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		level, err := logrus.ParseLevel(config.LogLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", config.LogLevel)
		}
		logrus.SetLevel(level)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		game, err := newGame(config, os.Stdout)
		if err != nil {
			logrus.Fatalf("Failed to initialize game: %v", err)
		}
		if err = game.Run(ctx); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
	},
}

// patternsCmd lists the built-in seed patterns
var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List built-in seed patterns",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range model.BuiltinPatternNames() {
			p, _ := model.BuiltinPattern(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d cells\n", name, len(p.Cells))
		}
	},
}

// resolveConfig loads the config file, if any, and applies flags the user set
func resolveConfig(cmd *cobra.Command) (utils.Config, error) {
	config := utils.DefaultConfig()
	if configPath != "" {
		var err error
		if config, err = utils.LoadConfig(configPath); err != nil {
			return config, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		config.LogLevel = logLevel
	}
	if flags.Changed("seed") {
		config.Seed = seed
	}
	if flags.Changed("count") {
		config.SeedCount = seedCount
	}
	if flags.Changed("min") {
		config.SeedMin = seedMin
	}
	if flags.Changed("max") {
		config.SeedMax = seedMax
	}
	if flags.Changed("pattern") {
		config.Pattern = pattern
	}
	if flags.Changed("width") {
		config.Width = width
	}
	if flags.Changed("height") {
		config.Height = height
	}
	if flags.Changed("origin-x") {
		config.OriginX = originX
	}
	if flags.Changed("origin-y") {
		config.OriginY = originY
	}
	if flags.Changed("interval") {
		config.FrameRate = frameRate
	}
	if flags.Changed("generations") {
		config.MaxGenerations = maxGenerations
	}
	if flags.Changed("auto-restart") {
		config.AutoRestart = autoRestart
	}
	if flags.Changed("no-color") {
		config.Color = !noColor
	}

	return config, config.Validate()
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	defaults := utils.DefaultConfig()

	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a JSON, YAML or TOML config file")
	runCmd.Flags().StringVar(&logLevel, "log-level", defaults.LogLevel, "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for random placement (0 for time based)")
	runCmd.Flags().IntVar(&seedCount, "count", defaults.SeedCount, "Number of random cells to draw")
	runCmd.Flags().IntVar(&seedMin, "min", defaults.SeedMin, "Lower seeding bound, inclusive, both axes")
	runCmd.Flags().IntVar(&seedMax, "max", defaults.SeedMax, "Upper seeding bound, exclusive, both axes")
	runCmd.Flags().StringVar(&pattern, "pattern", defaults.Pattern, "Built-in pattern name or .cells file instead of random seeding")
	runCmd.Flags().IntVar(&width, "width", defaults.Width, "Render window width")
	runCmd.Flags().IntVar(&height, "height", defaults.Height, "Render window height")
	runCmd.Flags().IntVar(&originX, "origin-x", defaults.OriginX, "Render window left edge")
	runCmd.Flags().IntVar(&originY, "origin-y", defaults.OriginY, "Render window top edge")
	runCmd.Flags().DurationVar(&frameRate, "interval", defaults.FrameRate, "Delay between generations")
	runCmd.Flags().IntVar(&maxGenerations, "generations", defaults.MaxGenerations, "Stop after this many generations (0 for no limit)")
	runCmd.Flags().BoolVar(&autoRestart, "auto-restart", defaults.AutoRestart, "Reseed on extinction or stagnation")
	runCmd.Flags().BoolVar(&noColor, "no-color", !defaults.Color, "Disable ANSI color")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(patternsCmd)
}
