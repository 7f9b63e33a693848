package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hypdisk/hypdisk/internal/config"
	"github.com/hypdisk/hypdisk/internal/engine"
	"github.com/hypdisk/hypdisk/internal/script"
)

var (
	// Global flags
	verbose    bool
	canvasSize float64
)

var rootCmd = &cobra.Command{
	Use:   "hypdisk",
	Short: "Poincaré disk drawing scripts",
	Long: `Replay hyperbolic drawing scripts offline: check them for errors or
render the resulting scene to a PNG.

Examples:
  hypdisk check scene.hyp                      # Run a script and count its shapes
  hypdisk render scene.hyp -o scene.png        # Render the final frame
  hypdisk render --size 1200 --labels scene.hyp`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine activity to stderr")
	rootCmd.PersistentFlags().Float64Var(&canvasSize, "size", 0,
		"canvas size in pixels (default from CANVAS_SIZE)")
}

// runScript loads settings from the environment, applies the flags and
// replays the script at path on a fresh engine.
func runScript(path string) (*engine.Engine, *script.Script, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	settings := cfg.EngineSettings()
	if canvasSize != 0 {
		if canvasSize <= 2*settings.Padding {
			return nil, nil, fmt.Errorf("size %g leaves no room for the disk", canvasSize)
		}
		settings.CanvasSize = canvasSize
	}

	s, err := script.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	e := engine.NewEngine(settings)
	if err := s.Run(e); err != nil {
		return nil, nil, err
	}
	return e, s, nil
}
