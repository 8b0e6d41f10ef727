package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachevis/cachevis/render"
	"github.com/cachevis/cachevis/sim"
)

var (
	// CLI flags for the simulation core
	title    string // Caption drawn on each frame
	variant  string // Traversal variant name
	dimM     int    // Rows of A and C
	dimN     int    // Cols of B and C
	dimK     int    // Cols of A / rows of B
	block1   int    // Tile side for the blocked variants
	l1Size   int    // L1 sub-tile side (blocked-1-level) and L1 cache lines
	block2   int    // Outer tile side (blocked-2-level)
	logLevel string // Log verbosity level

	// CLI flags for output
	output      string // Output path; extension selects the sink
	fps         int    // Frame rate for video output
	showLinear  bool   // Draw the linear-memory strips
	presetName  string // Named preset to load from the presets file
	presetsFile string // Path to the presets YAML
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cachevis",
	Short: "Cache-locality animator for matrix-multiplication traversals",
}

// buildConfig assembles the simulation config from flags, applying a preset
// first when one is requested.
func buildConfig(cmd *cobra.Command) sim.Config {
	if presetName != "" {
		p, err := GetPreset(presetsFile, presetName)
		if err != nil {
			logrus.Fatalf("Could not load preset %q: %v", presetName, err)
		}
		p.applyDefaults(cmd)
	}

	v, err := sim.ParseVariant(variant)
	if err != nil {
		logrus.Fatalf("Invalid variant: %v", err)
	}
	cfg := sim.NewConfig(dimM, dimN, dimK, v, block1, l1Size, block2, title)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd simulates a traversal and renders one frame per access event.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a traversal and render frames or video",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := buildConfig(cmd)

		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("Could not build simulator: %v", err)
		}

		sink, closeSink, err := buildSink(output)
		if err != nil {
			logrus.Fatalf("Could not open output %q: %v", output, err)
		}

		totals, runErr := s.Run(sink)
		if err := closeSink(); err != nil {
			logrus.Fatalf("Finalizing output failed: %v", err)
		}
		if runErr != nil {
			logrus.Fatalf("Rendering failed: %v", runErr)
		}

		fmt.Println(totals.Summary(cfg.L1 > 0))
		logrus.Info("Render complete.")
	},
}

// buildSink maps the output extension to a frame sink: .mp4 pipes raster
// frames through ffmpeg, .png and .svg write numbered frame files next to the
// requested path. Extension handling is a presentation concern; the simulator
// only ever sees the FrameSink.
func buildSink(path string) (sim.FrameSink, func() error, error) {
	layout := render.Layout{ShowLinear: showLinear}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp4":
		enc, err := render.NewVideoEncoder(path, fps)
		if err != nil {
			return nil, nil, err
		}
		raster := render.NewRaster(layout, enc)
		return raster, raster.Close, nil
	case ".png":
		dir, err := render.NewFrameDir(strings.TrimSuffix(path, ext), "png")
		if err != nil {
			return nil, nil, err
		}
		raster := render.NewRaster(layout, dir)
		return raster, raster.Close, nil
	case ".svg":
		dir, err := render.NewFrameDir(strings.TrimSuffix(path, ext), "svg")
		if err != nil {
			return nil, nil, err
		}
		vector := render.NewVector(layout, dir)
		return vector, vector.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported output extension %q (use .mp4, .png or .svg)", ext)
	}
}

// statsCmd runs the simulation without rendering and prints the totals line.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Run the simulation without rendering and print cache statistics",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := buildConfig(cmd)

		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("Could not build simulator: %v", err)
		}
		fmt.Println(s.RunStats().Summary(cfg.L1 > 0))
	},
}

// variantsCmd lists the traversal variants.
var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the available traversal variants",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range sim.ValidVariantNames() {
			fmt.Printf("%-16s %s\n", name, sim.Variant(name).Describe())
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addSimFlags registers the flags shared by run and stats.
func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&title, "title", "", "Caption drawn on each frame")
	cmd.Flags().StringVar(&variant, "variant", string(sim.VariantNaive), "Traversal variant ("+strings.Join(sim.ValidVariantNames(), ", ")+")")
	cmd.Flags().IntVarP(&dimM, "rows", "M", 12, "Rows of A and C")
	cmd.Flags().IntVarP(&dimN, "cols", "N", 12, "Columns of B and C")
	cmd.Flags().IntVarP(&dimK, "inner", "K", 12, "Columns of A / rows of B")
	cmd.Flags().IntVar(&block1, "block1", 12, "Inner block size")
	cmd.Flags().IntVar(&l1Size, "l1", 0, "L1 size: sub-tile side for blocked-1-level, cache lines for statistics")
	cmd.Flags().IntVar(&block2, "block2", 0, "Outer block size (blocked-2-level)")
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&presetName, "preset", "", "Named preset from the presets file")
	cmd.Flags().StringVar(&presetsFile, "presets-file", "presets.yaml", "Path to the presets file")
}

// init sets up CLI flags and subcommands
func init() {
	addSimFlags(runCmd)
	runCmd.Flags().StringVarP(&output, "output", "o", "matrix_mul.mp4", "Output path (.mp4 video, .png/.svg frame files)")
	runCmd.Flags().IntVar(&fps, "fps", 24, "Video frame rate")
	runCmd.Flags().BoolVar(&showLinear, "linear", false, "Draw linear-memory strips under the grids")

	addSimFlags(statsCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(variantsCmd)
}
