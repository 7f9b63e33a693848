package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hypdisk/hypdisk/internal/raster"
)

var (
	outputPath string
	showLabels bool
)

var renderCmd = &cobra.Command{
	Use:   "render <script>",
	Short: "Render the scene a script builds to a PNG",
	Long: `Run a script and rasterize the final frame, including the disk
boundary and the anchors of every shape.

Examples:
  hypdisk render scene.hyp
  hypdisk render -o out.png --labels scene.hyp`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"output file (default: script name with .png)")
	renderCmd.Flags().BoolVarP(&showLabels, "labels", "l", false,
		"draw point coordinates")
}

func runRender(cmd *cobra.Command, args []string) error {
	e, _, err := runScript(args[0])
	if err != nil {
		return err
	}

	out := outputPath
	if out == "" {
		out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := raster.WritePNG(f, e.Render(), raster.Options{Labels: showLabels}); err != nil {
		f.Close()
		return fmt.Errorf("failed to render: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%gpx)\n", out, e.Viewport().Size)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}
