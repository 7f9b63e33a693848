package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hypdisk/hypdisk/internal/hyper"
)

var checkCmd = &cobra.Command{
	Use:   "check <script>",
	Short: "Run a script and report the shapes it builds",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	e, s, err := runScript(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: %d commands ok\n", args[0], len(s.Commands))
	for _, k := range []hyper.Kind{hyper.KindPoint, hyper.KindLine, hyper.KindPolygon, hyper.KindFreeDrawing} {
		fmt.Fprintf(w, "  %-12s %d\n", k, len(e.ShapesOf(k)))
	}
	fmt.Fprintf(w, "  %-12s %s\n", "tool", e.Tool())
	if e.Playing() {
		fmt.Fprintf(w, "  %-12s %s\n", "playing", e.Mode())
	}
	return nil
}
