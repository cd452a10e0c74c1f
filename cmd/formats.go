package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"squish/internal/codec"
	"squish/internal/format"
	"squish/internal/tui"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported formats and their file suffixes",
	Run: func(cmd *cobra.Command, args []string) {
		caps := codec.DetectCapabilities()

		for _, f := range format.All() {
			spec := f.Spec()
			line := fmt.Sprintf("%s  %s  %s",
				formatIDStyle.Render(fmt.Sprintf("%-5s", spec.ID)),
				formatDimStyle.Render(fmt.Sprintf("%-5s", spec.Codec)),
				strings.Join(spec.Suffixes, " "))
			if f.NeedsHEIF() && !caps.HEIF {
				line += formatDimStyle.Render("  (unavailable in this build)")
			}
			fmt.Fprintln(os.Stdout, line)
		}

		fmt.Fprintf(os.Stdout, "\nUse %q as the input format to match all of the above.\n", format.Wildcard)
	},
}

var (
	formatIDStyle  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	formatDimStyle = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	rootCmd.AddCommand(formatsCmd)
}
