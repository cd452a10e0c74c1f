package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"squish/internal/codec"
	"squish/internal/format"
	"squish/internal/pipeline"
	"squish/internal/transform"
	"squish/internal/tui"
)

var (
	convertInputFormat    string
	convertOutputFormat   string
	convertQuality        int
	convertWidth          int
	convertHeight         int
	convertForceAspect    bool
	convertPreserveAspect bool
	convertInputDir       string
	convertOutputDir      string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert and compress every matching image in a folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		inputSel, err := format.Resolve(convertInputFormat, format.RoleInput)
		if err != nil {
			return err
		}
		outputSel, err := format.Resolve(convertOutputFormat, format.RoleOutput)
		if err != nil {
			return err
		}
		if convertQuality < 0 || convertQuality > 100 {
			return fmt.Errorf("--quality must be between 0 and 100, got %d", convertQuality)
		}

		resolution, err := targetResolution(
			cmd.Flags().Changed("width"), cmd.Flags().Changed("height"),
			convertWidth, convertHeight)
		if err != nil {
			return err
		}

		policy := transform.PolicyFit
		if convertForceAspect {
			if resolution == nil {
				printWarning("--force-aspect-ratio is set, but --width and --height are not; the flag will be ignored.")
			} else {
				policy = transform.PolicyForced
			}
		}

		info, err := os.Stat(convertInputDir)
		if err != nil {
			return fmt.Errorf("input folder not found: %q", convertInputDir)
		}
		if !info.IsDir() {
			return fmt.Errorf("input path is not a directory: %q", convertInputDir)
		}
		if err := os.MkdirAll(convertOutputDir, 0o755); err != nil {
			return fmt.Errorf("could not create output folder %q: %w", convertOutputDir, err)
		}

		caps := codec.DetectCapabilities()
		target := outputSel.Format

		printSettings(target, resolution, policy)

		paths, err := pipeline.Discover(convertInputDir, inputSel, caps)
		if err != nil {
			if errors.Is(err, codec.ErrHEIFUnavailable) {
				printError(err.Error())
				return nil
			}
			return err
		}
		if len(paths) == 0 {
			printWarning(fmt.Sprintf("No images found matching criteria in %q.", convertInputDir))
			return nil
		}
		fmt.Fprintf(os.Stdout, "Found %s image(s) to process.\n",
			countStyle.Render(fmt.Sprintf("%d", len(paths))))

		updates := make(chan pipeline.ProgressUpdate, 64)
		model := tui.NewModel(updates)
		program := tea.NewProgram(model)

		uiDone := make(chan struct{})
		go func() {
			_, _ = program.Run()
			close(uiDone)
		}()

		summary, outcomes := pipeline.Run(context.Background(), paths, pipeline.Options{
			OutputDir:  convertOutputDir,
			Target:     target,
			Quality:    convertQuality,
			Resolution: resolution,
			Policy:     policy,
			Caps:       caps,
		}, updates)

		close(updates)
		<-uiDone

		reportOutcomes(outcomes)
		reportSummary(summary)
		return nil
	},
}

// targetResolution validates the width/height pair: both or neither.
func targetResolution(widthSet, heightSet bool, width, height int) (*transform.Resolution, error) {
	if widthSet != heightSet {
		return nil, errors.New("if resizing, both --width and --height must be specified; omit both to keep the original resolution")
	}
	if !widthSet {
		return nil, nil
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("--width and --height must be positive, got %dx%d", width, height)
	}
	return &transform.Resolution{Width: width, Height: height}, nil
}

func printSettings(target format.Format, resolution *transform.Resolution, policy transform.AspectPolicy) {
	absIn, _ := filepath.Abs(convertInputDir)
	absOut, _ := filepath.Abs(convertOutputDir)

	printInfo(fmt.Sprintf("Input folder: %s", absIn))
	printInfo(fmt.Sprintf("Output folder: %s", absOut))
	printInfo(fmt.Sprintf("Input format filter: %s", convertInputFormat))
	printInfo(fmt.Sprintf("Output format: %s (as %s)", target.CodecName(), target.OutputSuffix()))
	printInfo(fmt.Sprintf("Quality: %d", convertQuality))
	if resolution != nil {
		printInfo(fmt.Sprintf("Target resolution: %dx%d [%s]", resolution.Width, resolution.Height, policy))
	} else {
		printInfo("Target resolution: original")
	}
}

func reportOutcomes(outcomes []pipeline.Outcome) {
	for _, outcome := range outcomes {
		for _, note := range outcome.Notes {
			printWarning(fmt.Sprintf("%s: %s", filepath.Base(outcome.Path), note))
		}
		if outcome.Succeeded {
			continue
		}
		printError(fmt.Sprintf("Skipped %s (%s error): %v", filepath.Base(outcome.Path), outcome.Kind, outcome.Err))
	}
}

func reportSummary(summary pipeline.Summary) {
	rows := []tui.SummaryRow{
		{Label: "Images processed", Value: fmt.Sprintf("%d", summary.Processed)},
		{Label: "Errors", Value: fmt.Sprintf("%d", summary.Errors)},
	}
	fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))

	line := fmt.Sprintf("Summary: %d image(s) processed successfully.", summary.Processed)
	switch {
	case summary.Errors == 0 && summary.Processed > 0:
		fmt.Fprintln(os.Stdout, okStyle.Render(line))
	case summary.Processed > 0:
		fmt.Fprintln(os.Stdout, warnLineStyle.Render(line))
	default:
		fmt.Fprintln(os.Stdout, errLineStyle.Render(line))
	}
	if summary.Errors > 0 {
		printError(fmt.Sprintf("Encountered errors with %d image(s). See the lines above for details.", summary.Errors))
	}
}

func printInfo(message string)    { fmt.Fprintln(os.Stdout, infoStyle.Render(message)) }
func printWarning(message string) { fmt.Fprintf(os.Stdout, "%s %s\n", warnTagStyle.Render("Warning:"), message) }
func printError(message string)   { fmt.Fprintf(os.Stdout, "%s %s\n", errTagStyle.Render("Error:"), message) }

var (
	infoStyle     = lipgloss.NewStyle().Foreground(tui.ColorAccentAlt)
	countStyle    = lipgloss.NewStyle().Foreground(tui.ColorAccent)
	warnTagStyle  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorWarn)
	errTagStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorError)
	okStyle       = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorSuccess)
	warnLineStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorWarn)
	errLineStyle  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorError)
)

func init() {
	convertCmd.Flags().StringVarP(&convertInputFormat, "input-format", "i", "", "input format to match, or \"all\" for every supported format")
	convertCmd.Flags().StringVarP(&convertOutputFormat, "output-format", "o", "", "output format (jpg, png, webp, apng, heic, ...)")
	convertCmd.Flags().IntVarP(&convertQuality, "quality", "q", 85, "compression quality (0-100)")
	convertCmd.Flags().IntVarP(&convertWidth, "width", "W", 0, "output width in pixels; requires --height")
	convertCmd.Flags().IntVarP(&convertHeight, "height", "H", 0, "output height in pixels; requires --width")
	convertCmd.Flags().BoolVar(&convertForceAspect, "force-aspect-ratio", false, "resize to the exact width and height, distorting the aspect ratio if needed")
	convertCmd.Flags().BoolVar(&convertPreserveAspect, "preserve-aspect-ratio", false, "shrink to fit within width and height, keeping the aspect ratio (default)")
	convertCmd.Flags().StringVar(&convertInputDir, "input-folder", "input", "folder to read images from")
	convertCmd.Flags().StringVar(&convertOutputDir, "output-folder", "output", "folder to write converted images to; created if missing")

	_ = convertCmd.MarkFlagRequired("input-format")
	_ = convertCmd.MarkFlagRequired("output-format")
	convertCmd.MarkFlagsMutuallyExclusive("force-aspect-ratio", "preserve-aspect-ratio")

	rootCmd.AddCommand(convertCmd)
}
