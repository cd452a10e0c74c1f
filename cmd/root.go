package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "squish",
	Short: "squish - batch convert, compress, and resize images",
	Long:  "squish converts whole folders of images between formats, with optional resizing and quality control. Animated images keep their frames where the target format allows it.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}
