package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	inputPath  string
	outputPath string
)

var rootCmd = &cobra.Command{
	Use:           "blogwriter",
	Short:         "Generate store blog articles from a topic and a catalog snapshot",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	generateCmd.Flags().StringVarP(&inputPath, "input", "i", "", "writer context file (YAML or JSON)")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write results to this file instead of stdout")
	_ = generateCmd.MarkFlagRequired("input")

	promptCmd.Flags().StringVarP(&inputPath, "input", "i", "", "writer context file (YAML or JSON)")
	_ = promptCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(writersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
