// Package main provides the entry point for the resumate web server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumate",
	Short: "Tailored resume bullets from a job description and a resume",
	Long:  "Resumate sends a job description and a resume to a hosted language model and returns tailored, recruiter-ready resume bullets, either through a web form or from the terminal.",
	// Errors are printed once by main; usage is only useful for flag mistakes.
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
