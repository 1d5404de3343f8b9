package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resumate/internal/generation"
	"github.com/jonathan/resumate/internal/logging"
	"github.com/jonathan/resumate/internal/observability"
	"github.com/jonathan/resumate/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate tailored bullets once from files",
	Long:  "Reads a job description and a resume from files (or stdin with -), prints the tailored bullets, and exits non-zero when no bullets could be generated.",
	RunE:  runGenerate,
}

var (
	generateJobFile    string
	generateResumeFile string
	generateJSON       bool
	generateReview     bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateJobFile, "job", "j", "", "Path to job description text file, or - for stdin (required)")
	generateCmd.Flags().StringVarP(&generateResumeFile, "resume", "r", "", "Path to resume text file, or - for stdin (required)")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Print the result as JSON")
	generateCmd.Flags().BoolVar(&generateReview, "review", false, "Also print guideline checks for the generated bullets")

	if err := generateCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := generateCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if generateJobFile == "-" && generateResumeFile == "-" {
		return errors.New("only one of --job and --resume can read from stdin")
	}

	jobText, err := readInput(generateJobFile, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}
	resumeText, err := readInput(generateResumeFile, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	req := types.GenerationRequest{JobDescription: jobText, ResumeText: resumeText}
	if !req.Ready() {
		return fmt.Errorf("job description and resume must each be more than %d characters", types.MinInputLength)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.NewWithWriter(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	generator, closeClient, err := newGenerator(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeClient() }()

	result := generator.Generate(cmd.Context(), req)

	out := cmd.OutOrStdout()
	if generateJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	} else {
		printer := observability.NewPrinter(out)
		printer.PrintRequest(req)
		printer.PrintResult(result)
		if generateReview && !result.Failed() {
			printer.PrintReview(generation.Review(result.Bullets))
		}
	}

	if result.Failed() {
		return fmt.Errorf("generation failed: %s", result.Error)
	}
	return nil
}

// readInput reads a file, or stdin when path is "-"
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
