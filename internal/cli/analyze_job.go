package cli

import (
	"context"
	"fmt"

	"atsmatch/internal/common"
	"atsmatch/internal/types"

	"github.com/spf13/cobra"
)

var analyzeJobCmd = &cobra.Command{
	Use:   "analyze-job [job-description-file]",
	Short: "Extract structured requirements from a job posting",
	Long: `Analyze a job posting and extract its structured requirements:
title, experience level, required and preferred skills, technology
mentions and the ATS keywords a tracking system would scan for.
The job description file should be in plain text format.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeJobConfig.OutputFormat == "" {
			analyzeJobConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeJobConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyzeJob,
}

var (
	analyzeJobConfig  common.CommandConfig
	analyzeJobTitle   string
	analyzeJobCompany string
)

func init() {
	analyzeJobCmd.Flags().StringVarP(&analyzeJobConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeJobCmd.Flags().StringVar(&analyzeJobConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeJobCmd.Flags().StringVar(&analyzeJobTitle, "title", "", "Job title hint when the posting omits it")
	analyzeJobCmd.Flags().StringVar(&analyzeJobCompany, "company", "", "Company name hint when the posting omits it")

	// Add completion for format flag
	_ = analyzeJobCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyzeJob(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	eng, cleanup, err := engineFromCommandContext(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	createInput := func(contents []string) (string, error) {
		if len(contents) != 1 {
			return "", fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return contents[0], nil
	}

	logDetails := func(input string, cfg common.CommandConfig) {
		logger.Info("Starting job analysis",
			"job_chars", len(input),
			"output_format", cfg.OutputFormat)
	}

	analyzeOperation := func(ctx context.Context, raw string) (types.JobRequirements, error) {
		hints := types.JobPostingHints{Title: analyzeJobTitle, Company: analyzeJobCompany}
		return eng.ExtractJob(ctx, raw, hints), nil
	}

	err = common.RunEngineCommand(
		cmd.Context(),
		logger,
		analyzeJobConfig,
		args,
		createInput,
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze job description: %w", err)
	}
	logger.Info("Job analysis completed successfully")
	return nil
}
